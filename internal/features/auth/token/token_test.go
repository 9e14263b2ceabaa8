package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService("access-secret", "access-secret_refresh", 7*24*time.Hour, 30*24*time.Hour)
}

func TestSignAndVerifyAccess(t *testing.T) {
	svc := newTestService()

	signed, err := svc.SignAccess("68b1f0aa9c3e2d0001aa42ff", 99281932)
	require.NoError(t, err)

	claims, err := svc.VerifyAccess(signed)
	require.NoError(t, err)
	assert.Equal(t, "68b1f0aa9c3e2d0001aa42ff", claims.Subject)
	assert.Equal(t, int64(99281932), claims.TelegramID)
}

func TestVerifyAccess_RejectsRefreshToken(t *testing.T) {
	svc := newTestService()

	refresh, err := svc.SignRefresh("68b1f0aa9c3e2d0001aa42ff", 42)
	require.NoError(t, err)

	_, err = svc.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRefresh_RejectsAccessToken(t *testing.T) {
	svc := newTestService()

	access, err := svc.SignAccess("68b1f0aa9c3e2d0001aa42ff", 42)
	require.NoError(t, err)

	_, err = svc.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_Expired(t *testing.T) {
	svc := NewService("access-secret", "refresh-secret", -time.Second, 30*24*time.Hour)

	signed, err := svc.SignAccess("68b1f0aa9c3e2d0001aa42ff", 42)
	require.NoError(t, err)

	_, err = svc.VerifyAccess(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_Garbage(t *testing.T) {
	svc := newTestService()

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.VerifyAccess(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerifyAccess_WrongSecret(t *testing.T) {
	signed, err := newTestService().SignAccess("68b1f0aa9c3e2d0001aa42ff", 42)
	require.NoError(t, err)

	other := NewService("different-secret", "different-secret_refresh", time.Hour, time.Hour)
	_, err = other.VerifyAccess(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: "30d", want: 30 * 24 * time.Hour},
		{in: "12h", want: 12 * time.Hour},
		{in: "45m", want: 45 * time.Minute},
		{in: "90s", want: 90 * time.Second},
		{in: "", wantErr: true},
		{in: "sevend", wantErr: true},
		{in: "-1d", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseExpiry(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
