// Package token issues and verifies the stateless session credentials: a
// short-lived access token and a longer-lived refresh token, HS256-signed
// with distinct secrets.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carried by both token kinds. Subject is the local user id; TID is
// the Telegram numeric id.
type Claims struct {
	TelegramID int64 `json:"tid,omitempty"`
	jwt.RegisteredClaims
}

type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// AccessTTL reports the configured access-token lifetime.
func (s *Service) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *Service) SignAccess(userID string, telegramID int64) (string, error) {
	return sign(s.accessSecret, userID, telegramID, s.accessTTL)
}

func (s *Service) SignRefresh(userID string, telegramID int64) (string, error) {
	return sign(s.refreshSecret, userID, telegramID, s.refreshTTL)
}

func (s *Service) VerifyAccess(tokenString string) (*Claims, error) {
	return verify(s.accessSecret, tokenString)
}

func (s *Service) VerifyRefresh(tokenString string) (*Claims, error) {
	return verify(s.refreshSecret, tokenString)
}

func sign(secret []byte, userID string, telegramID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		TelegramID: telegramID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func verify(secret []byte, tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseExpiry understands the "7d"/"30d" style lifetimes used in the
// configuration alongside everything time.ParseDuration accepts.
func ParseExpiry(s string) (time.Duration, error) {
	if v, ok := strings.CutSuffix(s, "d"); ok {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			return 0, fmt.Errorf("invalid expiry %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid expiry %q", s)
	}
	return d, nil
}
