package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"investment-bot-backend/internal/features/auth/initdata"
	"investment-bot-backend/internal/features/auth/token"
	referralmodels "investment-bot-backend/internal/features/referral/models"
	referralservice "investment-bot-backend/internal/features/referral/service"
	usermodels "investment-bot-backend/internal/features/user/models"
	userrepo "investment-bot-backend/internal/features/user/repository"
)

type fakeUserRepo struct {
	byID           map[string]*usermodels.User
	failAll        bool
	failCreate     error
	missNextLookup bool
	createCalls    int
	updateCalls    int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*usermodels.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *usermodels.User) error {
	if f.failAll {
		return errors.New("connection refused")
	}
	f.createCalls++
	if f.failCreate != nil {
		err := f.failCreate
		f.failCreate = nil
		return err
	}
	for _, u := range f.byID {
		if u.TelegramID == user.TelegramID {
			return userrepo.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	clone := *user
	f.byID[user.ID.Hex()] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*usermodels.User, error) {
	if u, ok := f.byID[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, userrepo.ErrNotFound
}

func (f *fakeUserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*usermodels.User, error) {
	if f.failAll {
		return nil, errors.New("connection refused")
	}
	if f.missNextLookup {
		f.missNextLookup = false
		return nil, userrepo.ErrNotFound
	}
	for _, u := range f.byID {
		if u.TelegramID == telegramID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, userrepo.ErrNotFound
}

func (f *fakeUserRepo) GetByReferralCode(ctx context.Context, code string) (*usermodels.User, error) {
	for _, u := range f.byID {
		if u.ReferralCode == code {
			clone := *u
			return &clone, nil
		}
	}
	return nil, userrepo.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *usermodels.User) error {
	if f.failAll {
		return errors.New("connection refused")
	}
	f.updateCalls++
	if _, ok := f.byID[user.ID.Hex()]; !ok {
		return userrepo.ErrNotFound
	}
	clone := *user
	f.byID[user.ID.Hex()] = &clone
	return nil
}

func (f *fakeUserRepo) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	_, err := f.GetByReferralCode(ctx, code)
	return err == nil, nil
}

func (f *fakeUserRepo) WalletAddressExists(ctx context.Context, address string) (bool, error) {
	for _, u := range f.byID {
		if u.WalletAddress == address {
			return true, nil
		}
	}
	return false, nil
}

type fakeReferralService struct {
	linked [][2]string
}

func (f *fakeReferralService) Link(ctx context.Context, referrerID, referredUserID string) (*referralmodels.Referral, error) {
	if referrerID == referredUserID {
		return nil, referralservice.ErrSelfReferral
	}
	f.linked = append(f.linked, [2]string{referrerID, referredUserID})
	return &referralmodels.Referral{ReferrerID: referrerID, ReferredUserID: referredUserID, IsActive: true}, nil
}

func (f *fakeReferralService) Stats(ctx context.Context, user *usermodels.User) (*referralservice.StatsResponse, error) {
	return &referralservice.StatsResponse{}, nil
}

func (f *fakeReferralService) ReferredUsers(ctx context.Context, referrerID string) ([]*referralmodels.ReferredUser, error) {
	return nil, nil
}

func (f *fakeReferralService) CreditBonus(ctx context.Context, referredUser *usermodels.User, investedAmount float64) error {
	return nil
}

func newTestAuth(repo *fakeUserRepo) (AuthService, *token.Service, *fakeReferralService) {
	tokens := token.NewService("secret", "secret_refresh", 7*24*time.Hour, 30*24*time.Hour)
	referrals := &fakeReferralService{}
	return NewAuthService(repo, referrals, tokens), tokens, referrals
}

func TestAuthenticate_CreatesAccountOnFirstLogin(t *testing.T) {
	repo := newFakeUserRepo()
	auth, tokens, _ := newTestAuth(repo)

	result, err := auth.Authenticate(context.Background(), &initdata.Identity{
		ID:        42,
		Username:  "ann",
		FirstName: "Ann",
	})
	require.NoError(t, err)

	user := result.User
	assert.Equal(t, int64(42), user.TelegramID)
	assert.Equal(t, "Ann", user.FirstName)
	assert.True(t, user.IsActive)
	assert.Zero(t, user.TotalInvested)
	assert.Zero(t, user.AvailableBalance)
	assert.Zero(t, user.ReferralEarnings)

	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{8}$`), user.ReferralCode)
	assert.True(t, strings.HasPrefix(user.WalletAddress, "T"))
	assert.Len(t, user.WalletAddress, 34)

	assert.Equal(t, int64((7 * 24 * time.Hour).Seconds()), result.ExpiresIn)

	claims, err := tokens.VerifyAccess(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, int64(42), claims.TelegramID)
}

func TestAuthenticate_FirstNameFallback(t *testing.T) {
	repo := newFakeUserRepo()
	auth, _, _ := newTestAuth(repo)

	result, err := auth.Authenticate(context.Background(), &initdata.Identity{ID: 42})
	require.NoError(t, err)
	assert.Equal(t, "Investor", result.User.FirstName)
}

func TestAuthenticate_IsIdempotentPerTelegramID(t *testing.T) {
	repo := newFakeUserRepo()
	auth, _, _ := newTestAuth(repo)

	first, err := auth.Authenticate(context.Background(), &initdata.Identity{ID: 42, Username: "ann", FirstName: "Ann"})
	require.NoError(t, err)

	second, err := auth.Authenticate(context.Background(), &initdata.Identity{ID: 42, Username: "ann_new", FirstName: "Ann"})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, first.User.WalletAddress, second.User.WalletAddress)
	assert.Equal(t, first.User.ReferralCode, second.User.ReferralCode)
	assert.Equal(t, "ann_new", second.User.Username)
}

func TestAuthenticate_ReloginWithoutChangesSkipsUpdate(t *testing.T) {
	repo := newFakeUserRepo()
	auth, _, _ := newTestAuth(repo)

	identity := &initdata.Identity{ID: 42, Username: "ann", FirstName: "Ann"}
	_, err := auth.Authenticate(context.Background(), identity)
	require.NoError(t, err)

	_, err = auth.Authenticate(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestAuthenticate_StorageUnavailable(t *testing.T) {
	repo := newFakeUserRepo()
	repo.failAll = true
	auth, _, _ := newTestAuth(repo)

	_, err := auth.Authenticate(context.Background(), &initdata.Identity{ID: 42, FirstName: "Ann"})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestAuthenticate_DuplicateInsertRaceReusesExistingAccount(t *testing.T) {
	repo := newFakeUserRepo()
	auth, _, _ := newTestAuth(repo)

	// Seed the account the "other" racing request inserted.
	winner := &usermodels.User{TelegramID: 42, FirstName: "Ann", WalletAddress: "Twinner", ReferralCode: "WINNER00", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), winner))

	// Make this request's initial lookup miss so it attempts an insert that
	// collides on the telegram id unique index.
	repo.missNextLookup = true
	repo.failCreate = userrepo.ErrDuplicate

	result, err := auth.Authenticate(context.Background(), &initdata.Identity{ID: 42, FirstName: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, winner.ID.Hex(), result.User.ID)
	assert.Equal(t, "WINNER00", result.User.ReferralCode)
}

func TestAuthenticate_LinksReferralFromStartParam(t *testing.T) {
	repo := newFakeUserRepo()
	auth, _, referrals := newTestAuth(repo)

	inviter, err := auth.Authenticate(context.Background(), &initdata.Identity{ID: 1, FirstName: "Inviter"})
	require.NoError(t, err)

	invited, err := auth.Authenticate(context.Background(), &initdata.Identity{
		ID:         2,
		FirstName:  "Invited",
		StartParam: inviter.User.ReferralCode,
	})
	require.NoError(t, err)

	assert.Equal(t, inviter.User.ID, invited.User.ReferredBy)
	require.Len(t, referrals.linked, 1)
	assert.Equal(t, inviter.User.ID, referrals.linked[0][0])
	assert.Equal(t, invited.User.ID, referrals.linked[0][1])
}

func TestAuthenticate_IgnoresUnknownReferralCode(t *testing.T) {
	repo := newFakeUserRepo()
	auth, _, referrals := newTestAuth(repo)

	result, err := auth.Authenticate(context.Background(), &initdata.Identity{
		ID:         2,
		FirstName:  "Invited",
		StartParam: "NOSUCH00",
	})
	require.NoError(t, err)
	assert.Empty(t, result.User.ReferredBy)
	assert.Empty(t, referrals.linked)
}

func TestRefresh_MintsNewAccessToken(t *testing.T) {
	repo := newFakeUserRepo()
	auth, tokens, _ := newTestAuth(repo)

	result, err := auth.Authenticate(context.Background(), &initdata.Identity{ID: 42, FirstName: "Ann"})
	require.NoError(t, err)

	access, err := auth.Refresh(result.RefreshToken)
	require.NoError(t, err)

	claims, err := tokens.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.Subject)
	assert.Equal(t, int64(42), claims.TelegramID)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	repo := newFakeUserRepo()
	auth, _, _ := newTestAuth(repo)

	result, err := auth.Authenticate(context.Background(), &initdata.Identity{ID: 42, FirstName: "Ann"})
	require.NoError(t, err)

	_, err = auth.Refresh(result.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_RejectsGarbage(t *testing.T) {
	repo := newFakeUserRepo()
	auth, _, _ := newTestAuth(repo)

	_, err := auth.Refresh("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}
