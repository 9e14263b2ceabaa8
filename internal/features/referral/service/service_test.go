package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"investment-bot-backend/internal/features/referral/models"
	"investment-bot-backend/internal/features/referral/repository"
	usermodels "investment-bot-backend/internal/features/user/models"
	userrepo "investment-bot-backend/internal/features/user/repository"
)

type fakeReferralRepo struct {
	created    []*models.Referral
	createErr  error
	listed     []*models.Referral
	stats      models.Stats
	bonuses    map[string]float64
	addBonusTo []string
}

func (f *fakeReferralRepo) Create(_ context.Context, referral *models.Referral) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, referral)
	return nil
}

func (f *fakeReferralRepo) ListByReferrer(context.Context, string) ([]*models.Referral, error) {
	return f.listed, nil
}

func (f *fakeReferralRepo) StatsByReferrer(context.Context, string) (*models.Stats, error) {
	stats := f.stats
	return &stats, nil
}

func (f *fakeReferralRepo) AddBonus(_ context.Context, referredUserID string, amount float64) error {
	if f.bonuses == nil {
		f.bonuses = make(map[string]float64)
	}
	f.bonuses[referredUserID] += amount
	f.addBonusTo = append(f.addBonusTo, referredUserID)
	return nil
}

type fakeUserRepo struct {
	byID map[string]*usermodels.User
}

func (f *fakeUserRepo) Create(context.Context, *usermodels.User) error { return nil }
func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*usermodels.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, userrepo.ErrNotFound
}
func (f *fakeUserRepo) GetByTelegramID(context.Context, int64) (*usermodels.User, error) {
	return nil, userrepo.ErrNotFound
}
func (f *fakeUserRepo) GetByReferralCode(context.Context, string) (*usermodels.User, error) {
	return nil, userrepo.ErrNotFound
}
func (f *fakeUserRepo) Update(_ context.Context, u *usermodels.User) error {
	f.byID[u.ID.Hex()] = u
	return nil
}
func (f *fakeUserRepo) ReferralCodeExists(context.Context, string) (bool, error) {
	return false, nil
}
func (f *fakeUserRepo) WalletAddressExists(context.Context, string) (bool, error) {
	return false, nil
}

func TestLink_RejectsSelfReferral(t *testing.T) {
	svc := NewReferralService(&fakeReferralRepo{}, &fakeUserRepo{}, "investbot")

	_, err := svc.Link(context.Background(), "abc", "abc")
	assert.ErrorIs(t, err, ErrSelfReferral)
}

func TestLink_CreatesActiveReferral(t *testing.T) {
	repo := &fakeReferralRepo{}
	svc := NewReferralService(repo, &fakeUserRepo{}, "investbot")

	ref, err := svc.Link(context.Background(), "referrer", "referred")
	require.NoError(t, err)

	assert.True(t, ref.IsActive)
	assert.Zero(t, ref.BonusAmount)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "referrer", repo.created[0].ReferrerID)
	assert.Equal(t, "referred", repo.created[0].ReferredUserID)
}

func TestLink_PropagatesAlreadyReferred(t *testing.T) {
	repo := &fakeReferralRepo{createErr: repository.ErrAlreadyReferred}
	svc := NewReferralService(repo, &fakeUserRepo{}, "investbot")

	_, err := svc.Link(context.Background(), "referrer", "referred")
	assert.ErrorIs(t, err, ErrAlreadyReferred)
}

func TestStats_BuildsInviteURL(t *testing.T) {
	repo := &fakeReferralRepo{stats: models.Stats{TotalReferrals: 3, TotalBonusEarned: 12.5}}
	svc := NewReferralService(repo, &fakeUserRepo{}, "investbot")

	user := &usermodels.User{
		ID:           primitive.NewObjectID(),
		ReferralCode: "AB12CD34",
		IsActive:     true,
	}

	stats, err := svc.Stats(context.Background(), user)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Stats.TotalReferrals)
	assert.Equal(t, 12.5, stats.Stats.TotalBonusEarned)
	assert.Equal(t, "AB12CD34", stats.ReferralCode.Code)
	assert.Equal(t, "https://t.me/investbot?start=AB12CD34", stats.ReferralCode.URL)
	assert.True(t, stats.ReferralCode.IsActive)
}

func TestCreditBonus_PaysReferrerPercentage(t *testing.T) {
	referrer := &usermodels.User{ID: primitive.NewObjectID()}
	users := &fakeUserRepo{byID: map[string]*usermodels.User{referrer.ID.Hex(): referrer}}
	repo := &fakeReferralRepo{}
	svc := NewReferralService(repo, users, "investbot")

	referred := &usermodels.User{
		ID:         primitive.NewObjectID(),
		ReferredBy: referrer.ID.Hex(),
	}

	require.NoError(t, svc.CreditBonus(context.Background(), referred, 200))

	assert.Equal(t, 6.0, referrer.ReferralEarnings)
	assert.Equal(t, 6.0, referrer.AvailableBalance)
	assert.Equal(t, 6.0, referrer.TotalEarned)
	assert.Equal(t, 6.0, repo.bonuses[referred.ID.Hex()])
}

func TestCreditBonus_NoReferrerIsNoOp(t *testing.T) {
	repo := &fakeReferralRepo{}
	svc := NewReferralService(repo, &fakeUserRepo{byID: map[string]*usermodels.User{}}, "investbot")

	referred := &usermodels.User{ID: primitive.NewObjectID()}
	require.NoError(t, svc.CreditBonus(context.Background(), referred, 200))
	assert.Empty(t, repo.addBonusTo)
}

func TestCreditBonus_MissingReferrerIsNoOp(t *testing.T) {
	repo := &fakeReferralRepo{}
	svc := NewReferralService(repo, &fakeUserRepo{byID: map[string]*usermodels.User{}}, "investbot")

	referred := &usermodels.User{
		ID:         primitive.NewObjectID(),
		ReferredBy: primitive.NewObjectID().Hex(),
	}
	require.NoError(t, svc.CreditBonus(context.Background(), referred, 200))
	assert.Empty(t, repo.addBonusTo)
}

func TestReferredUsers_EnrichesWithAccountData(t *testing.T) {
	referred := &usermodels.User{
		ID:        primitive.NewObjectID(),
		FirstName: "Alice",
		Username:  "alice",
	}
	users := &fakeUserRepo{byID: map[string]*usermodels.User{referred.ID.Hex(): referred}}
	repo := &fakeReferralRepo{listed: []*models.Referral{
		{ReferrerID: "r1", ReferredUserID: referred.ID.Hex(), BonusAmount: 3},
		{ReferrerID: "r1", ReferredUserID: primitive.NewObjectID().Hex()},
	}}
	svc := NewReferralService(repo, users, "investbot")

	out, err := svc.ReferredUsers(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Alice", out[0].FirstName)
	assert.Equal(t, "alice", out[0].Username)
	assert.Equal(t, 3.0, out[0].BonusAmount)
	// The second referral's account is gone; the projection keeps the id.
	assert.Empty(t, out[1].FirstName)
}
