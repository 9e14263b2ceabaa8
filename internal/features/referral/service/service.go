package service

import (
	"context"
	"errors"
	"fmt"

	"investment-bot-backend/internal/features/referral/models"
	"investment-bot-backend/internal/features/referral/repository"
	usermodels "investment-bot-backend/internal/features/user/models"
	userrepo "investment-bot-backend/internal/features/user/repository"
)

// BonusPercentage of a referred user's investment credited to the referrer.
const BonusPercentage = 3.0

var (
	ErrSelfReferral    = errors.New("self-referral is not allowed")
	ErrAlreadyReferred = repository.ErrAlreadyReferred
)

type ReferralService interface {
	Link(ctx context.Context, referrerID, referredUserID string) (*models.Referral, error)
	Stats(ctx context.Context, user *usermodels.User) (*StatsResponse, error)
	ReferredUsers(ctx context.Context, referrerID string) ([]*models.ReferredUser, error)
	CreditBonus(ctx context.Context, referredUser *usermodels.User, investedAmount float64) error
}

// StatsResponse combines aggregate numbers with the referrer's code block.
type StatsResponse struct {
	Stats        models.Stats `json:"stats"`
	ReferralCode CodeBlock    `json:"referralCode"`
}

type CodeBlock struct {
	Code     string `json:"code"`
	URL      string `json:"url"`
	IsActive bool   `json:"isActive"`
}

type referralService struct {
	referrals   repository.ReferralRepository
	users       userrepo.UserRepository
	botUsername string
}

func NewReferralService(referrals repository.ReferralRepository, users userrepo.UserRepository, botUsername string) ReferralService {
	return &referralService{
		referrals:   referrals,
		users:       users,
		botUsername: botUsername,
	}
}

// Link records that referredUserID was invited by referrerID. Referrer and
// referred must be different accounts; the unique index rejects a second
// referral for the same user.
func (s *referralService) Link(ctx context.Context, referrerID, referredUserID string) (*models.Referral, error) {
	if referrerID == referredUserID {
		return nil, ErrSelfReferral
	}

	referral := &models.Referral{
		ReferrerID:     referrerID,
		ReferredUserID: referredUserID,
		BonusAmount:    0,
		IsActive:       true,
	}
	if err := s.referrals.Create(ctx, referral); err != nil {
		return nil, err
	}
	return referral, nil
}

func (s *referralService) Stats(ctx context.Context, user *usermodels.User) (*StatsResponse, error) {
	stats, err := s.referrals.StatsByReferrer(ctx, user.ID.Hex())
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		Stats: *stats,
		ReferralCode: CodeBlock{
			Code:     user.ReferralCode,
			URL:      fmt.Sprintf("https://t.me/%s?start=%s", s.botUsername, user.ReferralCode),
			IsActive: user.IsActive,
		},
	}, nil
}

func (s *referralService) ReferredUsers(ctx context.Context, referrerID string) ([]*models.ReferredUser, error) {
	referrals, err := s.referrals.ListByReferrer(ctx, referrerID)
	if err != nil {
		return nil, err
	}

	users := make([]*models.ReferredUser, 0, len(referrals))
	for _, ref := range referrals {
		entry := &models.ReferredUser{
			ID:          ref.ReferredUserID,
			BonusAmount: ref.BonusAmount,
			JoinedAt:    ref.CreatedAt,
		}
		if u, err := s.users.GetByID(ctx, ref.ReferredUserID); err == nil {
			entry.FirstName = u.FirstName
			entry.Username = u.Username
		}
		users = append(users, entry)
	}
	return users, nil
}

// CreditBonus pays the referrer their percentage of an investment made by a
// user they referred. A user with no referrer is a no-op.
func (s *referralService) CreditBonus(ctx context.Context, referredUser *usermodels.User, investedAmount float64) error {
	if referredUser.ReferredBy == "" || investedAmount <= 0 {
		return nil
	}

	bonus := investedAmount * BonusPercentage / 100

	referrer, err := s.users.GetByID(ctx, referredUser.ReferredBy)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return nil
		}
		return err
	}

	referrer.ReferralEarnings += bonus
	referrer.AvailableBalance += bonus
	referrer.TotalEarned += bonus
	if err := s.users.Update(ctx, referrer); err != nil {
		return err
	}

	return s.referrals.AddBonus(ctx, referredUser.ID.Hex(), bonus)
}
