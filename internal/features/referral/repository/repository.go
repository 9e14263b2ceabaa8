package repository

import (
	"context"
	"errors"

	"investment-bot-backend/internal/features/referral/models"
)

var ErrAlreadyReferred = errors.New("user is already referred")

type ReferralRepository interface {
	Create(ctx context.Context, referral *models.Referral) error
	ListByReferrer(ctx context.Context, referrerID string) ([]*models.Referral, error)
	StatsByReferrer(ctx context.Context, referrerID string) (*models.Stats, error)
	AddBonus(ctx context.Context, referredUserID string, amount float64) error
}
