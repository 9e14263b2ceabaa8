package repository

import (
	"context"
	"errors"

	"investment-bot-backend/internal/features/user/models"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("user already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	GetByReferralCode(ctx context.Context, code string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ReferralCodeExists(ctx context.Context, code string) (bool, error)
	WalletAddressExists(ctx context.Context, address string) (bool, error)
}
