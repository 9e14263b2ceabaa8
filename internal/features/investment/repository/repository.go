package repository

import (
	"context"

	"investment-bot-backend/internal/features/investment/models"
)

type InvestmentRepository interface {
	Create(ctx context.Context, investment *models.Investment) error
	ListByUser(ctx context.Context, userID string) ([]*models.Investment, error)
	CountActiveByUser(ctx context.Context, userID string) (int64, error)
}
