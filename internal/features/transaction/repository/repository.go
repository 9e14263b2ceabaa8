package repository

import (
	"context"

	"investment-bot-backend/internal/features/transaction/models"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	ListByUser(ctx context.Context, userID string, page, limit int64) ([]*models.Transaction, int64, error)
}
