package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction types recorded by the wallet and investment flows.
const (
	TypeDeposit       = "deposit"
	TypeWithdrawal    = "withdrawal"
	TypeInvestment    = "investment"
	TypeReferralBonus = "referral_bonus"
)

type Transaction struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Reference   string             `bson:"reference"`
	UserID      string             `bson:"userId"`
	Type        string             `bson:"type"`
	Amount      float64            `bson:"amount"`
	Fee         float64            `bson:"fee"`
	Status      string             `bson:"status"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

type TransactionResponse struct {
	ID          string    `json:"id"`
	Reference   string    `json:"reference"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Fee         float64   `json:"fee"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (t *Transaction) ToResponse() *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID.Hex(),
		Reference:   t.Reference,
		Type:        t.Type,
		Amount:      t.Amount,
		Fee:         t.Fee,
		Status:      t.Status,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

// Page is the paginated transaction listing shape.
type Page struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
	PageNum      int64                  `json:"page"`
	Limit        int64                  `json:"limit"`
	HasMore      bool                   `json:"hasMore"`
}
