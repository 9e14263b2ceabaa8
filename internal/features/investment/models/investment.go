package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plan is a fixed-rate investment offer. Returns are evaluated once at
// investment creation time; nothing accrues dynamically.
type Plan struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	MinAmount        float64  `json:"minAmount"`
	MaxAmount        float64  `json:"maxAmount"`
	Duration         int      `json:"duration"`
	ProfitPercentage float64  `json:"profitPercentage"`
	TotalReturn      float64  `json:"totalReturn"`
	RiskLevel        string   `json:"riskLevel"`
	IsActive         bool     `json:"isActive"`
	Features         []string `json:"features"`
}

// Investment is a user's stake in a plan.
type Investment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"userId"`
	PlanID       string             `bson:"planId"`
	Amount       float64            `bson:"amount"`
	InterestRate float64            `bson:"interestRate"`
	TotalReturn  float64            `bson:"totalReturn"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"createdAt"`
	EndsAt       time.Time          `bson:"endsAt"`
}

type InvestmentResponse struct {
	ID           string    `json:"id"`
	PlanID       string    `json:"planId"`
	Amount       float64   `json:"amount"`
	InterestRate float64   `json:"interestRate"`
	TotalReturn  float64   `json:"totalReturn"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	EndsAt       time.Time `json:"endsAt"`
}

func (i *Investment) ToResponse() *InvestmentResponse {
	return &InvestmentResponse{
		ID:           i.ID.Hex(),
		PlanID:       i.PlanID,
		Amount:       i.Amount,
		InterestRate: i.InterestRate,
		TotalReturn:  i.TotalReturn,
		Status:       i.Status,
		CreatedAt:    i.CreatedAt,
		EndsAt:       i.EndsAt,
	}
}
