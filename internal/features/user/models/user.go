package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the persistent account record. TelegramID is the sole
// authentication anchor; WalletAddress and ReferralCode are unique and
// immutable once assigned; monetary counters never go negative.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	TelegramID       int64              `bson:"telegramId"`
	Username         string             `bson:"username,omitempty"`
	FirstName        string             `bson:"firstName"`
	LastName         string             `bson:"lastName,omitempty"`
	Email            string             `bson:"email,omitempty"`
	WalletAddress    string             `bson:"walletAddress"`
	ReferralCode     string             `bson:"referralCode"`
	ReferredBy       string             `bson:"referredBy,omitempty"`
	TotalInvested    float64            `bson:"totalInvested"`
	TotalEarned      float64            `bson:"totalEarned"`
	AvailableBalance float64            `bson:"availableBalance"`
	ReferralEarnings float64            `bson:"referralEarnings"`
	IsActive         bool               `bson:"isActive"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

// UserResponse is the public shape of an account. The identifier is exposed
// as "id", never as the storage key.
type UserResponse struct {
	ID               string    `json:"id"`
	TelegramID       int64     `json:"telegramId"`
	Username         string    `json:"username,omitempty"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName,omitempty"`
	Email            string    `json:"email,omitempty"`
	WalletAddress    string    `json:"walletAddress"`
	ReferralCode     string    `json:"referralCode"`
	ReferredBy       string    `json:"referredBy,omitempty"`
	TotalInvested    float64   `json:"totalInvested"`
	TotalEarned      float64   `json:"totalEarned"`
	AvailableBalance float64   `json:"availableBalance"`
	ReferralEarnings float64   `json:"referralEarnings"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ToResponse converts the stored document to its public shape.
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:               u.ID.Hex(),
		TelegramID:       u.TelegramID,
		Username:         u.Username,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            u.Email,
		WalletAddress:    u.WalletAddress,
		ReferralCode:     u.ReferralCode,
		ReferredBy:       u.ReferredBy,
		TotalInvested:    u.TotalInvested,
		TotalEarned:      u.TotalEarned,
		AvailableBalance: u.AvailableBalance,
		ReferralEarnings: u.ReferralEarnings,
		IsActive:         u.IsActive,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

// ProfileUpdate carries the fields a user may edit themselves.
type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}
