package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Referral links a referred account to the inviting one. A user can be
// referred at most once; referrer and referred are never the same account.
type Referral struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ReferrerID     string             `bson:"referrerId"`
	ReferredUserID string             `bson:"referredUserId"`
	BonusAmount    float64            `bson:"bonusAmount"`
	IsActive       bool               `bson:"isActive"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

// Stats is the aggregate a referrer sees on their referral page.
type Stats struct {
	TotalReferrals   int64   `json:"totalReferrals" bson:"totalReferrals"`
	TotalBonusEarned float64 `json:"totalBonusEarned" bson:"totalBonusEarned"`
}

// ReferredUser is the public projection of a referred account.
type ReferredUser struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	Username    string    `json:"username,omitempty"`
	BonusAmount float64   `json:"bonusAmount"`
	JoinedAt    time.Time `json:"joinedAt"`
}
