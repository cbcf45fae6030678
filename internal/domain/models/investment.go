// internal/domain/models/investment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Investment statuses.
const (
	InvestmentActive    = "active"
	InvestmentCompleted = "completed"
	InvestmentPending   = "pending"
)

// IsValidInvestmentStatus reports whether s is a known investment status.
func IsValidInvestmentStatus(s string) bool {
	return s == InvestmentActive || s == InvestmentCompleted || s == InvestmentPending
}

// Investment is a group investment position attributed to one member.
type Investment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name       string             `bson:"name" json:"name"`
	Amount     float64            `bson:"amount" json:"amount"`
	ReturnRate float64            `bson:"return_rate" json:"return_rate"`
	StartDate  time.Time          `bson:"start_date" json:"start_date"`
	EndDate    *time.Time         `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Status     string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
