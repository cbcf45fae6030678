// internal/domain/models/contribution.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contribution types.
const (
	ContributionMonthly    = "monthly"
	ContributionJoiningFee = "joining_fee"
)

// IsValidContributionType reports whether t is a known contribution type.
func IsValidContributionType(t string) bool {
	return t == ContributionMonthly || t == ContributionJoiningFee
}

// Contribution is one ledger row. Uniqueness is enforced by partial unique
// indexes: at most one monthly row per (user, month) and at most one
// joining-fee row per user, ever.
type Contribution struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Amount float64            `bson:"amount" json:"amount"`
	Date   time.Time          `bson:"date" json:"date"`
	Month  string             `bson:"month" json:"month"` // "YYYY-MM"
	Type   string             `bson:"type" json:"type"`   // monthly | joining_fee
	Notes  string             `bson:"notes,omitempty" json:"notes,omitempty"`

	// AddedBy records the admin/treasurer who entered the row.
	AddedBy   primitive.ObjectID `bson:"added_by" json:"added_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"` // immutable
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// UserContributionSummary is the per-member rollup served by the ledger.
// ContributionCount counts only monthly rows.
type UserContributionSummary struct {
	TotalContributed     float64 `bson:"total_contributed" json:"total_contributed"`
	MonthlyContributions float64 `bson:"monthly_contributions" json:"monthly_contributions"`
	JoiningFee           float64 `bson:"joining_fee" json:"joining_fee"`
	HasJoiningFee        bool    `bson:"has_joining_fee" json:"has_joining_fee"`
	ContributionCount    int64   `bson:"contribution_count" json:"contribution_count"`
}

// OverallContributionSummary is the group-wide rollup.
type OverallContributionSummary struct {
	TotalContributed      float64 `bson:"total_contributed" json:"total_contributed"`
	MonthlyContributions  float64 `bson:"monthly_contributions" json:"monthly_contributions"`
	JoiningFees           float64 `bson:"joining_fees" json:"joining_fees"`
	UniqueMembers         int64   `bson:"unique_members" json:"unique_members"`
	MembersWithJoiningFee int64   `bson:"members_with_joining_fee" json:"members_with_joining_fee"`
}
