package models

import "time"

const (
	TierFree    = "free"
	TierBasic   = "basic"
	TierPremium = "premium"
)

// Subscription is the single subscription row per parent account. It is
// upserted by the payment reconciler; the unique user index is the
// idempotency key for subscription activation.
type Subscription struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:ux_subscriptions_user" json:"user_id"`
	Tier        string     `gorm:"type:varchar(20);not null;default:'free';index" json:"tier"`
	ValidUntil  *time.Time `gorm:"type:timestamp;default:null;index" json:"valid_until,omitempty"`
	LastOrderID string     `gorm:"type:varchar(64);default:''" json:"last_order_id"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsActive reports whether the subscription entitles the user right now.
func (s *Subscription) IsActive(now time.Time) bool {
	return s.Tier != TierFree && s.ValidUntil != nil && s.ValidUntil.After(now)
}
