package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Booking is a single tutoring session. Multi-session purchases share a
// BatchID; payment confirms the whole batch at once.
type Booking struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	BatchID     string         `gorm:"type:varchar(64);not null;index" json:"batch_id"`
	ParentID    uint           `gorm:"not null;index" json:"parent_id"`
	ChildID     uint           `gorm:"not null;index" json:"child_id"`
	TutorID     uint           `gorm:"not null;index" json:"tutor_id"`
	Subject     string         `gorm:"type:varchar(100);not null" json:"subject"`
	StartsAt    time.Time      `gorm:"not null;index" json:"starts_at"`
	DurationMin int            `gorm:"not null;default:60" json:"duration_min"`
	Price       int64          `gorm:"not null" json:"price"` // minor currency units
	PlatformFee int64          `gorm:"not null;default:0" json:"platform_fee"`
	Status      string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ConfirmedAt *time.Time     `gorm:"type:timestamp;default:null" json:"confirmed_at,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsConfirmed reports whether the session has been paid for.
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}
