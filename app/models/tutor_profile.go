package models

import (
	"time"

	"gorm.io/gorm"
)

// TutorProfile holds the marketplace-facing data of a tutor account.
type TutorProfile struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	Headline    string         `gorm:"type:varchar(200);default:''" json:"headline"`
	Bio         string         `gorm:"type:text" json:"bio"`
	Subjects    string         `gorm:"type:varchar(255);default:'';index" json:"subjects"` // comma separated, e.g. "math,physics"
	HourlyRate  int64          `gorm:"not null;default:0" json:"hourly_rate"`              // minor currency units per session hour
	IsListed    bool           `gorm:"default:false;index" json:"is_listed"`
	RatingSum   int64          `gorm:"default:0" json:"-"`
	RatingCount int64          `gorm:"default:0" json:"rating_count"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// AverageRating returns the mean rating or 0 when unrated.
func (t *TutorProfile) AverageRating() float64 {
	if t.RatingCount == 0 {
		return 0
	}
	return float64(t.RatingSum) / float64(t.RatingCount)
}
