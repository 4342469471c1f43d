package models

import (
	"time"

	"gorm.io/gorm"
)

// ChildProfile is a learner account owned by a parent. Children never log in
// themselves; bookings are always made by the owning parent.
type ChildProfile struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ParentID  uint           `gorm:"not null;index" json:"parent_id"`
	Name      string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	BirthYear int            `gorm:"default:0" json:"birth_year"`
	Grade     string         `gorm:"type:varchar(50);default:''" json:"grade"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Parent *User `gorm:"foreignKey:ParentID" json:"-"`
}
