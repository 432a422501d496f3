package models

import (
	"time"

	"gorm.io/gorm"
)

// Campaign is the attribution anchor for payments, rewards, coupons and sales.
// Briefing, creator applications and content review live in other services.
type Campaign struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CompanyID uint           `gorm:"not null;index" json:"company_id"`
	Name      string         `gorm:"size:160;not null" json:"name"`
	Status    string         `gorm:"size:20;not null;default:'draft'" json:"status"` // draft, active, finished
	StartsAt  *time.Time     `json:"starts_at"`
	EndsAt    *time.Time     `json:"ends_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (Campaign) TableName() string { return "campaigns" }
