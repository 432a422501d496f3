package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon is a discount code that attributes sales to a creator/campaign.
// Code is unique per company. CurrentUses never exceeds MaxUses when set.
type Coupon struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CompanyID     uint           `gorm:"not null;uniqueIndex:idx_coupons_company_code" json:"company_id"`
	CampaignID    uint           `gorm:"not null;index" json:"campaign_id"`
	CreatorID     *uint          `gorm:"index" json:"creator_id"`
	Code          string         `gorm:"size:40;not null;uniqueIndex:idx_coupons_company_code" json:"code"`
	DiscountType  string         `gorm:"size:12;not null" json:"discount_type"` // percentage | fixed
	DiscountValue int64          `gorm:"not null" json:"discount_value"`        // percent points or centavos
	MaxUses       *int           `json:"max_uses"`
	CurrentUses   int            `gorm:"not null;default:0" json:"current_uses"`
	ExpiresAt     *time.Time     `json:"expires_at"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Coupon) TableName() string { return "coupons" }
