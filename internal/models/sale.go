package models

import (
	"time"

	"gorm.io/gorm"
)

// Sale is an order attributed to a creator, either tracked automatically from
// a store platform or entered manually by the brand. OrderID is unique per
// company+platform so replayed webhooks don't double-count.
type Sale struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CompanyID       uint           `gorm:"not null;uniqueIndex:idx_sales_company_platform_order" json:"company_id"`
	CampaignID      *uint          `gorm:"index" json:"campaign_id"`
	CreatorID       uint           `gorm:"not null;index" json:"creator_id"`
	CouponCode      string         `gorm:"size:40;index" json:"coupon_code"`
	OrderID         string         `gorm:"size:64;not null;uniqueIndex:idx_sales_company_platform_order" json:"order_id"`
	Platform        string         `gorm:"size:30;not null;uniqueIndex:idx_sales_company_platform_order" json:"platform"`
	OrderValueCents int64          `gorm:"not null" json:"order_value_cents"`
	CommissionCents *int64         `json:"commission_cents"`
	Status          string         `gorm:"size:20;not null;index;default:'pending'" json:"status"`
	TrackedAt       time.Time      `json:"tracked_at"`
	CreatedAt       time.Time      `json:"created_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Sale) TableName() string { return "sales" }
