package models

import (
	"time"

	"gorm.io/gorm"
)

// Withdrawal is a creator cashing out their balance via PIX transfer.
type Withdrawal struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	OrderID     string         `gorm:"size:64;uniqueIndex;not null" json:"order_id"`
	AmountCents int64          `gorm:"not null" json:"amount_cents"`
	PixKey      string         `gorm:"size:140;not null" json:"pix_key"`
	Status      string         `gorm:"size:20;not null;index" json:"status"` // pending, completed, failed
	ProviderRef string         `gorm:"size:128" json:"provider_ref"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	CompletedAt *time.Time     `json:"completed_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Withdrawal) TableName() string { return "withdrawals" }
