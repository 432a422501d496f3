package models

import (
	"time"

	"gorm.io/gorm"
)

// WalletBox is a named sub-allocation ("caixinha") of a wallet's funds.
// Boxes partition the balance, they don't hold money of their own: the sum of
// active boxes' CurrentCents never exceeds the parent wallet's balance.
// Boxes are deactivated when no longer used, never deleted.
type WalletBox struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CompanyWalletID uint           `gorm:"not null;index" json:"company_wallet_id"`
	Name            string         `gorm:"size:80;not null" json:"name"`
	Description     string         `gorm:"size:255" json:"description"`
	Color           string         `gorm:"size:20" json:"color"`
	Icon            string         `gorm:"size:40" json:"icon"`
	TargetCents     *int64         `json:"target_cents"`
	CurrentCents    int64          `gorm:"not null;default:0" json:"current_cents"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Wallet Wallet `gorm:"foreignKey:CompanyWalletID" json:"-"`
}

func (WalletBox) TableName() string { return "wallet_boxes" }

// Progress returns CurrentCents/TargetCents clamped to [0,1], or 0 when no
// target is set.
func (b *WalletBox) Progress() float64 {
	if b.TargetCents == nil || *b.TargetCents <= 0 {
		return 0
	}
	p := float64(b.CurrentCents) / float64(*b.TargetCents)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
