package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet holds a company's funds in integer centavos. Mutated only through
// the ledger service; soft-archived on company closure, never hard-deleted.
//
// Invariants after any committed transaction:
//   - BalanceCents >= 0
//   - ReservedCents <= BalanceCents
type Wallet struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	CompanyID         uint           `gorm:"uniqueIndex;not null" json:"company_id"`
	BalanceCents      int64          `gorm:"not null;default:0" json:"balance_cents"`
	ReservedCents     int64          `gorm:"not null;default:0" json:"reserved_cents"`
	Currency          string         `gorm:"size:3;default:'BRL'" json:"currency"`
	BillingCycleStart *time.Time     `json:"billing_cycle_start"`
	BillingCycleEnd   *time.Time     `json:"billing_cycle_end"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (Wallet) TableName() string { return "company_wallets" }

// CreatorBalance accumulates funds owed to a creator across campaigns.
// Credited by pay-creator transfers, debited by withdrawals.
type CreatorBalance struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	BalanceCents  int64          `gorm:"not null;default:0" json:"balance_cents"`
	LifetimeCents int64          `gorm:"not null;default:0" json:"lifetime_cents"` // total ever earned
	Currency      string         `gorm:"size:3;default:'BRL'" json:"currency"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (CreatorBalance) TableName() string { return "creator_balances" }
