package models

import (
	"time"

	"gorm.io/gorm"
)

// WalletTransaction is an append-only ledger entry. At least one of
// CompanyWalletID / CreatorBalanceID is set; a pay-creator transfer writes a
// paired debit+credit sharing a TransferRef. Once status reaches completed,
// failed or cancelled the row never changes again; before that only status
// and ProcessedAt may be stamped.
type WalletTransaction struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	CompanyWalletID   *uint          `gorm:"index" json:"company_wallet_id"`
	CreatorBalanceID  *uint          `gorm:"index" json:"creator_balance_id"`
	Seq               int64          `gorm:"not null;default:0;index" json:"seq"` // monotonic per wallet side
	Type              string         `gorm:"size:30;not null;index" json:"type"`
	AmountCents       int64          `gorm:"not null" json:"amount_cents"` // positive = credit, negative = debit
	BalanceAfter      int64          `gorm:"not null;default:0" json:"balance_after"`
	Description       string         `gorm:"size:255" json:"description"`
	Status            string         `gorm:"size:20;not null;index" json:"status"`
	TransferRef       string         `gorm:"size:64;index" json:"transfer_ref"` // pairs the two legs of a transfer
	ProviderRef       string         `gorm:"size:128;index" json:"provider_ref"`
	RelatedUserID     *uint          `gorm:"index" json:"related_user_id"`
	RelatedCampaignID *uint          `gorm:"index" json:"related_campaign_id"`
	WalletBoxID       *uint          `gorm:"index" json:"wallet_box_id"`
	ScheduledFor      *time.Time     `json:"scheduled_for"`
	ProcessedAt       *time.Time     `json:"processed_at"`
	CreatedAt         time.Time      `json:"created_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WalletTransaction) TableName() string { return "wallet_transactions" }
