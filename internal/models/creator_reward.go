package models

import (
	"time"

	"gorm.io/gorm"
)

// CreatorReward is a payout owed to a creator for a ranking place, milestone
// or bonus. Eligibility is decided by an external scorer; this service owns
// the review/payout lifecycle.
type CreatorReward struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CampaignID      uint           `gorm:"not null;index" json:"campaign_id"`
	CompanyID       uint           `gorm:"not null;index" json:"company_id"`
	CreatorID       uint           `gorm:"not null;index" json:"creator_id"`
	Type            string         `gorm:"size:20;not null" json:"type"`        // ranking_place, milestone, bonus
	RewardType      string         `gorm:"size:20;not null" json:"reward_type"` // cash, product, voucher, custom
	ValueCents      *int64         `json:"value_cents"`
	Description     string         `gorm:"size:255" json:"description"`
	Status          string         `gorm:"size:20;not null;index;default:'pending'" json:"status"`
	RankPosition    *int           `json:"rank_position"`
	PointsThreshold *int           `json:"points_threshold"`
	TrackingInfo    string         `gorm:"size:255" json:"tracking_info"` // set on product_shipped
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Campaign Campaign `gorm:"foreignKey:CampaignID" json:"-"`
	Creator  User     `gorm:"foreignKey:CreatorID" json:"-"`
}

func (CreatorReward) TableName() string { return "creator_rewards" }

// RewardEvent is the audit trail of reward state transitions. It is separate
// from the wallet ledger: transitions are not financial transactions, except
// the cash payout which also writes ledger rows.
type RewardEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RewardID   uint      `gorm:"not null;index" json:"reward_id"`
	FromStatus string    `gorm:"size:20;not null" json:"from_status"`
	ToStatus   string    `gorm:"size:20;not null" json:"to_status"`
	ActorID    uint      `gorm:"index" json:"actor_id"`
	Note       string    `gorm:"size:255" json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

func (RewardEvent) TableName() string { return "reward_events" }
