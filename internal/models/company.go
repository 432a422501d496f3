package models

import (
	"time"

	"gorm.io/gorm"
)

// Company is a brand account. Its money lives in a Wallet created at onboarding.
type Company struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:160;not null" json:"name"`
	Document  *string        `gorm:"size:20;uniqueIndex" json:"document"` // CNPJ, unset until collected
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Wallet *Wallet `gorm:"foreignKey:CompanyID" json:"wallet,omitempty"`
}

func (Company) TableName() string { return "companies" }
