package models

import (
	"time"

	"criavo/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:120;not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // BRAND | CREATOR | ADMIN
	CompanyID    *uint          `gorm:"index" json:"company_id"`            // set for BRAND users
	PixKey       string         `gorm:"size:140" json:"pix_key"`            // CREATOR payout destination
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) IsBrand() bool   { return u.Role == domain.RoleBrand }
func (u *User) IsCreator() bool { return u.Role == domain.RoleCreator }
