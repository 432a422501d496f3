package repository

import (
	"errors"
	"strings"
	"time"

	"criavo/internal/domain"
	"criavo/internal/models"

	"gorm.io/gorm"
)

type CouponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) Create(c *models.Coupon) error {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	var existing models.Coupon
	err := r.db.Where("company_id = ? AND code = ?", c.CompanyID, c.Code).First(&existing).Error
	if err == nil {
		return domain.ErrDuplicateCoupon
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(c).Error
}

func (r *CouponRepository) GetByID(id uint) (*models.Coupon, error) {
	var c models.Coupon
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepository) GetByCode(companyID uint, code string) (*models.Coupon, error) {
	var c models.Coupon
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := r.db.Where("company_id = ? AND code = ?", companyID, code).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepository) ListByCompany(companyID uint) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.db.Where("company_id = ?", companyID).Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *CouponRepository) SetActive(id, companyID uint, active bool) (*models.Coupon, error) {
	var c models.Coupon
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", companyID).First(&c, id).Error; err != nil {
			return err
		}
		c.IsActive = active
		return tx.Model(&c).Update("is_active", active).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Redeem increments current_uses, enforcing max_uses and expiry atomically.
func (r *CouponRepository) Redeem(companyID uint, code string) (*models.Coupon, error) {
	var c models.Coupon
	code = strings.ToUpper(strings.TrimSpace(code))
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ? AND code = ?", companyID, code).First(&c).Error; err != nil {
			return err
		}
		if !c.IsActive {
			return domain.ErrInvalidTransition
		}
		if c.ExpiresAt != nil && c.ExpiresAt.Before(time.Now()) {
			return domain.ErrInvalidTransition
		}
		if c.MaxUses != nil && c.CurrentUses >= *c.MaxUses {
			return domain.ErrMaxUsesExceeded
		}
		c.CurrentUses++
		return tx.Model(&c).Update("current_uses", c.CurrentUses).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}
