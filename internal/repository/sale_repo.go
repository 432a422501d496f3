package repository

import (
	"time"

	"criavo/internal/models"

	"gorm.io/gorm"
)

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) Create(s *models.Sale) error {
	return r.db.Create(s).Error
}

func (r *SaleRepository) GetByOrderID(companyID uint, platform, orderID string) (*models.Sale, error) {
	var s models.Sale
	err := r.db.Where("company_id = ? AND platform = ? AND order_id = ?", companyID, platform, orderID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepository) ListByCompany(companyID uint, limit int) ([]models.Sale, error) {
	var sales []models.Sale
	q := r.db.Where("company_id = ?", companyID).Order("tracked_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// CreatorSalesRow is one line of the by-creator read model.
type CreatorSalesRow struct {
	CreatorID       uint   `json:"creator_id"`
	CreatorName     string `json:"creator_name"`
	Orders          int64  `json:"orders"`
	RevenueCents    int64  `json:"revenue_cents"`
	CommissionCents int64  `json:"commission_cents"`
}

// CampaignSalesRow is one line of the by-campaign read model.
type CampaignSalesRow struct {
	CampaignID   uint   `json:"campaign_id"`
	CampaignName string `json:"campaign_name"`
	Orders       int64  `json:"orders"`
	RevenueCents int64  `json:"revenue_cents"`
}

// DailySalesRow is one line of the by-date read model.
type DailySalesRow struct {
	Day          string `json:"day"` // YYYY-MM-DD
	Orders       int64  `json:"orders"`
	RevenueCents int64  `json:"revenue_cents"`
}

// SummaryByCreator groups confirmed+pending sales per creator. This is the
// read model the dashboard consumes; it is computed here by query, never
// re-aggregated client side.
func (r *SaleRepository) SummaryByCreator(companyID uint) ([]CreatorSalesRow, error) {
	var rows []CreatorSalesRow
	err := r.db.Model(&models.Sale{}).
		Select("sales.creator_id, users.name AS creator_name, COUNT(*) AS orders, SUM(sales.order_value_cents) AS revenue_cents, COALESCE(SUM(sales.commission_cents), 0) AS commission_cents").
		Joins("LEFT JOIN users ON users.id = sales.creator_id").
		Where("sales.company_id = ? AND sales.status <> ?", companyID, "refunded").
		Group("sales.creator_id, users.name").
		Order("revenue_cents DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *SaleRepository) SummaryByCampaign(companyID uint) ([]CampaignSalesRow, error) {
	var rows []CampaignSalesRow
	err := r.db.Model(&models.Sale{}).
		Select("sales.campaign_id, campaigns.name AS campaign_name, COUNT(*) AS orders, SUM(sales.order_value_cents) AS revenue_cents").
		Joins("LEFT JOIN campaigns ON campaigns.id = sales.campaign_id").
		Where("sales.company_id = ? AND sales.campaign_id IS NOT NULL AND sales.status <> ?", companyID, "refunded").
		Group("sales.campaign_id, campaigns.name").
		Order("revenue_cents DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *SaleRepository) SummaryByDate(companyID uint, days int) ([]DailySalesRow, error) {
	var rows []DailySalesRow
	q := r.db.Model(&models.Sale{}).
		Select("DATE(tracked_at) AS day, COUNT(*) AS orders, SUM(order_value_cents) AS revenue_cents").
		Where("company_id = ? AND status <> ?", companyID, "refunded").
		Group("DATE(tracked_at)").
		Order("day ASC")
	if days > 0 {
		cutoff := time.Now().AddDate(0, 0, -days).Truncate(24 * time.Hour)
		q = q.Where("tracked_at >= ?", cutoff)
	}
	err := q.Scan(&rows).Error
	return rows, err
}
