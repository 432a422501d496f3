package service

import (
	"errors"
	"time"

	"criavo/internal/domain"
	"criavo/internal/models"
	"criavo/internal/repository"

	"gorm.io/gorm"
)

// SalesService records attributed orders and redeems coupons against them.
type SalesService struct {
	saleRepo   *repository.SaleRepository
	couponRepo *repository.CouponRepository
	events     SalePublisher
}

// SalePublisher receives tracked sales for the live feed. May be nil.
type SalePublisher interface {
	PublishSale(companyID uint, sale *models.Sale)
}

func NewSalesService(saleRepo *repository.SaleRepository, couponRepo *repository.CouponRepository, events SalePublisher) *SalesService {
	return &SalesService{saleRepo: saleRepo, couponRepo: couponRepo, events: events}
}

// RecordSale stores one attributed order. When a coupon code is present it is
// redeemed first; a coupon past its max uses rejects the whole sale.
// A replayed order id is returned as the already-stored sale, not an error.
func (s *SalesService) RecordSale(sale *models.Sale) (*models.Sale, error) {
	if sale.OrderValueCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if sale.Platform == "" {
		sale.Platform = "manual"
	}
	if existing, err := s.saleRepo.GetByOrderID(sale.CompanyID, sale.Platform, sale.OrderID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if sale.CouponCode != "" {
		coupon, err := s.couponRepo.Redeem(sale.CompanyID, sale.CouponCode)
		if err != nil {
			return nil, err
		}
		if sale.CampaignID == nil && coupon.CampaignID != 0 {
			campaignID := coupon.CampaignID
			sale.CampaignID = &campaignID
		}
		if coupon.CreatorID != nil && sale.CreatorID == 0 {
			sale.CreatorID = *coupon.CreatorID
		}
	}
	if sale.Status == "" {
		sale.Status = domain.SaleStatusPending
	}
	if sale.TrackedAt.IsZero() {
		sale.TrackedAt = time.Now()
	}
	if err := s.saleRepo.Create(sale); err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.PublishSale(sale.CompanyID, sale)
	}
	return sale, nil
}

func (s *SalesService) ListSales(companyID uint, limit int) ([]models.Sale, error) {
	return s.saleRepo.ListByCompany(companyID, limit)
}

// Summary is the sales read model: grouped by creator, campaign and day.
type Summary struct {
	ByCreator  []repository.CreatorSalesRow  `json:"by_creator"`
	ByCampaign []repository.CampaignSalesRow `json:"by_campaign"`
	ByDate     []repository.DailySalesRow    `json:"by_date"`
}

func (s *SalesService) Summarize(companyID uint, days int) (*Summary, error) {
	byCreator, err := s.saleRepo.SummaryByCreator(companyID)
	if err != nil {
		return nil, err
	}
	byCampaign, err := s.saleRepo.SummaryByCampaign(companyID)
	if err != nil {
		return nil, err
	}
	byDate, err := s.saleRepo.SummaryByDate(companyID, days)
	if err != nil {
		return nil, err
	}
	return &Summary{ByCreator: byCreator, ByCampaign: byCampaign, ByDate: byDate}, nil
}
