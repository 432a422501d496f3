package service_test

import (
	"testing"
	"time"

	"criavo/internal/domain"
	"criavo/internal/models"
	"criavo/internal/repository"
	"criavo/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSalesFixture(t *testing.T) (*fixture, *service.SalesService, *repository.CouponRepository, *models.Wallet, *models.User, *models.Campaign) {
	f := newFixture(t)
	wallet, creator := f.seedCompanyAndCreator(t)

	campaign := models.Campaign{CompanyID: wallet.CompanyID, Name: "Black Friday", Status: domain.CampaignActive}
	require.NoError(t, f.db.Create(&campaign).Error)

	couponRepo := repository.NewCouponRepository(f.db)
	sales := service.NewSalesService(repository.NewSaleRepository(f.db), couponRepo, nil)
	return f, sales, couponRepo, wallet, creator, &campaign
}

func TestRecordSale_CouponMaxUsesRejectsTheWholeSale(t *testing.T) {
	// GIVEN: CREATOR10 limited to 2 uses
	f, sales, couponRepo, wallet, creator, campaign := newSalesFixture(t)
	maxUses := 2
	require.NoError(t, couponRepo.Create(&models.Coupon{
		CompanyID:     wallet.CompanyID,
		CampaignID:    campaign.ID,
		CreatorID:     &creator.ID,
		Code:          "creator10",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 10,
		MaxUses:       &maxUses,
		IsActive:      true,
	}))

	record := func(orderID string) (*models.Sale, error) {
		return sales.RecordSale(&models.Sale{
			CompanyID:       wallet.CompanyID,
			CreatorID:       creator.ID,
			CouponCode:      "CREATOR10",
			OrderID:         orderID,
			Platform:        "shopify",
			OrderValueCents: 18900,
		})
	}

	// WHEN/THEN: two sales redeem, the third is rejected outright
	_, err := record("ord-1")
	require.NoError(t, err)
	_, err = record("ord-2")
	require.NoError(t, err)
	_, err = record("ord-3")
	assert.ErrorIs(t, err, domain.ErrMaxUsesExceeded)

	var count int64
	f.db.Model(&models.Sale{}).Count(&count)
	assert.Equal(t, int64(2), count)

	coupon, err := couponRepo.GetByCode(wallet.CompanyID, "CREATOR10")
	require.NoError(t, err)
	assert.Equal(t, 2, coupon.CurrentUses)
}

func TestRecordSale_CouponBackfillsAttribution(t *testing.T) {
	_, sales, couponRepo, wallet, creator, campaign := newSalesFixture(t)
	require.NoError(t, couponRepo.Create(&models.Coupon{
		CompanyID:     wallet.CompanyID,
		CampaignID:    campaign.ID,
		CreatorID:     &creator.ID,
		Code:          "JOANA15",
		DiscountType:  domain.DiscountFixed,
		DiscountValue: 1500,
		IsActive:      true,
	}))

	// The incoming webhook knows only the coupon code.
	sale, err := sales.RecordSale(&models.Sale{
		CompanyID:       wallet.CompanyID,
		CreatorID:       creator.ID,
		CouponCode:      "joana15",
		OrderID:         "ord-77",
		Platform:        "nuvemshop",
		OrderValueCents: 9900,
	})
	require.NoError(t, err)
	require.NotNil(t, sale.CampaignID)
	assert.Equal(t, campaign.ID, *sale.CampaignID)
	assert.Equal(t, domain.SaleStatusPending, sale.Status)
	assert.False(t, sale.TrackedAt.IsZero())
}

func TestRecordSale_ReplayedOrderIsIdempotent(t *testing.T) {
	f, sales, couponRepo, wallet, creator, campaign := newSalesFixture(t)
	require.NoError(t, couponRepo.Create(&models.Coupon{
		CompanyID:     wallet.CompanyID,
		CampaignID:    campaign.ID,
		Code:          "REPLAY5",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 5,
		IsActive:      true,
	}))

	first, err := sales.RecordSale(&models.Sale{
		CompanyID:       wallet.CompanyID,
		CreatorID:       creator.ID,
		CouponCode:      "REPLAY5",
		OrderID:         "ord-dup",
		Platform:        "shopify",
		OrderValueCents: 5000,
	})
	require.NoError(t, err)

	// Same order id replayed: the stored sale comes back, no second redemption.
	second, err := sales.RecordSale(&models.Sale{
		CompanyID:       wallet.CompanyID,
		CreatorID:       creator.ID,
		CouponCode:      "REPLAY5",
		OrderID:         "ord-dup",
		Platform:        "shopify",
		OrderValueCents: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	coupon, _ := couponRepo.GetByCode(wallet.CompanyID, "REPLAY5")
	assert.Equal(t, 1, coupon.CurrentUses)

	var count int64
	f.db.Model(&models.Sale{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRecordSale_InactiveOrExpiredCouponRejected(t *testing.T) {
	_, sales, couponRepo, wallet, creator, campaign := newSalesFixture(t)

	require.NoError(t, couponRepo.Create(&models.Coupon{
		CompanyID: wallet.CompanyID, CampaignID: campaign.ID, Code: "PAUSED",
		DiscountType: domain.DiscountPercentage, DiscountValue: 10, IsActive: false,
	}))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, couponRepo.Create(&models.Coupon{
		CompanyID: wallet.CompanyID, CampaignID: campaign.ID, Code: "EXPIRED",
		DiscountType: domain.DiscountPercentage, DiscountValue: 10, IsActive: true, ExpiresAt: &past,
	}))

	for _, code := range []string{"PAUSED", "EXPIRED"} {
		_, err := sales.RecordSale(&models.Sale{
			CompanyID:       wallet.CompanyID,
			CreatorID:       creator.ID,
			CouponCode:      code,
			OrderID:         "ord-" + code,
			Platform:        "shopify",
			OrderValueCents: 1000,
		})
		assert.Error(t, err, code)
	}
}

func TestDuplicateCouponCode_RejectedPerCompany(t *testing.T) {
	_, _, couponRepo, wallet, _, campaign := newSalesFixture(t)

	require.NoError(t, couponRepo.Create(&models.Coupon{
		CompanyID: wallet.CompanyID, CampaignID: campaign.ID, Code: "VERAO20",
		DiscountType: domain.DiscountPercentage, DiscountValue: 20, IsActive: true,
	}))
	// Codes are normalized before the uniqueness check.
	err := couponRepo.Create(&models.Coupon{
		CompanyID: wallet.CompanyID, CampaignID: campaign.ID, Code: " verao20 ",
		DiscountType: domain.DiscountPercentage, DiscountValue: 25, IsActive: true,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateCoupon)
}

func TestSummarize_GroupsByCreatorAndCampaign(t *testing.T) {
	f, sales, _, wallet, creator, campaign := newSalesFixture(t)

	other := models.User{Name: "Rafael Pinto", Email: "rafael@example.com", Role: domain.RoleCreator}
	require.NoError(t, f.db.Create(&other).Error)

	seed := []struct {
		creatorID uint
		orderID   string
		cents     int64
	}{
		{creator.ID, "s-1", 10000},
		{creator.ID, "s-2", 15000},
		{other.ID, "s-3", 7000},
	}
	for _, s := range seed {
		campaignID := campaign.ID
		_, err := sales.RecordSale(&models.Sale{
			CompanyID:       wallet.CompanyID,
			CampaignID:      &campaignID,
			CreatorID:       s.creatorID,
			OrderID:         s.orderID,
			Platform:        "shopify",
			OrderValueCents: s.cents,
		})
		require.NoError(t, err)
	}

	summary, err := sales.Summarize(wallet.CompanyID, 30)
	require.NoError(t, err)

	require.Len(t, summary.ByCreator, 2)
	totals := map[uint]int64{}
	for _, row := range summary.ByCreator {
		totals[row.CreatorID] = row.RevenueCents
	}
	assert.Equal(t, int64(25000), totals[creator.ID])
	assert.Equal(t, int64(7000), totals[other.ID])

	require.Len(t, summary.ByCampaign, 1)
	assert.Equal(t, int64(32000), summary.ByCampaign[0].RevenueCents)
	assert.Equal(t, int64(3), summary.ByCampaign[0].Orders)

	require.NotEmpty(t, summary.ByDate)
}
