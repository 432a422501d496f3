package service_test

import (
	"testing"

	"criavo/internal/domain"
	"criavo/internal/models"
	"criavo/internal/repository"
	"criavo/internal/service"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection: each :memory: connection is its own database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Campaign{},
		&models.Wallet{},
		&models.CreatorBalance{},
		&models.WalletTransaction{},
		&models.WalletBox{},
		&models.CreatorReward{},
		&models.RewardEvent{},
		&models.Coupon{},
		&models.Sale{},
		&models.Withdrawal{},
	))
	return db
}

// fixture bundles the repos and services most tests need against one DB.
type fixture struct {
	db          *gorm.DB
	walletRepo  *repository.WalletRepository
	txRepo      *repository.TransactionRepository
	boxRepo     *repository.BoxRepository
	creatorRepo *repository.CreatorBalanceRepository
	locks       *service.WalletLocks

	ledger  *service.LedgerService
	billing *service.BillingService
	boxes   *service.BoxService
}

func newFixture(t *testing.T) *fixture {
	db := newTestDB(t)
	f := &fixture{
		db:          db,
		walletRepo:  repository.NewWalletRepository(db),
		txRepo:      repository.NewTransactionRepository(db),
		boxRepo:     repository.NewBoxRepository(db),
		creatorRepo: repository.NewCreatorBalanceRepository(db),
		locks:       service.NewWalletLocks(),
	}
	f.ledger = service.NewLedgerService(f.walletRepo, f.txRepo, f.locks, nil)
	f.billing = service.NewBillingService(f.walletRepo, f.txRepo)
	f.boxes = service.NewBoxService(f.boxRepo, f.walletRepo, f.locks)
	return f
}

// company + wallet + one creator, the minimal cast for ledger tests.
func (f *fixture) seedCompanyAndCreator(t *testing.T) (*models.Wallet, *models.User) {
	company := models.Company{Name: "Acme Cosmetics"}
	require.NoError(t, f.db.Create(&company).Error)

	wallet := models.Wallet{CompanyID: company.ID, Currency: domain.DefaultCurrency}
	require.NoError(t, f.db.Create(&wallet).Error)

	creator := models.User{
		Name:  "Joana Lima",
		Email: "joana@example.com",
		Role:  domain.RoleCreator,
	}
	require.NoError(t, f.db.Create(&creator).Error)
	return &wallet, &creator
}
