package repository

import (
	"errors"
	"time"

	"criavo/internal/domain"
	"criavo/internal/models"

	"gorm.io/gorm"
)

type CreatorBalanceRepository struct {
	db *gorm.DB
}

func NewCreatorBalanceRepository(db *gorm.DB) *CreatorBalanceRepository {
	return &CreatorBalanceRepository{db: db}
}

func (r *CreatorBalanceRepository) GetByUserID(userID uint) (*models.CreatorBalance, error) {
	var cb models.CreatorBalance
	if err := r.db.Where("user_id = ?", userID).First(&cb).Error; err != nil {
		return nil, err
	}
	return &cb, nil
}

func (r *CreatorBalanceRepository) GetOrCreate(userID uint) (*models.CreatorBalance, error) {
	cb, err := r.GetByUserID(userID)
	if err == nil {
		return cb, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cb = &models.CreatorBalance{UserID: userID, Currency: domain.DefaultCurrency}
	if err := r.db.Create(cb).Error; err != nil {
		return nil, err
	}
	return cb, nil
}

// CreatorWithBalance joins creator users with their balances for the brand's
// pay-creator picker.
type CreatorWithBalance struct {
	UserID        uint   `json:"user_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	BalanceCents  int64  `json:"balance_cents"`
	LifetimeCents int64  `json:"lifetime_cents"`
}

func (r *CreatorBalanceRepository) ListWithBalances() ([]CreatorWithBalance, error) {
	var rows []CreatorWithBalance
	err := r.db.Model(&models.User{}).
		Select("users.id AS user_id, users.name, users.email, COALESCE(cb.balance_cents, 0) AS balance_cents, COALESCE(cb.lifetime_cents, 0) AS lifetime_cents").
		Joins("LEFT JOIN creator_balances cb ON cb.user_id = users.id").
		Where("users.role = ?", domain.RoleCreator).
		Order("users.name ASC").
		Scan(&rows).Error
	return rows, err
}

// Debit removes withdrawn funds from the creator balance and appends the
// withdrawal ledger row in one DB transaction.
func (r *CreatorBalanceRepository) Debit(userID uint, amountCents int64, description, providerRef string) (*models.WalletTransaction, error) {
	var entry models.WalletTransaction
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var cb models.CreatorBalance
		if err := tx.Where("user_id = ?", userID).First(&cb).Error; err != nil {
			return err
		}
		newBalance := cb.BalanceCents - amountCents
		if newBalance < 0 {
			return domain.ErrInsufficientFunds
		}
		if err := tx.Model(&cb).Update("balance_cents", newBalance).Error; err != nil {
			return err
		}
		seq, err := nextSeq(tx, "creator_balance_id", cb.ID)
		if err != nil {
			return err
		}
		entry = models.WalletTransaction{
			CreatorBalanceID: &cb.ID,
			Seq:              seq,
			Type:             domain.TxTypeWithdrawal,
			AmountCents:      -amountCents,
			BalanceAfter:     newBalance,
			Description:      description,
			Status:           domain.TxStatusProcessing, // terminal once the PSP confirms
			ProviderRef:      providerRef,
			RelatedUserID:    &userID,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Refund returns funds after a failed withdrawal.
func (r *CreatorBalanceRepository) Refund(userID uint, amountCents int64, description string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var cb models.CreatorBalance
		if err := tx.Where("user_id = ?", userID).First(&cb).Error; err != nil {
			return err
		}
		newBalance := cb.BalanceCents + amountCents
		if err := tx.Model(&cb).Update("balance_cents", newBalance).Error; err != nil {
			return err
		}
		seq, err := nextSeq(tx, "creator_balance_id", cb.ID)
		if err != nil {
			return err
		}
		now := time.Now()
		entry := models.WalletTransaction{
			CreatorBalanceID: &cb.ID,
			Seq:              seq,
			Type:             domain.TxTypeRefund,
			AmountCents:      amountCents,
			BalanceAfter:     newBalance,
			Description:      description,
			Status:           domain.TxStatusCompleted,
			RelatedUserID:    &userID,
			ProcessedAt:      &now,
		}
		return tx.Create(&entry).Error
	})
}
