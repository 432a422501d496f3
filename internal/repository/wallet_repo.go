package repository

import (
	"errors"
	"time"

	"criavo/internal/domain"
	"criavo/internal/models"

	"gorm.io/gorm"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) Create(w *models.Wallet) error {
	return r.db.Create(w).Error
}

func (r *WalletRepository) GetByID(id uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := r.db.First(&w, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) GetByCompanyID(companyID uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := r.db.Where("company_id = ?", companyID).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) GetOrCreateByCompanyID(companyID uint) (*models.Wallet, error) {
	w, err := r.GetByCompanyID(companyID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, domain.ErrWalletNotFound) {
		return nil, err
	}
	w = &models.Wallet{CompanyID: companyID, Currency: domain.DefaultCurrency}
	if err := r.db.Create(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

// Archive soft-deletes the wallet when a company closes. Ledger rows remain.
func (r *WalletRepository) Archive(walletID uint) error {
	return r.db.Delete(&models.Wallet{}, walletID).Error
}

func (r *WalletRepository) SetBillingCycle(walletID uint, start, end time.Time) error {
	return r.db.Model(&models.Wallet{}).Where("id = ?", walletID).
		Updates(map[string]interface{}{"billing_cycle_start": start, "billing_cycle_end": end}).Error
}

// nextSeq returns the next monotonic sequence number for one side of the
// ledger. Must run inside the caller's DB transaction, under the wallet lock.
func nextSeq(tx *gorm.DB, column string, id uint) (int64, error) {
	var max int64
	err := tx.Model(&models.WalletTransaction{}).
		Where(column+" = ?", id).
		Select("COALESCE(MAX(seq), 0)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// ApplyCompleted atomically applies a completed entry to the wallet balance
// and appends the ledger row with seq and balance_after stamped. The caller
// validates amounts and holds the per-wallet lock.
func (r *WalletRepository) ApplyCompleted(walletID uint, entry *models.WalletTransaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var w models.Wallet
		if err := tx.First(&w, walletID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrWalletNotFound
			}
			return err
		}
		newBalance := w.BalanceCents + entry.AmountCents
		if newBalance < 0 || newBalance < w.ReservedCents {
			return domain.ErrInsufficientFunds
		}
		if err := tx.Model(&w).Update("balance_cents", newBalance).Error; err != nil {
			return err
		}
		seq, err := nextSeq(tx, "company_wallet_id", walletID)
		if err != nil {
			return err
		}
		now := time.Now()
		entry.CompanyWalletID = &walletID
		entry.Seq = seq
		entry.BalanceAfter = newBalance
		entry.Status = domain.TxStatusCompleted
		entry.ProcessedAt = &now
		return tx.Create(entry).Error
	})
}

// AppendPending appends a pending entry without touching the materialized
// balance. Used for provider-initiated deposits awaiting confirmation.
func (r *WalletRepository) AppendPending(walletID uint, entry *models.WalletTransaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var w models.Wallet
		if err := tx.First(&w, walletID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrWalletNotFound
			}
			return err
		}
		seq, err := nextSeq(tx, "company_wallet_id", walletID)
		if err != nil {
			return err
		}
		entry.CompanyWalletID = &walletID
		entry.Seq = seq
		entry.BalanceAfter = w.BalanceCents // unchanged until the entry completes
		entry.Status = domain.TxStatusPending
		return tx.Create(entry).Error
	})
}

// CompletePending transitions a pending entry to completed and applies its
// amount to the balance in the same DB transaction.
func (r *WalletRepository) CompletePending(entryID uint) (*models.WalletTransaction, error) {
	var entry models.WalletTransaction
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, entryID).Error; err != nil {
			return err
		}
		if entry.Status != domain.TxStatusPending || entry.CompanyWalletID == nil {
			return domain.ErrInvalidTransition
		}
		var w models.Wallet
		if err := tx.First(&w, *entry.CompanyWalletID).Error; err != nil {
			return err
		}
		newBalance := w.BalanceCents + entry.AmountCents
		if newBalance < 0 || newBalance < w.ReservedCents {
			return domain.ErrInsufficientFunds
		}
		if err := tx.Model(&w).Update("balance_cents", newBalance).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&entry).Updates(map[string]interface{}{
			"status":        domain.TxStatusCompleted,
			"balance_after": newBalance,
			"processed_at":  now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Transfer debits the company wallet and credits the creator balance as a
// pair of completed ledger rows sharing transferRef, all in one DB transaction.
// Returns the wallet-side debit row.
func (r *WalletRepository) Transfer(walletID, creatorUserID uint, amountCents int64, txType, description, transferRef string, campaignID *uint) (*models.WalletTransaction, error) {
	var debit models.WalletTransaction
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var w models.Wallet
		if err := tx.First(&w, walletID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrWalletNotFound
			}
			return err
		}
		newBalance := w.BalanceCents - amountCents
		if newBalance < 0 || newBalance < w.ReservedCents {
			return domain.ErrInsufficientFunds
		}
		if err := tx.Model(&w).Update("balance_cents", newBalance).Error; err != nil {
			return err
		}

		var cb models.CreatorBalance
		if err := tx.Where("user_id = ?", creatorUserID).First(&cb).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			cb = models.CreatorBalance{UserID: creatorUserID, Currency: domain.DefaultCurrency}
			if err := tx.Create(&cb).Error; err != nil {
				return err
			}
		}
		newCreatorBalance := cb.BalanceCents + amountCents
		if err := tx.Model(&cb).Updates(map[string]interface{}{
			"balance_cents":  newCreatorBalance,
			"lifetime_cents": cb.LifetimeCents + amountCents,
		}).Error; err != nil {
			return err
		}

		now := time.Now()
		walletSeq, err := nextSeq(tx, "company_wallet_id", walletID)
		if err != nil {
			return err
		}
		debit = models.WalletTransaction{
			CompanyWalletID:   &walletID,
			Seq:               walletSeq,
			Type:              txType,
			AmountCents:       -amountCents,
			BalanceAfter:      newBalance,
			Description:       description,
			Status:            domain.TxStatusCompleted,
			TransferRef:       transferRef,
			RelatedUserID:     &creatorUserID,
			RelatedCampaignID: campaignID,
			ProcessedAt:       &now,
		}
		if err := tx.Create(&debit).Error; err != nil {
			return err
		}

		creatorSeq, err := nextSeq(tx, "creator_balance_id", cb.ID)
		if err != nil {
			return err
		}
		credit := models.WalletTransaction{
			CreatorBalanceID:  &cb.ID,
			Seq:               creatorSeq,
			Type:              txType,
			AmountCents:       amountCents,
			BalanceAfter:      newCreatorBalance,
			Description:       description,
			Status:            domain.TxStatusCompleted,
			TransferRef:       transferRef,
			RelatedUserID:     &creatorUserID,
			RelatedCampaignID: campaignID,
			ProcessedAt:       &now,
		}
		return tx.Create(&credit).Error
	})
	if err != nil {
		return nil, err
	}
	return &debit, nil
}

// AdjustReserved moves funds between the free and reserved portions of the
// balance. Total balance is unchanged; reserved stays within [0, balance].
func (r *WalletRepository) AdjustReserved(walletID uint, deltaCents int64) (*models.Wallet, error) {
	var w models.Wallet
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&w, walletID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrWalletNotFound
			}
			return err
		}
		newReserved := w.ReservedCents + deltaCents
		if newReserved < 0 {
			return domain.ErrInvalidAmount
		}
		if newReserved > w.BalanceCents {
			return domain.ErrInsufficientFunds
		}
		w.ReservedCents = newReserved
		return tx.Model(&w).Update("reserved_cents", newReserved).Error
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}
