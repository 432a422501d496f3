package repository

import (
	"time"

	"criavo/internal/domain"
	"criavo/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) GetByID(id uint) (*models.WalletTransaction, error) {
	var t models.WalletTransaction
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) GetByProviderRef(ref string) (*models.WalletTransaction, error) {
	var t models.WalletTransaction
	if err := r.db.Where("provider_ref = ?", ref).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByWallet returns the wallet's audit log, oldest first. Ordered by
// created_at with id as tiebreak for same-millisecond entries.
func (r *TransactionRepository) ListByWallet(walletID uint, limit int) ([]models.WalletTransaction, error) {
	var txs []models.WalletTransaction
	q := r.db.Where("company_wallet_id = ?", walletID).Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *TransactionRepository) ListByCreatorBalance(creatorBalanceID uint, limit int) ([]models.WalletTransaction, error) {
	var txs []models.WalletTransaction
	q := r.db.Where("creator_balance_id = ?", creatorBalanceID).Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// MarkStatus transitions a non-terminal entry, stamping processed_at when it
// reaches a terminal state. Terminal entries are immutable.
func (r *TransactionRepository) MarkStatus(id uint, status string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var t models.WalletTransaction
		if err := tx.First(&t, id).Error; err != nil {
			return err
		}
		if domain.IsTerminalTxStatus(t.Status) {
			return domain.ErrInvalidTransition
		}
		updates := map[string]interface{}{"status": status}
		if domain.IsTerminalTxStatus(status) {
			updates["processed_at"] = time.Now()
		}
		return tx.Model(&t).Updates(updates).Error
	})
}

// InvoiceBucket is one debit group of a billing cycle.
type InvoiceBucket struct {
	Type       string `json:"type"`
	TotalCents int64  `json:"total_cents"`
	Count      int64  `json:"count"`
}

// PendingDebitBuckets sums pending debits inside the window, grouped by type.
// Amounts come back as positive (absolute) values.
func (r *TransactionRepository) PendingDebitBuckets(walletID uint, start, end time.Time) ([]InvoiceBucket, error) {
	var buckets []InvoiceBucket
	err := r.db.Model(&models.WalletTransaction{}).
		Select("type, SUM(-amount_cents) AS total_cents, COUNT(*) AS count").
		Where("company_wallet_id = ? AND status = ? AND amount_cents < 0", walletID, domain.TxStatusPending).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Group("type").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	return buckets, nil
}

// MovePendingToProcessing flips the window's pending debit entries to
// processing when a cycle closes. Pending credits (PIX charges awaiting
// confirmation) are not part of the invoice and stay pending for the
// webhook to complete. Returns the number of entries moved.
func (r *TransactionRepository) MovePendingToProcessing(walletID uint, start, end time.Time) (int64, error) {
	res := r.db.Model(&models.WalletTransaction{}).
		Where("company_wallet_id = ? AND status = ? AND amount_cents < 0", walletID, domain.TxStatusPending).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Update("status", domain.TxStatusProcessing)
	return res.RowsAffected, res.Error
}

// CompletedSum folds completed entries for one wallet; used to verify that
// replaying the ledger reproduces the materialized balance. box_allocation
// entries partition the balance without moving it, so they are excluded.
func (r *TransactionRepository) CompletedSum(walletID uint) (int64, error) {
	var sum int64
	err := r.db.Model(&models.WalletTransaction{}).
		Where("company_wallet_id = ? AND status IN ?", walletID,
			[]string{domain.TxStatusCompleted, domain.TxStatusAvailable}).
		Where("type <> ?", domain.TxTypeBoxAllocation).
		Select("COALESCE(SUM(amount_cents), 0)").Scan(&sum).Error
	return sum, err
}
