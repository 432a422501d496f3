package repository

import (
	"errors"
	"time"

	"criavo/internal/domain"
	"criavo/internal/models"

	"gorm.io/gorm"
)

type BoxRepository struct {
	db *gorm.DB
}

func NewBoxRepository(db *gorm.DB) *BoxRepository {
	return &BoxRepository{db: db}
}

func (r *BoxRepository) Create(b *models.WalletBox) error {
	return r.db.Create(b).Error
}

func (r *BoxRepository) GetByID(id uint) (*models.WalletBox, error) {
	var b models.WalletBox
	if err := r.db.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BoxRepository) ListByWallet(walletID uint) ([]models.WalletBox, error) {
	var boxes []models.WalletBox
	if err := r.db.Where("company_wallet_id = ?", walletID).Order("id ASC").Find(&boxes).Error; err != nil {
		return nil, err
	}
	return boxes, nil
}

// ActiveAllocatedSum is the total already partitioned into active boxes.
func (r *BoxRepository) ActiveAllocatedSum(walletID uint) (int64, error) {
	var sum int64
	err := r.db.Model(&models.WalletBox{}).
		Where("company_wallet_id = ? AND is_active = ?", walletID, true).
		Select("COALESCE(SUM(current_cents), 0)").Scan(&sum).Error
	return sum, err
}

// Allocate moves free wallet funds into the box and appends the
// box_allocation ledger row in one DB transaction. The free-funds check
// happens in the service under the wallet lock; the repo re-reads inside the
// transaction to compute the snapshot.
func (r *BoxRepository) Allocate(boxID uint, amountCents int64, description string) (*models.WalletTransaction, error) {
	var entry models.WalletTransaction
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var b models.WalletBox
		if err := tx.First(&b, boxID).Error; err != nil {
			return err
		}
		var w models.Wallet
		if err := tx.First(&w, b.CompanyWalletID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrWalletNotFound
			}
			return err
		}
		if err := tx.Model(&b).Update("current_cents", b.CurrentCents+amountCents).Error; err != nil {
			return err
		}
		seq, err := nextSeq(tx, "company_wallet_id", w.ID)
		if err != nil {
			return err
		}
		now := time.Now()
		entry = models.WalletTransaction{
			CompanyWalletID: &w.ID,
			Seq:             seq,
			Type:            domain.TxTypeBoxAllocation,
			AmountCents:     amountCents, // partitions the balance, does not move it
			BalanceAfter:    w.BalanceCents,
			Description:     description,
			Status:          domain.TxStatusCompleted,
			WalletBoxID:     &boxID,
			ProcessedAt:     &now,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Deallocate returns box funds to the unallocated pool.
func (r *BoxRepository) Deallocate(boxID uint, amountCents int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var b models.WalletBox
		if err := tx.First(&b, boxID).Error; err != nil {
			return err
		}
		if b.CurrentCents < amountCents {
			return domain.ErrInsufficientFunds
		}
		return tx.Model(&b).Update("current_cents", b.CurrentCents-amountCents).Error
	})
}

func (r *BoxRepository) SetActive(boxID uint, active bool) error {
	return r.db.Model(&models.WalletBox{}).Where("id = ?", boxID).Update("is_active", active).Error
}
