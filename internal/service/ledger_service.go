package service

import (
	"fmt"
	"log"

	"criavo/internal/domain"
	"criavo/internal/models"
	"criavo/internal/repository"

	"github.com/google/uuid"
)

// LedgerService is the transaction processor: it validates an intent against
// the current wallet state and applies it atomically. All amounts are integer
// centavos; validation happens before any write.
type LedgerService struct {
	walletRepo *repository.WalletRepository
	txRepo     *repository.TransactionRepository
	locks      *WalletLocks
	events     ActivityPublisher
}

// ActivityPublisher receives committed ledger entries for the live feed.
// May be nil.
type ActivityPublisher interface {
	PublishTransaction(companyID uint, tx *models.WalletTransaction)
}

func NewLedgerService(walletRepo *repository.WalletRepository, txRepo *repository.TransactionRepository, locks *WalletLocks, events ActivityPublisher) *LedgerService {
	return &LedgerService{walletRepo: walletRepo, txRepo: txRepo, locks: locks, events: events}
}

// Deposit credits the wallet immediately (funds already settled, e.g. a
// manual ledger credit by an admin).
func (s *LedgerService) Deposit(walletID uint, amountCents int64, description string) (*models.WalletTransaction, error) {
	if amountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	entry := &models.WalletTransaction{
		Type:        domain.TxTypeDeposit,
		AmountCents: amountCents,
		Description: description,
	}
	err := s.locks.With(walletID, func() error {
		return s.walletRepo.ApplyCompleted(walletID, entry)
	})
	if err != nil {
		return nil, err
	}
	s.publish(walletID, entry)
	return entry, nil
}

// InitiateDeposit appends a pending deposit awaiting PSP confirmation.
// The balance is untouched until ConfirmDeposit.
func (s *LedgerService) InitiateDeposit(walletID uint, amountCents int64, description, providerRef string) (*models.WalletTransaction, error) {
	if amountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	entry := &models.WalletTransaction{
		Type:        domain.TxTypeDeposit,
		AmountCents: amountCents,
		Description: description,
		ProviderRef: providerRef,
	}
	err := s.locks.With(walletID, func() error {
		return s.walletRepo.AppendPending(walletID, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ConfirmDeposit completes a pending deposit once the PSP confirms payment.
func (s *LedgerService) ConfirmDeposit(providerRef string) (*models.WalletTransaction, error) {
	pending, err := s.txRepo.GetByProviderRef(providerRef)
	if err != nil {
		return nil, err
	}
	if pending.CompanyWalletID == nil {
		return nil, domain.ErrWalletNotFound
	}
	walletID := *pending.CompanyWalletID
	var entry *models.WalletTransaction
	err = s.locks.With(walletID, func() error {
		var inner error
		entry, inner = s.walletRepo.CompletePending(pending.ID)
		return inner
	})
	if err != nil {
		return nil, err
	}
	s.publish(walletID, entry)
	return entry, nil
}

// CancelPending cancels a pending entry before it reaches processing.
func (s *LedgerService) CancelPending(entryID uint) error {
	entry, err := s.txRepo.GetByID(entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.TxStatusPending {
		return domain.ErrInvalidTransition
	}
	return s.txRepo.MarkStatus(entryID, domain.TxStatusCancelled)
}

// PayCreator debits the wallet and credits the creator's balance as a paired
// transfer. Overdraft is impossible: the per-wallet lock serializes
// concurrent calls and the balance check runs inside the DB transaction.
func (s *LedgerService) PayCreator(walletID, creatorID uint, amountCents int64, payType, description string, campaignID *uint) (*models.WalletTransaction, error) {
	if amountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !domain.PayoutTypes[payType] {
		return nil, domain.ErrInvalidAmount
	}
	transferRef := uuid.New().String()
	var debit *models.WalletTransaction
	err := s.locks.With(walletID, func() error {
		var inner error
		debit, inner = s.walletRepo.Transfer(walletID, creatorID, amountCents, payType, description, transferRef, campaignID)
		return inner
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[Ledger] wallet=%d paid creator=%d %d centavos type=%s ref=%s", walletID, creatorID, amountCents, payType, transferRef)
	s.publish(walletID, debit)
	return debit, nil
}

// Reserve earmarks funds for a committed but uncleared payout.
func (s *LedgerService) Reserve(walletID uint, amountCents int64) (*models.Wallet, error) {
	if amountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	var w *models.Wallet
	err := s.locks.With(walletID, func() error {
		var inner error
		w, inner = s.walletRepo.AdjustReserved(walletID, amountCents)
		return inner
	})
	return w, err
}

// Release returns reserved funds to the free pool.
func (s *LedgerService) Release(walletID uint, amountCents int64) (*models.Wallet, error) {
	if amountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	var w *models.Wallet
	err := s.locks.With(walletID, func() error {
		var inner error
		w, inner = s.walletRepo.AdjustReserved(walletID, -amountCents)
		return inner
	})
	return w, err
}

// Balance returns the materialized balance, which reflects only completed
// and available entries.
func (s *LedgerService) Balance(walletID uint) (*models.Wallet, error) {
	return s.walletRepo.GetByID(walletID)
}

// VerifyReplay folds the wallet's committed entries and checks the result
// against the materialized balance. A mismatch means ledger drift.
func (s *LedgerService) VerifyReplay(walletID uint) error {
	w, err := s.walletRepo.GetByID(walletID)
	if err != nil {
		return err
	}
	sum, err := s.txRepo.CompletedSum(walletID)
	if err != nil {
		return err
	}
	if sum != w.BalanceCents {
		return fmt.Errorf("ledger drift: replay sum %d != balance %d for wallet %d", sum, w.BalanceCents, walletID)
	}
	return nil
}

func (s *LedgerService) publish(walletID uint, tx *models.WalletTransaction) {
	if s.events == nil || tx == nil {
		return
	}
	w, err := s.walletRepo.GetByID(walletID)
	if err != nil {
		return
	}
	s.events.PublishTransaction(w.CompanyID, tx)
}
