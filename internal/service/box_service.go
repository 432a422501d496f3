package service

import (
	"criavo/internal/domain"
	"criavo/internal/models"
	"criavo/internal/repository"
)

// BoxService manages caixinhas: named partitions of a wallet's balance.
// Allocation shares the wallet lock with the ledger service, since both
// read-then-write against the same balance.
type BoxService struct {
	boxRepo    *repository.BoxRepository
	walletRepo *repository.WalletRepository
	locks      *WalletLocks
}

func NewBoxService(boxRepo *repository.BoxRepository, walletRepo *repository.WalletRepository, locks *WalletLocks) *BoxService {
	return &BoxService{boxRepo: boxRepo, walletRepo: walletRepo, locks: locks}
}

func (s *BoxService) CreateBox(walletID uint, name, description, color, icon string, targetCents *int64) (*models.WalletBox, error) {
	if _, err := s.walletRepo.GetByID(walletID); err != nil {
		return nil, err
	}
	box := &models.WalletBox{
		CompanyWalletID: walletID,
		Name:            name,
		Description:     description,
		Color:           color,
		Icon:            icon,
		TargetCents:     targetCents,
		IsActive:        true,
	}
	if err := s.boxRepo.Create(box); err != nil {
		return nil, err
	}
	return box, nil
}

func (s *BoxService) ListBoxes(walletID uint) ([]models.WalletBox, error) {
	return s.boxRepo.ListByWallet(walletID)
}

func (s *BoxService) Box(boxID uint) (*models.WalletBox, error) {
	return s.boxRepo.GetByID(boxID)
}

// Allocate moves free funds into the box. Funds already partitioned into
// other active boxes are not free: balance - sum(active boxes) must cover
// the allocation.
func (s *BoxService) Allocate(boxID uint, amountCents int64, description string) (*models.WalletTransaction, error) {
	if amountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	box, err := s.boxRepo.GetByID(boxID)
	if err != nil {
		return nil, err
	}
	var entry *models.WalletTransaction
	err = s.locks.With(box.CompanyWalletID, func() error {
		w, err := s.walletRepo.GetByID(box.CompanyWalletID)
		if err != nil {
			return err
		}
		allocated, err := s.boxRepo.ActiveAllocatedSum(box.CompanyWalletID)
		if err != nil {
			return err
		}
		if w.BalanceCents-allocated < amountCents {
			return domain.ErrInsufficientFunds
		}
		entry, err = s.boxRepo.Allocate(boxID, amountCents, description)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Deallocate returns box funds to the unallocated pool. The wallet balance
// is untouched; boxes are a partition, not a store.
func (s *BoxService) Deallocate(boxID uint, amountCents int64) error {
	if amountCents <= 0 {
		return domain.ErrInvalidAmount
	}
	box, err := s.boxRepo.GetByID(boxID)
	if err != nil {
		return err
	}
	return s.locks.With(box.CompanyWalletID, func() error {
		return s.boxRepo.Deallocate(boxID, amountCents)
	})
}

func (s *BoxService) Deactivate(boxID uint) error {
	return s.boxRepo.SetActive(boxID, false)
}
