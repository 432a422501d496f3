package service

import (
	"log"
	"time"

	"criavo/internal/domain"
	"criavo/internal/models"
	"criavo/internal/repository"
)

// BillingService tracks a wallet's accounting window and classifies its
// pending debits into invoice buckets.
type BillingService struct {
	walletRepo *repository.WalletRepository
	txRepo     *repository.TransactionRepository
}

func NewBillingService(walletRepo *repository.WalletRepository, txRepo *repository.TransactionRepository) *BillingService {
	return &BillingService{walletRepo: walletRepo, txRepo: txRepo}
}

// Cycle describes the active window plus display progress.
type Cycle struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	DaysRemaining int       `json:"days_remaining"`
	Progress      float64   `json:"progress"` // elapsed fraction, clamped [0,1]
}

// CurrentCycle returns the active window, or nil when the wallet has no
// cycle configured (cycle features disabled).
func (s *BillingService) CurrentCycle(walletID uint) (*Cycle, error) {
	w, err := s.walletRepo.GetByID(walletID)
	if err != nil {
		return nil, err
	}
	if w.BillingCycleStart == nil || w.BillingCycleEnd == nil {
		return nil, nil
	}
	return buildCycle(*w.BillingCycleStart, *w.BillingCycleEnd, time.Now()), nil
}

func buildCycle(start, end, now time.Time) *Cycle {
	c := &Cycle{Start: start, End: end}
	total := end.Sub(start)
	if total > 0 {
		elapsed := now.Sub(start)
		p := float64(elapsed) / float64(total)
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
		c.Progress = p
	}
	if remaining := end.Sub(now); remaining > 0 {
		c.DaysRemaining = int(remaining.Hours()/24) + 1
	}
	return c
}

// PendingInvoiceTotal sums the window's pending debits grouped into the four
// payout buckets. Pure read.
func (s *BillingService) PendingInvoiceTotal(walletID uint) ([]repository.InvoiceBucket, int64, error) {
	w, err := s.walletRepo.GetByID(walletID)
	if err != nil {
		return nil, 0, err
	}
	if w.BillingCycleStart == nil || w.BillingCycleEnd == nil {
		return nil, 0, domain.ErrNoCycleConfigured
	}
	buckets, err := s.txRepo.PendingDebitBuckets(walletID, *w.BillingCycleStart, *w.BillingCycleEnd)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	for _, b := range buckets {
		total += b.TotalCents
	}
	return buckets, total, nil
}

// SetCycle configures (or reconfigures) the wallet's accounting window.
func (s *BillingService) SetCycle(walletID uint, start, end time.Time) error {
	if !end.After(start) {
		return domain.ErrInvalidAmount
	}
	if _, err := s.walletRepo.GetByID(walletID); err != nil {
		return err
	}
	return s.walletRepo.SetBillingCycle(walletID, start, end)
}

// CloseCycle rolls the window: pending entries inside it move to processing
// and the next window opens a day after the old end, keeping the same length.
func (s *BillingService) CloseCycle(walletID uint) (*Cycle, int64, error) {
	w, err := s.walletRepo.GetByID(walletID)
	if err != nil {
		return nil, 0, err
	}
	if w.BillingCycleStart == nil || w.BillingCycleEnd == nil {
		return nil, 0, domain.ErrNoCycleConfigured
	}
	start, end := *w.BillingCycleStart, *w.BillingCycleEnd
	moved, err := s.txRepo.MovePendingToProcessing(walletID, start, end)
	if err != nil {
		return nil, 0, err
	}
	length := end.Sub(start)
	nextStart := end.Add(24 * time.Hour)
	nextEnd := nextStart.Add(length)
	if err := s.walletRepo.SetBillingCycle(walletID, nextStart, nextEnd); err != nil {
		return nil, 0, err
	}
	log.Printf("[Billing] wallet=%d cycle closed, %d entries processing, next %s..%s", walletID, moved, nextStart.Format("2006-01-02"), nextEnd.Format("2006-01-02"))
	return buildCycle(nextStart, nextEnd, time.Now()), moved, nil
}

// WalletForCompany resolves the company's wallet for handlers that only know
// the authenticated company id.
func (s *BillingService) WalletForCompany(companyID uint) (*models.Wallet, error) {
	return s.walletRepo.GetByCompanyID(companyID)
}
