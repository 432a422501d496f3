package service_test

import (
	"sync"
	"testing"

	"criavo/internal/domain"
	"criavo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// DEPOSITS
// =============================================================================

func TestDeposit_CreditsBalanceAndStampsEntry(t *testing.T) {
	f := newFixture(t)
	wallet, _ := f.seedCompanyAndCreator(t)

	entry, err := f.ledger.Deposit(wallet.ID, 50000, "initial funding")
	require.NoError(t, err)

	assert.Equal(t, int64(50000), entry.AmountCents)
	assert.Equal(t, int64(50000), entry.BalanceAfter)
	assert.Equal(t, int64(1), entry.Seq)
	assert.Equal(t, domain.TxStatusCompleted, entry.Status)
	require.NotNil(t, entry.ProcessedAt)

	w, err := f.ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), w.BalanceCents)
}

func TestDeposit_NonPositiveAmountRejected(t *testing.T) {
	f := newFixture(t)
	wallet, _ := f.seedCompanyAndCreator(t)

	_, err := f.ledger.Deposit(wallet.ID, 0, "zero")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.ledger.Deposit(wallet.ID, -100, "negative")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	var count int64
	f.db.Model(&models.WalletTransaction{}).Count(&count)
	assert.Zero(t, count, "rejected deposits must not write ledger rows")
}

func TestDeposit_UnknownWallet(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.Deposit(999, 1000, "ghost")
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

// =============================================================================
// PENDING DEPOSITS (PSP-CONFIRMED)
// =============================================================================

func TestPendingDeposit_BalanceUntouchedUntilConfirmed(t *testing.T) {
	// GIVEN: a pending PIX deposit awaiting the provider webhook
	f := newFixture(t)
	wallet, _ := f.seedCompanyAndCreator(t)

	entry, err := f.ledger.InitiateDeposit(wallet.ID, 30000, "pix top-up", "dep-abc")
	require.NoError(t, err)
	assert.Equal(t, domain.TxStatusPending, entry.Status)

	w, err := f.ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Zero(t, w.BalanceCents, "pending entries must not move the balance")

	// WHEN: the provider confirms
	confirmed, err := f.ledger.ConfirmDeposit("dep-abc")
	require.NoError(t, err)
	assert.Equal(t, domain.TxStatusCompleted, confirmed.Status)

	// THEN: the balance is credited exactly once
	w, err = f.ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), w.BalanceCents)

	// Replayed webhook does not double-credit.
	_, err = f.ledger.ConfirmDeposit("dep-abc")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	w, _ = f.ledger.Balance(wallet.ID)
	assert.Equal(t, int64(30000), w.BalanceCents)
}

func TestCancelPending_OnlyFromPending(t *testing.T) {
	f := newFixture(t)
	wallet, _ := f.seedCompanyAndCreator(t)

	entry, err := f.ledger.InitiateDeposit(wallet.ID, 5000, "pix top-up", "dep-xyz")
	require.NoError(t, err)

	require.NoError(t, f.ledger.CancelPending(entry.ID))

	got, err := f.txRepo.GetByID(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TxStatusCancelled, got.Status)

	// Cancelled is terminal.
	assert.ErrorIs(t, f.ledger.CancelPending(entry.ID), domain.ErrInvalidTransition)

	_, err = f.ledger.ConfirmDeposit("dep-xyz")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// =============================================================================
// PAY CREATOR
// =============================================================================

func TestPayCreator_PairedRowsShareTransferRef(t *testing.T) {
	// GIVEN: a funded wallet
	f := newFixture(t)
	wallet, creator := f.seedCompanyAndCreator(t)
	_, err := f.ledger.Deposit(wallet.ID, 50000, "funding")
	require.NoError(t, err)

	// WHEN: the company pays the creator R$200,00
	debit, err := f.ledger.PayCreator(wallet.ID, creator.ID, 20000, domain.TxTypePaymentFixed, "campaign fee", nil)
	require.NoError(t, err)

	// THEN: the debit row is negative and stamped against the wallet
	assert.Equal(t, int64(-20000), debit.AmountCents)
	assert.Equal(t, int64(30000), debit.BalanceAfter)
	assert.NotEmpty(t, debit.TransferRef)

	w, err := f.ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), w.BalanceCents)

	// AND: the paired credit shares the transfer ref on the creator side
	var rows []models.WalletTransaction
	require.NoError(t, f.db.Where("transfer_ref = ?", debit.TransferRef).Order("amount_cents ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(-20000), rows[0].AmountCents)
	assert.Equal(t, int64(20000), rows[1].AmountCents)
	require.NotNil(t, rows[1].CreatorBalanceID)
	assert.Nil(t, rows[1].CompanyWalletID)

	cb, err := f.creatorRepo.GetByUserID(creator.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), cb.BalanceCents)
	assert.Equal(t, int64(20000), cb.LifetimeCents)
}

func TestPayCreator_InsufficientFundsLeavesStateUntouched(t *testing.T) {
	// GIVEN: 500.00 funded, 200.00 already paid out
	f := newFixture(t)
	wallet, creator := f.seedCompanyAndCreator(t)
	_, err := f.ledger.Deposit(wallet.ID, 50000, "funding")
	require.NoError(t, err)
	_, err = f.ledger.PayCreator(wallet.ID, creator.ID, 20000, domain.TxTypePaymentFixed, "first payout", nil)
	require.NoError(t, err)

	var rowsBefore int64
	f.db.Model(&models.WalletTransaction{}).Count(&rowsBefore)

	// WHEN: a 400.00 payout exceeds the remaining 300.00
	_, err = f.ledger.PayCreator(wallet.ID, creator.ID, 40000, domain.TxTypePaymentVariable, "too much", nil)

	// THEN: rejected with no residue anywhere
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	w, _ := f.ledger.Balance(wallet.ID)
	assert.Equal(t, int64(30000), w.BalanceCents)

	cb, _ := f.creatorRepo.GetByUserID(creator.ID)
	assert.Equal(t, int64(20000), cb.BalanceCents)

	var rowsAfter int64
	f.db.Model(&models.WalletTransaction{}).Count(&rowsAfter)
	assert.Equal(t, rowsBefore, rowsAfter, "failed payout must not append ledger rows")

	assert.NoError(t, f.ledger.VerifyReplay(wallet.ID))
}

func TestPayCreator_RejectsUnknownPayoutType(t *testing.T) {
	f := newFixture(t)
	wallet, creator := f.seedCompanyAndCreator(t)
	_, err := f.ledger.Deposit(wallet.ID, 10000, "funding")
	require.NoError(t, err)

	_, err = f.ledger.PayCreator(wallet.ID, creator.ID, 1000, domain.TxTypeDeposit, "wrong type", nil)
	assert.Error(t, err)

	_, err = f.ledger.PayCreator(wallet.ID, creator.ID, 1000, "gift", "made up", nil)
	assert.Error(t, err)
}

func TestPayCreator_ConcurrentCallsNeverOverdraw(t *testing.T) {
	// 10 concurrent 30.00 payouts against a 100.00 balance: exactly 3 can land.
	f := newFixture(t)
	wallet, creator := f.seedCompanyAndCreator(t)
	_, err := f.ledger.Deposit(wallet.ID, 10000, "funding")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.PayCreator(wallet.ID, creator.ID, 3000, domain.TxTypeCommission, "burst", nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		}
	}
	assert.Equal(t, 3, succeeded)

	w, err := f.ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), w.BalanceCents)
	assert.NoError(t, f.ledger.VerifyReplay(wallet.ID))
}

// =============================================================================
// RESERVED FUNDS
// =============================================================================

func TestReserve_DebitsCannotTouchReservedPortion(t *testing.T) {
	f := newFixture(t)
	wallet, creator := f.seedCompanyAndCreator(t)
	_, err := f.ledger.Deposit(wallet.ID, 10000, "funding")
	require.NoError(t, err)

	w, err := f.ledger.Reserve(wallet.ID, 6000)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), w.ReservedCents)
	assert.Equal(t, int64(10000), w.BalanceCents, "reserving moves nothing")

	// 50.00 would leave 50.00 < reserved 60.00
	_, err = f.ledger.PayCreator(wallet.ID, creator.ID, 5000, domain.TxTypeBonus, "blocked", nil)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// 40.00 leaves exactly the reserved amount
	_, err = f.ledger.PayCreator(wallet.ID, creator.ID, 4000, domain.TxTypeBonus, "fits", nil)
	require.NoError(t, err)

	w, err = f.ledger.Release(wallet.ID, 6000)
	require.NoError(t, err)
	assert.Zero(t, w.ReservedCents)

	_, err = f.ledger.PayCreator(wallet.ID, creator.ID, 6000, domain.TxTypeBonus, "now free", nil)
	require.NoError(t, err)

	w, _ = f.ledger.Balance(wallet.ID)
	assert.Zero(t, w.BalanceCents)
}

func TestReserve_CannotExceedBalance(t *testing.T) {
	f := newFixture(t)
	wallet, _ := f.seedCompanyAndCreator(t)
	_, err := f.ledger.Deposit(wallet.ID, 5000, "funding")
	require.NoError(t, err)

	_, err = f.ledger.Reserve(wallet.ID, 6000)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = f.ledger.Release(wallet.ID, 1000)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount, "releasing below zero reserved")
}

// =============================================================================
// REPLAY / SEQ
// =============================================================================

func TestLedger_SeqIsMonotonicPerWallet(t *testing.T) {
	f := newFixture(t)
	wallet, creator := f.seedCompanyAndCreator(t)

	_, err := f.ledger.Deposit(wallet.ID, 10000, "one")
	require.NoError(t, err)
	_, err = f.ledger.Deposit(wallet.ID, 5000, "two")
	require.NoError(t, err)
	_, err = f.ledger.PayCreator(wallet.ID, creator.ID, 2000, domain.TxTypePaymentFixed, "three", nil)
	require.NoError(t, err)

	rows, err := f.txRepo.ListByWallet(wallet.ID, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, int64(i+1), row.Seq)
	}
}

func TestVerifyReplay_FoldMatchesMaterializedBalance(t *testing.T) {
	f := newFixture(t)
	wallet, creator := f.seedCompanyAndCreator(t)

	_, err := f.ledger.Deposit(wallet.ID, 80000, "funding")
	require.NoError(t, err)
	_, err = f.ledger.PayCreator(wallet.ID, creator.ID, 12500, domain.TxTypePaymentVariable, "payout", nil)
	require.NoError(t, err)
	_, err = f.ledger.InitiateDeposit(wallet.ID, 99999, "still pending", "dep-pending")
	require.NoError(t, err)

	require.NoError(t, f.ledger.VerifyReplay(wallet.ID))

	// Drift the materialized balance behind the ledger's back.
	require.NoError(t, f.db.Model(&models.Wallet{}).Where("id = ?", wallet.ID).
		Update("balance_cents", 1).Error)
	assert.Error(t, f.ledger.VerifyReplay(wallet.ID))
}
