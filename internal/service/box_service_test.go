package service_test

import (
	"testing"

	"criavo/internal/domain"
	"criavo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate_RespectsFreeFunds(t *testing.T) {
	// GIVEN: a wallet funded with 100.00
	f := newFixture(t)
	wallet, _ := f.seedCompanyAndCreator(t)
	_, err := f.ledger.Deposit(wallet.ID, 10000, "funding")
	require.NoError(t, err)

	box, err := f.boxes.CreateBox(wallet.ID, "Campanha Verão", "", "#FFB300", "sun", nil)
	require.NoError(t, err)

	// WHEN: allocating more than the balance
	_, err = f.boxes.Allocate(box.ID, 12000, "over")
	// THEN: rejected
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// 50.00 fits
	_, err = f.boxes.Allocate(box.ID, 5000, "partial")
	require.NoError(t, err)

	got, err := f.boxRepo.GetByID(box.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), got.CurrentCents)

	// Allocation partitions the balance, it does not move it.
	w, err := f.ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), w.BalanceCents)

	// Only 50.00 remains free now.
	_, err = f.boxes.Allocate(box.ID, 6000, "too much")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	require.NoError(t, f.boxes.Deallocate(box.ID, 2000))
	_, err = f.boxes.Allocate(box.ID, 6000, "fits after deallocate")
	require.NoError(t, err)
}

func TestAllocate_AcrossBoxesSharesTheFreePool(t *testing.T) {
	f := newFixture(t)
	wallet, _ := f.seedCompanyAndCreator(t)
	_, err := f.ledger.Deposit(wallet.ID, 10000, "funding")
	require.NoError(t, err)

	target := int64(8000)
	a, err := f.boxes.CreateBox(wallet.ID, "Prêmios Q3", "", "", "", &target)
	require.NoError(t, err)
	b, err := f.boxes.CreateBox(wallet.ID, "Reserva", "", "", "", nil)
	require.NoError(t, err)

	_, err = f.boxes.Allocate(a.ID, 7000, "")
	require.NoError(t, err)
	_, err = f.boxes.Allocate(b.ID, 4000, "")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds, "7000 already partitioned, only 3000 free")
	_, err = f.boxes.Allocate(b.ID, 3000, "")
	require.NoError(t, err)

	// Deactivating a box returns its partition to the free pool.
	require.NoError(t, f.boxes.Deactivate(a.ID))
	_, err = f.boxes.Allocate(b.ID, 7000, "")
	require.NoError(t, err)

	gotA, _ := f.boxRepo.GetByID(a.ID)
	assert.InDelta(t, 0.875, gotA.Progress(), 0.0001)
}

func TestDeallocate_CannotExceedBoxFunds(t *testing.T) {
	f := newFixture(t)
	wallet, _ := f.seedCompanyAndCreator(t)
	_, err := f.ledger.Deposit(wallet.ID, 5000, "funding")
	require.NoError(t, err)

	box, err := f.boxes.CreateBox(wallet.ID, "Caixinha", "", "", "", nil)
	require.NoError(t, err)
	_, err = f.boxes.Allocate(box.ID, 2000, "")
	require.NoError(t, err)

	assert.ErrorIs(t, f.boxes.Deallocate(box.ID, 3000), domain.ErrInsufficientFunds)
	assert.ErrorIs(t, f.boxes.Deallocate(box.ID, 0), domain.ErrInvalidAmount)
	require.NoError(t, f.boxes.Deallocate(box.ID, 2000))

	got, _ := f.boxRepo.GetByID(box.ID)
	assert.Zero(t, got.CurrentCents)
}

func TestAllocate_LedgerRowDoesNotDriftReplay(t *testing.T) {
	f := newFixture(t)
	wallet, _ := f.seedCompanyAndCreator(t)
	_, err := f.ledger.Deposit(wallet.ID, 10000, "funding")
	require.NoError(t, err)

	box, err := f.boxes.CreateBox(wallet.ID, "Caixinha", "", "", "", nil)
	require.NoError(t, err)
	entry, err := f.boxes.Allocate(box.ID, 4000, "partition")
	require.NoError(t, err)

	// The allocation is recorded in the ledger for audit...
	assert.Equal(t, domain.TxTypeBoxAllocation, entry.Type)
	assert.Equal(t, int64(4000), entry.AmountCents)
	assert.Equal(t, int64(10000), entry.BalanceAfter, "balance unchanged by partitioning")
	require.NotNil(t, entry.WalletBoxID)
	assert.Equal(t, box.ID, *entry.WalletBoxID)

	// ...but excluded from the replay fold.
	assert.NoError(t, f.ledger.VerifyReplay(wallet.ID))

	var rows []models.WalletTransaction
	require.NoError(t, f.db.Where("company_wallet_id = ?", wallet.ID).Find(&rows).Error)
	assert.Len(t, rows, 2)
}

func TestBoxProgress_ClampedToTarget(t *testing.T) {
	target := int64(8000)
	box := models.WalletBox{CurrentCents: 4000, TargetCents: &target}
	assert.InDelta(t, 0.5, box.Progress(), 0.0001)

	box.CurrentCents = 9000
	assert.Equal(t, float64(1), box.Progress())

	box.TargetCents = nil
	assert.Zero(t, box.Progress())
}
