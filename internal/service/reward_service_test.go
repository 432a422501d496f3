package service_test

import (
	"testing"

	"criavo/internal/domain"
	"criavo/internal/models"
	"criavo/internal/repository"
	"criavo/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRewardFixture(t *testing.T) (*fixture, *service.RewardService, *models.Wallet, *models.CreatorReward) {
	f := newFixture(t)
	wallet, creator := f.seedCompanyAndCreator(t)

	campaign := models.Campaign{CompanyID: wallet.CompanyID, Name: "Lançamento Primavera", Status: domain.CampaignActive}
	require.NoError(t, f.db.Create(&campaign).Error)

	rewardRepo := repository.NewRewardRepository(f.db)
	rewards := service.NewRewardService(rewardRepo, f.walletRepo, f.ledger)

	value := int64(15000)
	reward := &models.CreatorReward{
		CampaignID: campaign.ID,
		CompanyID:  wallet.CompanyID,
		CreatorID:  creator.ID,
		Type:       domain.RewardRankingPlace,
		RewardType: domain.RewardKindCash,
		ValueCents: &value,
	}
	require.NoError(t, rewards.Create(reward))
	return f, rewards, wallet, reward
}

func TestRewardCreate_ValidatesShape(t *testing.T) {
	f := newFixture(t)
	wallet, creator := f.seedCompanyAndCreator(t)
	rewards := service.NewRewardService(repository.NewRewardRepository(f.db), f.walletRepo, f.ledger)

	base := models.CreatorReward{CampaignID: 1, CompanyID: wallet.CompanyID, CreatorID: creator.ID}

	bad := base
	bad.Type = "jackpot"
	bad.RewardType = domain.RewardKindCash
	assert.Error(t, rewards.Create(&bad))

	bad = base
	bad.Type = domain.RewardMilestone
	bad.RewardType = "nft"
	assert.Error(t, rewards.Create(&bad))

	// Cash without a value is not payable.
	bad = base
	bad.Type = domain.RewardBonus
	bad.RewardType = domain.RewardKindCash
	assert.ErrorIs(t, rewards.Create(&bad), domain.ErrInvalidAmount)

	// Product rewards need no value.
	ok := base
	ok.Type = domain.RewardMilestone
	ok.RewardType = domain.RewardKindProduct
	require.NoError(t, rewards.Create(&ok))
	assert.Equal(t, domain.RewardPending, ok.Status)
}

func TestRewardLifecycle_CashPayout(t *testing.T) {
	// GIVEN: an approved 150.00 cash reward and a funded wallet
	f, rewards, wallet, reward := newRewardFixture(t)
	_, err := f.ledger.Deposit(wallet.ID, 20000, "funding")
	require.NoError(t, err)

	_, err = rewards.Approve(reward.ID, 1)
	require.NoError(t, err)

	// WHEN: the company pays it out
	paid, err := rewards.MarkPaid(reward.ID, 1)
	require.NoError(t, err)

	// THEN: the reward advances and the money actually moved
	assert.Equal(t, domain.RewardCashPaid, paid.Status)

	w, err := f.ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), w.BalanceCents)

	cb, err := f.creatorRepo.GetByUserID(reward.CreatorID)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), cb.BalanceCents)

	var bonus models.WalletTransaction
	require.NoError(t, f.db.Where("company_wallet_id = ? AND type = ?", wallet.ID, domain.TxTypeBonus).First(&bonus).Error)
	assert.Equal(t, int64(-15000), bonus.AmountCents)

	done, err := rewards.Complete(reward.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RewardCompleted, done.Status)

	// Completed is terminal.
	_, err = rewards.Approve(reward.ID, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = rewards.Cancel(reward.ID, 1, "too late")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	events, err := rewards.History(reward.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, domain.RewardApproved, events[0].ToStatus)
	assert.Equal(t, domain.RewardCashPaid, events[1].ToStatus)
	assert.Equal(t, domain.RewardCompleted, events[2].ToStatus)
}

func TestMarkPaid_InsufficientFundsKeepsRewardApproved(t *testing.T) {
	// GIVEN: an approved 150.00 reward against a 100.00 wallet
	f, rewards, wallet, reward := newRewardFixture(t)
	_, err := f.ledger.Deposit(wallet.ID, 10000, "underfunded")
	require.NoError(t, err)
	_, err = rewards.Approve(reward.ID, 1)
	require.NoError(t, err)

	// WHEN: payout is attempted
	_, err = rewards.MarkPaid(reward.ID, 1)

	// THEN: the ledger rejected it and the reward did not move
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	got, err := repository.NewRewardRepository(f.db).GetByID(reward.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RewardApproved, got.Status, "reward stays approved for retry after top-up")

	w, _ := f.ledger.Balance(wallet.ID)
	assert.Equal(t, int64(10000), w.BalanceCents)

	// Top up and retry.
	_, err = f.ledger.Deposit(wallet.ID, 10000, "top-up")
	require.NoError(t, err)
	paid, err := rewards.MarkPaid(reward.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RewardCashPaid, paid.Status)
}

func TestMarkPaid_RequiresApprovedCashReward(t *testing.T) {
	f, rewards, wallet, reward := newRewardFixture(t)
	_, err := f.ledger.Deposit(wallet.ID, 100000, "funding")
	require.NoError(t, err)

	// Still pending: not payable.
	_, err = rewards.MarkPaid(reward.ID, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Product rewards ship, they don't pay.
	product := &models.CreatorReward{
		CampaignID: reward.CampaignID,
		CompanyID:  reward.CompanyID,
		CreatorID:  reward.CreatorID,
		Type:       domain.RewardMilestone,
		RewardType: domain.RewardKindProduct,
	}
	require.NoError(t, rewards.Create(product))
	_, err = rewards.Approve(product.ID, 1)
	require.NoError(t, err)
	_, err = rewards.MarkPaid(product.ID, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	shipped, err := rewards.MarkShipped(product.ID, 1, "BR-834920117")
	require.NoError(t, err)
	assert.Equal(t, domain.RewardProductShipped, shipped.Status)

	got, _ := repository.NewRewardRepository(f.db).GetByID(product.ID)
	assert.Equal(t, "BR-834920117", got.TrackingInfo)
}

func TestRewardCancel_OnlyBeforePayout(t *testing.T) {
	f, rewards, wallet, reward := newRewardFixture(t)
	_, err := f.ledger.Deposit(wallet.ID, 100000, "funding")
	require.NoError(t, err)

	// Cancel straight from pending.
	cancelled, err := rewards.Cancel(reward.ID, 1, "campaign scrapped")
	require.NoError(t, err)
	assert.Equal(t, domain.RewardCancelled, cancelled.Status)

	// A paid reward can only complete.
	value := int64(1000)
	second := &models.CreatorReward{
		CampaignID: reward.CampaignID,
		CompanyID:  reward.CompanyID,
		CreatorID:  reward.CreatorID,
		Type:       domain.RewardBonus,
		RewardType: domain.RewardKindCash,
		ValueCents: &value,
	}
	require.NoError(t, rewards.Create(second))
	_, err = rewards.Approve(second.ID, 1)
	require.NoError(t, err)
	_, err = rewards.MarkPaid(second.ID, 1)
	require.NoError(t, err)
	_, err = rewards.Cancel(second.ID, 1, "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
