package domain_test

import (
	"testing"

	"criavo/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRewardTransitions(t *testing.T) {
	legal := [][2]string{
		{domain.RewardPending, domain.RewardApproved},
		{domain.RewardPending, domain.RewardRejected},
		{domain.RewardPending, domain.RewardCancelled},
		{domain.RewardApproved, domain.RewardCashPaid},
		{domain.RewardApproved, domain.RewardProductShipped},
		{domain.RewardApproved, domain.RewardCancelled},
		{domain.RewardCashPaid, domain.RewardCompleted},
		{domain.RewardProductShipped, domain.RewardCompleted},
	}
	for _, tr := range legal {
		assert.True(t, domain.CanTransitionReward(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	illegal := [][2]string{
		{domain.RewardPending, domain.RewardCashPaid},      // must approve first
		{domain.RewardPending, domain.RewardCompleted},     // no shortcut
		{domain.RewardCashPaid, domain.RewardCancelled},    // money already moved
		{domain.RewardCompleted, domain.RewardApproved},    // terminal
		{domain.RewardRejected, domain.RewardApproved},     // terminal
		{domain.RewardCancelled, domain.RewardApproved},    // terminal
		{domain.RewardApproved, domain.RewardApproved},     // no self loop
		{domain.RewardCashPaid, domain.RewardProductShipped},
	}
	for _, tr := range illegal {
		assert.False(t, domain.CanTransitionReward(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestTerminalStates(t *testing.T) {
	for _, s := range []string{domain.RewardCompleted, domain.RewardRejected, domain.RewardCancelled} {
		assert.True(t, domain.IsTerminalRewardState(s), s)
	}
	for _, s := range []string{domain.RewardPending, domain.RewardApproved, domain.RewardCashPaid, domain.RewardProductShipped} {
		assert.False(t, domain.IsTerminalRewardState(s), s)
	}

	for _, s := range []string{domain.TxStatusCompleted, domain.TxStatusFailed, domain.TxStatusCancelled} {
		assert.True(t, domain.IsTerminalTxStatus(s), s)
	}
	for _, s := range []string{domain.TxStatusPending, domain.TxStatusAvailable, domain.TxStatusProcessing} {
		assert.False(t, domain.IsTerminalTxStatus(s), s)
	}
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, "insufficient_funds", domain.ErrorCode(domain.ErrInsufficientFunds))
	assert.Equal(t, "invalid_transition", domain.ErrorCode(domain.ErrInvalidTransition))
	assert.Empty(t, domain.ErrorCode(assert.AnError))
}
