package domain

const (
	RoleBrand   = "BRAND"
	RoleCreator = "CREATOR"
	RoleAdmin   = "ADMIN"
)

// Wallet transaction types. Positive amounts credit the referenced balance,
// negative amounts debit it.
const (
	TxTypeDeposit         = "deposit"
	TxTypeWithdrawal      = "withdrawal"
	TxTypePaymentFixed    = "payment_fixed"
	TxTypePaymentVariable = "payment_variable"
	TxTypeCommission      = "commission"
	TxTypeBonus           = "bonus"
	TxTypeRefund          = "refund"
	TxTypeTransferIn      = "transfer_in"
	TxTypeTransferOut     = "transfer_out"
	TxTypeBoxAllocation   = "box_allocation"
)

// Transaction statuses. completed, failed and cancelled are terminal.
const (
	TxStatusPending    = "pending"
	TxStatusAvailable  = "available"
	TxStatusProcessing = "processing"
	TxStatusCompleted  = "completed"
	TxStatusFailed     = "failed"
	TxStatusCancelled  = "cancelled"
)

// PayoutTypes are the transaction types allowed on a pay-creator call.
var PayoutTypes = map[string]bool{
	TxTypePaymentFixed:    true,
	TxTypePaymentVariable: true,
	TxTypeCommission:      true,
	TxTypeBonus:           true,
}

// IsTerminalTxStatus reports whether a transaction may never change again.
func IsTerminalTxStatus(s string) bool {
	return s == TxStatusCompleted || s == TxStatusFailed || s == TxStatusCancelled
}

// Reward trigger types.
const (
	RewardRankingPlace = "ranking_place"
	RewardMilestone    = "milestone"
	RewardBonus        = "bonus"
)

// Reward payout kinds.
const (
	RewardKindCash    = "cash"
	RewardKindProduct = "product"
	RewardKindVoucher = "voucher"
	RewardKindCustom  = "custom"
)

// Reward lifecycle states.
const (
	RewardPending        = "pending"
	RewardApproved       = "approved"
	RewardRejected       = "rejected"
	RewardCashPaid       = "cash_paid"
	RewardProductShipped = "product_shipped"
	RewardCompleted      = "completed"
	RewardCancelled      = "cancelled"
)

// rewardTransitions is the single source of truth for reward state legality.
// cancelled is reachable only before any payout happened; paid/shipped rewards
// must run to completed.
var rewardTransitions = map[string][]string{
	RewardPending:        {RewardApproved, RewardRejected, RewardCancelled},
	RewardApproved:       {RewardCashPaid, RewardProductShipped, RewardCancelled},
	RewardCashPaid:       {RewardCompleted},
	RewardProductShipped: {RewardCompleted},
}

// CanTransitionReward reports whether a reward may move from one state to another.
func CanTransitionReward(from, to string) bool {
	for _, next := range rewardTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalRewardState reports whether a reward state admits no further transitions.
func IsTerminalRewardState(s string) bool {
	return len(rewardTransitions[s]) == 0
}

// Coupon discount types.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Sale statuses.
const (
	SaleStatusPending   = "pending"
	SaleStatusConfirmed = "confirmed"
	SaleStatusRefunded  = "refunded"
)

// Campaign statuses.
const (
	CampaignDraft    = "draft"
	CampaignActive   = "active"
	CampaignFinished = "finished"
)

const DefaultCurrency = "BRL"
