package domain

import "errors"

// Service-level errors. Handlers map these to HTTP statuses plus a stable
// machine-readable code so clients can render specific messages instead of
// guessing from prose.
var (
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrNoCycleConfigured = errors.New("no billing cycle configured")
	ErrDuplicateCoupon   = errors.New("coupon code already exists")
	ErrMaxUsesExceeded   = errors.New("coupon max uses exceeded")
)

// ErrorCode returns the wire code for a known service error, or "" when the
// error is not part of the taxonomy.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrWalletNotFound):
		return "wallet_not_found"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrNoCycleConfigured):
		return "no_cycle_configured"
	case errors.Is(err, ErrDuplicateCoupon):
		return "duplicate_coupon"
	case errors.Is(err, ErrMaxUsesExceeded):
		return "max_uses_exceeded"
	}
	return ""
}
