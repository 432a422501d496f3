package payment

import (
	"context"
	"time"
)

// ChargeRequest asks the provider for a PIX charge (QR code / copia-e-cola)
// that, once paid, completes a pending wallet deposit via webhook.
type ChargeRequest struct {
	CompanyID   uint
	AmountCents int64
	Currency    string
	Description string
	OrderID     string // unique; echoed back in the webhook
	PayerName   string
	PayerEmail  string
	CallbackURL string
	ExpiresIn   time.Duration
}

// ChargeResponse is the provider's answer to a charge request.
type ChargeResponse struct {
	Reference string // provider-side id
	Status    string
	QRCode    string // copia-e-cola payload
	ExpiresAt time.Time
}

// TransferRequest sends money out to a creator's PIX key (withdrawal).
type TransferRequest struct {
	AmountCents int64
	PixKey      string
	Description string
	OrderID     string
	CallbackURL string
}

// TransferResponse is the provider's answer to a transfer request.
type TransferResponse struct {
	Reference string
	Status    string
}

type Provider interface {
	CreateCharge(ctx context.Context, req ChargeRequest) (*ChargeResponse, error)
	CreateTransfer(ctx context.Context, req TransferRequest) (*TransferResponse, error)
}
