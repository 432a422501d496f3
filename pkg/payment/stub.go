package payment

import (
	"context"
	"fmt"
	"time"
)

// StubProvider is a no-op provider for development and tests.
type StubProvider struct{}

func (s *StubProvider) CreateCharge(ctx context.Context, req ChargeRequest) (*ChargeResponse, error) {
	ref := fmt.Sprintf("stub_%d_%d", time.Now().UnixNano(), req.CompanyID)
	return &ChargeResponse{
		Reference: ref,
		Status:    "pending",
		QRCode:    "00020126stub" + req.OrderID,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}, nil
}

func (s *StubProvider) CreateTransfer(ctx context.Context, req TransferRequest) (*TransferResponse, error) {
	ref := fmt.Sprintf("stub_%d", time.Now().UnixNano())
	return &TransferResponse{Reference: ref, Status: "processing"}, nil
}
