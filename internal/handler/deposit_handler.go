package handler

import (
	"fmt"
	"log"
	"net/http"

	"criavo/config"
	"criavo/internal/middleware"
	"criavo/internal/repository"
	"criavo/internal/service"
	"criavo/pkg/money"
	"criavo/pkg/payment"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DepositHandler initiates PIX deposits: a pending ledger entry is appended
// now and completed by the webhook once the PSP confirms payment.
type DepositHandler struct {
	cfg        *config.Config
	walletRepo *repository.WalletRepository
	ledger     *service.LedgerService
	provider   payment.Provider
}

func NewDepositHandler(cfg *config.Config, walletRepo *repository.WalletRepository, ledger *service.LedgerService, provider payment.Provider) *DepositHandler {
	return &DepositHandler{cfg: cfg, walletRepo: walletRepo, ledger: ledger, provider: provider}
}

func (h *DepositHandler) InitiatePix(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)
	var req struct {
		Amount      string `json:"amount" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cents, err := money.ToCents(req.Amount)
	if err != nil || cents <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount", "code": "invalid_amount"})
		return
	}
	w, err := h.walletRepo.GetByCompanyID(companyID)
	if err != nil {
		fail(c, err)
		return
	}
	orderID := fmt.Sprintf("dep-%s", uuid.New().String())
	resp, err := h.provider.CreateCharge(c.Request.Context(), payment.ChargeRequest{
		CompanyID:   companyID,
		AmountCents: cents,
		Currency:    w.Currency,
		Description: req.Description,
		OrderID:     orderID,
	})
	if err != nil {
		log.Printf("[Deposit] pix charge failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "deposit init failed"})
		return
	}
	entry, err := h.ledger.InitiateDeposit(w.ID, cents, req.Description, orderID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"transaction": entry,
		"order_id":    orderID,
		"qr_code":     resp.QRCode,
		"expires_at":  resp.ExpiresAt,
	})
}
