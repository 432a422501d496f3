package handler

import (
	"fmt"
	"log"
	"net/http"

	"criavo/internal/domain"
	"criavo/internal/middleware"
	"criavo/internal/models"
	"criavo/internal/repository"
	"criavo/pkg/money"
	"criavo/pkg/payment"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WithdrawalHandler lets creators cash out their accumulated balance to a
// PIX key. The transfer is fired at the PSP first; the creator balance is
// only debited once the provider accepts the order, and refunded by the
// webhook if the transfer later fails.
type WithdrawalHandler struct {
	creatorRepo    *repository.CreatorBalanceRepository
	withdrawalRepo *repository.WithdrawalRepository
	userRepo       *repository.UserRepository
	provider       payment.Provider
}

func NewWithdrawalHandler(
	creatorRepo *repository.CreatorBalanceRepository,
	withdrawalRepo *repository.WithdrawalRepository,
	userRepo *repository.UserRepository,
	provider payment.Provider,
) *WithdrawalHandler {
	return &WithdrawalHandler{creatorRepo: creatorRepo, withdrawalRepo: withdrawalRepo, userRepo: userRepo, provider: provider}
}

type withdrawRequest struct {
	Amount string `json:"amount" binding:"required"`
	PixKey string `json:"pix_key"`
}

// Withdraw handles POST /creator/withdraw.
func (h *WithdrawalHandler) Withdraw(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cents, err := money.ToCents(req.Amount)
	if err != nil || cents <= 0 {
		fail(c, domain.ErrInvalidAmount)
		return
	}

	pixKey := req.PixKey
	if pixKey == "" {
		user, err := h.userRepo.GetByID(userID)
		if err != nil {
			fail(c, err)
			return
		}
		pixKey = user.PixKey
	}
	if pixKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no pix key on file"})
		return
	}

	cb, err := h.creatorRepo.GetByUserID(userID)
	if err != nil {
		fail(c, err)
		return
	}
	if cb.BalanceCents < cents {
		fail(c, domain.ErrInsufficientFunds)
		return
	}

	orderID := fmt.Sprintf("wd-%s", uuid.New().String())
	resp, err := h.provider.CreateTransfer(c.Request.Context(), payment.TransferRequest{
		AmountCents: cents,
		PixKey:      pixKey,
		Description: "criavo withdrawal",
		OrderID:     orderID,
	})
	if err != nil {
		log.Printf("[Withdrawal] provider transfer failed user=%d: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider unavailable"})
		return
	}

	tx, err := h.creatorRepo.Debit(userID, cents, "PIX withdrawal", orderID)
	if err != nil {
		fail(c, err)
		return
	}
	w := &models.Withdrawal{
		UserID:      userID,
		OrderID:     orderID,
		AmountCents: cents,
		PixKey:      pixKey,
		Status:      domain.TxStatusPending,
		ProviderRef: resp.Reference,
	}
	if err := h.withdrawalRepo.Create(w); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"withdrawal":  w,
		"transaction": tx,
		"amount":      money.FromCents(cents),
	})
}

// List handles GET /creator/withdrawals.
func (h *WithdrawalHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	ws, err := h.withdrawalRepo.ListByUser(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": ws})
}

// Balance handles GET /creator/balance.
func (h *WithdrawalHandler) Balance(c *gin.Context) {
	userID := middleware.GetUserID(c)
	cb, err := h.creatorRepo.GetOrCreate(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"balance":         money.FromCents(cb.BalanceCents),
		"lifetime_earned": money.FromCents(cb.LifetimeCents),
		"balance_cents":   cb.BalanceCents,
		"lifetime_cents":  cb.LifetimeCents,
	})
}
