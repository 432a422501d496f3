package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"criavo/config"
	"criavo/internal/domain"
	"criavo/internal/repository"
	"criavo/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PixWebhookHandler processes PSP callbacks for both deposit charges and
// withdrawal transfers. The order id prefix tells the flows apart.
type PixWebhookHandler struct {
	cfg            *config.Config
	ledger         *service.LedgerService
	txRepo         *repository.TransactionRepository
	withdrawalRepo *repository.WithdrawalRepository
	creatorRepo    *repository.CreatorBalanceRepository
}

func NewPixWebhookHandler(
	cfg *config.Config,
	ledger *service.LedgerService,
	txRepo *repository.TransactionRepository,
	withdrawalRepo *repository.WithdrawalRepository,
	creatorRepo *repository.CreatorBalanceRepository,
) *PixWebhookHandler {
	return &PixWebhookHandler{cfg: cfg, ledger: ledger, txRepo: txRepo, withdrawalRepo: withdrawalRepo, creatorRepo: creatorRepo}
}

type pixCallback struct {
	OrderID  string `json:"order_id"`
	Status   string `json:"status"` // paid, failed, expired
	EndToEnd string `json:"end_to_end_id"`
}

func (h *PixWebhookHandler) Handle(c *gin.Context) {
	if secret := h.cfg.Pix.WebhookSecret; secret != "" {
		if c.GetHeader("X-Webhook-Secret") != secret {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}
	}
	var cb pixCallback
	if err := c.ShouldBindJSON(&cb); err != nil || cb.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	log.Printf("[PixWebhook] order_id=%s status=%s", cb.OrderID, cb.Status)
	switch {
	case strings.HasPrefix(cb.OrderID, "dep-"):
		h.handleDeposit(c, cb)
	case strings.HasPrefix(cb.OrderID, "wd-"):
		h.handleWithdrawal(c, cb)
	default:
		c.JSON(http.StatusOK, gin.H{"message": "ignored"})
	}
}

func (h *PixWebhookHandler) handleDeposit(c *gin.Context, cb pixCallback) {
	if cb.Status != "paid" {
		// Failed or expired charge: cancel the pending entry if still pending.
		if tx, err := h.txRepo.GetByProviderRef(cb.OrderID); err == nil {
			if err := h.ledger.CancelPending(tx.ID); err != nil && !errors.Is(err, domain.ErrInvalidTransition) {
				log.Printf("[PixWebhook] cancel pending failed: %v", err)
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "acknowledged"})
		return
	}
	entry, err := h.ledger.ConfirmDeposit(cb.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"message": "unknown order"})
			return
		}
		if errors.Is(err, domain.ErrInvalidTransition) {
			// Replayed webhook; the deposit already completed.
			c.JSON(http.StatusOK, gin.H{"message": "already processed"})
			return
		}
		log.Printf("[PixWebhook] confirm deposit failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deposit completed", "transaction_id": entry.ID})
}

func (h *PixWebhookHandler) handleWithdrawal(c *gin.Context, cb pixCallback) {
	w, err := h.withdrawalRepo.GetByOrderID(cb.OrderID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "unknown order"})
		return
	}
	if w.Status != domain.TxStatusPending {
		c.JSON(http.StatusOK, gin.H{"message": "already processed"})
		return
	}
	if cb.Status == "paid" {
		if err := h.withdrawalRepo.MarkStatus(cb.OrderID, "completed"); err != nil {
			log.Printf("[PixWebhook] mark withdrawal completed failed: %v", err)
		}
		if tx, err := h.txRepo.GetByProviderRef(cb.OrderID); err == nil {
			_ = h.txRepo.MarkStatus(tx.ID, domain.TxStatusCompleted)
		}
		c.JSON(http.StatusOK, gin.H{"message": "withdrawal completed"})
		return
	}
	// Transfer failed: refund the creator balance.
	if err := h.withdrawalRepo.MarkStatus(cb.OrderID, "failed"); err != nil {
		log.Printf("[PixWebhook] mark withdrawal failed failed: %v", err)
	}
	if tx, err := h.txRepo.GetByProviderRef(cb.OrderID); err == nil {
		_ = h.txRepo.MarkStatus(tx.ID, domain.TxStatusFailed)
	}
	if err := h.creatorRepo.Refund(w.UserID, w.AmountCents, "withdrawal "+cb.OrderID+" failed"); err != nil {
		log.Printf("[PixWebhook] refund after failed withdrawal: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "withdrawal failed, refunded"})
}
