package handler

import (
	"net/http"

	"criavo/internal/middleware"
	"criavo/internal/repository"
	"criavo/internal/service"
	"criavo/pkg/money"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	walletRepo  *repository.WalletRepository
	txRepo      *repository.TransactionRepository
	boxRepo     *repository.BoxRepository
	creatorRepo *repository.CreatorBalanceRepository
	ledger      *service.LedgerService
	billing     *service.BillingService
}

func NewWalletHandler(
	walletRepo *repository.WalletRepository,
	txRepo *repository.TransactionRepository,
	boxRepo *repository.BoxRepository,
	creatorRepo *repository.CreatorBalanceRepository,
	ledger *service.LedgerService,
	billing *service.BillingService,
) *WalletHandler {
	return &WalletHandler{
		walletRepo:  walletRepo,
		txRepo:      txRepo,
		boxRepo:     boxRepo,
		creatorRepo: creatorRepo,
		ledger:      ledger,
		billing:     billing,
	}
}

// Get returns the company wallet together with its boxes.
func (h *WalletHandler) Get(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)
	w, err := h.walletRepo.GetByCompanyID(companyID)
	if err != nil {
		fail(c, err)
		return
	}
	boxes, err := h.boxRepo.ListByWallet(w.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"wallet": w,
		"boxes":  boxes,
		"balance": gin.H{
			"balance":  money.FromCents(w.BalanceCents),
			"reserved": money.FromCents(w.ReservedCents),
			"currency": w.Currency,
		},
	})
}

// Transactions returns the wallet's ledger, oldest first.
func (h *WalletHandler) Transactions(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)
	w, err := h.walletRepo.GetByCompanyID(companyID)
	if err != nil {
		fail(c, err)
		return
	}
	txs, err := h.txRepo.ListByWallet(w.ID, 0)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

// Deposit credits the wallet directly. Amount arrives as decimal BRL and is
// converted to centavos before touching the ledger.
func (h *WalletHandler) Deposit(c *gin.Context) {
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
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount", "code": "invalid_amount"})
		return
	}
	w, err := h.walletRepo.GetByCompanyID(companyID)
	if err != nil {
		fail(c, err)
		return
	}
	if _, err := h.ledger.Deposit(w.ID, cents, req.Description); err != nil {
		fail(c, err)
		return
	}
	updated, err := h.walletRepo.GetByID(w.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// PayCreator pays out of the wallet into a creator's balance.
func (h *WalletHandler) PayCreator(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)
	var req struct {
		CreatorID   uint   `json:"creator_id" binding:"required"`
		Amount      string `json:"amount" binding:"required"`
		Type        string `json:"type" binding:"required,oneof=payment_fixed payment_variable commission bonus"`
		Description string `json:"description"`
		CampaignID  *uint  `json:"campaign_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cents, err := money.ToCents(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount", "code": "invalid_amount"})
		return
	}
	w, err := h.walletRepo.GetByCompanyID(companyID)
	if err != nil {
		fail(c, err)
		return
	}
	tx, err := h.ledger.PayCreator(w.ID, req.CreatorID, cents, req.Type, req.Description, req.CampaignID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// Reserve earmarks funds; Release returns them to the free pool.
func (h *WalletHandler) Reserve(c *gin.Context) {
	h.adjustReserved(c, false)
}

func (h *WalletHandler) Release(c *gin.Context) {
	h.adjustReserved(c, true)
}

func (h *WalletHandler) adjustReserved(c *gin.Context, release bool) {
	companyID := middleware.GetCompanyID(c)
	var req struct {
		Amount string `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cents, err := money.ToCents(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount", "code": "invalid_amount"})
		return
	}
	w, err := h.walletRepo.GetByCompanyID(companyID)
	if err != nil {
		fail(c, err)
		return
	}
	var updated interface{}
	if release {
		updated, err = h.ledger.Release(w.ID, cents)
	} else {
		updated, err = h.ledger.Reserve(w.ID, cents)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Creators lists creator users with their accumulated balances.
func (h *WalletHandler) Creators(c *gin.Context) {
	rows, err := h.creatorRepo.ListWithBalances()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
