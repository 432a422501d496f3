package handler

import (
	"net/http"
	"strconv"

	"criavo/internal/middleware"
	"criavo/internal/repository"
	"criavo/internal/service"
	"criavo/pkg/money"

	"github.com/gin-gonic/gin"
)

type BoxHandler struct {
	walletRepo *repository.WalletRepository
	boxes      *service.BoxService
}

func NewBoxHandler(walletRepo *repository.WalletRepository, boxes *service.BoxService) *BoxHandler {
	return &BoxHandler{walletRepo: walletRepo, boxes: boxes}
}

func (h *BoxHandler) Create(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)
	var req struct {
		Name         string `json:"name" binding:"required"`
		Description  string `json:"description"`
		Color        string `json:"color"`
		Icon         string `json:"icon"`
		TargetAmount string `json:"target_amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var target *int64
	if req.TargetAmount != "" {
		cents, err := money.ToCents(req.TargetAmount)
		if err != nil || cents <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target amount", "code": "invalid_amount"})
			return
		}
		target = &cents
	}
	w, err := h.walletRepo.GetByCompanyID(companyID)
	if err != nil {
		fail(c, err)
		return
	}
	box, err := h.boxes.CreateBox(w.ID, req.Name, req.Description, req.Color, req.Icon, target)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, box)
}

func (h *BoxHandler) List(c *gin.Context) {
	w, err := h.walletRepo.GetByCompanyID(middleware.GetCompanyID(c))
	if err != nil {
		fail(c, err)
		return
	}
	boxes, err := h.boxes.ListBoxes(w.ID)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(boxes))
	for i := range boxes {
		b := &boxes[i]
		out = append(out, gin.H{"box": b, "progress": b.Progress()})
	}
	c.JSON(http.StatusOK, out)
}

func (h *BoxHandler) Allocate(c *gin.Context) {
	h.moveFunds(c, false)
}

func (h *BoxHandler) Deallocate(c *gin.Context) {
	h.moveFunds(c, true)
}

// ownedBox resolves the :id param and checks the box belongs to the
// authenticated company's wallet.
func (h *BoxHandler) ownedBox(c *gin.Context) (uint, bool) {
	boxID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid box id"})
		return 0, false
	}
	w, err := h.walletRepo.GetByCompanyID(middleware.GetCompanyID(c))
	if err != nil {
		fail(c, err)
		return 0, false
	}
	box, err := h.boxes.Box(uint(boxID))
	if err != nil || box.CompanyWalletID != w.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "box not found"})
		return 0, false
	}
	return uint(boxID), true
}

func (h *BoxHandler) moveFunds(c *gin.Context, out bool) {
	boxID, ok := h.ownedBox(c)
	if !ok {
		return
	}
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
	if out {
		if err := h.boxes.Deallocate(boxID, cents); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deallocated"})
		return
	}
	entry, err := h.boxes.Allocate(boxID, cents, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *BoxHandler) Deactivate(c *gin.Context) {
	boxID, ok := h.ownedBox(c)
	if !ok {
		return
	}
	if err := h.boxes.Deactivate(boxID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "box deactivated"})
}
