package handler

import (
	"errors"
	"net/http"

	"criavo/internal/domain"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// fail writes the error with its machine-readable code so the client can
// render a specific message instead of a generic toast.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrWalletNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrNoCycleConfigured):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientFunds):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrDuplicateCoupon),
		errors.Is(err, domain.ErrMaxUsesExceeded):
		status = http.StatusConflict
	}
	body := gin.H{"error": err.Error()}
	if code := domain.ErrorCode(err); code != "" {
		body["code"] = code
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		body["error"] = "not found"
	}
	if status == http.StatusInternalServerError {
		body = gin.H{"error": "internal error"}
	}
	c.JSON(status, body)
}
