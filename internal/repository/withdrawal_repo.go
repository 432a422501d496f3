package repository

import (
	"time"

	"criavo/internal/models"

	"gorm.io/gorm"
)

type WithdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

func (r *WithdrawalRepository) Create(w *models.Withdrawal) error {
	return r.db.Create(w).Error
}

func (r *WithdrawalRepository) GetByOrderID(orderID string) (*models.Withdrawal, error) {
	var w models.Withdrawal
	if err := r.db.Where("order_id = ?", orderID).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WithdrawalRepository) ListByUser(userID uint) ([]models.Withdrawal, error) {
	var ws []models.Withdrawal
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&ws).Error; err != nil {
		return nil, err
	}
	return ws, nil
}

func (r *WithdrawalRepository) MarkStatus(orderID, status string) error {
	updates := map[string]interface{}{"status": status}
	if status == "completed" {
		updates["completed_at"] = time.Now()
	}
	return r.db.Model(&models.Withdrawal{}).Where("order_id = ?", orderID).Updates(updates).Error
}
