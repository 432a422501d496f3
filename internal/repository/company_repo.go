package repository

import (
	"criavo/internal/models"

	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(c *models.Company) error {
	return r.db.Create(c).Error
}

func (r *CompanyRepository) GetByID(id uint) (*models.Company, error) {
	var c models.Company
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
