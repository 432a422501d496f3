package repository

import (
	"criavo/internal/domain"
	"criavo/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

// ListCreators returns creator users, optionally only those with a balance.
func (r *UserRepository) ListCreators() ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("role = ?", domain.RoleCreator).Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
