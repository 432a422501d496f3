package service

import (
	"errors"

	"criavo/config"
	"criavo/internal/auth"
	"criavo/internal/domain"
	"criavo/internal/models"
	"criavo/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
)

type AuthService struct {
	cfg         *config.Config
	userRepo    *repository.UserRepository
	companyRepo *repository.CompanyRepository
	walletRepo  *repository.WalletRepository
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository, companyRepo *repository.CompanyRepository, walletRepo *repository.WalletRepository) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo, companyRepo: companyRepo, walletRepo: walletRepo}
}

// Register creates a user. BRAND signups also get a company and its wallet,
// since every company owns exactly one wallet from onboarding.
func (s *AuthService) Register(name, email, password, role, companyName string) (*models.User, string, string, error) {
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if role == domain.RoleBrand {
		company := &models.Company{Name: companyName}
		if company.Name == "" {
			company.Name = name
		}
		if err := s.companyRepo.Create(company); err != nil {
			return nil, "", "", err
		}
		if _, err := s.walletRepo.GetOrCreateByCompanyID(company.ID); err != nil {
			return nil, "", "", err
		}
		u.CompanyID = &company.ID
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, "", "", err
	}
	access, refresh, err := s.tokens(u)
	return u, access, refresh, err
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, refresh, err := s.tokens(u)
	return u, access, refresh, err
}

func (s *AuthService) Refresh(refreshToken string) (string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", err
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", err
	}
	var companyID uint
	if u.CompanyID != nil {
		companyID = *u.CompanyID
	}
	return auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role, companyID)
}

func (s *AuthService) tokens(u *models.User) (string, string, error) {
	var companyID uint
	if u.CompanyID != nil {
		companyID = *u.CompanyID
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role, companyID)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return access, "", err
	}
	return access, refresh, nil
}
