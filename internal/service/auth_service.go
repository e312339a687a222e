package service

import (
	"time"

	"github.com/heatspares-next/internal/logger"
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles back-office admin authentication.
type AuthService struct {
	admins repository.AdminRepository
	tokens *TokenIssuer
}

// NewAuthService creates an admin auth service.
func NewAuthService(admins repository.AdminRepository, tokens *TokenIssuer) *AuthService {
	return &AuthService{admins: admins, tokens: tokens}
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(username, password string) (string, *models.Admin, error) {
	admin, err := s.admins.GetByUsername(username)
	if err != nil {
		return "", nil, err
	}
	if admin == nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(admin.ID, admin.Username)
	if err != nil {
		return "", nil, err
	}
	if err := s.admins.UpdateLastLogin(admin.ID, time.Now()); err != nil {
		logger.Warnw("admin_last_login_update_failed", "admin_id", admin.ID, "error", err)
	}
	return token, admin, nil
}

// Verify parses a session token and loads the admin behind it.
func (s *AuthService) Verify(tokenString string) (*models.Admin, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	admin, err := s.admins.GetByID(claims.AccountID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// CreateAdmin registers a back-office account.
func (s *AuthService) CreateAdmin(username, password string, isSuper bool) (*models.Admin, error) {
	existing, err := s.admins.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{
		Username:     username,
		PasswordHash: string(hash),
		IsSuper:      isSuper,
	}
	if err := s.admins.Create(admin); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return admin, nil
}

// ChangePassword replaces an admin's password after verifying the old one.
func (s *AuthService) ChangePassword(adminID uint, oldPassword, newPassword string) error {
	admin, err := s.admins.GetByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin.PasswordHash = string(hash)
	return s.admins.Update(admin)
}
