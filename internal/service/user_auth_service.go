package service

import (
	"strings"
	"time"
	"unicode"

	"github.com/heatspares-next/internal/config"
	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/logger"
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserAuthService handles storefront customer authentication.
type UserAuthService struct {
	users  repository.UserRepository
	tokens *TokenIssuer
	policy config.PasswordPolicyConfig
}

// NewUserAuthService creates a customer auth service.
func NewUserAuthService(users repository.UserRepository, tokens *TokenIssuer, policy config.PasswordPolicyConfig) *UserAuthService {
	return &UserAuthService{users: users, tokens: tokens, policy: policy}
}

// RegisterInput is the customer sign-up payload.
type RegisterInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	Area        string `json:"area"`
}

// Register creates a customer account and issues a session token.
func (s *UserAuthService) Register(input RegisterInput) (string, *models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.checkPassword(input.Password); err != nil {
		return "", nil, err
	}
	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}
	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  input.DisplayName,
		Phone:        input.Phone,
		City:         input.City,
		Area:         input.Area,
		Status:       constants.UserStatusActive,
	}
	if err := s.users.Create(user); err != nil {
		if repository.IsDuplicateKey(err) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login verifies credentials and issues a session token.
func (s *UserAuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if user.Status != constants.UserStatusActive {
		return "", nil, ErrAccountBlocked
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	if err := s.users.UpdateLastLogin(user.ID, time.Now()); err != nil {
		logger.Warnw("user_last_login_update_failed", "user_id", user.ID, "error", err)
	}
	return token, user, nil
}

// Verify parses a session token and loads the user behind it.
func (s *UserAuthService) Verify(tokenString string) (*models.User, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.GetByID(claims.AccountID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != constants.UserStatusActive {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfile saves the user's contact and default-location details.
func (s *UserAuthService) UpdateProfile(userID uint, displayName, phone, city, area string) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	user.DisplayName = displayName
	user.Phone = phone
	user.City = city
	user.Area = area
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// checkPassword enforces the configured password policy.
func (s *UserAuthService) checkPassword(password string) error {
	minLength := s.policy.MinLength
	if minLength <= 0 {
		minLength = 8
	}
	if len(password) < minLength {
		return ErrWeakPassword
	}
	var hasUpper, hasLower, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		}
	}
	if s.policy.RequireUpper && !hasUpper {
		return ErrWeakPassword
	}
	if s.policy.RequireLower && !hasLower {
		return ErrWeakPassword
	}
	if s.policy.RequireNumber && !hasNumber {
		return ErrWeakPassword
	}
	return nil
}
