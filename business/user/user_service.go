package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"menuReco/domain"
	"menuReco/pkg/logger"
	"menuReco/pkg/utils"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// TokenRepository keeps issued tokens so they can be revoked before they
// expire.
type TokenRepository interface {
	StoreToken(ctx context.Context, userID, token string, data domain.TokenData, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, userID, token string) error
}

type userService struct {
	userRepo  UserRepository
	tokenRepo TokenRepository
	validate  *validator.Validate
}

func NewUserService(
	userRepo UserRepository,
	tokenRepo TokenRepository,
	validate *validator.Validate,
) *userService {
	return &userService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		validate:  validate,
	}
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(user.Email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		logger.Warn("invalid email format", "error", err)
		return domain.User{}, ErrInvalidEmail
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Warn("invalid user password", "error", err)
		return domain.User{}, ErrWeakPassword
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existingUser.ID > 0 {
		return domain.User{}, ErrEmailExists
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FullName: user.FullName,
		Email:    email,
		Password: string(passwordHash),
		Role:     RoleCustomer,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("failed to create new user", "error", err)
		return domain.User{}, err
	}

	logger.Info("user registered", "user_id", newUser.ID)
	newUser.Password = ""
	return newUser, nil
}

// Login checks the credentials, issues a JWT and records it in the token
// store. A token missing from the store is rejected by the auth middleware.
func (s *userService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		logger.Warn("login with unknown email", "error", err)
		return "", domain.User{}, ErrInvalidCredentials
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Warn("login with wrong password", "user_id", user.ID)
		return "", domain.User{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user, ipAddress, userAgent)
	if err != nil {
		return "", domain.User{}, err
	}

	user.Password = ""
	return token, user, nil
}

// ValidateTokenFromRedis returns the user id the token was issued to.
func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.tokenRepo.ValidateToken(ctx, token)
}

// RefreshToken swaps a still valid token for a new one.
func (s *userService) RefreshToken(ctx context.Context, oldToken, ipAddress, userAgent string) (string, domain.User, error) {
	claims, err := utils.ParseJWT(oldToken)
	if err != nil {
		return "", domain.User{}, ErrInvalidToken
	}

	userID, err := s.tokenRepo.ValidateToken(ctx, oldToken)
	if err != nil || userID != claims.UserID {
		return "", domain.User{}, ErrInvalidToken
	}

	id, err := strconv.ParseUint(userID, 10, 64)
	if err != nil {
		return "", domain.User{}, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, uint(id))
	if err != nil {
		return "", domain.User{}, err
	}

	if err := s.tokenRepo.DeleteToken(ctx, userID, oldToken); err != nil {
		logger.Warn("failed to revoke old token", "user_id", userID, "error", err)
	}

	token, err := s.issueToken(ctx, user, ipAddress, userAgent)
	if err != nil {
		return "", domain.User{}, err
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	if err := s.tokenRepo.DeleteToken(ctx, strconv.FormatUint(uint64(userID), 10), token); err != nil {
		logger.Error("failed to delete token", "user_id", userID, "error", err)
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Warn("failed to get user by id", "user_id", id, "error", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

func (s *userService) issueToken(ctx context.Context, user domain.User, ipAddress, userAgent string) (string, error) {
	userIDStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIDStr, user.Role)
	if err != nil {
		logger.Error("failed to generate token", "error", err)
		return "", errors.New("failed to generate token")
	}

	now := time.Now()
	ttl := utils.TokenTTL()
	data := domain.TokenData{
		UserID:    userIDStr,
		Role:      user.Role,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := s.tokenRepo.StoreToken(ctx, userIDStr, token, data, ttl); err != nil {
		logger.Error("failed to store token", "user_id", user.ID, "error", err)
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}
