// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/agriloop/agriloop-backend/internal/apperrors"
	"github.com/agriloop/agriloop-backend/internal/config"
	"github.com/agriloop/agriloop-backend/internal/models"
	"github.com/agriloop/agriloop-backend/internal/utils"
)

type AuthService struct {
	db                  *gorm.DB
	cfg                 *config.Config
	notificationService *NotificationService
}

type SignupRequest struct {
	Username    string      `json:"username" validate:"required,username"`
	FullName    string      `json:"full_name" validate:"required"`
	Email       string      `json:"email" validate:"required,email"`
	Role        models.Role `json:"role" validate:"required"`
	Password    string      `json:"password" validate:"required"`
	Gender      *string     `json:"gender,omitempty"`
	DateOfBirth *string     `json:"date_of_birth,omitempty"`
	City        *string     `json:"city,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  models.UserSummary `json:"user"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config, notificationService *NotificationService) *AuthService {
	return &AuthService{
		db:                  db,
		cfg:                 cfg,
		notificationService: notificationService,
	}
}

func (s *AuthService) Signup(req *SignupRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("username, full_name, email, role, and password are required")
	}

	if !req.Role.Valid() {
		return nil, apperrors.Validation(`role must be either "Seller" or "Buyer"`)
	}

	var gender *models.Gender
	if req.Gender != nil && *req.Gender != "" {
		g := models.Gender(*req.Gender)
		if !g.Valid() {
			return nil, apperrors.Validation(`gender must be "Male", "Female", or "Other"`)
		}
		gender = &g
	}

	// Check if user already exists
	var existingUser models.User
	if err := s.db.Where("email = ? OR username = ?", req.Email, req.Username).First(&existingUser).Error; err == nil {
		return nil, apperrors.Conflict("email or username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	user := &models.User{
		Username:    req.Username,
		FullName:    req.FullName,
		Email:       req.Email,
		Gender:      gender,
		DateOfBirth: req.DateOfBirth,
		City:        req.City,
		Role:        req.Role,
		Verified:    false,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		// A concurrent signup can slip past the existence check above; the
		// unique indexes catch it here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("email or username already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Best-effort confirmation mail. Signup already succeeded; delivery
	// failures are logged and never surfaced to the caller.
	token, err := utils.GenerateEmailToken(user.Email, s.cfg.JWT.EmailTokenTTL)
	if err != nil {
		logrus.WithError(err).WithField("email", user.Email).Error("Failed to generate verification token")
		return user, nil
	}
	go func() {
		if err := s.notificationService.SendVerificationEmail(user, token); err != nil {
			logrus.WithError(err).WithField("email", user.Email).Error("Failed to send verification email")
		}
	}()

	return user, nil
}

// VerifyEmail flips the user's verified flag. Re-confirming an already
// verified user is a no-op success.
func (s *AuthService) VerifyEmail(token string) error {
	email, err := utils.ValidateEmailToken(token)
	if err != nil {
		return apperrors.Validation("invalid or expired verification token")
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if user.Verified {
		return nil
	}

	if err := s.db.Model(&user).Update("verified", true).Error; err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}

	return nil
}

func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("email and password are required")
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !user.Verified {
		return nil, apperrors.Forbidden("email not verified, please verify your email to log in")
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, apperrors.Unauthorized("incorrect password")
	}

	token, err := utils.GenerateSessionToken(user.ID, user.Username, string(user.Role), s.cfg.JWT.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return &LoginResponse{
		Token: token,
		User:  user.Summary(),
	}, nil
}

func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}
