// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/agriloop/agriloop-backend/internal/apperrors"
	"github.com/agriloop/agriloop-backend/internal/models"
)

type UserService struct {
	db             *gorm.DB
	storageService *StorageService
}

type Profile struct {
	Username     string         `json:"username"`
	FullName     string         `json:"full_name"`
	Email        string         `json:"email"`
	Gender       *models.Gender `json:"gender"`
	DateOfBirth  *string        `json:"date_of_birth"`
	City         *string        `json:"city"`
	Role         models.Role    `json:"role"`
	PaymentQRURL *string        `json:"payment_qr_url,omitempty"`
}

func NewUserService(db *gorm.DB, storageService *StorageService) *UserService {
	return &UserService{
		db:             db,
		storageService: storageService,
	}
}

func (s *UserService) GetProfile(userID uint) (*Profile, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &Profile{
		Username:     user.Username,
		FullName:     user.FullName,
		Email:        user.Email,
		Gender:       user.Gender,
		DateOfBirth:  user.DateOfBirth,
		City:         user.City,
		Role:         user.Role,
		PaymentQRURL: user.PaymentQRURL,
	}, nil
}

// SetPaymentQR stores a seller's payment QR image and saves its URL on the
// profile. Buyers pay against this QR directly; the platform never moves money.
func (s *UserService) SetPaymentQR(userID uint, file multipart.File, header *multipart.FileHeader) (string, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NotFound("user not found")
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	if user.Role != models.RoleSeller {
		return "", apperrors.Forbidden("only sellers can set a payment QR")
	}

	if err := s.storageService.ValidateImage(file); err != nil {
		return "", apperrors.Validation("payment QR must be a JPEG or PNG image")
	}

	result, err := s.storageService.UploadFile(file, header, s.storageService.PaymentQRUploadOptions())
	if err != nil {
		return "", fmt.Errorf("failed to store payment QR: %w", err)
	}

	// Replace an existing QR object, best effort.
	if user.PaymentQRKey != nil {
		if err := s.storageService.DeleteFile(*user.PaymentQRKey); err != nil {
			logrus.WithError(err).WithField("key", *user.PaymentQRKey).Warn("Failed to delete previous payment QR")
		}
	}

	updates := map[string]interface{}{
		"payment_qr_url": result.URL,
		"payment_qr_key": result.Key,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return "", fmt.Errorf("failed to save payment QR: %w", err)
	}

	return result.URL, nil
}

func (s *UserService) ClearPaymentQR(userID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if user.PaymentQRKey != nil {
		if err := s.storageService.DeleteFile(*user.PaymentQRKey); err != nil {
			logrus.WithError(err).WithField("key", *user.PaymentQRKey).Warn("Failed to delete payment QR object")
		}
	}

	updates := map[string]interface{}{
		"payment_qr_url": nil,
		"payment_qr_key": nil,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to clear payment QR: %w", err)
	}

	return nil
}
