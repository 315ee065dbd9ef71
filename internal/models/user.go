// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username     string  `json:"username" gorm:"uniqueIndex;size:50;not null"`
	FullName     string  `json:"full_name" gorm:"size:100;not null"`
	Email        string  `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Gender       *Gender `json:"gender,omitempty" gorm:"type:varchar(10)"`
	DateOfBirth  *string `json:"date_of_birth,omitempty" gorm:"size:10"`
	City         *string `json:"city,omitempty" gorm:"size:100"`
	Role         Role    `json:"role" gorm:"type:varchar(10);not null"`
	PasswordHash string  `json:"-" gorm:"size:255;not null"`
	Verified     bool    `json:"verified" gorm:"not null;default:false"`

	// Sellers only. The buyer pays against this QR out of band; the platform
	// never touches the money.
	PaymentQRURL *string `json:"payment_qr_url,omitempty" gorm:"size:512"`
	PaymentQRKey *string `json:"-" gorm:"size:255"`

	// Relationships
	Items []Item `json:"items,omitempty" gorm:"foreignKey:SellerID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// Summary is the public shape returned by signup and login.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
