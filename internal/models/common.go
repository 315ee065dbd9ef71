// internal/models/common.go
package models

import (
	"time"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

// Enums
type Role string

const (
	RoleSeller Role = "Seller"
	RoleBuyer  Role = "Buyer"
)

func (r Role) Valid() bool {
	return r == RoleSeller || r == RoleBuyer
}

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "Pending"
	OrderStatusAccepted OrderStatus = "Accepted"
	OrderStatusRejected OrderStatus = "Rejected"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}
