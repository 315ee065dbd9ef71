// internal/models/item.go
package models

type Item struct {
	BaseModel
	SellerID  uint    `json:"seller_id" gorm:"index;not null"`
	Name      string  `json:"name" gorm:"size:255;not null"`
	WasteType string  `json:"waste_type" gorm:"size:100;not null"`
	WeightKG  float64 `json:"weight_kg" gorm:"column:weight_kg;not null"`
	Price     float64 `json:"price" gorm:"not null"`

	// WeightKG times the emission coefficient in force when the item was
	// listed. Never recomputed, even if the coefficient changes later.
	EmissionsPrevented float64 `json:"emissions_prevented" gorm:"not null"`

	Seller *User `json:"-" gorm:"foreignKey:SellerID"`
}
