// internal/models/order.go
package models

// Order snapshots the item's price, weight and seller at creation time. The
// snapshot stands on its own: deleting or mutating the item afterwards never
// changes an existing order, so there is no foreign-key cascade from items.
type Order struct {
	BaseModel
	ItemID     uint        `json:"item_id" gorm:"index;not null"`
	BuyerID    uint        `json:"buyer_id" gorm:"index;not null"`
	SellerID   uint        `json:"seller_id" gorm:"index;not null"`
	AmountPaid float64     `json:"amount_paid" gorm:"not null"`
	WeightKG   float64     `json:"weight_kg" gorm:"column:weight_kg;not null"`
	Status     OrderStatus `json:"status" gorm:"type:varchar(10);not null;default:'Pending'"`
}
