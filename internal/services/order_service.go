// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/agriloop/agriloop-backend/internal/apperrors"
	"github.com/agriloop/agriloop-backend/internal/models"
)

type OrderService struct {
	db *gorm.DB
}

type CreateOrderRequest struct {
	ItemID uint `json:"item_id"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// SellerOrder is an order joined with the buyer's display fields and the item
// name. Items are joined loosely so an order outlives its item's deletion.
type SellerOrder struct {
	models.Order
	ItemName   string `json:"item_name"`
	BuyerName  string `json:"buyer_name"`
	BuyerEmail string `json:"buyer_email"`
}

type BuyerOrder struct {
	models.Order
	ItemName    string `json:"item_name"`
	SellerName  string `json:"seller_name"`
	SellerEmail string `json:"seller_email"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// Create places a Pending order, copying the item's seller, price and weight
// into the order row. The read-then-insert here runs without a transaction on
// purpose: items have no stock to reserve, so two concurrent purchases of the
// same item simply yield two independent orders.
func (s *OrderService) Create(buyerID uint, req *CreateOrderRequest) (*models.Order, error) {
	if req.ItemID == 0 {
		return nil, apperrors.Validation("item_id is required")
	}

	var item models.Item
	if err := s.db.First(&item, req.ItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("item not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	order := &models.Order{
		ItemID:     item.ID,
		BuyerID:    buyerID,
		SellerID:   item.SellerID,
		AmountPaid: item.Price,
		WeightKG:   item.WeightKG,
		Status:     models.OrderStatusPending,
	}

	if err := s.db.Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

func (s *OrderService) ListSellerOrders(sellerID uint) ([]SellerOrder, error) {
	orders := []SellerOrder{}
	err := s.db.Table("orders").
		Select("orders.*, COALESCE(items.name, '') AS item_name, users.full_name AS buyer_name, users.email AS buyer_email").
		Joins("LEFT JOIN items ON items.id = orders.item_id").
		Joins("JOIN users ON users.id = orders.buyer_id").
		Where("orders.seller_id = ?", sellerID).
		Order("orders.created_at DESC").
		Scan(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list seller orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) ListBuyerOrders(buyerID uint) ([]BuyerOrder, error) {
	orders := []BuyerOrder{}
	err := s.db.Table("orders").
		Select("orders.*, COALESCE(items.name, '') AS item_name, users.full_name AS seller_name, users.email AS seller_email").
		Joins("LEFT JOIN items ON items.id = orders.item_id").
		Joins("JOIN users ON users.id = orders.seller_id").
		Where("orders.buyer_id = ?", buyerID).
		Order("orders.created_at DESC").
		Scan(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list buyer orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves a Pending order to Accepted or Rejected. Both states are
// terminal; the WHERE clause pins the current status so a second decision,
// or one from a non-owner, affects zero rows and reads as not found.
func (s *OrderService) UpdateStatus(orderID, sellerID uint, status models.OrderStatus) error {
	if status != models.OrderStatusAccepted && status != models.OrderStatusRejected {
		return apperrors.Validation(`status must be "Accepted" or "Rejected"`)
	}

	result := s.db.Model(&models.Order{}).
		Where("id = ? AND seller_id = ? AND status = ?", orderID, sellerID, models.OrderStatusPending).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("order not found or not authorized")
	}
	return nil
}
