// internal/services/catalog_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/agriloop/agriloop-backend/internal/apperrors"
	"github.com/agriloop/agriloop-backend/internal/config"
	"github.com/agriloop/agriloop-backend/internal/models"
	"github.com/agriloop/agriloop-backend/internal/utils"
)

type CatalogService struct {
	db  *gorm.DB
	cfg *config.Config
}

type AddItemRequest struct {
	Name      string  `json:"name" validate:"required"`
	WasteType string  `json:"waste_type" validate:"required"`
	WeightKG  float64 `json:"weight_kg" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"required,gt=0"`
}

// MarketplaceItem is an item joined with its seller's display fields.
type MarketplaceItem struct {
	models.Item
	SellerName  string `json:"seller_name"`
	SellerEmail string `json:"seller_email"`
}

func NewCatalogService(db *gorm.DB, cfg *config.Config) *CatalogService {
	return &CatalogService{
		db:  db,
		cfg: cfg,
	}
}

func (s *CatalogService) ListSellerItems(sellerID uint) ([]models.Item, error) {
	items := []models.Item{}
	if err := s.db.Where("seller_id = ?", sellerID).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// ListMarketplace returns every listing that does not belong to the requesting
// user, newest first. A plain feed; no ranking or search.
func (s *CatalogService) ListMarketplace(excludingUserID uint) ([]MarketplaceItem, error) {
	items := []MarketplaceItem{}
	err := s.db.Table("items").
		Select("items.*, users.full_name AS seller_name, users.email AS seller_email").
		Joins("JOIN users ON users.id = items.seller_id").
		Where("items.seller_id <> ?", excludingUserID).
		Order("items.created_at DESC").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list marketplace: %w", err)
	}
	return items, nil
}

func (s *CatalogService) AddItem(sellerID uint, req *AddItemRequest) (*models.Item, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("name, waste_type, weight_kg, and price are required and must be positive")
	}

	item := &models.Item{
		SellerID:  sellerID,
		Name:      req.Name,
		WasteType: req.WasteType,
		WeightKG:  req.WeightKG,
		Price:     req.Price,
		// Frozen at creation time with the coefficient in force now.
		EmissionsPrevented: req.WeightKG * s.cfg.Emissions.Coefficient,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}

// DeleteItem removes a listing if it belongs to the seller. Existing orders
// keep their snapshots and survive the deletion untouched.
func (s *CatalogService) DeleteItem(itemID, sellerID uint) error {
	result := s.db.Where("id = ? AND seller_id = ?", itemID, sellerID).Delete(&models.Item{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("item not found or not authorized")
	}
	return nil
}
