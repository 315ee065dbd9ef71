// internal/services/report_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/agriloop/agriloop-backend/internal/config"
	"github.com/agriloop/agriloop-backend/internal/models"
)

// ReportService computes the read-side rollups over orders on demand. Nothing
// is materialized or cached, so an accept/reject decision shows up in the very
// next dashboard read.
type ReportService struct {
	db  *gorm.DB
	cfg *config.Config
}

type SellerDashboard struct {
	TotalAmountSold         float64 `json:"totalAmountSold"`
	TotalWeightSold         float64 `json:"totalWeightSold"`
	TotalEmissionsPrevented float64 `json:"totalEmissionsPrevented"`
	TotalTransactions       int64   `json:"totalTransactions"`
	PendingOrders           int64   `json:"pendingOrders"`
	CompletedOrders         int64   `json:"completedOrders"`
}

type BuyerDashboard struct {
	TotalAmountSpent     float64 `json:"totalAmountSpent"`
	TotalWeightPurchased float64 `json:"totalWeightPurchased"`
	TotalEmissionsOffset float64 `json:"totalEmissionsOffset"`
	TotalTransactions    int64   `json:"totalTransactions"`
}

type SellerRanking struct {
	ID                uint    `json:"id"`
	Username          string  `json:"username"`
	FullName          string  `json:"full_name"`
	City              *string `json:"city"`
	TotalCO2Prevented float64 `json:"total_co2_prevented" gorm:"column:total_co2_prevented"`
	TotalRevenue      float64 `json:"total_revenue"`
	CompletedOrders   int64   `json:"completed_orders"`
}

type BuyerRanking struct {
	ID                 uint    `json:"id"`
	Username           string  `json:"username"`
	FullName           string  `json:"full_name"`
	City               *string `json:"city"`
	TotalCO2Offset     float64 `json:"total_co2_offset" gorm:"column:total_co2_offset"`
	TotalSpent         float64 `json:"total_spent"`
	CompletedPurchases int64   `json:"completed_purchases"`
}

type PlatformStats struct {
	TotalSellers          int64   `json:"total_sellers"`
	TotalBuyers           int64   `json:"total_buyers"`
	TotalCO2Prevented     float64 `json:"total_co2_prevented" gorm:"column:total_co2_prevented"`
	TotalCompletedOrders  int64   `json:"total_completed_orders"`
	TotalTransactionValue float64 `json:"total_transaction_value"`
}

type Leaderboard struct {
	TopSellers    []SellerRanking `json:"topSellers"`
	TopBuyers     []BuyerRanking  `json:"topBuyers"`
	PlatformStats PlatformStats   `json:"platformStats"`
}

const leaderboardSize = 10

func NewReportService(db *gorm.DB, cfg *config.Config) *ReportService {
	return &ReportService{
		db:  db,
		cfg: cfg,
	}
}

func (s *ReportService) GetSellerDashboard(sellerID uint) (*SellerDashboard, error) {
	stats := &SellerDashboard{}
	err := s.db.Model(&models.Order{}).
		Select(`COALESCE(SUM(amount_paid), 0) AS total_amount_sold,
			COALESCE(SUM(weight_kg), 0) AS total_weight_sold,
			COALESCE(SUM(weight_kg * ?), 0) AS total_emissions_prevented,
			COUNT(*) AS total_transactions,
			COUNT(CASE WHEN status = ? THEN 1 END) AS pending_orders,
			COUNT(CASE WHEN status = ? THEN 1 END) AS completed_orders`,
			s.cfg.Emissions.Coefficient, models.OrderStatusPending, models.OrderStatusAccepted).
		Where("seller_id = ?", sellerID).
		Scan(stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute seller dashboard: %w", err)
	}
	return stats, nil
}

func (s *ReportService) GetBuyerDashboard(buyerID uint) (*BuyerDashboard, error) {
	stats := &BuyerDashboard{}
	err := s.db.Model(&models.Order{}).
		Select(`COALESCE(SUM(amount_paid), 0) AS total_amount_spent,
			COALESCE(SUM(weight_kg), 0) AS total_weight_purchased,
			COALESCE(SUM(weight_kg * ?), 0) AS total_emissions_offset,
			COUNT(*) AS total_transactions`,
			s.cfg.Emissions.Coefficient).
		Where("buyer_id = ?", buyerID).
		Scan(stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute buyer dashboard: %w", err)
	}
	return stats, nil
}

// GetLeaderboard ranks users by CO2 impact over Accepted orders. Ties break on
// user id ascending so the ordering is reproducible.
func (s *ReportService) GetLeaderboard() (*Leaderboard, error) {
	board := &Leaderboard{
		TopSellers: []SellerRanking{},
		TopBuyers:  []BuyerRanking{},
	}
	coef := s.cfg.Emissions.Coefficient

	err := s.db.Raw(`
		SELECT u.id, u.username, u.full_name, u.city,
			COALESCE(SUM(o.weight_kg * ?), 0) AS total_co2_prevented,
			COALESCE(SUM(o.amount_paid), 0) AS total_revenue,
			COUNT(o.id) AS completed_orders
		FROM users u
		JOIN orders o ON o.seller_id = u.id AND o.status = ?
		WHERE u.role = ?
		GROUP BY u.id, u.username, u.full_name, u.city
		ORDER BY total_co2_prevented DESC, u.id ASC
		LIMIT ?`,
		coef, models.OrderStatusAccepted, models.RoleSeller, leaderboardSize).
		Scan(&board.TopSellers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank sellers: %w", err)
	}

	err = s.db.Raw(`
		SELECT u.id, u.username, u.full_name, u.city,
			COALESCE(SUM(o.weight_kg * ?), 0) AS total_co2_offset,
			COALESCE(SUM(o.amount_paid), 0) AS total_spent,
			COUNT(o.id) AS completed_purchases
		FROM users u
		JOIN orders o ON o.buyer_id = u.id AND o.status = ?
		WHERE u.role = ?
		GROUP BY u.id, u.username, u.full_name, u.city
		ORDER BY total_co2_offset DESC, u.id ASC
		LIMIT ?`,
		coef, models.OrderStatusAccepted, models.RoleBuyer, leaderboardSize).
		Scan(&board.TopBuyers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank buyers: %w", err)
	}

	if err := s.platformStats(&board.PlatformStats); err != nil {
		return nil, err
	}

	return board, nil
}

func (s *ReportService) platformStats(stats *PlatformStats) error {
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleSeller).Count(&stats.TotalSellers).Error; err != nil {
		return fmt.Errorf("failed to count sellers: %w", err)
	}
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleBuyer).Count(&stats.TotalBuyers).Error; err != nil {
		return fmt.Errorf("failed to count buyers: %w", err)
	}

	err := s.db.Model(&models.Order{}).
		Select(`COALESCE(SUM(weight_kg * ?), 0) AS total_co2_prevented,
			COUNT(*) AS total_completed_orders,
			COALESCE(SUM(amount_paid), 0) AS total_transaction_value`,
			s.cfg.Emissions.Coefficient).
		Where("status = ?", models.OrderStatusAccepted).
		Scan(stats).Error
	if err != nil {
		return fmt.Errorf("failed to compute platform stats: %w", err)
	}
	return nil
}
