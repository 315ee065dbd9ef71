// internal/services/report_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriloop/agriloop-backend/internal/models"
)

func TestDashboardsDefaultToZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, newTestConfig())
	seller := createTestUser(t, db, "seller1", models.RoleSeller, true)
	buyer := createTestUser(t, db, "buyer1", models.RoleBuyer, true)

	sd, err := svc.GetSellerDashboard(seller.ID)
	require.NoError(t, err)
	assert.Zero(t, sd.TotalAmountSold)
	assert.Zero(t, sd.TotalWeightSold)
	assert.Zero(t, sd.TotalEmissionsPrevented)
	assert.Zero(t, sd.TotalTransactions)
	assert.Zero(t, sd.PendingOrders)
	assert.Zero(t, sd.CompletedOrders)

	bd, err := svc.GetBuyerDashboard(buyer.ID)
	require.NoError(t, err)
	assert.Zero(t, bd.TotalAmountSpent)
	assert.Zero(t, bd.TotalWeightPurchased)
	assert.Zero(t, bd.TotalEmissionsOffset)
	assert.Zero(t, bd.TotalTransactions)
}

// Full listing-to-dashboard flow: list, order, accept, then read the rollups.
func TestDashboardReflectsAcceptedOrder(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	catalog := NewCatalogService(db, cfg)
	orders := NewOrderService(db)
	reports := NewReportService(db, cfg)

	seller := createTestUser(t, db, "seller1", models.RoleSeller, true)
	buyer := createTestUser(t, db, "buyer1", models.RoleBuyer, true)

	item, err := catalog.AddItem(seller.ID, &AddItemRequest{
		Name:      "Rice Husk",
		WasteType: "Crop Residue",
		WeightKG:  100,
		Price:     500,
	})
	require.NoError(t, err)

	order, err := orders.Create(buyer.ID, &CreateOrderRequest{ItemID: item.ID})
	require.NoError(t, err)

	sd, err := reports.GetSellerDashboard(seller.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, sd.PendingOrders)
	assert.EqualValues(t, 0, sd.CompletedOrders)

	require.NoError(t, orders.UpdateStatus(order.ID, seller.ID, models.OrderStatusAccepted))

	sd, err = reports.GetSellerDashboard(seller.ID)
	require.NoError(t, err)
	assert.InDelta(t, 500.0, sd.TotalAmountSold, 1e-9)
	assert.InDelta(t, 100.0, sd.TotalWeightSold, 1e-9)
	assert.InDelta(t, 85.0, sd.TotalEmissionsPrevented, 1e-9)
	assert.EqualValues(t, 1, sd.TotalTransactions)
	assert.EqualValues(t, 0, sd.PendingOrders)
	assert.EqualValues(t, 1, sd.CompletedOrders)

	bd, err := reports.GetBuyerDashboard(buyer.ID)
	require.NoError(t, err)
	assert.InDelta(t, 500.0, bd.TotalAmountSpent, 1e-9)
	assert.InDelta(t, 100.0, bd.TotalWeightPurchased, 1e-9)
	assert.InDelta(t, 85.0, bd.TotalEmissionsOffset, 1e-9)
	assert.EqualValues(t, 1, bd.TotalTransactions)
}

func TestLeaderboardCountsOnlyAcceptedOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, newTestConfig())
	orders := NewOrderService(db)

	seller := createTestUser(t, db, "seller1", models.RoleSeller, true)
	buyer := createTestUser(t, db, "buyer1", models.RoleBuyer, true)
	itemA := createTestItem(t, db, seller.ID, "Rice Husk", 100, 500)
	itemB := createTestItem(t, db, seller.ID, "Wheat Straw", 40, 200)

	accepted, err := orders.Create(buyer.ID, &CreateOrderRequest{ItemID: itemA.ID})
	require.NoError(t, err)
	require.NoError(t, orders.UpdateStatus(accepted.ID, seller.ID, models.OrderStatusAccepted))

	rejected, err := orders.Create(buyer.ID, &CreateOrderRequest{ItemID: itemB.ID})
	require.NoError(t, err)
	require.NoError(t, orders.UpdateStatus(rejected.ID, seller.ID, models.OrderStatusRejected))

	board, err := svc.GetLeaderboard()
	require.NoError(t, err)

	require.Len(t, board.TopSellers, 1)
	assert.Equal(t, seller.ID, board.TopSellers[0].ID)
	assert.InDelta(t, 85.0, board.TopSellers[0].TotalCO2Prevented, 1e-9)
	assert.InDelta(t, 500.0, board.TopSellers[0].TotalRevenue, 1e-9)
	assert.EqualValues(t, 1, board.TopSellers[0].CompletedOrders)

	require.Len(t, board.TopBuyers, 1)
	assert.Equal(t, buyer.ID, board.TopBuyers[0].ID)
	assert.InDelta(t, 85.0, board.TopBuyers[0].TotalCO2Offset, 1e-9)

	assert.EqualValues(t, 1, board.PlatformStats.TotalSellers)
	assert.EqualValues(t, 1, board.PlatformStats.TotalBuyers)
	assert.EqualValues(t, 1, board.PlatformStats.TotalCompletedOrders)
	assert.InDelta(t, 85.0, board.PlatformStats.TotalCO2Prevented, 1e-9)
	assert.InDelta(t, 500.0, board.PlatformStats.TotalTransactionValue, 1e-9)
}

func TestLeaderboardRankingAndTieBreak(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, newTestConfig())
	orders := NewOrderService(db)

	big := createTestUser(t, db, "seller_big", models.RoleSeller, true)
	tied1 := createTestUser(t, db, "seller_tied1", models.RoleSeller, true)
	tied2 := createTestUser(t, db, "seller_tied2", models.RoleSeller, true)
	buyer := createTestUser(t, db, "buyer1", models.RoleBuyer, true)

	place := func(sellerID uint, weight float64) {
		item := createTestItem(t, db, sellerID, "Lot", weight, 100)
		order, err := orders.Create(buyer.ID, &CreateOrderRequest{ItemID: item.ID})
		require.NoError(t, err)
		require.NoError(t, orders.UpdateStatus(order.ID, sellerID, models.OrderStatusAccepted))
	}

	place(tied2.ID, 50)
	place(tied1.ID, 50)
	place(big.ID, 200)

	board, err := svc.GetLeaderboard()
	require.NoError(t, err)
	require.Len(t, board.TopSellers, 3)

	assert.Equal(t, big.ID, board.TopSellers[0].ID)
	// Equal impact orders by user id ascending.
	assert.Equal(t, tied1.ID, board.TopSellers[1].ID)
	assert.Equal(t, tied2.ID, board.TopSellers[2].ID)
}

func TestLeaderboardLimitsToTopTen(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, newTestConfig())
	orders := NewOrderService(db)
	buyer := createTestUser(t, db, "buyer1", models.RoleBuyer, true)

	for i := 0; i < 12; i++ {
		seller := createTestUser(t, db, "seller"+string(rune('a'+i)), models.RoleSeller, true)
		item := createTestItem(t, db, seller.ID, "Lot", float64(10+i), 100)
		order, err := orders.Create(buyer.ID, &CreateOrderRequest{ItemID: item.ID})
		require.NoError(t, err)
		require.NoError(t, orders.UpdateStatus(order.ID, seller.ID, models.OrderStatusAccepted))
	}

	board, err := svc.GetLeaderboard()
	require.NoError(t, err)
	assert.Len(t, board.TopSellers, 10)
	assert.EqualValues(t, 12, board.PlatformStats.TotalSellers)
}
