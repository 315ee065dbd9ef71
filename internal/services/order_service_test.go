// internal/services/order_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriloop/agriloop-backend/internal/apperrors"
	"github.com/agriloop/agriloop-backend/internal/models"
)

func TestCreateOrderSnapshotsItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	seller := createTestUser(t, db, "seller1", models.RoleSeller, true)
	buyer := createTestUser(t, db, "buyer1", models.RoleBuyer, true)
	item := createTestItem(t, db, seller.ID, "Rice Husk", 100, 500)

	order, err := svc.Create(buyer.ID, &CreateOrderRequest{ItemID: item.ID})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, seller.ID, order.SellerID)
	assert.Equal(t, 500.0, order.AmountPaid)
	assert.Equal(t, 100.0, order.WeightKG)

	// Repricing and deleting the listing must not touch the snapshot.
	require.NoError(t, db.Model(item).Update("price", 999).Error)
	require.NoError(t, db.Delete(item).Error)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, 500.0, reloaded.AmountPaid)
	assert.Equal(t, 100.0, reloaded.WeightKG)
	assert.Equal(t, seller.ID, reloaded.SellerID)
}

func TestCreateOrderErrors(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	buyer := createTestUser(t, db, "buyer1", models.RoleBuyer, true)

	_, err := svc.Create(buyer.ID, &CreateOrderRequest{ItemID: 0})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Create(buyer.ID, &CreateOrderRequest{ItemID: 9999})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSelfPurchaseIsAllowed(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	seller := createTestUser(t, db, "seller1", models.RoleSeller, true)
	item := createTestItem(t, db, seller.ID, "Rice Husk", 100, 500)

	order, err := svc.Create(seller.ID, &CreateOrderRequest{ItemID: item.ID})
	require.NoError(t, err)
	assert.Equal(t, seller.ID, order.BuyerID)
	assert.Equal(t, seller.ID, order.SellerID)
}

func TestUpdateStatusPendingOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	seller := createTestUser(t, db, "seller1", models.RoleSeller, true)
	intruder := createTestUser(t, db, "seller2", models.RoleSeller, true)
	buyer := createTestUser(t, db, "buyer1", models.RoleBuyer, true)
	item := createTestItem(t, db, seller.ID, "Rice Husk", 100, 500)

	order, err := svc.Create(buyer.ID, &CreateOrderRequest{ItemID: item.ID})
	require.NoError(t, err)

	err = svc.UpdateStatus(order.ID, seller.ID, models.OrderStatus("Shipped"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = svc.UpdateStatus(order.ID, intruder.ID, models.OrderStatusAccepted)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, svc.UpdateStatus(order.ID, seller.ID, models.OrderStatusAccepted))

	// Accepted is terminal; a second decision reads as not found.
	err = svc.UpdateStatus(order.ID, seller.ID, models.OrderStatusRejected)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusAccepted, reloaded.Status)
}

func TestOrderListingsSurviveItemDeletion(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	seller := createTestUser(t, db, "seller1", models.RoleSeller, true)
	buyer := createTestUser(t, db, "buyer1", models.RoleBuyer, true)
	item := createTestItem(t, db, seller.ID, "Rice Husk", 100, 500)

	order, err := svc.Create(buyer.ID, &CreateOrderRequest{ItemID: item.ID})
	require.NoError(t, err)
	require.NoError(t, db.Delete(item).Error)

	sellerOrders, err := svc.ListSellerOrders(seller.ID)
	require.NoError(t, err)
	require.Len(t, sellerOrders, 1)
	assert.Equal(t, order.ID, sellerOrders[0].ID)
	assert.Equal(t, "", sellerOrders[0].ItemName)
	assert.Equal(t, "buyer1 Test", sellerOrders[0].BuyerName)
	assert.Equal(t, "buyer1@example.com", sellerOrders[0].BuyerEmail)

	buyerOrders, err := svc.ListBuyerOrders(buyer.ID)
	require.NoError(t, err)
	require.Len(t, buyerOrders, 1)
	assert.Equal(t, "", buyerOrders[0].ItemName)
	assert.Equal(t, "seller1 Test", buyerOrders[0].SellerName)
}

func TestOrderListingsAreScoped(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	seller := createTestUser(t, db, "seller1", models.RoleSeller, true)
	buyer := createTestUser(t, db, "buyer1", models.RoleBuyer, true)
	otherBuyer := createTestUser(t, db, "buyer2", models.RoleBuyer, true)
	item := createTestItem(t, db, seller.ID, "Rice Husk", 100, 500)

	_, err := svc.Create(buyer.ID, &CreateOrderRequest{ItemID: item.ID})
	require.NoError(t, err)

	orders, err := svc.ListBuyerOrders(otherBuyer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
