// internal/handlers/orders.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agriloop/agriloop-backend/internal/services"
	"github.com/agriloop/agriloop-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// POST /api/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orderService.Create(userID, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GET /api/seller/orders
func (h *OrderHandler) ListSellerOrders(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	orders, err := h.orderService.ListSellerOrders(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"orders": orders})
}

// GET /api/buyer/orders
func (h *OrderHandler) ListBuyerOrders(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	orders, err := h.orderService.ListBuyerOrders(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"orders": orders})
}

// PATCH /api/seller/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if err := h.orderService.UpdateStatus(uint(orderID), userID, req.Status); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Order status updated",
		"status":  req.Status,
	})
}
