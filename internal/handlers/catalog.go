// internal/handlers/catalog.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agriloop/agriloop-backend/internal/services"
	"github.com/agriloop/agriloop-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GET /api/seller/items
func (h *CatalogHandler) ListSellerItems(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	items, err := h.catalogService.ListSellerItems(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"items": items})
}

// POST /api/items
func (h *CatalogHandler) AddItem(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	item, err := h.catalogService.AddItem(userID, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Item listed successfully",
		"item":    item,
	})
}

// DELETE /api/seller/items/:id
func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid item ID", nil)
		return
	}

	if err := h.catalogService.DeleteItem(uint(itemID), userID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Item deleted successfully",
	})
}

// GET /api/marketplace
func (h *CatalogHandler) ListMarketplace(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	items, err := h.catalogService.ListMarketplace(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"items": items})
}
