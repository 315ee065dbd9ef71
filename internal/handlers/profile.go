// internal/handlers/profile.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/agriloop/agriloop-backend/internal/models"
	"github.com/agriloop/agriloop-backend/internal/services"
	"github.com/agriloop/agriloop-backend/internal/utils"
)

type ProfileHandler struct {
	userService *services.UserService
}

func NewProfileHandler(userService *services.UserService) *ProfileHandler {
	return &ProfileHandler{
		userService: userService,
	}
}

// GET /api/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, profile)
}

// POST /api/profile/payment-qr
func (h *ProfileHandler) UploadPaymentQR(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	// Reject non-sellers before reading the multipart body.
	if role, ok := utils.GetRoleFromContext(c); !ok || role != string(models.RoleSeller) {
		utils.ForbiddenResponse(c, "only sellers can set a payment QR")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "Payment QR image is required", err.Error())
		return
	}
	defer file.Close()

	url, err := h.userService.SetPaymentQR(userID, file, header)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":        "Payment QR updated",
		"payment_qr_url": url,
	})
}

// DELETE /api/profile/payment-qr
func (h *ProfileHandler) DeletePaymentQR(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.userService.ClearPaymentQR(userID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Payment QR removed",
	})
}
