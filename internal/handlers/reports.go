// internal/handlers/reports.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/agriloop/agriloop-backend/internal/services"
	"github.com/agriloop/agriloop-backend/internal/utils"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GET /api/seller/dashboard
func (h *ReportHandler) SellerDashboard(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	dashboard, err := h.reportService.GetSellerDashboard(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, dashboard)
}

// GET /api/buyer/dashboard
func (h *ReportHandler) BuyerDashboard(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	dashboard, err := h.reportService.GetBuyerDashboard(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, dashboard)
}

// GET /api/leaderboard
func (h *ReportHandler) Leaderboard(c *gin.Context) {
	leaderboard, err := h.reportService.GetLeaderboard()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, leaderboard)
}
