package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/services"
)

type DashboardHandler struct {
  log              *logger.Logger
  dashboardService services.DashboardService
}

func NewDashboardHandler(log *logger.Logger, dashboardService services.DashboardService) *DashboardHandler {
  return &DashboardHandler{
    log:              log.With("handler", "DashboardHandler"),
    dashboardService: dashboardService,
  }
}

func (h *DashboardHandler) GetPLODashboard(c *gin.Context) {
  payload, err := h.dashboardService.BuildPLODashboard(c.Request.Context())
  if err != nil {
    h.log.Error("GetPLODashboard failed", "error", err)
    RespondError(c, http.StatusInternalServerError, "dashboard_failed", err)
    return
  }
  RespondOK(c, gin.H{
    "success": true,
    "data":    payload,
  })
}
