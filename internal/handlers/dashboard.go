package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"spin-history-dashboard/internal/services"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboard.Snapshot())
}

func (h *DashboardHandler) GetRoster(c *gin.Context) {
	snapshot := h.dashboard.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"state":   snapshot.State,
		"players": snapshot.Roster,
		"count":   len(snapshot.Roster),
	})
}

func (h *DashboardHandler) GetHistory(c *gin.Context) {
	snapshot := h.dashboard.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"state":   snapshot.State,
		"history": snapshot.Feed,
		"count":   len(snapshot.Feed),
	})
}

func (h *DashboardHandler) GetPlayer(c *gin.Context) {
	address := c.Param("address")

	detail, err := h.dashboard.Player(c.Request.Context(), address)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Player not found",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to render player",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"player":  detail,
	})
}

func (h *DashboardHandler) Refresh(c *gin.Context) {
	dashboard, err := h.dashboard.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to fetch history",
			"kind":    services.ErrorKind(err),
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"cycle_id": dashboard.CycleID,
		"state":    dashboard.State,
		"players":  len(dashboard.Roster),
		"rounds":   len(dashboard.Feed),
	})
}

func (h *DashboardHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"state":  h.dashboard.State(),
	})
}
