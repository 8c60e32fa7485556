package handlers

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.Engine, dashboardHandler *DashboardHandler, wsHandler *WebSocketHandler) {
	router.GET("/health", dashboardHandler.Health)

	api := router.Group("/api")
	{
		api.GET("/dashboard", dashboardHandler.GetDashboard)
		api.GET("/roster", dashboardHandler.GetRoster)
		api.GET("/history", dashboardHandler.GetHistory)
		api.GET("/players/:address", dashboardHandler.GetPlayer)
		api.POST("/refresh", dashboardHandler.Refresh)

		api.GET("/ws", wsHandler.HandleWebSocket)
	}
}
