package services

import "spin-history-dashboard/internal/models"

type Broadcaster interface {
	BroadcastDashboard(dashboard *models.Dashboard)
}
