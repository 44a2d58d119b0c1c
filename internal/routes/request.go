package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/services"
)

func runRequestRouter(secureGroup *echo.Group, requestService services.MaintenanceRequestServiceInterface, logger *zap.Logger) {
	requestCtrl := controllers.NewRequestController(requestService, logger)
	{
		secureGroup.GET("/maintenance-requests", requestCtrl.GetRequests)
		secureGroup.POST("/maintenance-requests", requestCtrl.CreateRequest)
		secureGroup.GET("/maintenance-requests/kanban", requestCtrl.Kanban)
		secureGroup.GET("/maintenance-requests/calendar", requestCtrl.CalendarEvents)
		secureGroup.GET("/maintenance-requests/:id", requestCtrl.FindRequest)
		secureGroup.PUT("/maintenance-requests/:id", requestCtrl.UpdateRequest)
		secureGroup.DELETE("/maintenance-requests/:id", requestCtrl.DeleteRequest)
		secureGroup.PATCH("/maintenance-requests/:id/status", requestCtrl.TransitionStatus)
		secureGroup.PATCH("/maintenance-requests/:id/assign", requestCtrl.AssignTechnician)
	}
}
