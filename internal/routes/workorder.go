package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/services"
)

func runWorkOrderRouter(
	secureGroup *echo.Group,
	workOrderService services.WorkOrderServiceInterface,
	activityService services.ActivityServiceInterface,
	sessionService services.SessionServiceInterface,
	logger *zap.Logger,
) {
	workOrderCtrl := controllers.NewWorkOrderController(workOrderService, activityService, sessionService, logger)
	activityCtrl := controllers.NewActivityController(activityService, logger)
	sessionCtrl := controllers.NewSessionController(sessionService, logger)
	{
		secureGroup.GET("/work-orders", workOrderCtrl.GetWorkOrders)
		secureGroup.POST("/work-orders", workOrderCtrl.CreateWorkOrder)
		secureGroup.GET("/work-orders/:id", workOrderCtrl.FindWorkOrder)
		secureGroup.PUT("/work-orders/:id", workOrderCtrl.UpdateWorkOrder)
		secureGroup.DELETE("/work-orders/:id", workOrderCtrl.DeleteWorkOrder)
		secureGroup.GET("/work-orders/:id/activities", workOrderCtrl.GetActivities)
		secureGroup.GET("/work-orders/:id/sessions", workOrderCtrl.GetSessions)

		secureGroup.POST("/activities", activityCtrl.CreateActivity)
		secureGroup.PUT("/activities/:id", activityCtrl.UpdateActivity)
		secureGroup.DELETE("/activities/:id", activityCtrl.DeleteActivity)

		secureGroup.POST("/sessions", sessionCtrl.CreateSession)
		secureGroup.PUT("/sessions/:id", sessionCtrl.UpdateSession)
		secureGroup.DELETE("/sessions/:id", sessionCtrl.DeleteSession)
	}
}
