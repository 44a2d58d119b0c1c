package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/services"
)

func runDashboardRouter(secureGroup *echo.Group, dashboardService services.DashboardServiceInterface, logger *zap.Logger) {
	dashboardCtrl := controllers.NewDashboardController(dashboardService, logger)
	{
		secureGroup.GET("/dashboard", dashboardCtrl.GetStats)
	}
}
