package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/services"
)

func runAuthRouter(api *echo.Group, secureGroup *echo.Group, authService services.AuthServiceInterface, logger *zap.Logger) {
	authCtrl := controllers.NewAuthController(authService, logger)
	{
		api.POST("/auth/login", authCtrl.Login)
		api.POST("/auth/refresh", authCtrl.Refresh)
		secureGroup.POST("/auth/logout", authCtrl.Logout)
		secureGroup.GET("/auth/profile", authCtrl.Profile)
	}
}
