package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/services"
)

func runUserRouter(secureGroup *echo.Group, userService services.UserServiceInterface, logger *zap.Logger) {
	userCtrl := controllers.NewUserController(userService, logger)
	{
		secureGroup.GET("/users", userCtrl.GetUsers)
		secureGroup.POST("/users", userCtrl.CreateUser)
		secureGroup.GET("/users/:id", userCtrl.FindUser)
		secureGroup.PUT("/users/:id", userCtrl.UpdateUser)
		secureGroup.DELETE("/users/:id", userCtrl.DeleteUser)
	}
}
