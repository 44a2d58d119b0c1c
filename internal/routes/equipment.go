package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/services"
)

func runEquipmentRouter(secureGroup *echo.Group, equipmentService services.EquipmentServiceInterface, logger *zap.Logger) {
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)
	{
		secureGroup.GET("/equipment", equipmentCtrl.GetEquipment)
		secureGroup.POST("/equipment", equipmentCtrl.CreateEquipment)
		secureGroup.GET("/equipment/:id", equipmentCtrl.FindEquipment)
		secureGroup.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment)
		secureGroup.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment)
		secureGroup.GET("/equipment-categories", equipmentCtrl.GetCategories)
		secureGroup.POST("/equipment-categories", equipmentCtrl.CreateCategory)
	}
}
