package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/services"
)

func runTeamRouter(secureGroup *echo.Group, teamService services.TeamServiceInterface, logger *zap.Logger) {
	teamCtrl := controllers.NewTeamController(teamService, logger)
	{
		secureGroup.GET("/teams", teamCtrl.GetTeams)
		secureGroup.POST("/teams", teamCtrl.CreateTeam)
		secureGroup.GET("/teams/:id", teamCtrl.FindTeam)
		secureGroup.PUT("/teams/:id", teamCtrl.UpdateTeam)
		secureGroup.DELETE("/teams/:id", teamCtrl.DeleteTeam)
		secureGroup.POST("/teams/:id/members", teamCtrl.AddMember)
		secureGroup.DELETE("/teams/:id/members/:userId", teamCtrl.RemoveMember)
	}
}
