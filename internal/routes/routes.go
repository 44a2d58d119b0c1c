package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/listeners"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/middleware"
	"gearguard/pkg/service"
)

// InitRouter wires repositories, services and controllers and mounts every
// route group under /api. Everything except /api/auth/login and refresh sits
// behind the JWT middleware.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	txManager := repositories.NewTxManager(dbConn)
	bus := eventbus.New(logger)

	// Repositories.
	userRepo := repositories.NewUserRepository(dbConn, logger)
	teamRepo := repositories.NewTeamRepository(dbConn, logger)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	requestRepo := repositories.NewRequestRepository(dbConn, logger)
	workOrderRepo := repositories.NewWorkOrderRepository(dbConn, logger)
	activityRepo := repositories.NewActivityRepository(dbConn, logger)
	sessionRepo := repositories.NewSessionRepository(dbConn, logger)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// Services.
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, logger)
	userService := services.NewUserService(userRepo, logger)
	teamService := services.NewTeamService(teamRepo, userRepo, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, teamRepo, userRepo, logger)
	requestService := services.NewMaintenanceRequestService(requestRepo, equipmentRepo, teamRepo, userRepo, txManager, bus, logger)
	workOrderService := services.NewWorkOrderService(workOrderRepo, equipmentRepo, requestRepo, txManager, logger)
	activityService := services.NewActivityService(activityRepo, workOrderRepo, logger)
	sessionService := services.NewSessionService(sessionRepo, workOrderRepo, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, cacheRepo, logger)
	reportService := services.NewReportService(requestRepo, logger)

	listeners.NewNotificationListener(logger).Register(bus)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authService, logger)
	runUserRouter(secureGroup, userService, logger)
	runTeamRouter(secureGroup, teamService, logger)
	runEquipmentRouter(secureGroup, equipmentService, logger)
	runRequestRouter(secureGroup, requestService, logger)
	runWorkOrderRouter(secureGroup, workOrderService, activityService, sessionService, logger)
	runDashboardRouter(secureGroup, dashboardService, logger)
	runReportRouter(secureGroup, reportService, logger)
}
