package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"
)

type WorkOrderController struct {
	workOrderService services.WorkOrderServiceInterface
	activityService  services.ActivityServiceInterface
	sessionService   services.SessionServiceInterface
	logger           *zap.Logger
}

func NewWorkOrderController(
	workOrderService services.WorkOrderServiceInterface,
	activityService services.ActivityServiceInterface,
	sessionService services.SessionServiceInterface,
	logger *zap.Logger,
) *WorkOrderController {
	return &WorkOrderController{
		workOrderService: workOrderService,
		activityService:  activityService,
		sessionService:   sessionService,
		logger:           logger,
	}
}

func (c *WorkOrderController) GetWorkOrders(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, totalCount, err := c.workOrderService.GetWorkOrders(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "work orders fetched", http.StatusOK, totalCount)
}

func (c *WorkOrderController) FindWorkOrder(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.workOrderService.FindWorkOrder(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "work order fetched", http.StatusOK)
}

func (c *WorkOrderController) CreateWorkOrder(ctx echo.Context) error {
	var payload dto.CreateWorkOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "malformed request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.workOrderService.CreateWorkOrder(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "work order created", http.StatusCreated)
}

func (c *WorkOrderController) UpdateWorkOrder(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateWorkOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "malformed request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.workOrderService.UpdateWorkOrder(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "work order updated", http.StatusOK)
}

func (c *WorkOrderController) DeleteWorkOrder(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.workOrderService.DeleteWorkOrder(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "work order deleted", http.StatusOK)
}

func (c *WorkOrderController) GetActivities(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.activityService.GetActivitiesForWorkOrder(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "activities fetched", http.StatusOK)
}

func (c *WorkOrderController) GetSessions(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.sessionService.GetSessionsForWorkOrder(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "sessions fetched", http.StatusOK)
}
