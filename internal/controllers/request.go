package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"
)

type RequestController struct {
	requestService services.MaintenanceRequestServiceInterface
	logger         *zap.Logger
}

func NewRequestController(
	requestService services.MaintenanceRequestServiceInterface,
	logger *zap.Logger,
) *RequestController {
	return &RequestController{requestService: requestService, logger: logger}
}

func parseIDParam(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (c *RequestController) GetRequests(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, totalCount, err := c.requestService.GetRequests(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "maintenance requests fetched", http.StatusOK, totalCount)
}

func (c *RequestController) FindRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.FindRequest(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "maintenance request fetched", http.StatusOK)
}

func (c *RequestController) CreateRequest(ctx echo.Context) error {
	var payload dto.CreateMaintenanceRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "malformed request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.CreateRequest(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "maintenance request created", http.StatusCreated)
}

func (c *RequestController) UpdateRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateMaintenanceRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "malformed request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.UpdateRequest(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "maintenance request updated", http.StatusOK)
}

func (c *RequestController) DeleteRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.requestService.DeleteRequest(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "maintenance request deleted", http.StatusOK)
}

func (c *RequestController) TransitionStatus(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.TransitionStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "malformed request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.TransitionStatus(ctx.Request().Context(), id, payload.Status)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "status updated", http.StatusOK)
}

func (c *RequestController) AssignTechnician(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.AssignTechnicianDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "malformed request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.AssignTechnician(ctx.Request().Context(), id, payload.UserID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "technician assigned", http.StatusOK)
}

func (c *RequestController) Kanban(ctx echo.Context) error {
	res, err := c.requestService.Kanban(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "kanban board fetched", http.StatusOK)
}

// CalendarEvents defaults to a window of one month back and two ahead when
// the client sends no range.
func (c *RequestController) CalendarEvents(ctx echo.Context) error {
	now := time.Now()
	from := now.AddDate(0, -1, 0)
	to := now.AddDate(0, 2, 0)

	if raw := ctx.QueryParam("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid 'from' date"), c.logger)
		}
		from = parsed
	}
	if raw := ctx.QueryParam("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid 'to' date"), c.logger)
		}
		to = parsed
	}

	res, err := c.requestService.CalendarEvents(ctx.Request().Context(), from, to)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "calendar events fetched", http.StatusOK)
}
