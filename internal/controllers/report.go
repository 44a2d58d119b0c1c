package controllers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// ExportRequests streams the spreadsheet straight into the response body.
func (c *ReportController) ExportRequests(ctx echo.Context) error {
	var filter dto.ReportFilterDTO
	if err := ctx.Bind(&filter); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "malformed query parameters"), c.logger)
	}
	if err := ctx.Validate(&filter); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	file, filename, err := c.reportService.ExportRequestsXLSX(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer file.Close()

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().WriteHeader(http.StatusOK)

	if err := file.Write(ctx.Response().Writer); err != nil {
		c.logger.Error("failed to stream xlsx report", zap.Error(err))
		return err
	}
	return nil
}
