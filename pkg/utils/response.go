package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "gearguard/pkg/errors"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

// SuccessResponse writes the standard success envelope. When the client asked
// for pagination and a total is supplied, the body is wrapped with pagination
// metadata.
func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HTTPResponse{Status: true, Message: message}
	withPagination, _ := strconv.ParseBool(ctx.QueryParam("withPagination"))
	if withPagination && len(total) > 0 {
		filter := ParseFilterFromQuery(ctx.Request().URL.Query())
		totalPages := 0
		if filter.Limit > 0 {
			totalPages = (int(total[0]) + filter.Limit - 1) / filter.Limit
		}
		pagination := map[string]interface{}{
			"total_count": total[0],
			"page":        filter.Page,
			"limit":       filter.Limit,
			"total_pages": totalPages,
		}
		response.Body = map[string]interface{}{"list": body, "pagination": pagination}
	} else {
		response.Body = body
	}
	return ctx.JSON(code, response)
}

// ErrorResponse maps application errors to HTTP codes:
// ValidationError -> 400 with per-field details, NotFoundError -> 404,
// PermissionError -> 403, auth sentinels -> 401, anything else -> 500.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("http error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}
		response := map[string]interface{}{"status": false, "message": httpErr.Message}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var valErr *apperrors.ValidationError
	if errors.As(err, &valErr) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  false,
			"message": valErr.Error(),
			"body":    map[string]interface{}{"fields": valErr.Fields},
		})
	}

	var nfErr *apperrors.NotFoundError
	if errors.As(err, &nfErr) {
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"status":  false,
			"message": nfErr.Error(),
		})
	}

	var permErr *apperrors.PermissionError
	if errors.As(err, &permErr) {
		return c.JSON(http.StatusForbidden, map[string]interface{}{
			"status":  false,
			"message": permErr.Error(),
		})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(map[string]string, len(validationErrors))
		var msgs []string
		for _, e := range validationErrors {
			fields[e.Field()] = e.Tag()
			msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  false,
			"message": "validation failed: " + strings.Join(msgs, "; "),
			"body":    map[string]interface{}{"fields": fields},
		})
	}

	switch {
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenRevoked),
		errors.Is(err, apperrors.ErrTokenIsNotAccess),
		errors.Is(err, apperrors.ErrTokenIsNotRefresh):
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"status":  false,
			"message": err.Error(),
		})
	case errors.Is(err, apperrors.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]interface{}{
			"status":  false,
			"message": err.Error(),
		})
	}

	logger.Error("unexpected error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "internal server error",
	})
}
