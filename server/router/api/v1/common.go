package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apierr "github.com/Dilshanrad22/mind-case-backend/server/internal/errors"
	"github.com/Dilshanrad22/mind-case-backend/server/middleware"
)

// okResponse is the success envelope shared by all resources.
type okResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// errResponse carries the short client-facing message of a failed request.
type errResponse struct {
	Message string `json:"message"`
}

func respondData(c echo.Context, status int, data any) error {
	return c.JSON(status, okResponse{Success: true, Data: data})
}

func respondList(c echo.Context, count int, data any) error {
	return c.JSON(http.StatusOK, okResponse{Success: true, Count: &count, Data: data})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, okResponse{Success: true, Message: message})
}

// respondError maps err through the error taxonomy: the caller gets the
// short classified message, the log gets the full chain.
func respondError(c echo.Context, err error) error {
	status := apierr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("path", c.Request().URL.Path),
			slog.String("error", err.Error()),
		)
	}
	return c.JSON(status, errResponse{Message: apierr.MessageOf(err)})
}

// formatTime renders a unix timestamp the way the API exposes all times.
func formatTime(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}
