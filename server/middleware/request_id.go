package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDHeader carries the request ID back to the caller and into logs.
const RequestIDHeader = "X-Request-Id"

// RequestID assigns each request a UUID unless the caller supplied one.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(RequestIDHeader, id)
			c.Set(RequestIDHeader, id)
			return next(c)
		}
	}
}

// GetRequestID returns the request ID assigned by RequestID, if any.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(RequestIDHeader).(string); ok {
		return id
	}
	return ""
}
