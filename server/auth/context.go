package auth

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// userIDContextKey is the echo context key holding the authenticated user ID.
const userIDContextKey = "auth/user-id"

// SetUserID stores the authenticated user ID on the request context.
func SetUserID(c echo.Context, userID int32) {
	c.Set(userIDContextKey, userID)
}

// UserID returns the authenticated user ID, or 0 when the request is anonymous.
func UserID(c echo.Context) int32 {
	if id, ok := c.Get(userIDContextKey).(int32); ok {
		return id
	}
	return 0
}

func subjectFromUserID(userID int32) string {
	return strconv.FormatInt(int64(userID), 10)
}

func userIDFromSubject(subject string) (int32, error) {
	id, err := strconv.ParseInt(subject, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "malformed token subject %q", subject)
	}
	return int32(id), nil
}
