package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

const adminKeyHeader = "X-Admin-Key"

// AdminKey gates the back office behind a shared header key. Comparison is
// constant-time so the key cannot be probed byte by byte.
func AdminKey(apiKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if apiKey == "" {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "admin api key not configured")
			}

			provided := c.Request().Header.Get(adminKeyHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid admin key")
			}

			return next(c)
		}
	}
}
