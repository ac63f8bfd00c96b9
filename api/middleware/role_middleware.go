package middleware

import (
	"net/http"

	"github.com/wictors/BackendAssignment-Fitness/internal/entity"

	"github.com/labstack/echo/v4"
)

// RequireRole is the authorization stage; it assumes RequireAuth already ran.
func RequireRole(roles ...entity.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			currentRole, ok := RoleFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "You do not have the required permissions")
			}
			for _, role := range roles {
				if currentRole == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "You do not have the required permissions")
		}
	}
}
