package middleware

import (
	"net/http"
	"strings"

	"github.com/wictors/BackendAssignment-Fitness/internal/entity"
	"github.com/wictors/BackendAssignment-Fitness/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuthMiddleware struct {
	JWT *utils.JWTManager
}

// RequireAuth is the authentication stage: every failure mode (missing,
// malformed, bad signature, expired) collapses to the same 401 so callers
// cannot probe which check rejected them.
func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.JWT == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Access Denied")
		}
		token := extractToken(c.Request())
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Access Denied")
		}
		claims, err := m.JWT.ParseAccessToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Access Denied")
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Access Denied")
		}
		role := entity.UserRole(claims.Role)
		if !role.Valid() {
			return echo.NewHTTPError(http.StatusUnauthorized, "Access Denied")
		}
		SetAuthContext(c, userID, claims.Email, role)
		return next(c)
	}
}

// extractToken reads the raw signed token from the Authorization header, as
// existing clients send it. A conventional "Bearer " prefix is tolerated.
func extractToken(r *http.Request) string {
	authorization := strings.TrimSpace(r.Header.Get("Authorization"))
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return authorization
}
