package middleware

import (
	"github.com/wictors/BackendAssignment-Fitness/internal/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextUserIDKey = "auth_user_id"
	contextEmailKey  = "auth_email"
	contextRoleKey   = "auth_role"
)

func SetAuthContext(c echo.Context, userID uuid.UUID, email string, role entity.UserRole) {
	c.Set(contextUserIDKey, userID)
	c.Set(contextEmailKey, email)
	c.Set(contextRoleKey, role)
}

func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	value := c.Get(contextUserIDKey)
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func EmailFromContext(c echo.Context) (string, bool) {
	value := c.Get(contextEmailKey)
	email, ok := value.(string)
	return email, ok
}

func RoleFromContext(c echo.Context) (entity.UserRole, bool) {
	value := c.Get(contextRoleKey)
	role, ok := value.(entity.UserRole)
	return role, ok
}
