package routes

import (
	"github.com/wictors/BackendAssignment-Fitness/api/handler"
	"github.com/wictors/BackendAssignment-Fitness/api/middleware"
	"github.com/wictors/BackendAssignment-Fitness/internal/entity"

	"github.com/labstack/echo/v4"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Admin          *handler.AdminHandler
	User           *handler.UserHandler
	Program        *handler.ProgramHandler
	AuthMiddleware middleware.AuthMiddleware
}

func NewRouter(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	userHandler *handler.UserHandler,
	programHandler *handler.ProgramHandler,
	authMiddleware middleware.AuthMiddleware,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		Admin:          adminHandler,
		User:           userHandler,
		Program:        programHandler,
		AuthMiddleware: authMiddleware,
	}
}

// RegisterRoutes wires the fixed public paths plus the ADMIN and USER route
// groups. Paths are kept exactly as existing clients call them.
func (r *Router) RegisterRoutes() {
	e := r.Echo
	auth := r.AuthMiddleware.RequireAuth
	adminOnly := middleware.RequireRole(entity.UserRoleAdmin)
	userOnly := middleware.RequireRole(entity.UserRoleUser)
	anyRole := middleware.RequireRole(entity.UserRoleAdmin, entity.UserRoleUser)

	// public
	e.POST("/login", r.Auth.Login)
	e.POST("/registration", r.Auth.Register)
	e.GET("/programs", r.Program.ListPrograms)
	e.GET("/exercises", r.Program.ListExercises)

	// admin
	e.GET("/all_users", r.Admin.ListAllUsers, auth, adminOnly)
	e.GET("/user", r.Admin.GetUser, auth, adminOnly)
	e.PUT("/exercise/:id", r.Admin.UpdateExercise, auth, adminOnly)
	e.PUT("/exercise", r.Admin.MissingID, auth, adminOnly)
	e.PUT("/user/:id", r.Admin.UpdateUser, auth, adminOnly)
	e.PUT("/user", r.Admin.MissingID, auth, adminOnly)
	e.DELETE("/user/:id", r.Admin.DeleteUser, auth, adminOnly)

	// user
	e.GET("/users", r.User.ListUsers, auth, userOnly)
	e.GET("/profile", r.User.Profile, auth, userOnly)
	e.GET("/profile/exercises", r.User.CompletedExercises, auth, userOnly)

	// POST /exercise and DELETE /exercise/:id mean different things to the
	// two roles: admins manage the exercise catalogue, users manage their own
	// logged performances. The path is shared, so dispatch on the
	// authenticated role.
	e.POST("/exercise", dispatchByRole(r.Admin.CreateExercise, r.User.LogExercise), auth, anyRole)
	e.DELETE("/exercise/:id", dispatchByRole(r.Admin.DeleteExercise, r.User.DeleteLoggedExercise), auth, anyRole)
	e.DELETE("/exercise", r.Admin.MissingID, auth, anyRole)
}

func dispatchByRole(admin, user echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, _ := middleware.RoleFromContext(c)
		if role == entity.UserRoleAdmin {
			return admin(c)
		}
		return user(c)
	}
}
