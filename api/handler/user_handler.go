package handler

import (
	"errors"
	"net/http"

	"github.com/wictors/BackendAssignment-Fitness/api/middleware"
	"github.com/wictors/BackendAssignment-Fitness/internal/dto"
	"github.com/wictors/BackendAssignment-Fitness/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserHandler serves the USER-gated self-service routes. The acting user is
// always taken from the token, never from the request body.
type UserHandler struct {
	Users     *service.UserService
	Exercises *service.ExerciseService
	Validate  *validator.Validate
}

func NewUserHandler(users *service.UserService, exercises *service.ExerciseService, validate *validator.Validate) *UserHandler {
	return &UserHandler{Users: users, Exercises: exercises, Validate: validate}
}

// ListUsers exposes only id and nickname to non-admins.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.ListUsers(c.Request().Context(), false)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeData(c, http.StatusOK, dto.PublicUserResponsesFromEntities(users), "List of users")
}

func (h *UserHandler) Profile(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("Access Denied"))
	}
	user, userExercises, err := h.Users.Profile(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	response := dto.ProfileResponse{
		UserResponse:       dto.UserResponseFromEntity(user),
		CompletedExercises: dto.UserExerciseResponsesFromEntities(userExercises),
	}
	return writeData(c, http.StatusOK, response, "User found")
}

func (h *UserHandler) CompletedExercises(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("Access Denied"))
	}
	userExercises, err := h.Exercises.CompletedForUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeData(c, http.StatusOK, dto.UserExerciseResponsesFromEntities(userExercises), "List of completed exercises")
}

func (h *UserHandler) LogExercise(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("Access Denied"))
	}
	var req dto.LogExerciseRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	exerciseID, err := uuid.Parse(req.ExerciseID)
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid exercise id"))
	}
	input := service.LogExerciseInput{
		ExerciseID:  exerciseID,
		CompletedAt: req.CompletedAt,
		Duration:    req.Duration,
	}
	userExercise, err := h.Exercises.LogExercise(c.Request().Context(), userID, input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeData(c, http.StatusOK, dto.UserExerciseResponseFromEntity(userExercise), "Exercise added")
}

func (h *UserHandler) DeleteLoggedExercise(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("Access Denied"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid exercise id"))
	}
	if err := h.Exercises.RemoveLoggedExercise(c.Request().Context(), userID, id); err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "Exercise deleted")
}

func (h *UserHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
