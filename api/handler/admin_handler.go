package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/wictors/BackendAssignment-Fitness/internal/dto"
	"github.com/wictors/BackendAssignment-Fitness/internal/entity"
	"github.com/wictors/BackendAssignment-Fitness/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AdminHandler serves the ADMIN-gated management routes.
type AdminHandler struct {
	Users     *service.UserService
	Exercises *service.ExerciseService
	Validate  *validator.Validate
}

func NewAdminHandler(users *service.UserService, exercises *service.ExerciseService, validate *validator.Validate) *AdminHandler {
	return &AdminHandler{Users: users, Exercises: exercises, Validate: validate}
}

// ListAllUsers returns every user; ?exercises=true joins in the exercises
// each user has performed.
func (h *AdminHandler) ListAllUsers(c echo.Context) error {
	withExercises, _ := strconv.ParseBool(c.QueryParam("exercises"))
	users, err := h.Users.ListUsers(c.Request().Context(), withExercises)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeData(c, http.StatusOK, dto.UserResponsesFromEntities(users), "List of users")
}

// GetUser looks up by ?id= or ?email= (at least one required).
func (h *AdminHandler) GetUser(c echo.Context) error {
	var id *uuid.UUID
	if raw := c.QueryParam("id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return writeError(c, http.StatusBadRequest, errors.New("invalid user id"))
		}
		id = &parsed
	}
	var email *string
	if raw := c.QueryParam("email"); raw != "" {
		email = &raw
	}
	if id == nil && email == nil {
		return writeError(c, http.StatusBadRequest, errors.New("email or ID is required"))
	}
	withExercises, _ := strconv.ParseBool(c.QueryParam("exercises"))

	users, err := h.Users.SearchUser(c.Request().Context(), id, email, withExercises)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeData(c, http.StatusOK, dto.UserResponsesFromEntities(users), "User found")
}

func (h *AdminHandler) CreateExercise(c echo.Context) error {
	patch, err := h.decodeExercisePatch(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	exercise, err := h.Exercises.CreateExercise(c.Request().Context(), patch)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeData(c, http.StatusCreated, dto.ExerciseResponseFromEntity(exercise), "Exercise created")
}

// UpdateExercise persists only actual changes; resending the stored state
// answers "No changes made" without a write.
func (h *AdminHandler) UpdateExercise(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid exercise id"))
	}
	patch, err := h.decodeExercisePatch(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	exercise, changed, err := h.Exercises.UpdateExercise(c.Request().Context(), id, patch)
	if err != nil {
		return writeServiceError(c, err)
	}
	if !changed {
		return writeMessage(c, http.StatusOK, "No changes made")
	}
	return writeData(c, http.StatusOK, dto.ExerciseResponseFromEntity(exercise), "Exercise updated")
}

func (h *AdminHandler) DeleteExercise(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid exercise id"))
	}
	if err := h.Exercises.DeleteExercise(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "Exercise deleted")
}

func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid user id"))
	}
	var req dto.UpdateUserRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	patch := service.UserPatch{
		Name:     req.Name,
		Surname:  req.Surname,
		NickName: req.NickName,
		Age:      req.Age,
	}
	if req.Role != nil {
		role := entity.UserRole(*req.Role)
		patch.Role = &role
	}
	user, changed, err := h.Users.UpdateUser(c.Request().Context(), id, patch)
	if err != nil {
		return writeServiceError(c, err)
	}
	if !changed {
		return writeMessage(c, http.StatusOK, "No changes made")
	}
	return writeData(c, http.StatusOK, dto.UserResponseFromEntity(user), "User updated")
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid user id"))
	}
	if err := h.Users.DeleteUser(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "User deleted")
}

// MissingID answers PUT/DELETE variants called without the :id segment.
func (h *AdminHandler) MissingID(c echo.Context) error {
	return writeError(c, http.StatusBadRequest, errors.New("missing required parameter: id"))
}

func (h *AdminHandler) decodeExercisePatch(c echo.Context) (service.ExercisePatch, error) {
	var req dto.SaveExerciseRequest
	if err := decodeJSON(c, &req); err != nil {
		return service.ExercisePatch{}, err
	}
	if err := h.validate(req); err != nil {
		return service.ExercisePatch{}, err
	}
	patch := service.ExercisePatch{Name: req.Name}
	if req.Difficulty != nil {
		difficulty := entity.ExerciseDifficulty(*req.Difficulty)
		patch.Difficulty = &difficulty
	}
	if req.ProgramID != nil {
		programID, err := uuid.Parse(*req.ProgramID)
		if err != nil {
			return service.ExercisePatch{}, errors.New("invalid program id")
		}
		patch.ProgramID = &programID
	}
	return patch, nil
}

func (h *AdminHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
