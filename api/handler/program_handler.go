package handler

import (
	"net/http"

	"github.com/wictors/BackendAssignment-Fitness/internal/dto"
	"github.com/wictors/BackendAssignment-Fitness/internal/service"

	"github.com/labstack/echo/v4"
)

// ProgramHandler serves the unauthenticated catalogue routes.
type ProgramHandler struct {
	Exercises *service.ExerciseService
}

func NewProgramHandler(exercises *service.ExerciseService) *ProgramHandler {
	return &ProgramHandler{Exercises: exercises}
}

func (h *ProgramHandler) ListPrograms(c echo.Context) error {
	programs, err := h.Exercises.ListPrograms(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeData(c, http.StatusOK, dto.ProgramResponsesFromEntities(programs), "List of programs")
}

func (h *ProgramHandler) ListExercises(c echo.Context) error {
	exercises, err := h.Exercises.ListExercises(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeData(c, http.StatusOK, dto.ExerciseResponsesFromEntities(exercises), "List of exercises")
}
