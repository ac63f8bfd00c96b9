package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wictors/BackendAssignment-Fitness/internal/service"

	"github.com/labstack/echo/v4"
)

type envelope struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

func writeData(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, envelope{Data: data, Message: message})
}

func writeMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope{Message: message})
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

// writeServiceError maps service sentinels onto the HTTP taxonomy. Anything
// unrecognized is a 500 with the raw detail attached.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrEmailAlreadyRegistered),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidDifficulty):
		return writeError(c, http.StatusBadRequest, err)
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProgramNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrUserExerciseNotFound),
		errors.Is(err, service.ErrNoUsers),
		errors.Is(err, service.ErrNoCompletedExercises):
		return writeError(c, http.StatusNotFound, err)
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{
		"message": "Internal server error",
		"error":   err.Error(),
	})
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}
