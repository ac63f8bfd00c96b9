package service

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidRole            = errors.New("invalid role")
	ErrInvalidDifficulty      = errors.New("invalid difficulty level")
	ErrUserNotFound           = errors.New("user not found")
	ErrProgramNotFound        = errors.New("program does not exist")
	ErrExerciseNotFound       = errors.New("exercise does not exist")
	ErrUserExerciseNotFound   = errors.New("wrong exercise")
	ErrNoUsers                = errors.New("no users exist")
	ErrNoCompletedExercises   = errors.New("no completed exercises")
)
