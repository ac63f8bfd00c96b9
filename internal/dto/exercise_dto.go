package dto

import (
	"time"

	"github.com/wictors/BackendAssignment-Fitness/internal/entity"
)

// SaveExerciseRequest serves both creation and partial update; create
// requires all three fields, which the service enforces.
type SaveExerciseRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1"`
	Difficulty *string `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	ProgramID  *string `json:"programId" validate:"omitempty,uuid4"`
}

type LogExerciseRequest struct {
	ExerciseID  string     `json:"exerciseId" validate:"required,uuid4"`
	CompletedAt *time.Time `json:"completedAt" validate:"omitempty"`
	Duration    *int       `json:"duration" validate:"omitempty,gt=0"`
}

type ProgramResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ExerciseResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Difficulty string           `json:"difficulty"`
	ProgramID  string           `json:"programId"`
	Program    *ProgramResponse `json:"program,omitempty"`
}

type UserExerciseResponse struct {
	ID          string            `json:"id"`
	CompletedAt *time.Time        `json:"completedAt"`
	Duration    *int              `json:"duration"`
	Exercise    *ExerciseResponse `json:"exercise,omitempty"`
}

func ProgramResponseFromEntity(program *entity.Program) ProgramResponse {
	return ProgramResponse{
		ID:   program.ID.String(),
		Name: program.Name,
	}
}

func ProgramResponsesFromEntities(programs []entity.Program) []ProgramResponse {
	responses := make([]ProgramResponse, 0, len(programs))
	for i := range programs {
		responses = append(responses, ProgramResponseFromEntity(&programs[i]))
	}
	return responses
}

func ExerciseResponseFromEntity(exercise *entity.Exercise) ExerciseResponse {
	response := ExerciseResponse{
		ID:         exercise.ID.String(),
		Name:       exercise.Name,
		Difficulty: string(exercise.Difficulty),
		ProgramID:  exercise.ProgramID.String(),
	}
	if exercise.Program != nil {
		program := ProgramResponseFromEntity(exercise.Program)
		response.Program = &program
	}
	return response
}

func ExerciseResponsesFromEntities(exercises []entity.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, 0, len(exercises))
	for i := range exercises {
		responses = append(responses, ExerciseResponseFromEntity(&exercises[i]))
	}
	return responses
}

func UserExerciseResponseFromEntity(userExercise *entity.UserExercise) UserExerciseResponse {
	response := UserExerciseResponse{
		ID:          userExercise.ID.String(),
		CompletedAt: userExercise.CompletedAt,
		Duration:    userExercise.Duration,
	}
	if userExercise.Exercise != nil {
		exercise := ExerciseResponseFromEntity(userExercise.Exercise)
		response.Exercise = &exercise
	}
	return response
}

func UserExerciseResponsesFromEntities(userExercises []entity.UserExercise) []UserExerciseResponse {
	responses := make([]UserExerciseResponse, 0, len(userExercises))
	for i := range userExercises {
		responses = append(responses, UserExerciseResponseFromEntity(&userExercises[i]))
	}
	return responses
}
