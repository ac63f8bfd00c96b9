package service

import (
	"context"
	"time"

	"github.com/wictors/BackendAssignment-Fitness/internal/entity"
	"github.com/wictors/BackendAssignment-Fitness/internal/repository"

	"github.com/google/uuid"
)

// EventPublisher pushes domain events to a broker. A nil publisher disables
// eventing; a failed publish never fails the request that produced it.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type LogExerciseInput struct {
	ExerciseID  uuid.UUID
	CompletedAt *time.Time
	Duration    *int
}

// ExerciseService owns exercise and program reads, admin exercise CRUD and
// the lifecycle of exercises logged by users.
type ExerciseService struct {
	exercises     repository.ExerciseRepository
	programs      repository.ProgramRepository
	userExercises repository.UserExerciseRepository
	events        EventPublisher
}

func NewExerciseService(
	exercises repository.ExerciseRepository,
	programs repository.ProgramRepository,
	userExercises repository.UserExerciseRepository,
	events EventPublisher,
) *ExerciseService {
	return &ExerciseService{
		exercises:     exercises,
		programs:      programs,
		userExercises: userExercises,
		events:        events,
	}
}

func (s *ExerciseService) ListPrograms(ctx context.Context) ([]entity.Program, error) {
	return s.programs.List(ctx)
}

func (s *ExerciseService) ListExercises(ctx context.Context) ([]entity.Exercise, error) {
	return s.exercises.List(ctx)
}

// CreateExercise requires name, difficulty and programID all present and
// valid before any row is written.
func (s *ExerciseService) CreateExercise(ctx context.Context, patch ExercisePatch) (*entity.Exercise, error) {
	if patch.Name == nil || patch.Difficulty == nil || patch.ProgramID == nil {
		return nil, ErrInvalidInput
	}
	if !patch.Difficulty.Valid() {
		return nil, ErrInvalidDifficulty
	}
	program, err := s.programs.FindByID(ctx, *patch.ProgramID)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, ErrProgramNotFound
	}

	exercise := &entity.Exercise{
		Name:       *patch.Name,
		Difficulty: *patch.Difficulty,
		ProgramID:  *patch.ProgramID,
	}
	if err := s.exercises.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// UpdateExercise loads the exercise, diffs the patch against it and persists
// only when at least one field actually changes. Supplied fields are
// validated independently; a no-diff patch leaves the row untouched.
func (s *ExerciseService) UpdateExercise(ctx context.Context, id uuid.UUID, patch ExercisePatch) (*entity.Exercise, bool, error) {
	exercise, err := s.exercises.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if exercise == nil {
		return nil, false, ErrExerciseNotFound
	}

	if patch.Difficulty != nil && !patch.Difficulty.Valid() {
		return nil, false, ErrInvalidDifficulty
	}
	if patch.ProgramID != nil && *patch.ProgramID != exercise.ProgramID {
		program, err := s.programs.FindByID(ctx, *patch.ProgramID)
		if err != nil {
			return nil, false, err
		}
		if program == nil {
			return nil, false, ErrProgramNotFound
		}
	}

	if !patch.Apply(exercise) {
		return exercise, false, nil
	}
	if err := s.exercises.Update(ctx, exercise); err != nil {
		return nil, false, err
	}
	return exercise, true, nil
}

func (s *ExerciseService) DeleteExercise(ctx context.Context, id uuid.UUID) error {
	exercise, err := s.exercises.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if exercise == nil {
		return ErrExerciseNotFound
	}
	return s.exercises.Delete(ctx, id)
}

// LogExercise records one performance of an exercise for the user. Repeat
// logs of the same exercise create separate rows.
func (s *ExerciseService) LogExercise(ctx context.Context, userID uuid.UUID, input LogExerciseInput) (*entity.UserExercise, error) {
	exercise, err := s.exercises.FindByID(ctx, input.ExerciseID)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, ErrExerciseNotFound
	}

	userExercise := &entity.UserExercise{
		UserID:      userID,
		ExerciseID:  input.ExerciseID,
		CompletedAt: input.CompletedAt,
		Duration:    input.Duration,
	}
	if err := s.userExercises.Create(ctx, userExercise); err != nil {
		return nil, err
	}
	userExercise.Exercise = exercise

	if s.events != nil {
		_ = s.events.Publish(ctx, "user_exercise.logged", map[string]any{
			"id":          userExercise.ID,
			"userId":      userID,
			"exerciseId":  input.ExerciseID,
			"completedAt": input.CompletedAt,
			"duration":    input.Duration,
		})
	}
	return userExercise, nil
}

// RemoveLoggedExercise deletes one of the user's own rows. A row belonging
// to someone else looks exactly like a missing one.
func (s *ExerciseService) RemoveLoggedExercise(ctx context.Context, userID, id uuid.UUID) error {
	userExercise, err := s.userExercises.FindByUserAndID(ctx, userID, id)
	if err != nil {
		return err
	}
	if userExercise == nil {
		return ErrUserExerciseNotFound
	}
	return s.userExercises.Delete(ctx, id)
}

// CompletedForUser returns the user's performed exercises with exercise
// detail joined in. An empty history surfaces as ErrNoCompletedExercises.
func (s *ExerciseService) CompletedForUser(ctx context.Context, userID uuid.UUID) ([]entity.UserExercise, error) {
	userExercises, err := s.userExercises.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(userExercises) == 0 {
		return nil, ErrNoCompletedExercises
	}
	return userExercises, nil
}
