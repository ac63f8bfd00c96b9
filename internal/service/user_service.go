package service

import (
	"context"
	"encoding/json"

	"github.com/wictors/BackendAssignment-Fitness/internal/entity"
	"github.com/wictors/BackendAssignment-Fitness/internal/repository"
	"github.com/wictors/BackendAssignment-Fitness/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserService backs the admin user management routes and the self-service
// profile routes.
type UserService struct {
	users         repository.UserRepository
	userExercises repository.UserExerciseRepository
	auditLogs     repository.AuditLogRepository
}

func NewUserService(
	users repository.UserRepository,
	userExercises repository.UserExerciseRepository,
	auditLogs repository.AuditLogRepository,
) *UserService {
	return &UserService{
		users:         users,
		userExercises: userExercises,
		auditLogs:     auditLogs,
	}
}

// ListUsers returns every user, optionally with the exercises they have
// performed. An empty table surfaces as ErrNoUsers rather than an empty 200.
func (s *UserService) ListUsers(ctx context.Context, withExercises bool) ([]entity.User, error) {
	users, err := s.users.List(ctx, withExercises)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}
	return users, nil
}

// SearchUser looks a user up by id, email or both. At least one of the two
// filters is required.
func (s *UserService) SearchUser(ctx context.Context, id *uuid.UUID, email *string, withExercises bool) ([]entity.User, error) {
	if id == nil && email == nil {
		return nil, ErrInvalidInput
	}
	if email != nil {
		normalized := utils.NormalizeEmail(*email)
		email = &normalized
	}
	users, err := s.users.Search(ctx, id, email, withExercises)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return users, nil
}

// UpdateUser applies the patch field by field and persists only when
// something actually changed. The returned flag distinguishes an update from
// a no-op so the handler can answer "No changes made".
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (*entity.User, bool, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, ErrUserNotFound
	}

	if patch.Role != nil && *patch.Role != user.Role && !patch.Role.Valid() {
		return nil, false, ErrInvalidRole
	}

	if !patch.Apply(user) {
		return user, false, nil
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, false, err
	}

	_ = s.logAudit(ctx, &user.ID, entity.UserUpdated, nil)
	return user, true, nil
}

// DeleteUser tombstones the user; the row stays recoverable in storage.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.logAudit(ctx, &id, entity.UserDeleted, map[string]any{"email": user.Email})
	return nil
}

// Profile returns the user identified by the token together with their
// performed exercises and per-performance metadata.
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*entity.User, []entity.UserExercise, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}
	userExercises, err := s.userExercises.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, userExercises, nil
}

func (s *UserService) logAudit(ctx context.Context, userID *uuid.UUID, action entity.AuditAction, metadata map[string]any) error {
	if s.auditLogs == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}
	return s.auditLogs.Log(ctx, &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: payload,
	})
}
