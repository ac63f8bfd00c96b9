package repository

import (
	"context"
	"errors"

	"github.com/wictors/BackendAssignment-Fitness/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserExerciseRepository interface {
	Create(ctx context.Context, userExercise *entity.UserExercise) error
	FindByUserAndID(ctx context.Context, userID, id uuid.UUID) (*entity.UserExercise, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.UserExercise, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userExerciseRepository struct {
	db *gorm.DB
}

func NewUserExerciseRepository(db *gorm.DB) UserExerciseRepository {
	return &userExerciseRepository{db: db}
}

func (r *userExerciseRepository) Create(ctx context.Context, userExercise *entity.UserExercise) error {
	return r.db.WithContext(ctx).Create(userExercise).Error
}

// FindByUserAndID matches both keys so one user can never address another
// user's row, not even to learn it exists.
func (r *userExerciseRepository) FindByUserAndID(ctx context.Context, userID, id uuid.UUID) (*entity.UserExercise, error) {
	var userExercise entity.UserExercise
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&userExercise).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &userExercise, nil
}

func (r *userExerciseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.UserExercise, error) {
	var userExercises []entity.UserExercise
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Exercise").
		Order("created_at ASC").
		Find(&userExercises).Error
	if err != nil {
		return nil, err
	}
	return userExercises, nil
}

func (r *userExerciseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.UserExercise{}, "id = ?", id).Error
}
