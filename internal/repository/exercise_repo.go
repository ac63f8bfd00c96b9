package repository

import (
	"context"
	"errors"

	"github.com/wictors/BackendAssignment-Fitness/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExerciseRepository interface {
	Create(ctx context.Context, exercise *entity.Exercise) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Exercise, error)
	List(ctx context.Context) ([]entity.Exercise, error)
	Update(ctx context.Context, exercise *entity.Exercise) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type exerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *entity.Exercise) error {
	return r.db.WithContext(ctx).Create(exercise).Error
}

func (r *exerciseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Exercise, error) {
	var exercise entity.Exercise
	err := r.db.WithContext(ctx).First(&exercise, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *exerciseRepository) List(ctx context.Context) ([]entity.Exercise, error) {
	var exercises []entity.Exercise
	err := r.db.WithContext(ctx).Preload("Program").Order("created_at ASC").Find(&exercises).Error
	if err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *exerciseRepository) Update(ctx context.Context, exercise *entity.Exercise) error {
	return r.db.WithContext(ctx).Save(exercise).Error
}

func (r *exerciseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Exercise{}, "id = ?", id).Error
}
