package repository

import (
	"context"
	"errors"

	"github.com/wictors/BackendAssignment-Fitness/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgramRepository interface {
	Create(ctx context.Context, program *entity.Program) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Program, error)
	List(ctx context.Context) ([]entity.Program, error)
}

type programRepository struct {
	db *gorm.DB
}

func NewProgramRepository(db *gorm.DB) ProgramRepository {
	return &programRepository{db: db}
}

func (r *programRepository) Create(ctx context.Context, program *entity.Program) error {
	return r.db.WithContext(ctx).Create(program).Error
}

func (r *programRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Program, error) {
	var program entity.Program
	err := r.db.WithContext(ctx).First(&program, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *programRepository) List(ctx context.Context) ([]entity.Program, error) {
	var programs []entity.Program
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&programs).Error; err != nil {
		return nil, err
	}
	return programs, nil
}
