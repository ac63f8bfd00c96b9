package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserExercise is one occurrence of a user performing an exercise. The
// (UserID, ExerciseID) pair is not unique: logging the same exercise again
// creates a second row.
type UserExercise struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ExerciseID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Exercise    *Exercise  `gorm:"constraint:OnDelete:CASCADE"`
	CompletedAt *time.Time
	Duration    *int // minutes

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (UserExercise) TableName() string { return "user_exercises" }
