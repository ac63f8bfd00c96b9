package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExerciseDifficulty string

const (
	DifficultyEasy   ExerciseDifficulty = "EASY"
	DifficultyMedium ExerciseDifficulty = "MEDIUM"
	DifficultyHard   ExerciseDifficulty = "HARD"
)

func (d ExerciseDifficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Exercise belongs to exactly one program.
type Exercise struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Name       string             `gorm:"type:varchar(200);not null"`
	Difficulty ExerciseDifficulty `gorm:"type:varchar(16);not null"`
	ProgramID  uuid.UUID          `gorm:"type:uuid;not null;index"`
	Program    *Program

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
