package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleUser  UserRole = "USER"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleUser:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(200)"`
	Surname      string    `gorm:"type:varchar(200)"`
	NickName     string    `gorm:"type:varchar(200)"`
	Email        string    `gorm:"type:varchar(200);uniqueIndex;not null"`
	Age          int
	Role         UserRole `gorm:"type:varchar(16);default:'USER';not null"`
	PasswordHash string   `gorm:"type:text;not null"`

	// Join rows carry completedAt/duration; duplicates are allowed, one row
	// per performed exercise.
	Exercises []Exercise `gorm:"many2many:user_exercises"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
