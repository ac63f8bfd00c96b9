package config

import (
	"fmt"

	"github.com/wictors/BackendAssignment-Fitness/internal/entity"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDatabase(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  databaseURL,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the schema and registers user_exercises as the join table
// behind User.Exercises so the association keeps its completedAt/duration
// metadata.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&entity.User{}, "Exercises", &entity.UserExercise{}); err != nil {
		return fmt.Errorf("setup join table: %w", err)
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Program{},
		&entity.Exercise{},
		&entity.UserExercise{},
		&entity.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
