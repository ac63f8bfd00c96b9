package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditAction string

const (
	LoginSuccess   AuditAction = "login_success"
	LoginFailed    AuditAction = "login_failed"
	UserRegistered AuditAction = "user_registered"
	UserUpdated    AuditAction = "user_updated"
	UserDeleted    AuditAction = "user_deleted"
)

// AuditLog records authentication and admin activity. Writing one must never
// fail the request it belongs to.
type AuditLog struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	UserID *uuid.UUID `gorm:"type:uuid;index"`
	User   *User      `gorm:"constraint:OnDelete:SET NULL"`

	IPAddress *string     `gorm:"type:varchar(45)"`
	Action    AuditAction `gorm:"type:varchar(32);not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}
