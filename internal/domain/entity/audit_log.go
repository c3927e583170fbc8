package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is one audit trail entry. UserID is the actor; it is nil for
// entries written without an authenticated actor.
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit actions written by this service. Deny decisions are never audited.
const (
	AuditActionPermissionsUpdate = "staff.permissions.update"
	AuditActionSessionLogout     = "session.logout"
	AuditActionSessionTerminate  = "session.terminate"
)
