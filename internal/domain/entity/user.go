package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User is a staff account. Accounts are created by the authentication
// collaborator; this service only reads them and edits Permissions.
type User struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID      int         `gorm:"not null;index" json:"role_id"`
	Email       string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName    string      `gorm:"type:varchar(255);not null" json:"full_name"`
	IsActive    bool        `gorm:"not null;default:true;index" json:"is_active"`
	Permissions Permissions `gorm:"type:jsonb" json:"permissions"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Permissions is the stored Receptionist permission set. A NULL column scans
// to a nil map (legacy account); an empty object stays an empty map.
type Permissions map[string]bool

func (p Permissions) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *Permissions) Scan(value any) error {
	var result map[string]bool
	if err := scanJSONB(value, &result); err != nil {
		return fmt.Errorf("permissions: %w", err)
	}
	*p = result
	return nil
}
