package entity

// Role represents a staff role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants, seeded by the roles migration
const (
	RoleIDAdmin        = 1
	RoleIDDentist      = 2
	RoleIDReceptionist = 3
	RoleIDUser         = 4
)

// RoleNames constants
const (
	RoleAdmin        = "Admin"
	RoleDentist      = "Dentist"
	RoleReceptionist = "Receptionist"
	RoleUser         = "User"
)
