package dto

import "github.com/google/uuid"

// Request DTOs

// UpdateStaffPermissionsRequest replaces a Receptionist's stored permission
// set. A null (or absent) permissions object resets the account to legacy
// defaults.
type UpdateStaffPermissionsRequest struct {
	Permissions map[string]bool `json:"permissions" validate:"omitempty,dive,keys,grantable_capability,endkeys"`
}

// Response DTOs

type StaffPermissionResponse struct {
	UserID      uuid.UUID       `json:"user_id"`
	FullName    string          `json:"full_name"`
	Permissions map[string]bool `json:"permissions"`
	Legacy      bool            `json:"legacy"`
	// Effective is what the engine evaluates against after legacy backfill.
	Effective map[string]bool `json:"effective"`
}
