package dto

import "github.com/google/uuid"

type RedirectResponse struct {
	Target   string `json:"target"`
	Location string `json:"location"`
}

// SessionResponse describes the identity bound to the current session.
type SessionResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	// Permissions holds the effective grant of every grantable capability.
	// It is only present for Receptionist sessions.
	Permissions    map[string]bool  `json:"permissions,omitempty"`
	LegacyDefaults bool             `json:"legacy_defaults"`
	Home           RedirectResponse `json:"home"`
}
