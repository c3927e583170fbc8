package authz

import (
	"encoding/json"
	"fmt"
)

// PermissionSet maps capabilities to explicit grant (true) or revoke (false).
// A nil set means no permission data was ever stored.
type PermissionSet map[Capability]bool

// Granted reports whether c is granted. Only an explicit false revokes; a nil
// set grants every grantable capability.
func (p PermissionSet) Granted(c Capability) bool {
	if c == CapabilityAdmin {
		return false
	}
	if p == nil {
		return true
	}
	granted, ok := p[c]
	return !ok || granted
}

// Clone returns a copy that preserves the nil/empty distinction.
func (p PermissionSet) Clone() PermissionSet {
	if p == nil {
		return nil
	}
	out := make(PermissionSet, len(p))
	for c, v := range p {
		out[c] = v
	}
	return out
}

// LegacyDefaultPermissions returns the set applied to Receptionist accounts
// created before per-capability permissions existed.
func LegacyDefaultPermissions() PermissionSet {
	set := make(PermissionSet, len(GrantableCapabilities()))
	for _, c := range GrantableCapabilities() {
		set[c] = true
	}
	return set
}

// Identity is the authenticated principal. It lives for one session.
type Identity struct {
	Role        Role
	Permissions PermissionSet
	// LegacyDefaults is set when Load backfilled Permissions for a
	// Receptionist account that carried no permission data.
	LegacyDefaults bool
}

// RawAccount is the stored account representation handed over by the
// authentication collaborator.
type RawAccount struct {
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions"`
}

// Load parses a raw account into an Identity. Permission keys outside the
// capability enumeration are dropped, and permissions are discarded for every
// role other than Receptionist.
func Load(raw RawAccount) (Identity, error) {
	if raw.Role == "" {
		return Identity{}, fmt.Errorf("%w: role is missing", ErrMalformedIdentity)
	}
	role, ok := ParseRole(raw.Role)
	if !ok {
		return Identity{}, fmt.Errorf("%w: unknown role %q", ErrMalformedIdentity, raw.Role)
	}

	identity := Identity{Role: role}
	if role != RoleReceptionist {
		return identity, nil
	}

	if raw.Permissions == nil {
		identity.Permissions = LegacyDefaultPermissions()
		identity.LegacyDefaults = true
		return identity, nil
	}

	identity.Permissions = make(PermissionSet, len(raw.Permissions))
	for name, granted := range raw.Permissions {
		c, ok := ParseCapability(name)
		if !ok || c == CapabilityAlways {
			continue
		}
		identity.Permissions[c] = granted
	}
	return identity, nil
}

// LoadJSON decodes a JSON account snapshot and loads it.
func LoadJSON(data []byte) (Identity, error) {
	var raw RawAccount
	if err := json.Unmarshal(data, &raw); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrMalformedIdentity, err)
	}
	return Load(raw)
}
