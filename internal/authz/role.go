package authz

// Role is the staff role attached to an authenticated identity.
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleDentist      Role = "Dentist"
	RoleReceptionist Role = "Receptionist"
	// RoleUser is the legacy catch-all role, only used for the profile screen.
	RoleUser Role = "User"
)

// AllRoles returns every role in declaration order.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleDentist, RoleReceptionist, RoleUser}
}

// ParseRole maps a stored role name onto the closed enumeration. Names match
// exactly; anything else (including "admin") returns false.
func ParseRole(name string) (Role, bool) {
	for _, role := range AllRoles() {
		if string(role) == name {
			return role, true
		}
	}
	return "", false
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return containsRole(AllRoles(), r)
}

func (r Role) String() string {
	return string(r)
}

// RoleHome returns the screen a role is sent to when the role gate denies it.
func RoleHome(r Role) Target {
	if r == RoleReceptionist {
		return TargetSecretaryDashboard
	}
	return TargetDefaultLanding
}

func containsRole(roles []Role, r Role) bool {
	for _, candidate := range roles {
		if candidate == r {
			return true
		}
	}
	return false
}
