package authz

import "fmt"

// Engine is the single place access policy is evaluated. It holds no state
// besides the immutable policy table and is safe for concurrent use.
type Engine struct {
	policy *PolicyTable
}

// NewEngine creates an engine over policy.
func NewEngine(policy *PolicyTable) *Engine {
	return &Engine{policy: policy}
}

// Policy returns the table the engine evaluates against.
func (e *Engine) Policy() *PolicyTable {
	return e.policy
}

// Decide evaluates whether id may reach a screen guarded by allowedRoles and
// an optional capability (NoCapability when absent).
//
// Integrity checks run first and fail closed with an error:
//   - unknown role: ErrMalformedIdentity, redirect to login-entry
//   - undeclared capability: ErrPolicyLookupMiss, redirect to the role home
//
// Then the first matching rule wins:
//  1. Admin is allowed unconditionally.
//  2. A role outside allowedRoles is sent to its role home.
//  3. always allows; admin denies every non-Admin role; for a Receptionist
//     the capability must not be explicitly revoked (a nil permission set
//     grants everything). Other roles skip this step.
//  4. Allow.
func (e *Engine) Decide(id Identity, allowedRoles []Role, required Capability) (Decision, error) {
	if !id.Role.Valid() {
		return DenyRedirect(TargetLoginEntry, ReasonMalformedIdentity),
			fmt.Errorf("%w: unknown role %q", ErrMalformedIdentity, id.Role)
	}
	if required != NoCapability && !e.policy.Declares(required) {
		return DenyRedirect(RoleHome(id.Role), ReasonPolicyLookupMiss),
			fmt.Errorf("%w: capability %q", ErrPolicyLookupMiss, required)
	}

	if id.Role == RoleAdmin {
		return Allow(ReasonAdminBypass), nil
	}

	if !containsRole(allowedRoles, id.Role) {
		return DenyRedirect(RoleHome(id.Role), ReasonRoleGate), nil
	}

	return capabilityGate(id, required), nil
}

func capabilityGate(id Identity, required Capability) Decision {
	switch required {
	case NoCapability, CapabilityAlways:
		return Allow(ReasonNone)
	case CapabilityAdmin:
		return DenyRedirect(RoleHome(id.Role), ReasonAdminOnly)
	}

	if id.Role != RoleReceptionist {
		return Allow(ReasonNone)
	}
	if !id.Permissions.Granted(required) {
		return DenyRedirect(TargetSecretaryDashboard, ReasonCapabilityRevoked)
	}
	return Allow(ReasonNone)
}

// DecideRoute evaluates access to a named route of the policy table.
func (e *Engine) DecideRoute(id Identity, name string) (Decision, error) {
	route, err := e.policy.Route(name)
	if err != nil {
		return DenyRedirect(RoleHome(id.Role), ReasonPolicyLookupMiss), err
	}
	return e.Decide(id, route.Roles, route.Capability)
}

// FilterMenu returns the entries of menu that id may see, in their declared
// order. Admin sees the full list. Entries tagged admin are dropped for
// everyone else, entries tagged always are kept, and every other entry is
// kept only when the guard of its route would allow id.
func (e *Engine) FilterMenu(id Identity, menu []MenuEntry) ([]MenuEntry, error) {
	if !id.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrMalformedIdentity, id.Role)
	}

	visible := make([]MenuEntry, 0, len(menu))
	if id.Role == RoleAdmin {
		return append(visible, menu...), nil
	}

	for _, entry := range menu {
		switch entry.Capability {
		case CapabilityAdmin:
			continue
		case CapabilityAlways:
			visible = append(visible, entry)
			continue
		}

		route, err := e.policy.Route(entry.Route)
		if err != nil {
			return nil, err
		}
		decision, err := e.Decide(id, route.Roles, entry.Capability)
		if err != nil {
			return nil, err
		}
		if decision.Allowed {
			visible = append(visible, entry)
		}
	}
	return visible, nil
}

// VisibleMenu filters the policy table's own menu.
func (e *Engine) VisibleMenu(id Identity) ([]MenuEntry, error) {
	return e.FilterMenu(id, e.policy.Menu())
}
