package authz

// Guard runs render only when id may reach a screen guarded by allowedRoles
// and required. A nil id is unauthenticated and is sent to login-entry before
// the engine is consulted. On deny render is never called and the zero value
// is returned alongside the decision.
func Guard[T any](e *Engine, id *Identity, allowedRoles []Role, required Capability, render func() T) (T, Decision, error) {
	var zero T
	if id == nil {
		return zero, DenyRedirect(TargetLoginEntry, ReasonUnauthenticated), nil
	}

	decision, err := e.Decide(*id, allowedRoles, required)
	if err != nil || !decision.Allowed {
		return zero, decision, err
	}
	return render(), decision, nil
}

// GuardRoute is Guard for a named route of the engine's policy table.
func GuardRoute[T any](e *Engine, id *Identity, name string, render func() T) (T, Decision, error) {
	var zero T
	if id == nil {
		return zero, DenyRedirect(TargetLoginEntry, ReasonUnauthenticated), nil
	}

	route, err := e.policy.Route(name)
	if err != nil {
		return zero, DenyRedirect(RoleHome(id.Role), ReasonPolicyLookupMiss), err
	}
	return Guard(e, id, route.Roles, route.Capability, render)
}
