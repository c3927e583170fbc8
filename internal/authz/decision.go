package authz

// Target identifies a redirect destination. The navigation collaborator maps
// it onto an actual route.
type Target string

const (
	TargetNone               Target = ""
	TargetLoginEntry         Target = "login-entry"
	TargetDefaultLanding     Target = "default-landing"
	TargetSecretaryDashboard Target = "secretary-dashboard"
)

// AllTargets returns every redirect target.
func AllTargets() []Target {
	return []Target{TargetLoginEntry, TargetDefaultLanding, TargetSecretaryDashboard}
}

// Reason records which rule produced a decision.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonAdminBypass
	ReasonRoleGate
	ReasonCapabilityRevoked
	ReasonAdminOnly
	ReasonUnauthenticated
	ReasonMalformedIdentity
	ReasonPolicyLookupMiss
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonAdminBypass:
		return "admin_bypass"
	case ReasonRoleGate:
		return "role_gate"
	case ReasonCapabilityRevoked:
		return "capability_revoked"
	case ReasonAdminOnly:
		return "admin_only"
	case ReasonUnauthenticated:
		return "unauthenticated"
	case ReasonMalformedIdentity:
		return "malformed_identity"
	case ReasonPolicyLookupMiss:
		return "policy_lookup_miss"
	default:
		return "unknown"
	}
}

// Decision is the outcome of an access check: Allow, or Deny with a redirect
// target. Deny is a routine outcome, not a failure.
type Decision struct {
	Allowed  bool
	Redirect Target
	Reason   Reason
}

// Allow returns an allowing decision.
func Allow(reason Reason) Decision {
	return Decision{Allowed: true, Reason: reason}
}

// DenyRedirect returns a denying decision that sends the user to target.
func DenyRedirect(target Target, reason Reason) Decision {
	return Decision{Redirect: target, Reason: reason}
}

func (d Decision) String() string {
	if d.Allowed {
		return "allow"
	}
	return "deny(" + string(d.Redirect) + ")"
}
