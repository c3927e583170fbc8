package authz

import "errors"

var (
	// ErrMalformedIdentity means an identity is present but its role is
	// missing or unknown. The session must be terminated.
	ErrMalformedIdentity = errors.New("malformed identity")
	// ErrPolicyLookupMiss means a route or menu entry references a capability
	// or route absent from the policy table.
	ErrPolicyLookupMiss = errors.New("policy table lookup miss")
	// ErrInvalidPolicy is returned when a policy table fails validation.
	ErrInvalidPolicy = errors.New("invalid policy table")
)
