package converter

import (
	"go-clinic-access/internal/authz"
	"go-clinic-access/internal/delivery/dto"
	"go-clinic-access/internal/domain/entity"

	"github.com/google/uuid"
)

// UserToRawAccount builds the snapshot handed to authz.Load. A NULL
// permissions column stays nil so Load can apply legacy defaults.
func UserToRawAccount(user *entity.User) authz.RawAccount {
	raw := authz.RawAccount{Role: user.Role.RoleName}
	if user.Permissions != nil {
		raw.Permissions = make(map[string]bool, len(user.Permissions))
		for k, v := range user.Permissions {
			raw.Permissions[k] = v
		}
	}
	return raw
}

func RedirectToResponse(policy *authz.PolicyTable, target authz.Target) dto.RedirectResponse {
	return dto.RedirectResponse{
		Target:   string(target),
		Location: policy.Location(target),
	}
}

// EffectivePermissions reports the grant of every grantable capability.
func EffectivePermissions(set authz.PermissionSet) map[string]bool {
	out := make(map[string]bool, len(authz.GrantableCapabilities()))
	for _, c := range authz.GrantableCapabilities() {
		out[string(c)] = set.Granted(c)
	}
	return out
}

func IdentityToSessionResponse(userID uuid.UUID, id authz.Identity, policy *authz.PolicyTable) *dto.SessionResponse {
	response := &dto.SessionResponse{
		UserID:         userID,
		Role:           id.Role.String(),
		LegacyDefaults: id.LegacyDefaults,
		Home:           RedirectToResponse(policy, authz.RoleHome(id.Role)),
	}
	if id.Role == authz.RoleReceptionist {
		response.Permissions = EffectivePermissions(id.Permissions)
	}
	return response
}

func MenuToResponse(entries []authz.MenuEntry, policy *authz.PolicyTable) *dto.MenuResponse {
	response := &dto.MenuResponse{Entries: make([]dto.MenuEntryResponse, 0, len(entries))}
	for _, entry := range entries {
		var path string
		if route, err := policy.Route(entry.Route); err == nil {
			path = route.Path
		}
		response.Entries = append(response.Entries, dto.MenuEntryResponse{
			Label:      entry.Label,
			Route:      entry.Route,
			Path:       path,
			Capability: entry.Capability.String(),
		})
	}
	return response
}

func RouteDecisionToResponse(route authz.Route, decision authz.Decision, policy *authz.PolicyTable) dto.RouteDecisionResponse {
	response := dto.RouteDecisionResponse{
		Name:       route.Name,
		Path:       route.Path,
		Capability: route.Capability.String(),
		Allowed:    decision.Allowed,
	}
	if !decision.Allowed {
		redirect := RedirectToResponse(policy, decision.Redirect)
		response.Redirect = &redirect
	}
	return response
}

func UserToStaffPermissionResponse(user *entity.User) *dto.StaffPermissionResponse {
	response := &dto.StaffPermissionResponse{
		UserID:   user.ID,
		FullName: user.FullName,
		Legacy:   user.Permissions == nil,
	}
	if user.Permissions != nil {
		response.Permissions = make(map[string]bool, len(user.Permissions))
		for k, v := range user.Permissions {
			response.Permissions[k] = v
		}
	}

	var set authz.PermissionSet
	if id, err := authz.Load(UserToRawAccount(user)); err == nil {
		set = id.Permissions
	}
	response.Effective = EffectivePermissions(set)
	return response
}
