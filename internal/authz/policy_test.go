package authz

import (
	"path/filepath"
	"runtime"
	"testing"

	"go-clinic-access/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()

	for _, c := range AllCapabilities() {
		assert.True(t, policy.Declares(c), "capability %q", c)
	}

	roles, err := policy.RolesFor(CapabilityAdmin)
	require.NoError(t, err)
	assert.Equal(t, []Role{RoleAdmin}, roles)

	route, err := policy.Route(RouteInvoices)
	require.NoError(t, err)
	assert.Equal(t, []Role{RoleAdmin, RoleReceptionist}, route.Roles)

	assert.Equal(t, "/secretary-dashboard", policy.Location(TargetSecretaryDashboard))
}

func TestNewPolicy_Validation(t *testing.T) {
	base := []CapabilityRule{
		{Capability: CapabilityPatients, Roles: []Role{RoleDentist}},
		{Capability: CapabilityAdmin},
		{Capability: CapabilityAlways},
	}

	tests := []struct {
		name    string
		rules   []CapabilityRule
		routes  []Route
		menu    []MenuEntry
		targets map[Target]string
		wantErr error
	}{
		{
			name:    "admin granted to others",
			rules:   []CapabilityRule{{Capability: CapabilityAdmin, Roles: []Role{RoleAdmin, RoleReceptionist}}},
			wantErr: ErrInvalidPolicy,
		},
		{
			name:    "duplicate capability",
			rules:   append(base, CapabilityRule{Capability: CapabilityPatients, Roles: AllRoles()}),
			wantErr: ErrInvalidPolicy,
		},
		{
			name:    "route references undeclared capability",
			rules:   base,
			routes:  []Route{{Name: "invoices", Path: "/invoices", Capability: CapabilityInvoices}},
			wantErr: ErrPolicyLookupMiss,
		},
		{
			name:    "menu references undeclared route",
			rules:   base,
			menu:    []MenuEntry{{Label: "Patients", Route: "patients", Capability: CapabilityPatients}},
			wantErr: ErrPolicyLookupMiss,
		},
		{
			name:    "menu entry looser than its route",
			rules:   base,
			routes:  []Route{{Name: "patients", Path: "/patients", Capability: CapabilityPatients}},
			menu:    []MenuEntry{{Label: "Patients", Route: "patients", Capability: CapabilityAlways}},
			wantErr: ErrInvalidPolicy,
		},
		{
			name:    "always entry on a restricted route",
			rules:   base,
			routes:  []Route{{Name: "home", Path: "/", Capability: CapabilityAlways, Roles: []Role{RoleDentist}}},
			menu:    []MenuEntry{{Label: "Home", Route: "home", Capability: CapabilityAlways}},
			wantErr: ErrInvalidPolicy,
		},
		{
			name:    "route without roles",
			rules:   base,
			routes:  []Route{{Name: "orphan", Path: "/orphan"}},
			wantErr: ErrInvalidPolicy,
		},
		{
			name:    "unknown target",
			rules:   base,
			targets: map[Target]string{"billing": "/billing"},
			wantErr: ErrInvalidPolicy,
		},
		{
			name:   "valid",
			rules:  base,
			routes: []Route{{Name: "patients", Path: "/patients", Capability: CapabilityPatients}},
			menu: []MenuEntry{
				{Label: "Patients", Route: "patients", Capability: CapabilityPatients},
				{Label: "Patients (admin)", Route: "patients", Capability: CapabilityAdmin},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPolicy(tt.rules, tt.routes, tt.menu, tt.targets)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewPolicyTable_FromFile(t *testing.T) {
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	path := filepath.Join(filepath.Dir(file), "..", "..", "config", "policy.yaml")

	cfg, err := config.LoadPolicy(path)
	require.NoError(t, err)

	fromFile, err := NewPolicyTable(*cfg)
	require.NoError(t, err)

	builtin := DefaultPolicy()
	assert.Equal(t, builtin.Rules(), fromFile.Rules())
	assert.Equal(t, builtin.Routes(), fromFile.Routes())
	assert.Equal(t, builtin.Menu(), fromFile.Menu())
	for _, target := range AllTargets() {
		assert.Equal(t, builtin.Location(target), fromFile.Location(target))
	}
}

func TestNewPolicyTable_UnknownNames(t *testing.T) {
	_, err := NewPolicyTable(config.PolicyConfig{
		Capabilities: []config.CapabilityRuleConfig{{Name: "payroll", Roles: []string{"Admin"}}},
	})
	assert.ErrorIs(t, err, ErrInvalidPolicy)

	_, err = NewPolicyTable(config.PolicyConfig{
		Capabilities: []config.CapabilityRuleConfig{{Name: "patients", Roles: []string{"Nurse"}}},
	})
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}
