package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing role", func(t *testing.T) {
		_, err := Load(RawAccount{})
		assert.ErrorIs(t, err, ErrMalformedIdentity)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := Load(RawAccount{Role: "Nurse"})
		assert.ErrorIs(t, err, ErrMalformedIdentity)
	})

	t.Run("role name must match exactly", func(t *testing.T) {
		for _, name := range []string{"admin", "ADMIN", " Admin", "receptionist"} {
			_, err := Load(RawAccount{Role: name})
			assert.ErrorIs(t, err, ErrMalformedIdentity, name)
		}
	})

	t.Run("permissions ignored for other roles", func(t *testing.T) {
		id, err := Load(RawAccount{Role: "Dentist", Permissions: map[string]bool{"patients": false}})
		require.NoError(t, err)
		assert.Nil(t, id.Permissions)
		assert.False(t, id.LegacyDefaults)
	})

	t.Run("receptionist without permissions gets legacy defaults", func(t *testing.T) {
		id, err := Load(RawAccount{Role: "Receptionist"})
		require.NoError(t, err)
		assert.True(t, id.LegacyDefaults)
		assert.Equal(t, LegacyDefaultPermissions(), id.Permissions)
	})

	t.Run("empty permissions stay empty", func(t *testing.T) {
		id, err := Load(RawAccount{Role: "Receptionist", Permissions: map[string]bool{}})
		require.NoError(t, err)
		assert.False(t, id.LegacyDefaults)
		assert.NotNil(t, id.Permissions)
		assert.Empty(t, id.Permissions)
	})

	t.Run("unknown keys are dropped", func(t *testing.T) {
		id, err := Load(RawAccount{Role: "Receptionist", Permissions: map[string]bool{
			"medicalFiles": false,
			"payroll":      true,
			"always":       false,
			"admin":        true,
		}})
		require.NoError(t, err)
		assert.Equal(t, PermissionSet{CapabilityMedicalFiles: false, CapabilityAdmin: true}, id.Permissions)
		assert.False(t, id.Permissions.Granted(CapabilityAdmin))
	})

	t.Run("differently cased keys never override a revoke", func(t *testing.T) {
		engine := NewEngine(DefaultPolicy())
		for i := 0; i < 200; i++ {
			id, err := Load(RawAccount{Role: "Receptionist", Permissions: map[string]bool{
				"patients": false,
				"Patients": true,
				"PATIENTS": true,
			}})
			require.NoError(t, err)
			require.Equal(t, PermissionSet{CapabilityPatients: false}, id.Permissions)

			decision, err := engine.Decide(id, []Role{RoleReceptionist}, CapabilityPatients)
			require.NoError(t, err)
			require.False(t, decision.Allowed)
			require.Equal(t, TargetSecretaryDashboard, decision.Redirect)
		}
	})
}

func TestParseCapability(t *testing.T) {
	c, ok := ParseCapability("medicalFiles")
	assert.True(t, ok)
	assert.Equal(t, CapabilityMedicalFiles, c)

	for _, name := range []string{"Patients", "medicalfiles", " patients", ""} {
		_, ok := ParseCapability(name)
		assert.False(t, ok, name)
	}
}

func TestLoadJSON(t *testing.T) {
	t.Run("null permissions", func(t *testing.T) {
		id, err := LoadJSON([]byte(`{"role":"Receptionist","permissions":null}`))
		require.NoError(t, err)
		assert.True(t, id.LegacyDefaults)
	})

	t.Run("explicit revocation", func(t *testing.T) {
		id, err := LoadJSON([]byte(`{"role":"Receptionist","permissions":{"suppliers":false}}`))
		require.NoError(t, err)
		assert.False(t, id.Permissions.Granted(CapabilitySuppliers))
		assert.True(t, id.Permissions.Granted(CapabilityInventory))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := LoadJSON([]byte(`{`))
		assert.ErrorIs(t, err, ErrMalformedIdentity)
	})
}
