package authz

// Capability names a protectable feature area. Capabilities tag screens and
// menu entries, never identities.
type Capability string

// NoCapability marks a screen guarded by role only.
const NoCapability Capability = ""

const (
	CapabilityPatients      Capability = "patients"
	CapabilityAppointments  Capability = "appointments"
	CapabilityInvoices      Capability = "invoices"
	CapabilityMedicalFiles  Capability = "medicalFiles"
	CapabilityPrescriptions Capability = "prescriptions"
	CapabilityInventory     Capability = "inventory"
	CapabilitySuppliers     Capability = "suppliers"
	CapabilityStatistics    Capability = "statistics"

	// CapabilityAdmin is reachable through the Admin role only and can never
	// be granted through a permission set.
	CapabilityAdmin Capability = "admin"
	// CapabilityAlways means no restriction beyond the role gate.
	CapabilityAlways Capability = "always"
)

// GrantableCapabilities returns the capabilities a Receptionist permission
// set may carry, in declaration order.
func GrantableCapabilities() []Capability {
	return []Capability{
		CapabilityPatients,
		CapabilityAppointments,
		CapabilityInvoices,
		CapabilityMedicalFiles,
		CapabilityPrescriptions,
		CapabilityInventory,
		CapabilitySuppliers,
		CapabilityStatistics,
	}
}

// AllCapabilities returns the grantable capabilities followed by the two sentinels.
func AllCapabilities() []Capability {
	return append(GrantableCapabilities(), CapabilityAdmin, CapabilityAlways)
}

// ParseCapability maps a capability name onto the closed enumeration. Names
// match exactly, so no two distinct keys of a permission set can name the
// same capability.
func ParseCapability(name string) (Capability, bool) {
	for _, c := range AllCapabilities() {
		if string(c) == name {
			return c, true
		}
	}
	return NoCapability, false
}

// Grantable reports whether c may appear in a Receptionist permission set.
func (c Capability) Grantable() bool {
	for _, g := range GrantableCapabilities() {
		if g == c {
			return true
		}
	}
	return false
}

// Sentinel reports whether c is admin or always.
func (c Capability) Sentinel() bool {
	return c == CapabilityAdmin || c == CapabilityAlways
}

func (c Capability) String() string {
	return string(c)
}
