package authz

// Route names used by the default policy.
const (
	RouteDashboard          = "dashboard"
	RouteSecretaryDashboard = "secretary-dashboard"
	RouteProfile            = "profile"
	RoutePatients           = "patients"
	RouteAppointments       = "appointments"
	RouteInvoices           = "invoices"
	RouteMedicalFiles       = "medical-files"
	RoutePrescriptions      = "prescriptions"
	RouteInventory          = "inventory"
	RouteSuppliers          = "suppliers"
	RouteStatistics         = "statistics"
	RouteStaff              = "staff"
	RouteAuditLogs          = "audit-logs"
)

// DefaultPolicy returns the built-in clinic policy.
func DefaultPolicy() *PolicyTable {
	clinical := []Role{RoleAdmin, RoleDentist, RoleReceptionist}
	frontDesk := []Role{RoleAdmin, RoleReceptionist}

	rules := []CapabilityRule{
		{Capability: CapabilityPatients, Roles: clinical},
		{Capability: CapabilityAppointments, Roles: clinical},
		{Capability: CapabilityInvoices, Roles: frontDesk},
		{Capability: CapabilityMedicalFiles, Roles: clinical},
		{Capability: CapabilityPrescriptions, Roles: clinical},
		{Capability: CapabilityInventory, Roles: frontDesk},
		{Capability: CapabilitySuppliers, Roles: frontDesk},
		{Capability: CapabilityStatistics, Roles: frontDesk},
		{Capability: CapabilityAdmin, Roles: []Role{RoleAdmin}},
		{Capability: CapabilityAlways},
	}

	routes := []Route{
		{Name: RouteDashboard, Path: "/", Capability: CapabilityAlways},
		{Name: RouteSecretaryDashboard, Path: "/secretary-dashboard", Roles: []Role{RoleReceptionist}},
		{Name: RouteProfile, Path: "/profile", Capability: CapabilityAlways},
		{Name: RoutePatients, Path: "/patients", Capability: CapabilityPatients},
		{Name: RouteAppointments, Path: "/appointments", Capability: CapabilityAppointments},
		{Name: RouteInvoices, Path: "/invoices", Capability: CapabilityInvoices},
		{Name: RouteMedicalFiles, Path: "/medical-files", Capability: CapabilityMedicalFiles},
		{Name: RoutePrescriptions, Path: "/prescriptions", Capability: CapabilityPrescriptions},
		{Name: RouteInventory, Path: "/inventory", Capability: CapabilityInventory},
		{Name: RouteSuppliers, Path: "/suppliers", Capability: CapabilitySuppliers},
		{Name: RouteStatistics, Path: "/statistics", Capability: CapabilityStatistics},
		{Name: RouteStaff, Path: "/staff", Capability: CapabilityAdmin},
		{Name: RouteAuditLogs, Path: "/audit-logs", Capability: CapabilityAdmin},
	}

	menu := []MenuEntry{
		{Label: "Dashboard", Route: RouteDashboard, Capability: CapabilityAlways},
		{Label: "Patients", Route: RoutePatients, Capability: CapabilityPatients},
		{Label: "Appointments", Route: RouteAppointments, Capability: CapabilityAppointments},
		{Label: "Invoices", Route: RouteInvoices, Capability: CapabilityInvoices},
		{Label: "Medical Files", Route: RouteMedicalFiles, Capability: CapabilityMedicalFiles},
		{Label: "Prescriptions", Route: RoutePrescriptions, Capability: CapabilityPrescriptions},
		{Label: "Inventory", Route: RouteInventory, Capability: CapabilityInventory},
		{Label: "Suppliers", Route: RouteSuppliers, Capability: CapabilitySuppliers},
		{Label: "Statistics", Route: RouteStatistics, Capability: CapabilityStatistics},
		{Label: "Staff", Route: RouteStaff, Capability: CapabilityAdmin},
		{Label: "Audit Log", Route: RouteAuditLogs, Capability: CapabilityAdmin},
		{Label: "Profile", Route: RouteProfile, Capability: CapabilityAlways},
	}

	policy, err := NewPolicy(rules, routes, menu, nil)
	if err != nil {
		panic("authz: default policy is invalid: " + err.Error())
	}
	return policy
}
