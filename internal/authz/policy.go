package authz

import (
	"fmt"

	"go-clinic-access/config"
)

// CapabilityRule declares which roles may use a capability by default.
type CapabilityRule struct {
	Capability Capability
	Roles      []Role
}

// Route is a protected screen. Roles holds the effective allowed roles: the
// route's own list, or the roles of its capability when the route declares none.
type Route struct {
	Name       string
	Path       string
	Capability Capability
	Roles      []Role
}

// MenuEntry is one navigation item pointing at a route.
type MenuEntry struct {
	Label      string
	Route      string
	Capability Capability
}

// PolicyTable is the static access policy. It is built once and never mutated.
type PolicyTable struct {
	rules     []CapabilityRule
	byCap     map[Capability][]Role
	routes    []Route
	byRoute   map[string]Route
	menu      []MenuEntry
	locations map[Target]string
}

var defaultLocations = map[Target]string{
	TargetLoginEntry:         "/login",
	TargetDefaultLanding:     "/",
	TargetSecretaryDashboard: "/secretary-dashboard",
}

// NewPolicy validates and assembles a policy table. Missing redirect locations
// fall back to the defaults.
func NewPolicy(rules []CapabilityRule, routes []Route, menu []MenuEntry, locations map[Target]string) (*PolicyTable, error) {
	p := &PolicyTable{
		byCap:     make(map[Capability][]Role, len(rules)),
		byRoute:   make(map[string]Route, len(routes)),
		locations: make(map[Target]string, len(defaultLocations)),
	}

	for _, rule := range rules {
		if err := p.addRule(rule); err != nil {
			return nil, err
		}
	}
	for _, route := range routes {
		if err := p.addRoute(route); err != nil {
			return nil, err
		}
	}
	for _, entry := range menu {
		if err := p.addMenuEntry(entry); err != nil {
			return nil, err
		}
	}

	for target, location := range defaultLocations {
		p.locations[target] = location
	}
	for target, location := range locations {
		if !isTarget(target) {
			return nil, fmt.Errorf("%w: unknown redirect target %q", ErrInvalidPolicy, target)
		}
		if location != "" {
			p.locations[target] = location
		}
	}

	return p, nil
}

func (p *PolicyTable) addRule(rule CapabilityRule) error {
	if rule.Capability == NoCapability {
		return fmt.Errorf("%w: capability rule without a capability", ErrInvalidPolicy)
	}
	if _, dup := p.byCap[rule.Capability]; dup {
		return fmt.Errorf("%w: capability %q declared twice", ErrInvalidPolicy, rule.Capability)
	}
	for _, role := range rule.Roles {
		if !role.Valid() {
			return fmt.Errorf("%w: capability %q lists unknown role %q", ErrInvalidPolicy, rule.Capability, role)
		}
	}

	roles := append([]Role(nil), rule.Roles...)
	switch rule.Capability {
	case CapabilityAdmin:
		for _, role := range roles {
			if role != RoleAdmin {
				return fmt.Errorf("%w: capability %q cannot be granted to %q", ErrInvalidPolicy, CapabilityAdmin, role)
			}
		}
		roles = []Role{RoleAdmin}
	case CapabilityAlways:
		if len(roles) == 0 {
			roles = AllRoles()
		}
	}
	if len(roles) == 0 {
		return fmt.Errorf("%w: capability %q has no roles", ErrInvalidPolicy, rule.Capability)
	}

	p.byCap[rule.Capability] = roles
	p.rules = append(p.rules, CapabilityRule{Capability: rule.Capability, Roles: roles})
	return nil
}

func (p *PolicyTable) addRoute(route Route) error {
	if route.Name == "" || route.Path == "" {
		return fmt.Errorf("%w: route needs a name and a path", ErrInvalidPolicy)
	}
	if _, dup := p.byRoute[route.Name]; dup {
		return fmt.Errorf("%w: route %q declared twice", ErrInvalidPolicy, route.Name)
	}
	for _, role := range route.Roles {
		if !role.Valid() {
			return fmt.Errorf("%w: route %q lists unknown role %q", ErrInvalidPolicy, route.Name, role)
		}
	}

	roles := append([]Role(nil), route.Roles...)
	if route.Capability != NoCapability {
		capRoles, ok := p.byCap[route.Capability]
		if !ok {
			return fmt.Errorf("%w: route %q references capability %q", ErrPolicyLookupMiss, route.Name, route.Capability)
		}
		if len(roles) == 0 {
			roles = append(roles, capRoles...)
		}
	}
	if len(roles) == 0 {
		return fmt.Errorf("%w: route %q has no roles", ErrInvalidPolicy, route.Name)
	}

	route.Roles = roles
	p.byRoute[route.Name] = route
	p.routes = append(p.routes, route)
	return nil
}

func (p *PolicyTable) addMenuEntry(entry MenuEntry) error {
	if entry.Label == "" {
		return fmt.Errorf("%w: menu entry for route %q has no label", ErrInvalidPolicy, entry.Route)
	}
	route, ok := p.byRoute[entry.Route]
	if !ok {
		return fmt.Errorf("%w: menu entry %q references route %q", ErrPolicyLookupMiss, entry.Label, entry.Route)
	}
	if _, ok := p.byCap[entry.Capability]; !ok {
		return fmt.Errorf("%w: menu entry %q references capability %q", ErrPolicyLookupMiss, entry.Label, entry.Capability)
	}

	// An entry may be stricter than its route (admin) but never looser.
	if entry.Capability != route.Capability && entry.Capability != CapabilityAdmin {
		return fmt.Errorf("%w: menu entry %q is tagged %q but route %q is tagged %q",
			ErrInvalidPolicy, entry.Label, entry.Capability, route.Name, route.Capability)
	}
	if entry.Capability == CapabilityAlways {
		for _, role := range AllRoles() {
			if !containsRole(route.Roles, role) {
				return fmt.Errorf("%w: menu entry %q is always visible but route %q denies %q",
					ErrInvalidPolicy, entry.Label, route.Name, role)
			}
		}
	}

	p.menu = append(p.menu, entry)
	return nil
}

// Declares reports whether c has a rule in the table.
func (p *PolicyTable) Declares(c Capability) bool {
	_, ok := p.byCap[c]
	return ok
}

// RolesFor returns the default roles of a capability.
func (p *PolicyTable) RolesFor(c Capability) ([]Role, error) {
	roles, ok := p.byCap[c]
	if !ok {
		return nil, fmt.Errorf("%w: capability %q", ErrPolicyLookupMiss, c)
	}
	return append([]Role(nil), roles...), nil
}

// Route looks up a route by name.
func (p *PolicyTable) Route(name string) (Route, error) {
	route, ok := p.byRoute[name]
	if !ok {
		return Route{}, fmt.Errorf("%w: route %q", ErrPolicyLookupMiss, name)
	}
	route.Roles = append([]Role(nil), route.Roles...)
	return route, nil
}

// Rules returns the capability rules in declaration order.
func (p *PolicyTable) Rules() []CapabilityRule {
	return append([]CapabilityRule(nil), p.rules...)
}

// Routes returns the routes in declaration order.
func (p *PolicyTable) Routes() []Route {
	return append([]Route(nil), p.routes...)
}

// Menu returns the full navigation list in declaration order.
func (p *PolicyTable) Menu() []MenuEntry {
	return append([]MenuEntry(nil), p.menu...)
}

// Location returns the path the navigation collaborator should open for t.
func (p *PolicyTable) Location(t Target) string {
	return p.locations[t]
}

func isTarget(t Target) bool {
	for _, candidate := range AllTargets() {
		if candidate == t {
			return true
		}
	}
	return false
}

// NewPolicyTable builds a policy table from its configuration-file form.
func NewPolicyTable(cfg config.PolicyConfig) (*PolicyTable, error) {
	rules := make([]CapabilityRule, 0, len(cfg.Capabilities))
	for _, rc := range cfg.Capabilities {
		c, ok := ParseCapability(rc.Name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown capability %q", ErrInvalidPolicy, rc.Name)
		}
		roles, err := parseRoles(rc.Roles)
		if err != nil {
			return nil, err
		}
		rules = append(rules, CapabilityRule{Capability: c, Roles: roles})
	}

	routes := make([]Route, 0, len(cfg.Routes))
	for _, rc := range cfg.Routes {
		c, err := parseOptionalCapability(rc.Capability)
		if err != nil {
			return nil, err
		}
		roles, err := parseRoles(rc.Roles)
		if err != nil {
			return nil, err
		}
		routes = append(routes, Route{Name: rc.Name, Path: rc.Path, Capability: c, Roles: roles})
	}

	menu := make([]MenuEntry, 0, len(cfg.Menu))
	for _, mc := range cfg.Menu {
		c, ok := ParseCapability(mc.Capability)
		if !ok {
			return nil, fmt.Errorf("%w: menu entry %q has unknown capability %q", ErrInvalidPolicy, mc.Label, mc.Capability)
		}
		menu = append(menu, MenuEntry{Label: mc.Label, Route: mc.Route, Capability: c})
	}

	locations := make(map[Target]string, len(cfg.Targets))
	for name, location := range cfg.Targets {
		locations[Target(name)] = location
	}

	return NewPolicy(rules, routes, menu, locations)
}

func parseRoles(names []string) ([]Role, error) {
	roles := make([]Role, 0, len(names))
	for _, name := range names {
		role, ok := ParseRole(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidPolicy, name)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func parseOptionalCapability(name string) (Capability, error) {
	if name == "" {
		return NoCapability, nil
	}
	c, ok := ParseCapability(name)
	if !ok {
		return NoCapability, fmt.Errorf("%w: unknown capability %q", ErrInvalidPolicy, name)
	}
	return c, nil
}
