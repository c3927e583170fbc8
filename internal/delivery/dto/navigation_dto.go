package dto

type MenuEntryResponse struct {
	Label      string `json:"label"`
	Route      string `json:"route"`
	Path       string `json:"path"`
	Capability string `json:"capability,omitempty"`
}

type MenuResponse struct {
	Entries []MenuEntryResponse `json:"entries"`
}

type RouteDecisionResponse struct {
	Name       string            `json:"name"`
	Path       string            `json:"path"`
	Capability string            `json:"capability,omitempty"`
	Allowed    bool              `json:"allowed"`
	Redirect   *RedirectResponse `json:"redirect,omitempty"`
}

type RouteListResponse struct {
	Routes []RouteDecisionResponse `json:"routes"`
}
