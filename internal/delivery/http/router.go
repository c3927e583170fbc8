package http

import (
	"net/http"

	"go-clinic-access/internal/authz"
	"go-clinic-access/internal/delivery/http/handler"
	"go-clinic-access/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                 *mux.Router
	sessionHandler         *handler.SessionHandler
	navigationHandler      *handler.NavigationHandler
	staffPermissionHandler *handler.StaffPermissionHandler
	auditLogHandler        *handler.AuditLogHandler
	metricsHandler         http.Handler
	authMiddleware         *middleware.AuthMiddleware
	routeGuard             *middleware.RouteGuard
	corsMiddleware         *middleware.CORSMiddleware
}

func NewRouter(
	sessionHandler *handler.SessionHandler,
	navigationHandler *handler.NavigationHandler,
	staffPermissionHandler *handler.StaffPermissionHandler,
	auditLogHandler *handler.AuditLogHandler,
	metricsHandler http.Handler,
	authMiddleware *middleware.AuthMiddleware,
	routeGuard *middleware.RouteGuard,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                 mux.NewRouter(),
		sessionHandler:         sessionHandler,
		navigationHandler:      navigationHandler,
		staffPermissionHandler: staffPermissionHandler,
		auditLogHandler:        auditLogHandler,
		metricsHandler:         metricsHandler,
		authMiddleware:         authMiddleware,
		routeGuard:             routeGuard,
		corsMiddleware:         corsMiddleware,
	}
}

// GuardedRoutes lists the policy routes the API guards with. They must exist
// in any configured policy table.
func GuardedRoutes() []string {
	return []string{authz.RouteProfile, authz.RouteStaff}
}

func (r *Router) Setup() http.Handler {
	r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Session routes (any signed-in role)
	session := api.PathPrefix("/session").Subrouter()
	session.Use(r.authMiddleware.Authenticate)
	session.Use(r.routeGuard.RequireRoute(authz.RouteProfile))
	session.HandleFunc("/me", r.sessionHandler.Me).Methods(http.MethodGet)
	session.HandleFunc("/logout", r.sessionHandler.Logout).Methods(http.MethodPost)

	// Navigation routes (any signed-in role)
	navigation := api.PathPrefix("/navigation").Subrouter()
	navigation.Use(r.authMiddleware.Authenticate)
	navigation.Use(r.routeGuard.RequireRoute(authz.RouteProfile))
	navigation.HandleFunc("/menu", r.navigationHandler.GetMenu).Methods(http.MethodGet)
	navigation.HandleFunc("/routes", r.navigationHandler.GetRoutes).Methods(http.MethodGet)
	navigation.HandleFunc("/routes/{name}", r.navigationHandler.GetRoute).Methods(http.MethodGet)

	// Admin routes (guarded by the staff route, capability admin)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(r.routeGuard.RequireRoute(authz.RouteStaff))

	// Receptionist permission sets (admin)
	admin.HandleFunc("/staff/{id}/permissions", r.staffPermissionHandler.GetPermissions).Methods(http.MethodGet)
	admin.HandleFunc("/staff/{id}/permissions", r.staffPermissionHandler.UpdatePermissions).Methods(http.MethodPut)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.ListAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// CORS wraps the router so preflight requests never reach route matching
	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
