package middleware

import (
	"errors"
	"net/http"

	"go-clinic-access/internal/authz"
	"go-clinic-access/internal/infrastructure/metrics"
	"go-clinic-access/pkg/response"

	"github.com/sirupsen/logrus"
)

// RouteGuard adapts authz.Guard to http middleware. Allow runs the next
// handler; deny answers with the redirect target only.
type RouteGuard struct {
	log     *logrus.Logger
	engine  *authz.Engine
	metrics *metrics.Metrics
}

func NewRouteGuard(log *logrus.Logger, engine *authz.Engine, metrics *metrics.Metrics) *RouteGuard {
	return &RouteGuard{
		log:     log,
		engine:  engine,
		metrics: metrics,
	}
}

// RequireRoute guards next with the rule of a named policy route.
func (g *RouteGuard) RequireRoute(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentityFromContext(r.Context())
			h, decision, err := authz.GuardRoute(g.engine, identity, name, func() http.Handler { return next })
			g.serve(w, r, h, decision, err)
		})
	}
}

// Require guards next with an explicit role list and capability.
func (g *RouteGuard) Require(allowedRoles []authz.Role, required authz.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentityFromContext(r.Context())
			h, decision, err := authz.Guard(g.engine, identity, allowedRoles, required, func() http.Handler { return next })
			g.serve(w, r, h, decision, err)
		})
	}
}

func (g *RouteGuard) serve(w http.ResponseWriter, r *http.Request, h http.Handler, decision authz.Decision, err error) {
	g.metrics.ObserveDecision(decision)
	entry := g.log.WithFields(logrus.Fields{"path": r.URL.Path, "reason": decision.Reason.String()})

	if err != nil {
		switch {
		case errors.Is(err, authz.ErrPolicyLookupMiss):
			entry.Errorf("Policy lookup miss: %v", err)
			response.InternalServerError(w, "")
		case errors.Is(err, authz.ErrMalformedIdentity):
			entry.Warnf("Malformed identity: %v", err)
			redirect(w, g.engine.Policy(), http.StatusUnauthorized, authz.TargetLoginEntry)
		default:
			entry.Errorf("Guard failed: %v", err)
			response.InternalServerError(w, "")
		}
		return
	}

	if !decision.Allowed {
		entry.Debugf("Access denied, redirecting to %s", decision.Redirect)
		status := http.StatusForbidden
		if decision.Reason == authz.ReasonUnauthenticated {
			status = http.StatusUnauthorized
		}
		redirect(w, g.engine.Policy(), status, decision.Redirect)
		return
	}

	h.ServeHTTP(w, r)
}
