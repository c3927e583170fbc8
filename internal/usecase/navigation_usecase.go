package usecase

import (
	"context"
	"errors"

	"go-clinic-access/internal/authz"
	"go-clinic-access/internal/converter"
	"go-clinic-access/internal/delivery/dto"
	"go-clinic-access/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

var (
	ErrRouteNotFound = errors.New("route not found")
)

// NavigationUsecase answers what the navigation collaborator may show and
// open for an identity. Every answer comes from the authorization engine.
type NavigationUsecase interface {
	Menu(ctx context.Context, identity authz.Identity) (*dto.MenuResponse, error)
	Routes(ctx context.Context, identity authz.Identity) (*dto.RouteListResponse, error)
	Route(ctx context.Context, identity authz.Identity, name string) (*dto.RouteDecisionResponse, error)
}

type navigationUsecase struct {
	log     *logrus.Logger
	engine  *authz.Engine
	metrics *metrics.Metrics
}

func NewNavigationUsecase(log *logrus.Logger, engine *authz.Engine, metrics *metrics.Metrics) NavigationUsecase {
	return &navigationUsecase{
		log:     log,
		engine:  engine,
		metrics: metrics,
	}
}

func (u *navigationUsecase) Menu(ctx context.Context, identity authz.Identity) (*dto.MenuResponse, error) {
	entries, err := u.engine.VisibleMenu(identity)
	if err != nil {
		u.log.Errorf("Failed to filter menu for role %q: %+v", identity.Role, err)
		return nil, err
	}
	return converter.MenuToResponse(entries, u.engine.Policy()), nil
}

func (u *navigationUsecase) Routes(ctx context.Context, identity authz.Identity) (*dto.RouteListResponse, error) {
	policy := u.engine.Policy()
	routes := policy.Routes()

	response := &dto.RouteListResponse{Routes: make([]dto.RouteDecisionResponse, 0, len(routes))}
	for _, route := range routes {
		decision, err := u.engine.Decide(identity, route.Roles, route.Capability)
		if err != nil {
			u.log.Errorf("Failed to decide route %q: %+v", route.Name, err)
			return nil, err
		}
		u.metrics.ObserveDecision(decision)
		response.Routes = append(response.Routes, converter.RouteDecisionToResponse(route, decision, policy))
	}
	return response, nil
}

func (u *navigationUsecase) Route(ctx context.Context, identity authz.Identity, name string) (*dto.RouteDecisionResponse, error) {
	policy := u.engine.Policy()
	route, err := policy.Route(name)
	if err != nil {
		return nil, ErrRouteNotFound
	}

	decision, err := u.engine.Decide(identity, route.Roles, route.Capability)
	if err != nil {
		u.log.Errorf("Failed to decide route %q: %+v", route.Name, err)
		return nil, err
	}
	u.metrics.ObserveDecision(decision)

	response := converter.RouteDecisionToResponse(route, decision, policy)
	return &response, nil
}
