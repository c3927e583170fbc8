package handler

import (
	"errors"
	"net/http"

	"go-clinic-access/internal/delivery/http/middleware"
	"go-clinic-access/internal/usecase"
	"go-clinic-access/pkg/response"

	"github.com/gorilla/mux"
)

type NavigationHandler struct {
	navigationUsecase usecase.NavigationUsecase
}

func NewNavigationHandler(navigationUsecase usecase.NavigationUsecase) *NavigationHandler {
	return &NavigationHandler{
		navigationUsecase: navigationUsecase,
	}
}

func (h *NavigationHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		response.Unauthorized(w, "")
		return
	}

	menu, err := h.navigationUsecase.Menu(r.Context(), *identity)
	if err != nil {
		response.InternalServerError(w, "Failed to build menu")
		return
	}

	response.Success(w, http.StatusOK, "Menu retrieved successfully", menu)
}

func (h *NavigationHandler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		response.Unauthorized(w, "")
		return
	}

	routes, err := h.navigationUsecase.Routes(r.Context(), *identity)
	if err != nil {
		response.InternalServerError(w, "Failed to evaluate routes")
		return
	}

	response.Success(w, http.StatusOK, "Routes retrieved successfully", routes)
}

func (h *NavigationHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		response.Unauthorized(w, "")
		return
	}

	route, err := h.navigationUsecase.Route(r.Context(), *identity, mux.Vars(r)["name"])
	if err != nil {
		if errors.Is(err, usecase.ErrRouteNotFound) {
			response.NotFound(w, "Route not found")
			return
		}
		response.InternalServerError(w, "Failed to evaluate route")
		return
	}

	response.Success(w, http.StatusOK, "Route retrieved successfully", route)
}
