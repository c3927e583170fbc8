package handler

import (
	"net/http"

	"go-clinic-access/internal/delivery/http/middleware"
	"go-clinic-access/internal/usecase"
	"go-clinic-access/pkg/response"
)

type SessionHandler struct {
	sessionUsecase usecase.SessionUsecase
}

func NewSessionHandler(sessionUsecase usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{
		sessionUsecase: sessionUsecase,
	}
}

func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	identity := middleware.GetIdentityFromContext(r.Context())
	if !ok || identity == nil {
		response.Unauthorized(w, "")
		return
	}

	session := h.sessionUsecase.Me(r.Context(), userID, *identity)
	response.Success(w, http.StatusOK, "Session retrieved successfully", session)
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	tokenID, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	if err := h.sessionUsecase.Logout(r.Context(), userID, tokenID); err != nil {
		response.ServiceUnavailable(w, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}
