package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-clinic-access/internal/authz"
	"go-clinic-access/internal/delivery/dto"
	"go-clinic-access/internal/delivery/http/middleware"
	"go-clinic-access/internal/usecase"
	"go-clinic-access/pkg/response"
	"go-clinic-access/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type StaffPermissionHandler struct {
	staffPermissionUsecase usecase.StaffPermissionUsecase
	validator              *validator.CustomValidator
}

func NewStaffPermissionHandler(staffPermissionUsecase usecase.StaffPermissionUsecase, validator *validator.CustomValidator) *StaffPermissionHandler {
	return &StaffPermissionHandler{
		staffPermissionUsecase: staffPermissionUsecase,
		validator:              validator,
	}
}

// RegisterCapabilityRule adds the grantable_capability validation tag.
func RegisterCapabilityRule(v *validator.CustomValidator) error {
	return v.RegisterStringRule("grantable_capability", "is not a grantable capability", func(name string) bool {
		c, ok := authz.ParseCapability(name)
		return ok && c.Grantable()
	})
}

func (h *StaffPermissionHandler) GetPermissions(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	permissions, err := h.staffPermissionUsecase.GetPermissions(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Permissions retrieved successfully", permissions)
}

func (h *StaffPermissionHandler) UpdatePermissions(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req dto.UpdateStaffPermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	permissions, err := h.staffPermissionUsecase.UpdatePermissions(r.Context(), actorID, userID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Permissions updated successfully", permissions)
}

func (h *StaffPermissionHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, usecase.ErrNotReceptionist):
		response.Error(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, usecase.ErrInvalidCapability):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, "Failed to process permissions")
	}
}
