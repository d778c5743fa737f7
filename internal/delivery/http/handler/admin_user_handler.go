package handler

import (
	"encoding/json"
	"net/http"

	"uiu-clinic-api/internal/delivery/dto"
	"uiu-clinic-api/internal/usecase"
	"uiu-clinic-api/pkg/response"
	"uiu-clinic-api/pkg/validator"

	"github.com/gorilla/mux"
)

type AdminUserHandler struct {
	adminUserUsecase usecase.AdminUserUsecase
	validator        *validator.CustomValidator
}

func NewAdminUserHandler(adminUserUsecase usecase.AdminUserUsecase, validator *validator.CustomValidator) *AdminUserHandler {
	return &AdminUserHandler{
		adminUserUsecase: adminUserUsecase,
		validator:        validator,
	}
}

// ListUsers handles listing all accounts
// @Summary List users
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param role query string false "student, staff or admin"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/users [get]
func (h *AdminUserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminUserUsecase.ListUsers(r.Context(), r.URL.Query().Get("role"))
	if err != nil {
		response.Fail(w, err, "Failed to get users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

// SetActive handles account activation and deactivation
// @Summary Activate or deactivate a user
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param uiuId path string true "UIU ID"
// @Param request body dto.SetUserActiveRequest true "Set Active Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{uiuId}/active [patch]
func (h *AdminUserHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dto.SetUserActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.adminUserUsecase.SetActive(r.Context(), actor, mux.Vars(r)["uiuId"], *req.Active)
	if err != nil {
		response.Fail(w, err, "Failed to update user")
		return
	}

	response.Success(w, http.StatusOK, "User updated successfully", user)
}
