package handler

import (
	"net/http"

	"uiu-clinic-api/internal/usecase"
	"uiu-clinic-api/pkg/response"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
	}
}

// ListDoctors handles listing active staff
// @Summary List doctors
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param department query string false "Department (case-insensitive, partial match)"
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.ListDoctors(r.Context(), r.URL.Query().Get("department"))
	if err != nil {
		response.Fail(w, err, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}
