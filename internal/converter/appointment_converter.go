package converter

import (
	"uiu-clinic-api/internal/delivery/dto"
	"uiu-clinic-api/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment with loaded Patient and Doctor to its DTO.
// Participants are exposed by institutional ID, never by internal UUID.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:          appointment.ID,
		PatientID:   appointment.Patient.UIUID,
		PatientName: appointment.Patient.DisplayName(),
		DoctorID:    appointment.Doctor.UIUID,
		DoctorName:  appointment.Doctor.DisplayName(),
		Date:        appointment.Date.Format(entity.DateLayout),
		Time:        appointment.Time,
		Status:      string(appointment.Status),
		Reason:      appointment.Reason,
		Emergency:   appointment.Emergency,
		Notes:       appointment.Notes,
		CreatedAt:   appointment.CreatedAt,
		UpdatedAt:   appointment.UpdatedAt,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
