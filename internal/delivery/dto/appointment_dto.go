package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// BookAppointmentRequest has no patient field: the patient is always the caller.
type BookAppointmentRequest struct {
	DoctorID  string `json:"doctorId" validate:"required,max=20"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required,max=20"`
	Reason    string `json:"reason" validate:"required"`
	Emergency bool   `json:"emergency"`
}

type UpdateAppointmentStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// AppointmentListQuery holds the raw query string filters of the appointment list.
type AppointmentListQuery struct {
	Status    string
	Date      string
	Emergency string
}

// Response DTOs

type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	PatientID   string    `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	DoctorID    string    `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	Reason      string    `json:"reason"`
	Emergency   bool      `json:"emergency"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
