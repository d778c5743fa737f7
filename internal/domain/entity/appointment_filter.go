package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
// Nil fields are not applied.
type AppointmentFilter struct {
	PatientID *uuid.UUID // Ownership scope for students
	DoctorID  *uuid.UUID // Ownership scope for staff
	Status    *AppointmentStatus
	Date      *time.Time
	Emergency *bool
}

// UserFilter narrows user listings.
type UserFilter struct {
	Role       *Role
	Department string // case-insensitive substring, wildcards taken literally
	ActiveOnly bool
}

// AuditLogFilter narrows audit log reads. Zero fields match everything.
type AuditLogFilter struct {
	Action   string
	UserID   *uuid.UUID
	Entity   string
	EntityID string
	Limit    int
}
