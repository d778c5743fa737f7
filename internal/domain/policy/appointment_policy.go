// Package policy decides which user may see or change which appointment.
// Every appointment operation goes through Authorize; no handler or usecase re-implements the
// role checks.
package policy

import (
	"uiu-clinic-api/internal/domain/entity"
	"uiu-clinic-api/pkg/apperror"

	"github.com/google/uuid"
)

// Action is an operation on an appointment.
type Action string

const (
	ActionBook         Action = "book"
	ActionView         Action = "view"
	ActionUpdateStatus Action = "update_status"
	ActionCancel       Action = "cancel"
)

var (
	ErrForbidden        = apperror.Forbidden("you do not have permission to perform this action")
	ErrNotPatient       = apperror.Forbidden("only the patient can cancel this appointment")
	ErrStudentsOnly     = apperror.Forbidden("only students can book appointments")
	ErrNotParticipant   = apperror.Forbidden("you are not a participant of this appointment")
	ErrAdminStatusWrite = apperror.Forbidden("admins are not allowed to change appointment status")
)

// AppointmentPolicy holds the configurable parts of the rule set.
type AppointmentPolicy struct {
	// AdminCanUpdateStatus grants admins status changes on any appointment.
	// Admins can always view every appointment.
	AdminCanUpdateStatus bool
}

func NewAppointmentPolicy(adminCanUpdateStatus bool) AppointmentPolicy {
	return AppointmentPolicy{AdminCanUpdateStatus: adminCanUpdateStatus}
}

// Authorize returns nil when actor may perform action on appointment, or a Forbidden error.
// appointment may be nil for ActionBook.
func (p AppointmentPolicy) Authorize(actor *entity.User, appointment *entity.Appointment, action Action) error {
	if actor == nil {
		return ErrForbidden
	}

	switch action {
	case ActionBook:
		if actor.Role == entity.RoleStudent {
			return nil
		}
		return ErrStudentsOnly

	case ActionView:
		if appointment == nil {
			return ErrForbidden
		}
		if actor.Role == entity.RoleAdmin || isParticipant(actor, appointment) {
			return nil
		}
		return ErrNotParticipant

	case ActionUpdateStatus:
		if appointment == nil {
			return ErrForbidden
		}
		if actor.Role == entity.RoleAdmin {
			if p.AdminCanUpdateStatus {
				return nil
			}
			return ErrAdminStatusWrite
		}
		if isParticipant(actor, appointment) {
			return nil
		}
		return ErrNotParticipant

	case ActionCancel:
		// Identity only: the role of the caller is irrelevant.
		if appointment != nil && actor.ID == appointment.PatientID {
			return nil
		}
		return ErrNotPatient
	}

	return ErrForbidden
}

// Scope returns the ownership part of the list filter for actor, equivalent to ActionView.
func (p AppointmentPolicy) Scope(actor *entity.User) entity.AppointmentFilter {
	var filter entity.AppointmentFilter
	switch actor.Role {
	case entity.RoleAdmin:
	case entity.RoleStaff:
		filter.DoctorID = idPtr(actor.ID)
	default:
		filter.PatientID = idPtr(actor.ID)
	}
	return filter
}

// isParticipant applies the role-dependent ownership rule: students own appointments as patient,
// staff as doctor.
func isParticipant(actor *entity.User, appointment *entity.Appointment) bool {
	switch actor.Role {
	case entity.RoleStudent:
		return appointment.PatientID == actor.ID
	case entity.RoleStaff:
		return appointment.DoctorID == actor.ID
	}
	return false
}

func idPtr(id uuid.UUID) *uuid.UUID {
	return &id
}
