package usecase

import (
	"errors"
	"strings"

	"uiu-clinic-api/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrPasswordMismatch = apperror.ValidationFields("passwords do not match", map[string]string{
		"confirmPassword": "passwords do not match",
	})
	ErrUIUIDAlreadyExists = apperror.ValidationFields("a user with this UIU ID already exists", map[string]string{
		"uiuId": "a user with this UIU ID already exists",
	})
	ErrInvalidCredentials = apperror.Auth("invalid credentials")
	ErrAccountDeactivated = apperror.Forbidden("account is deactivated")
	ErrMissingToken       = apperror.Auth("authentication credentials were not provided")
	ErrInvalidToken       = apperror.Auth("invalid or expired token")
	ErrTokenRevoked       = apperror.Auth("token has been revoked")
	ErrUserInactive       = apperror.Auth("user not found or inactive")
	ErrWrongPassword      = apperror.Auth("old password is incorrect")

	ErrUserNotFound         = apperror.NotFound("user not found")
	ErrInvalidRole          = apperror.ValidationFields("invalid role", map[string]string{"role": "must be one of: student staff admin"})
	ErrCannotDeactivateSelf = apperror.Validation("you cannot deactivate your own account")
	ErrInvalidDateOfBirth   = apperror.ValidationFields("invalid date format, use YYYY-MM-DD", map[string]string{
		"date_of_birth": "must use the format YYYY-MM-DD",
	})

	ErrAppointmentNotFound = apperror.NotFound("appointment not found")
	ErrDoctorNotFound      = apperror.ValidationFields("doctor not found", map[string]string{
		"doctorId": "no staff member with this UIU ID",
	})
	ErrInvalidDate = apperror.ValidationFields("invalid date format, use YYYY-MM-DD", map[string]string{
		"date": "must use the format YYYY-MM-DD",
	})
	ErrInvalidStatus = apperror.ValidationFields("invalid status", map[string]string{
		"status": "must be one of: pending confirmed completed cancelled",
	})
	ErrInvalidEmergency = apperror.ValidationFields("invalid emergency filter", map[string]string{
		"emergency": "must be true or false",
	})

	ErrAuditLogNotFound     = apperror.NotFound("audit log not found")
	ErrInvalidAuditAction   = apperror.ValidationFields("invalid audit action", map[string]string{"action": "unknown audit action"})
	ErrInvalidAppointmentID = apperror.ValidationFields("invalid appointment ID", map[string]string{"appointmentId": "must be a UUID"})
	ErrInvalidLimit         = apperror.ValidationFields("invalid limit", map[string]string{"limit": "must be between 1 and 500"})
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
