package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// UpdateProfileRequest holds the self-editable profile fields. Empty fields are left unchanged.
type UpdateProfileRequest struct {
	Name             string `json:"name" validate:"omitempty,min=2,max=100"`
	Email            string `json:"email" validate:"omitempty,email"`
	Phone            string `json:"phone" validate:"omitempty,max=15"`
	Department       string `json:"department" validate:"omitempty,max=100"`
	DateOfBirth      string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	BloodGroup       string `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Address          string `json:"address" validate:"omitempty,max=500"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty,max=15"`
	OldPassword      string `json:"old_password" validate:"required_with=Password"`
	Password         string `json:"password" validate:"omitempty,min=8,max=128"`
}

type SetUserActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// Response DTOs

type UserResponse struct {
	ID               uuid.UUID `json:"id"`
	UIUID            string    `json:"uiuId"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	Phone            string    `json:"phone,omitempty"`
	Department       string    `json:"department,omitempty"`
	DateOfBirth      string    `json:"date_of_birth,omitempty"`
	BloodGroup       string    `json:"blood_group,omitempty"`
	Address          string    `json:"address,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

// DoctorResponse is the public directory entry of a staff member.
type DoctorResponse struct {
	UIUID      string `json:"uiuId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
