package dto

import (
	"time"

	"uiu-clinic-api/internal/domain/entity"
)

// AuditLogListQuery holds the raw query string filters of the audit log list.
type AuditLogListQuery struct {
	Action        string
	UIUID         string
	AppointmentID string
	Limit         string
}

// Response DTOs

type AuditLogResponse struct {
	ID        int64         `json:"id"`
	User      *UserResponse `json:"user,omitempty"`
	Action    string        `json:"action"`
	Metadata  entity.JSON   `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
