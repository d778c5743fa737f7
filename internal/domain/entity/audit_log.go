package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog is one entry of the clinic's audit trail. UserID is the acting user, nil for
// anonymous events.
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON is a jsonb column holding an arbitrary object
type JSON map[string]interface{}

func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSON) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb value type %T", value)
	}

	result := map[string]interface{}{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*j = result
	return nil
}

// Actions recorded by the clinic. Metadata "entity" is "user" or "appointment" and "entity_id"
// the UIU ID or appointment UUID respectively.
const (
	AuditActionUserLogin               = "user.login"
	AuditActionUserLogout              = "user.logout"
	AuditActionUserRegister            = "user.register"
	AuditActionUserActivate            = "user.activate"
	AuditActionUserDeactivate          = "user.deactivate"
	AuditActionProfileUpdate           = "profile.update"
	AuditActionAppointmentCreate       = "appointment.create"
	AuditActionAppointmentStatusUpdate = "appointment.status_update"
	AuditActionAppointmentCancel       = "appointment.cancel"
)

var auditActions = map[string]struct{}{
	AuditActionUserLogin:               {},
	AuditActionUserLogout:              {},
	AuditActionUserRegister:            {},
	AuditActionUserActivate:            {},
	AuditActionUserDeactivate:          {},
	AuditActionProfileUpdate:           {},
	AuditActionAppointmentCreate:       {},
	AuditActionAppointmentStatusUpdate: {},
	AuditActionAppointmentCancel:       {},
}

func IsAuditAction(action string) bool {
	_, ok := auditActions[action]
	return ok
}
