package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents every account of the clinic: students, staff and admins
type User struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UIUID            string     `gorm:"column:uiu_id;type:varchar(20);uniqueIndex;not null" json:"uiu_id"`
	Username         string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email            string     `gorm:"type:varchar(255);not null" json:"email"`
	Password         string     `gorm:"type:text;not null" json:"-"`
	FirstName        string     `gorm:"type:varchar(150)" json:"first_name"`
	LastName         string     `gorm:"type:varchar(150)" json:"last_name"`
	Role             Role       `gorm:"type:varchar(10);not null;default:'STUDENT';index" json:"role"`
	Phone            string     `gorm:"type:varchar(15)" json:"phone,omitempty"`
	Department       string     `gorm:"type:varchar(100)" json:"department,omitempty"`
	DateOfBirth      *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	BloodGroup       string     `gorm:"type:varchar(5)" json:"blood_group,omitempty"`
	Address          string     `gorm:"type:text" json:"address,omitempty"`
	EmergencyContact string     `gorm:"type:varchar(15)" json:"emergency_contact,omitempty"`
	IsActive         bool       `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName joins first and last name, falling back to the username
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// SetFullName splits a full name on its first whitespace into first and last name
func (u *User) SetFullName(fullName string) {
	first, last := SplitFullName(fullName)
	u.FirstName = first
	u.LastName = last
}

// SplitFullName returns the part before the first whitespace and the trimmed remainder
func SplitFullName(fullName string) (string, string) {
	trimmed := strings.TrimSpace(fullName)
	idx := strings.IndexFunc(trimmed, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n'
	})
	if idx < 0 {
		return trimmed, ""
	}
	return trimmed[:idx], strings.TrimSpace(trimmed[idx+1:])
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
