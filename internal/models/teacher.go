package models

import (
	"time"

	"gorm.io/datatypes"
)

// Teacher covers all staff logins: class advisors, department heads,
// the principal and the bootstrap admin, distinguished by Role.
type Teacher struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	TeacherName   string `json:"teacher_name"`
	Department    string `json:"department"`
	UserID        string `gorm:"uniqueIndex" json:"user_id"`
	PasswordHash  string `json:"-"`
	PasswordPlain string `json:"-"`
	Qualification string `json:"qualification"`
	Experience    string `json:"experience"`
	Subject       string `json:"subject"`
	Address       string `json:"address"`
	DateOfJoining string `json:"date_of_joining"`
	Salary        string `json:"salary"`
	Role          string `gorm:"default:teacher" json:"role"`

	Extra datatypes.JSONMap `json:"extra"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
