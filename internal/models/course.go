package models

import "time"

type Course struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CourseName string `json:"course_name"`
	CourseCode string `gorm:"uniqueIndex" json:"course_code"`
	DriveLink  string `json:"drive_link"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
