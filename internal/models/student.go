package models

import (
	"time"

	"gorm.io/datatypes"
)

// Student mirrors one row of the student master sheet. Every profile
// column is text because the sheets give us strings and nothing
// downstream does arithmetic on them. Columns the sync does not map to
// a named field land in Extra keyed by the original header.
type Student struct {
	ID                    uint   `gorm:"primaryKey" json:"id"`
	RegNo                 string `json:"reg_no"`
	RollNo                string `gorm:"uniqueIndex" json:"rollno"`
	Name                  string `json:"name"`
	DOB                   string `json:"dob"`
	Gender                string `json:"gender"`
	Aadhar                string `json:"aadhar"`
	StudentMobile         string `json:"student_mobile"`
	BloodGroup            string `json:"blood_group"`
	ParentName            string `json:"parent_name"`
	ParentMobile          string `json:"parent_mobile"`
	Address               string `json:"address"`
	Nationality           string `json:"nationality"`
	Religion              string `json:"religion"`
	Community             string `json:"community"`
	Caste                 string `json:"caste"`
	DayScholarOrHosteller string `json:"day_scholar_or_hosteller"`
	CurrentSemester       string `json:"current_semester"`
	SeatType              string `json:"seat_type"`
	QuotaType             string `json:"quota_type"`
	Email                 string `json:"email"`
	PMSS                  string `json:"pmss"`
	Remarks               string `json:"remarks"`
	BusNo                 string `json:"bus_no"`
	HostellerRoomNo       string `json:"hosteller_room_no"`
	OutsideStayingAddress string `json:"outside_staying_address"`
	OwnerPhNo             string `json:"owner_ph_no"`

	// UserID is always "stu" + RollNo.
	UserID string `gorm:"uniqueIndex" json:"user_id"`

	// Credential pair, generated once when the student first appears in
	// a sync and never regenerated by later syncs. The plaintext is
	// kept solely for admin display and reset flows.
	PasswordHash  string `json:"-"`
	PasswordPlain string `json:"-"`

	Extra datatypes.JSONMap `json:"extra"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentUserID derives the login ID for a roll number.
func StudentUserID(rollno string) string {
	return "stu" + rollno
}
