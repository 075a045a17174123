package models

// AttendanceEntry is one (student, date column) cell from the
// attendance sheet. RollNo holds whatever identity value the sheet
// carried, roll number or registration number. DateLabel is the column
// header text exactly as it appeared in the sheet, not a normalized
// calendar date; readers reconcile label variants at query time. The
// table always holds exactly one completed sync generation.
type AttendanceEntry struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	RollNo    string `gorm:"index" json:"rollno"`
	DateLabel string `gorm:"column:date;index" json:"date"`
	Status    string `json:"status"`
}

func (AttendanceEntry) TableName() string { return "attendance" }
