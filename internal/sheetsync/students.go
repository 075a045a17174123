package sheetsync

import (
	"errors"
	"log"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/callmyselfasaarya/Class-Connect/internal/models"
	"github.com/callmyselfasaarya/Class-Connect/internal/utils"
)

var ErrNoData = errors.New("sheetsync: source returned no usable rows")

// rollAliases identify a student across every sheet format in
// circulation.
var rollAliases = []string{"ROLL NO", "Roll no", "RollNo", "rollno"}

// studentField binds one database column to the header spellings it is
// known to appear under.
type studentField struct {
	aliases []string
	assign  func(*models.Student, string)
}

var studentFields = []studentField{
	{[]string{"REG NO", "Reg no", "regno"}, func(s *models.Student, v string) { s.RegNo = v }},
	{[]string{"NAME", "Name", "name"}, func(s *models.Student, v string) { s.Name = v }},
	{[]string{"DOB(DDNOMMNOYYYY)", "DOB", "dob", "Date of Birth"}, func(s *models.Student, v string) { s.DOB = v }},
	{[]string{"GENDER(MALE(or)FEMALE)", "GENDER", "Gender", "gender"}, func(s *models.Student, v string) { s.Gender = v }},
	{[]string{"AADHAR(12 DIGITS)", "AADHAR", "Aadhar", "aadhar"}, func(s *models.Student, v string) { s.Aadhar = v }},
	{[]string{
		"STUDENT MOBILE NUMBER(10 DIGITS)", "Student Mobile Number", "STUDENT MOBILE",
		"student_mobile", "student mobile", "Phone", "phone",
	}, func(s *models.Student, v string) { s.StudentMobile = v }},
	{[]string{"BLOOD GROUP", "Blood Group", "blood_group"}, func(s *models.Student, v string) { s.BloodGroup = v }},
	{[]string{"PARENT/GAURDIAN NAME", "Parent Name", "parent name"}, func(s *models.Student, v string) { s.ParentName = v }},
	{[]string{
		"PARENT/GAURDIAN MOBILE NUMBER", "Parent Mobile", "PARENT MOBILE NUMBER",
		"parent_mobile", "parent mobile number",
	}, func(s *models.Student, v string) { s.ParentMobile = v }},
	{[]string{"ADDRESS", "Address", "address"}, func(s *models.Student, v string) { s.Address = v }},
	{[]string{"NATIONALITY", "Nationality"}, func(s *models.Student, v string) { s.Nationality = v }},
	{[]string{"RELIGION", "Religion"}, func(s *models.Student, v string) { s.Religion = v }},
	{[]string{"COMMUNITY", "Community"}, func(s *models.Student, v string) { s.Community = v }},
	{[]string{"CASTE", "Caste"}, func(s *models.Student, v string) { s.Caste = v }},
	{[]string{"DAYSCHOLAR OR HOSTELLER", "Day Scholar or Hosteller"}, func(s *models.Student, v string) { s.DayScholarOrHosteller = v }},
	{[]string{"DEPARTMENT", "Department", "CURRENT SEMESTER", "Current Semester"}, func(s *models.Student, v string) { s.CurrentSemester = v }},
	{[]string{"SEAT TYPE(REGULAR(or)LATERAL)", "Seat Type", "seat type"}, func(s *models.Student, v string) { s.SeatType = v }},
	{[]string{"QUOTA TYPE(GQ(or)MQ)", "Quota Type", "quota type"}, func(s *models.Student, v string) { s.QuotaType = v }},
	{[]string{"EMAIL", "Email", "email"}, func(s *models.Student, v string) { s.Email = v }},
	{[]string{"PMSS (YES/NO)", "PMSS", "pmss"}, func(s *models.Student, v string) { s.PMSS = v }},
	{[]string{"REMARKS", "Remarks"}, func(s *models.Student, v string) { s.Remarks = v }},
	{[]string{"BUS", "BUS NO/PRIVATE BUS", "Bus No", "BUS NO", "bus_no", "Bus Number"}, func(s *models.Student, v string) { s.BusNo = v }},
	{[]string{"HOSTELLER ROOM NO.", "Hosteller Room No", "hosteller room no"}, func(s *models.Student, v string) { s.HostellerRoomNo = v }},
	{[]string{
		"OUTSTAYING  ADDRESS", "OUTSTAYING ADDRESS", "OUTSIDE STAYING FULL ADDRESS",
		"Outside Staying Address", "OUTSIDE ADDRESS", "outside_address",
	}, func(s *models.Student, v string) { s.OutsideStayingAddress = v }},
	{[]string{"OWNER'S PH NO", "Owner's Phone", "OWNER PH NO", "owner_ph_no", "OWNER"}, func(s *models.Student, v string) { s.OwnerPhNo = v }},
}

// consumedHeaders returns the set of lowercased headers mapped to a
// named column; everything else belongs in the extra map.
func consumedHeaders() map[string]struct{} {
	set := make(map[string]struct{})
	for _, a := range rollAliases {
		set[strings.ToLower(a)] = struct{}{}
	}
	for _, f := range studentFields {
		for _, a := range f.aliases {
			set[strings.ToLower(a)] = struct{}{}
		}
	}
	return set
}

// SyncResult summarizes one student or course sync.
type SyncResult struct {
	Inserted int
	Updated  int
	Skipped  int
}

// SyncStudents upserts one batch of student rows. values[0] is the
// header row. Rows without a roll number are skipped. Existing records
// are updated in place but keep the credential pair they were issued at
// creation; new records get a fresh 6-digit numeric credential. A bad
// row is logged and skipped, the batch carries on.
func SyncStudents(db *gorm.DB, values [][]string) (SyncResult, error) {
	var res SyncResult
	if len(values) < 2 {
		return res, ErrNoData
	}
	headers := values[0]
	index := HeaderIndex(headers)
	consumed := consumedHeaders()

	for rowNum, row := range values[1:] {
		rollno := Resolve(row, index, rollAliases, "")
		if rollno == "" {
			res.Skipped++
			continue
		}

		var incoming models.Student
		incoming.RollNo = rollno
		for _, f := range studentFields {
			f.assign(&incoming, Resolve(row, index, f.aliases, ""))
		}
		incoming.UserID = models.StudentUserID(rollno)

		extra := datatypes.JSONMap{}
		for i, h := range headers {
			name := strings.TrimSpace(h)
			if name == "" {
				continue
			}
			if _, known := consumed[strings.ToLower(name)]; known {
				continue
			}
			if i < len(row) {
				extra[name] = row[i]
			} else {
				extra[name] = ""
			}
		}
		incoming.Extra = extra

		if err := upsertStudent(db, &incoming, &res); err != nil {
			log.Printf("sheetsync: student row %d (%s): %v", rowNum+2, rollno, err)
		}
	}
	return res, nil
}

func upsertStudent(db *gorm.DB, incoming *models.Student, res *SyncResult) error {
	var existing models.Student
	err := db.Where("roll_no = ?", incoming.RollNo).First(&existing).Error
	switch {
	case err == nil:
		// Never touch the issued credential on re-sync.
		incoming.ID = existing.ID
		incoming.PasswordHash = existing.PasswordHash
		incoming.PasswordPlain = existing.PasswordPlain
		incoming.CreatedAt = existing.CreatedAt
		if err := db.Save(incoming).Error; err != nil {
			return err
		}
		res.Updated++
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		plain, err := utils.NumericPassword(6)
		if err != nil {
			return err
		}
		hashed, err := utils.HashPassword(plain)
		if err != nil {
			return err
		}
		incoming.PasswordPlain = plain
		incoming.PasswordHash = hashed
		if err := db.Create(incoming).Error; err != nil {
			return err
		}
		res.Inserted++
		return nil
	default:
		return err
	}
}
