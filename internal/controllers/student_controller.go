package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/callmyselfasaarya/Class-Connect/internal/models"
	"github.com/callmyselfasaarya/Class-Connect/internal/sheetsync"
	"github.com/callmyselfasaarya/Class-Connect/internal/utils"
)

type StudentController struct {
	DB   *gorm.DB
	Sync *sheetsync.Service
}

// extraAliases maps a blank named column to the spreadsheet headers
// that may still hold the value in Extra, for sheets whose headers the
// sync did not recognise.
var extraAliases = map[string][]string{
	"reg_no":         {"reg no", "regno", "registration no"},
	"name":           {"student name", "name of the student"},
	"student_mobile": {"student mobile", "mobile", "phone", "student phone"},
	"parent_mobile":  {"parent mobile", "parent phone", "father mobile"},
	"email":          {"email id", "mail id", "e-mail"},
	"owner_ph_no":    {"owner phone", "owner ph no", "owner mobile"},
}

func fillFromExtra(resp gin.H, extra map[string]interface{}) {
	if len(extra) == 0 {
		return
	}
	lowered := make(map[string]interface{}, len(extra))
	for k, v := range extra {
		lowered[strings.ToLower(strings.TrimSpace(k))] = v
	}
	for field, aliases := range extraAliases {
		if v, ok := resp[field].(string); ok && v == "" {
			for _, a := range aliases {
				if ev, ok := lowered[a]; ok {
					if s := strings.TrimSpace(fmt.Sprint(ev)); s != "" {
						resp[field] = s
						break
					}
				}
			}
		}
	}
}

func studentResponse(s models.Student, includeCredential bool) gin.H {
	resp := gin.H{
		"id":                       s.ID,
		"reg_no":                   s.RegNo,
		"rollno":                   s.RollNo,
		"name":                     s.Name,
		"dob":                      s.DOB,
		"gender":                   s.Gender,
		"aadhar":                   s.Aadhar,
		"student_mobile":           s.StudentMobile,
		"blood_group":              s.BloodGroup,
		"parent_name":              s.ParentName,
		"parent_mobile":            s.ParentMobile,
		"address":                  s.Address,
		"nationality":              s.Nationality,
		"religion":                 s.Religion,
		"community":                s.Community,
		"caste":                    s.Caste,
		"day_scholar_or_hosteller": s.DayScholarOrHosteller,
		"current_semester":         s.CurrentSemester,
		"seat_type":                s.SeatType,
		"quota_type":               s.QuotaType,
		"email":                    s.Email,
		"pmss":                     s.PMSS,
		"remarks":                  s.Remarks,
		"bus_no":                   s.BusNo,
		"hosteller_room_no":        s.HostellerRoomNo,
		"outside_staying_address":  s.OutsideStayingAddress,
		"owner_ph_no":              s.OwnerPhNo,
		"user_id":                  s.UserID,
		"extra":                    s.Extra,
	}
	fillFromExtra(resp, s.Extra)
	if includeCredential {
		resp["password"] = s.PasswordPlain
	}
	return resp
}

// List returns students scoped by the caller's role: admin and
// principal see everyone, teachers and hods see their own department
// unless they ask for another one with ?dept=.
func (sc *StudentController) List(c *gin.Context) {
	role := c.GetString("role")
	if sc.Sync != nil {
		if err := sc.Sync.EnsureFreshStudents(c.Request.Context()); err != nil {
			log.Printf("student refresh failed, serving stored data: %v", err)
		}
	}

	dept := strings.TrimSpace(c.Query("dept"))
	if role == models.RoleTeacher {
		// Teachers are pinned to their own department.
		dept = staffDepartment(sc.DB, c.GetString("user_id"))
	} else if dept == "" && role == models.RoleHod {
		dept = staffDepartment(sc.DB, c.GetString("user_id"))
	}

	q := sc.DB.Model(&models.Student{}).Order("roll_no")
	if dept != "" {
		q = q.Where("current_semester = ?", dept)
	}

	var students []models.Student
	if err := q.Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	includeCredential := role == models.RoleAdmin
	out := make([]gin.H, 0, len(students))
	for _, s := range students {
		out = append(out, studentResponse(s, includeCredential))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "students": out})
}

// Departments lists the distinct department values present in the
// students table, for frontend filter dropdowns.
func (sc *StudentController) Departments(c *gin.Context) {
	var depts []string
	err := sc.DB.Model(&models.Student{}).
		Where("current_semester <> ''").
		Distinct("current_semester").
		Order("current_semester").
		Pluck("current_semester", &depts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "departments": depts})
}

// Info returns the logged-in student's own profile.
func (sc *StudentController) Info(c *gin.Context) {
	var student models.Student
	if err := sc.DB.Where("user_id = ?", c.GetString("user_id")).First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "student": studentResponse(student, false)})
}

// Details returns one student by roll number for staff views.
func (sc *StudentController) Details(c *gin.Context) {
	rollno := c.Param("rollno")
	var student models.Student
	if err := sc.DB.Where("roll_no = ?", rollno).First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "student": studentResponse(student, c.GetString("role") == models.RoleAdmin)})
}

// Delete removes a student row. The next sync will re-create the
// student (with a fresh credential) if the sheet still lists them.
func (sc *StudentController) Delete(c *gin.Context) {
	res := sc.DB.Where("roll_no = ?", c.Param("rollno")).Delete(&models.Student{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "student deleted"})
}

// ResetPassword issues a fresh numeric credential for a student.
func (sc *StudentController) ResetPassword(c *gin.Context) {
	var student models.Student
	if err := sc.DB.Where("roll_no = ?", c.Param("rollno")).First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}

	plain, err := utils.NumericPassword(6)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate password"})
		return
	}
	hash, err := utils.HashPassword(plain)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}
	student.PasswordPlain = plain
	student.PasswordHash = hash
	if err := sc.DB.Save(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "rollno": student.RollNo, "new_password": plain})
}

// staffDepartment looks up the department a staff user belongs to.
func staffDepartment(db *gorm.DB, userID string) string {
	var teacher models.Teacher
	if err := db.Select("department").Where("user_id = ?", userID).First(&teacher).Error; err != nil {
		return ""
	}
	return strings.TrimSpace(teacher.Department)
}
