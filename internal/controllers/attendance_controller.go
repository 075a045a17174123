package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/callmyselfasaarya/Class-Connect/internal/attendance"
	"github.com/callmyselfasaarya/Class-Connect/internal/models"
	"github.com/callmyselfasaarya/Class-Connect/internal/sheetsync"
)

type AttendanceController struct {
	DB   *gorm.DB
	Sync *sheetsync.Service
}

// ensureFresh refreshes the attendance generation when stale. A failed
// refresh is logged and the stored generation served as-is.
func (ac *AttendanceController) ensureFresh(c *gin.Context) {
	if ac.Sync == nil {
		return
	}
	if err := ac.Sync.EnsureFreshAttendance(c.Request.Context()); err != nil {
		log.Printf("attendance refresh failed, serving stored data: %v", err)
	}
}

func (ac *AttendanceController) statsFor(rollno string) (attendance.Stats, error) {
	var statuses []string
	err := ac.DB.Model(&models.AttendanceEntry{}).
		Where("roll_no = ?", rollno).
		Pluck("status", &statuses).Error
	if err != nil {
		return attendance.Stats{}, err
	}
	return attendance.Aggregate(statuses), nil
}

// MyAverage returns the logged-in student's attendance aggregate.
func (ac *AttendanceController) MyAverage(c *gin.Context) {
	ac.ensureFresh(c)
	var student models.Student
	if err := ac.DB.Where("user_id = ?", c.GetString("user_id")).First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	stats, err := ac.statsFor(student.RollNo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"rollno":             student.RollNo,
		"name":               student.Name,
		"attendance_average": stats.Percentage,
		"total_days":         stats.TotalDays,
		"present_days":       stats.PresentDays,
		"absent_days":        stats.AbsentDays,
	})
}

// StudentAverage returns one student's aggregate for staff views.
func (ac *AttendanceController) StudentAverage(c *gin.Context) {
	ac.ensureFresh(c)
	rollno := c.Param("rollno")
	var student models.Student
	if err := ac.DB.Where("roll_no = ?", rollno).First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	stats, err := ac.statsFor(student.RollNo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"rollno":             student.RollNo,
		"name":               student.Name,
		"attendance_average": stats.Percentage,
		"total_days":         stats.TotalDays,
		"present_days":       stats.PresentDays,
		"absent_days":        stats.AbsentDays,
	})
}

// scopedStudents applies the role-based department scoping shared by
// the staff-facing aggregate endpoints.
func (ac *AttendanceController) scopedStudents(c *gin.Context) ([]models.Student, bool) {
	role := c.GetString("role")
	dept := strings.TrimSpace(c.Query("dept"))
	if role == models.RoleTeacher {
		dept = staffDepartment(ac.DB, c.GetString("user_id"))
	} else if dept == "" && role == models.RoleHod {
		dept = staffDepartment(ac.DB, c.GetString("user_id"))
	}

	q := ac.DB.Model(&models.Student{}).Order("roll_no")
	if dept != "" {
		q = q.Where("current_semester = ?", dept)
	}
	var students []models.Student
	if err := q.Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return students, true
}

// AllAverages returns per-student aggregates for every student the
// caller may see.
func (ac *AttendanceController) AllAverages(c *gin.Context) {
	ac.ensureFresh(c)
	students, ok := ac.scopedStudents(c)
	if !ok {
		return
	}

	out := make([]gin.H, 0, len(students))
	for _, s := range students {
		stats, err := ac.statsFor(s.RollNo)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, gin.H{
			"rollno":             s.RollNo,
			"name":               s.Name,
			"department":         s.CurrentSemester,
			"attendance_average": stats.Percentage,
			"total_days":         stats.TotalDays,
			"present_days":       stats.PresentDays,
			"absent_days":        stats.AbsentDays,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "students": out})
}

// DailyAbsent reports, for the current reporting date, every scoped
// student who was marked absent or has no record at all. The reporting
// date is today's column when the sheet has one, otherwise the latest
// non-future column, otherwise the latest column present.
func (ac *AttendanceController) DailyAbsent(c *gin.Context) {
	ac.ensureFresh(c)
	students, ok := ac.scopedStudents(c)
	if !ok {
		return
	}

	var labels []string
	err := ac.DB.Model(&models.AttendanceEntry{}).
		Distinct("date").
		Pluck("date", &labels).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	variants := attendance.PickReportingVariants(labels, time.Now())

	out := make([]gin.H, 0)
	for _, s := range students {
		var statuses []string
		err := ac.DB.Model(&models.AttendanceEntry{}).
			Where("roll_no = ? AND LOWER(date) IN ?", s.RollNo, variants).
			Pluck("status", &statuses).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		reason := ""
		if len(statuses) == 0 {
			reason = "No record"
		} else if attendance.IsAbsent(statuses[0]) {
			reason = "Absent"
		}
		if reason == "" {
			continue
		}
		out = append(out, gin.H{
			"rollno":         s.RollNo,
			"name":           s.Name,
			"department":     s.CurrentSemester,
			"student_mobile": s.StudentMobile,
			"parent_mobile":  s.ParentMobile,
			"reason":         reason,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"reporting_date": variants[0],
		"count":          len(out),
		"absentees":      out,
	})
}

// ManualSync forces a full re-read of the student and attendance
// sources regardless of the freshness window.
func (ac *AttendanceController) ManualSync(c *gin.Context) {
	if ac.Sync == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sync sources not configured"})
		return
	}
	studentRes, err := ac.Sync.SyncStudents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "student sync failed: " + err.Error()})
		return
	}
	rows, err := ac.Sync.SyncAttendance(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "attendance sync failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"students": gin.H{
			"inserted": studentRes.Inserted,
			"updated":  studentRes.Updated,
			"skipped":  studentRes.Skipped,
		},
		"attendance_rows": rows,
	})
}

// Health reports row counts and the last attendance sync time.
func (ac *AttendanceController) Health(c *gin.Context) {
	var studentCount, entryCount, teacherCount int64
	ac.DB.Model(&models.Student{}).Count(&studentCount)
	ac.DB.Model(&models.AttendanceEntry{}).Count(&entryCount)
	ac.DB.Model(&models.Teacher{}).Count(&teacherCount)

	var lastSync interface{}
	if ac.Sync != nil {
		if t := ac.Sync.LastAttendanceSync(); !t.IsZero() {
			lastSync = t.UTC().Format(time.RFC3339)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":               "ok",
		"students":             studentCount,
		"attendance_entries":   entryCount,
		"teachers":             teacherCount,
		"last_attendance_sync": lastSync,
	})
}
