package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/callmyselfasaarya/Class-Connect/internal/attendance"
	"github.com/callmyselfasaarya/Class-Connect/internal/models"
)

func attRouter(db *gorm.DB, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ac := &AttendanceController{DB: db}
	r := gin.New()
	g := r.Group("/", asRole(userID, role))
	g.GET("/attendance/me", ac.MyAverage)
	g.GET("/attendance/averages", ac.AllAverages)
	g.GET("/attendance/daily-absent", ac.DailyAbsent)
	return r
}

func seedEntries(t *testing.T, db *gorm.DB, rollno, label string, statuses ...string) {
	t.Helper()
	for i, st := range statuses {
		lbl := label
		if len(statuses) > 1 {
			lbl = time.Date(2025, 7, i+1, 0, 0, 0, 0, time.UTC).Format("02-01-2006")
		}
		require.NoError(t, db.Create(&models.AttendanceEntry{
			RollNo: rollno, DateLabel: lbl, Status: st,
		}).Error)
	}
}

func TestMyAverage(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	seedEntries(t, db, student.RollNo, "", "P", "A", "P", "P")

	w := doJSON(t, attRouter(db, student.UserID, models.RoleStudent),
		http.MethodGet, "/attendance/me", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"attendance_average":75`)
	assert.Contains(t, w.Body.String(), `"total_days":4`)
}

func TestAllAveragesScopedByDepartment(t *testing.T) {
	db := newTestDB(t)
	seedStudent(t, db) // 21CS001 / CSE
	require.NoError(t, db.Create(&models.Student{
		RollNo: "21EC001", Name: "Ravi", CurrentSemester: "ECE",
		UserID: models.StudentUserID("21EC001"),
	}).Error)
	seedStaff(t, db, "adv1", models.RoleTeacher, "CSE")
	seedEntries(t, db, "21CS001", "01-07-2025", "P")
	seedEntries(t, db, "21EC001", "01-07-2025", "A")

	// a teacher only sees their own department
	w := doJSON(t, attRouter(db, "adv1", models.RoleTeacher),
		http.MethodGet, "/attendance/averages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "21CS001")
	assert.NotContains(t, w.Body.String(), "21EC001")

	// admin sees everyone
	w = doJSON(t, attRouter(db, "admin", models.RoleAdmin),
		http.MethodGet, "/attendance/averages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "21CS001")
	assert.Contains(t, w.Body.String(), "21EC001")
}

func TestDailyAbsentDistinguishesAbsentFromNoRecord(t *testing.T) {
	db := newTestDB(t)
	seedStudent(t, db) // 21CS001
	require.NoError(t, db.Create(&models.Student{
		RollNo: "21CS002", Name: "Bala", CurrentSemester: "CSE",
		UserID: models.StudentUserID("21CS002"),
	}).Error)
	require.NoError(t, db.Create(&models.Student{
		RollNo: "21CS003", Name: "Chitra", CurrentSemester: "CSE",
		UserID: models.StudentUserID("21CS003"),
	}).Error)

	label := time.Now().Format("02-01-2006")
	seedEntries(t, db, "21CS001", label, "P")
	seedEntries(t, db, "21CS002", label, "A")
	// 21CS003 has no row for the day at all

	w := doJSON(t, attRouter(db, "admin", models.RoleAdmin),
		http.MethodGet, "/attendance/daily-absent", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := w.Body.String()
	assert.NotContains(t, body, "21CS001")
	assert.Contains(t, body, "21CS002")
	assert.Contains(t, body, "Absent")
	assert.Contains(t, body, "21CS003")
	assert.Contains(t, body, "No record")

	wantDate := attendance.PickReportingVariants([]string{label}, time.Now())[0]
	assert.Contains(t, body, wantDate)
}
