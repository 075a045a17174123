package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/callmyselfasaarya/Class-Connect/internal/models"
)

func studentRouter(db *gorm.DB, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	sc := &StudentController{DB: db}
	ac := &AttendanceController{DB: db}
	r := gin.New()
	g := r.Group("/", asRole(userID, role))
	g.GET("/students", sc.List)
	g.GET("/students/:rollno", sc.Details)
	g.DELETE("/students/:rollno", sc.Delete)
	g.POST("/students/:rollno/reset-password", sc.ResetPassword)
	g.GET("/attendance/averages/:rollno", ac.StudentAverage)
	return r
}

func TestStudentLookupByRollNo(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	seedEntries(t, db, student.RollNo, "01-07-2025", "P")
	r := studentRouter(db, "admin", models.RoleAdmin)

	w := doJSON(t, r, http.MethodGet, "/students/"+student.RollNo, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), student.Name)

	w = doJSON(t, r, http.MethodGet, "/attendance/averages/"+student.RollNo, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"attendance_average":100`)

	w = doJSON(t, r, http.MethodGet, "/students/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentListOrdersByRollNo(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Student{
		RollNo: "21CS002", Name: "Bala", CurrentSemester: "CSE",
		UserID: models.StudentUserID("21CS002"),
	}).Error)
	seedStudent(t, db) // 21CS001

	w := doJSON(t, studentRouter(db, "admin", models.RoleAdmin), http.MethodGet, "/students", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Students []struct {
			RollNo string `json:"rollno"`
		} `json:"students"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Students, 2)
	assert.Equal(t, "21CS001", resp.Students[0].RollNo)
	assert.Equal(t, "21CS002", resp.Students[1].RollNo)
}

func TestStudentResetPasswordIssuesFreshCredential(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	r := studentRouter(db, "admin", models.RoleAdmin)

	w := doJSON(t, r, http.MethodPost, "/students/"+student.RollNo+"/reset-password", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		NewPassword string `json:"new_password"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.NewPassword, 6)

	var after models.Student
	require.NoError(t, db.Where("roll_no = ?", student.RollNo).First(&after).Error)
	assert.Equal(t, resp.NewPassword, after.PasswordPlain)
}

func TestStudentDelete(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	r := studentRouter(db, "admin", models.RoleAdmin)

	w := doJSON(t, r, http.MethodDelete, "/students/"+student.RollNo, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	db.Model(&models.Student{}).Count(&count)
	assert.Equal(t, int64(0), count)

	w = doJSON(t, r, http.MethodDelete, "/students/"+student.RollNo, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
