package sheetsync

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/callmyselfasaarya/Class-Connect/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Student{}, &models.AttendanceEntry{}, &models.Course{},
	))
	return db
}

func TestHeaderIndexFirstDuplicateWins(t *testing.T) {
	index := HeaderIndex([]string{" Roll No ", "NAME", "roll no", ""})
	assert.Equal(t, 0, index["roll no"])
	assert.Equal(t, 1, index["name"])
	assert.Len(t, index, 2)
}

func TestResolveAliasPriorityAndDefault(t *testing.T) {
	index := HeaderIndex([]string{"Roll No", "NAME", "Phone"})
	row := []string{" 21CS042 ", "Asha", ""}

	assert.Equal(t, "21CS042", Resolve(row, index, []string{"ROLL NO", "rollno"}, ""))
	assert.Equal(t, "Asha", Resolve(row, index, []string{"student name", "NAME"}, ""))
	// blank cell falls through to the default
	assert.Equal(t, "n/a", Resolve(row, index, []string{"Phone"}, "n/a"))
	// short row never panics
	assert.Equal(t, "", Resolve([]string{"x"}, index, []string{"Phone"}, ""))
}

func TestSyncStudentsInsertsWithCredential(t *testing.T) {
	db := newTestDB(t)

	res, err := SyncStudents(db, [][]string{
		{"ROLL NO", "NAME", "DEPARTMENT", "HOUSE"},
		{"21CS001", "Asha", "CSE", "Red"},
		{"", "no roll, skipped", "CSE", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Skipped)

	var s models.Student
	require.NoError(t, db.Where("roll_no = ?", "21CS001").First(&s).Error)
	assert.Equal(t, "Asha", s.Name)
	assert.Equal(t, "CSE", s.CurrentSemester)
	assert.Equal(t, "stu21CS001", s.UserID)
	assert.Len(t, s.PasswordPlain, 6)
	assert.NotEmpty(t, s.PasswordHash)
	// unmapped header lands in extra under its original spelling
	assert.Equal(t, "Red", fmt.Sprint(s.Extra["HOUSE"]))
}

func TestSyncStudentsUpdatePreservesCredential(t *testing.T) {
	db := newTestDB(t)

	_, err := SyncStudents(db, [][]string{
		{"ROLL NO", "NAME"},
		{"21CS001", "Asha"},
	})
	require.NoError(t, err)

	var before models.Student
	require.NoError(t, db.Where("roll_no = ?", "21CS001").First(&before).Error)

	res, err := SyncStudents(db, [][]string{
		{"ROLL NO", "NAME"},
		{"21CS001", "Asha K"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 0, res.Inserted)

	var after models.Student
	require.NoError(t, db.Where("roll_no = ?", "21CS001").First(&after).Error)
	assert.Equal(t, "Asha K", after.Name)
	assert.Equal(t, before.PasswordPlain, after.PasswordPlain)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
	assert.Equal(t, before.ID, after.ID)
}

func TestSyncAttendanceReplacesGeneration(t *testing.T) {
	db := newTestDB(t)

	n, err := SyncAttendance(db, [][]string{
		{"ROLL NO", "01-07-2025", "02-07-2025"},
		{"21CS001", "present", "a"},
		{"21CS002", "1", ""},
	}, true)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	var statuses []string
	require.NoError(t, db.Model(&models.AttendanceEntry{}).
		Where("roll_no = ?", "21CS001").
		Order("date").
		Pluck("status", &statuses).Error)
	assert.Equal(t, []string{"P", "A"}, statuses)

	// second generation fully replaces the first
	n, err = SyncAttendance(db, [][]string{
		{"ROLL NO", "03-07-2025"},
		{"21CS001", "P"},
	}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var count int64
	db.Model(&models.AttendanceEntry{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSyncAttendanceBadInputLeavesTableAlone(t *testing.T) {
	db := newTestDB(t)
	_, err := SyncAttendance(db, [][]string{
		{"ROLL NO", "01-07-2025"},
		{"21CS001", "P"},
	}, true)
	require.NoError(t, err)

	// header-only input
	_, err = SyncAttendance(db, [][]string{{"ROLL NO", "01-07-2025"}}, true)
	assert.ErrorIs(t, err, ErrNoData)

	// no identity column
	_, err = SyncAttendance(db, [][]string{
		{"Student", "01-07-2025"},
		{"21CS001", "P"},
	}, true)
	assert.ErrorIs(t, err, ErrNoIdentityColumn)

	var count int64
	db.Model(&models.AttendanceEntry{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSyncAttendanceColumnSelection(t *testing.T) {
	db := newTestDB(t)

	// live reads ingest only date-shaped headers
	n, err := SyncAttendance(db, [][]string{
		{"ROLL NO", "NAME", "01-07-2025"},
		{"21CS001", "Asha", "P"},
	}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// workbook reads take every non-identity column
	n, err = SyncAttendance(db, [][]string{
		{"ROLL NO", "NAME", "01-07-2025"},
		{"21CS001", "Asha", "P"},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSyncCoursesDerivesCodeAndUpserts(t *testing.T) {
	db := newTestDB(t)

	res, err := SyncCourses(db, [][]string{
		{"Course Name", "Course Code", "Drive Link"},
		{"Data Structures", "CS201", "https://example.com/ds"},
		{"Operating Systems", "", "https://example.com/os"},
		{"", "", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)

	var derived models.Course
	require.NoError(t, db.Where("course_code = ?", "OPERATING_SYSTEMS").First(&derived).Error)
	assert.Equal(t, "Operating Systems", derived.CourseName)

	res, err = SyncCourses(db, [][]string{
		{"Course Name", "Course Code", "Drive Link"},
		{"Data Structures II", "CS201", "https://example.com/ds2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)

	var count int64
	db.Model(&models.Course{}).Count(&count)
	assert.Equal(t, int64(2), count)
}
