package sheetsync

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/callmyselfasaarya/Class-Connect/internal/models"
)

var (
	courseNameAliases = []string{"course name", "name", "course"}
	courseCodeAliases = []string{"course code", "code"}
	courseLinkAliases = []string{"drive link", "link", "url"}
)

// SyncCourses upserts course rows keyed on course_code. A missing code
// is derived from the course name; rows giving neither are skipped.
func SyncCourses(db *gorm.DB, values [][]string) (SyncResult, error) {
	var res SyncResult
	if len(values) < 2 {
		return res, ErrNoData
	}
	index := HeaderIndex(values[0])

	for rowNum, row := range values[1:] {
		name := Resolve(row, index, courseNameAliases, "")
		code := Resolve(row, index, courseCodeAliases, "")
		link := Resolve(row, index, courseLinkAliases, "")
		if name == "" && code == "" && link == "" {
			continue
		}
		if code == "" && name != "" {
			code = strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
		}
		if code == "" {
			res.Skipped++
			continue
		}

		var existing models.Course
		err := db.Where("course_code = ?", code).First(&existing).Error
		switch {
		case err == nil:
			existing.CourseName = name
			existing.DriveLink = link
			if err := db.Save(&existing).Error; err != nil {
				log.Printf("sheetsync: course row %d (%s): %v", rowNum+2, code, err)
				continue
			}
			res.Updated++
		case errors.Is(err, gorm.ErrRecordNotFound):
			course := models.Course{CourseName: name, CourseCode: code, DriveLink: link}
			if err := db.Create(&course).Error; err != nil {
				log.Printf("sheetsync: course row %d (%s): %v", rowNum+2, code, err)
				continue
			}
			res.Inserted++
		default:
			log.Printf("sheetsync: course row %d (%s): %v", rowNum+2, code, err)
		}
	}
	return res, nil
}
