package sheetsync

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/callmyselfasaarya/Class-Connect/internal/attendance"
	"github.com/callmyselfasaarya/Class-Connect/internal/models"
)

var ErrNoIdentityColumn = errors.New("sheetsync: attendance sheet has neither ROLL NO nor REG NO column")

var (
	attRollHeaders = map[string]struct{}{"roll no": {}, "rollno": {}, "roll_no": {}}
	attRegHeaders  = map[string]struct{}{"reg no": {}, "regno": {}, "registration no": {}}
)

func findIdentityColumn(headers []string) (int, error) {
	for i, h := range headers {
		if _, ok := attRollHeaders[strings.ToLower(strings.TrimSpace(h))]; ok {
			return i, nil
		}
	}
	for i, h := range headers {
		if _, ok := attRegHeaders[strings.ToLower(strings.TrimSpace(h))]; ok {
			return i, nil
		}
	}
	return 0, ErrNoIdentityColumn
}

// SyncAttendance replaces the whole attendance table with one sync
// generation from values. Nothing is cleared until the input is known
// to contain headers, an identity column and at least one data row, so
// a failed read never empties the table. The clear and reload run in
// one transaction, keeping old and new generations from mixing.
//
// With dateHeadersOnly set (live spreadsheet reads) only columns whose
// header parses as a date are ingested; workbook fallback reads take
// every non-identity column as an attendance column.
func SyncAttendance(db *gorm.DB, values [][]string, dateHeadersOnly bool) (int, error) {
	if len(values) < 2 {
		return 0, ErrNoData
	}
	headers := values[0]
	idCol, err := findIdentityColumn(headers)
	if err != nil {
		return 0, err
	}

	var dateCols []int
	for i, h := range headers {
		if i == idCol || strings.TrimSpace(h) == "" {
			continue
		}
		if dateHeadersOnly && !attendance.IsDateHeader(h) {
			continue
		}
		dateCols = append(dateCols, i)
	}

	var entries []models.AttendanceEntry
	for _, row := range values[1:] {
		if idCol >= len(row) {
			continue
		}
		rollno := strings.TrimSpace(row[idCol])
		if rollno == "" {
			continue
		}
		for _, col := range dateCols {
			status := ""
			if col < len(row) {
				status = attendance.Normalize(row[col])
			}
			entries = append(entries, models.AttendanceEntry{
				RollNo:    rollno,
				DateLabel: strings.TrimSpace(headers[col]),
				Status:    status,
			})
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM attendance").Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.CreateInBatches(entries, 500).Error
	})
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
