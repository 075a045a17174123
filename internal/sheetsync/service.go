package sheetsync

import (
	"context"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Notifier receives a callback after each completed sync generation.
// The websocket hub implements it to push updates to open dashboards.
type Notifier interface {
	SyncCompleted(kind string, rows int)
}

// SourceSet names where one kind of record comes from: the live
// spreadsheet source (possibly several spreadsheet IDs, merged) and an
// optional local workbook fallback.
type SourceSet struct {
	Live     RowSource // nil when no live source is configured
	SheetIDs string    // comma-separated spreadsheet IDs
	Range    string
	Fallback RowSource // nil when no workbook fallback exists
}

// Service runs the spreadsheet syncs against the database and applies
// one consistent staleness policy: every read path that wants fresh
// data calls an Ensure* method, which re-syncs only when the last
// completed sync is older than TTL. Manual syncs force.
type Service struct {
	DB         *gorm.DB
	Students   SourceSet
	Attendance SourceSet
	Courses    SourceSet
	TTL        time.Duration
	Notifier   Notifier

	mu             sync.Mutex
	lastStudents   time.Time
	lastAttendance time.Time
	lastCourses    time.Time
}

// collect merges data rows from every configured live spreadsheet; the
// first readable sheet supplies the authoritative header row. When no
// live source yields anything the workbook fallback is tried. The
// second return reports whether rows came from the fallback.
func (s *Service) collect(ctx context.Context, set SourceSet) ([][]string, bool, error) {
	var headers []string
	var merged [][]string
	if set.Live != nil {
		for _, sid := range SplitIDs(set.SheetIDs) {
			vals, err := set.Live.Rows(ctx, sid, set.Range)
			if err != nil {
				log.Printf("sheetsync: reading sheet %s: %v", sid, err)
				continue
			}
			if len(vals) == 0 {
				continue
			}
			if headers == nil {
				headers = vals[0]
			}
			merged = append(merged, vals[1:]...)
		}
	}
	if headers != nil {
		return append([][]string{headers}, merged...), false, nil
	}
	if set.Fallback != nil {
		vals, err := set.Fallback.Rows(ctx, "", "")
		if err != nil {
			return nil, true, err
		}
		return vals, true, nil
	}
	return nil, false, ErrNoData
}

// SyncStudents pulls the student master sheet and upserts it. On total
// source failure the existing records are left untouched.
func (s *Service) SyncStudents(ctx context.Context) (SyncResult, error) {
	values, _, err := s.collect(ctx, s.Students)
	if err != nil {
		return SyncResult{}, err
	}
	res, err := SyncStudents(s.DB, values)
	if err != nil {
		return res, err
	}
	s.mu.Lock()
	s.lastStudents = time.Now()
	s.mu.Unlock()
	s.notify("students", res.Inserted+res.Updated)
	log.Printf("sheetsync: students sync done: inserted=%d updated=%d skipped=%d", res.Inserted, res.Updated, res.Skipped)
	return res, nil
}

// SyncAttendance replaces the attendance table with a fresh generation.
func (s *Service) SyncAttendance(ctx context.Context) (int, error) {
	values, fromFallback, err := s.collect(ctx, s.Attendance)
	if err != nil {
		return 0, err
	}
	n, err := SyncAttendance(s.DB, values, !fromFallback)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.lastAttendance = time.Now()
	s.mu.Unlock()
	s.notify("attendance", n)
	log.Printf("sheetsync: attendance sync done: rows=%d fallback=%v", n, fromFallback)
	return n, nil
}

func (s *Service) SyncCourses(ctx context.Context) (SyncResult, error) {
	values, _, err := s.collect(ctx, s.Courses)
	if err != nil {
		return SyncResult{}, err
	}
	res, err := SyncCourses(s.DB, values)
	if err != nil {
		return res, err
	}
	s.mu.Lock()
	s.lastCourses = time.Now()
	s.mu.Unlock()
	s.notify("courses", res.Inserted+res.Updated)
	return res, nil
}

// EnsureFreshAttendance re-syncs only when the last generation is
// stale. Failures leave the stored generation in place; callers log
// and serve what is there.
func (s *Service) EnsureFreshAttendance(ctx context.Context) error {
	if s.fresh(&s.lastAttendance) {
		return nil
	}
	_, err := s.SyncAttendance(ctx)
	return err
}

func (s *Service) EnsureFreshStudents(ctx context.Context) error {
	if s.fresh(&s.lastStudents) {
		return nil
	}
	_, err := s.SyncStudents(ctx)
	return err
}

func (s *Service) fresh(last *time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !last.IsZero() && time.Since(*last) < s.TTL
}

// LastAttendanceSync is reported by the health endpoint.
func (s *Service) LastAttendanceSync() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAttendance
}

func (s *Service) notify(kind string, rows int) {
	if s.Notifier != nil {
		s.Notifier.SyncCompleted(kind, rows)
	}
}
