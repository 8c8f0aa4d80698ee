package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/classtrack/attendance-backend/internal/config"
	"github.com/classtrack/attendance-backend/internal/model"
	"github.com/classtrack/attendance-backend/internal/repository"
)

// AttendanceStore is the data access surface the ledger needs. Implemented
// by repository.AttendanceRepository.
type AttendanceStore interface {
	Upsert(ctx context.Context, studentID int64, date string, status model.Status) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.AttendanceRecord, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.AttendanceRecord, error)
	ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error)
	ListByDateRange(ctx context.Context, start, end string) ([]model.AttendanceRecord, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CountByStudent(ctx context.Context, studentID int64) (total, present, absent int, err error)
	CountByDay(ctx context.Context, start, end string) ([]repository.DayCounts, error)
	CountRange(ctx context.Context, start, end string) (repository.RangeTotals, error)
}

// AttendanceService owns the ledger rules: the upsert-on-conflict write and
// point, range, and per-date aggregation.
type AttendanceService struct {
	attendance AttendanceStore
	rdb        *redis.Client
	log        zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService. rdb may be nil, in
// which case no report cache is invalidated on writes.
func NewAttendanceService(attendance AttendanceStore, rdb *redis.Client, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		rdb:        rdb,
		log:        log.With().Str("component", "attendance_service").Logger(),
	}
}

// Record writes one attendance event. A second write for the same
// (student, date) pair overwrites the status of the existing record and
// keeps its identifier. The returned record is re-fetched from the store.
func (s *AttendanceService) Record(ctx context.Context, studentID int64, date string, status model.Status) (*model.AttendanceRecord, error) {
	if !model.ValidateDate(date) {
		return nil, ErrInvalidDate
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	id, err := s.attendance.Upsert(ctx, studentID, date, status)
	if err != nil {
		if errors.Is(err, repository.ErrStudentMissing) {
			return nil, fmt.Errorf("%w: no student with id %d", ErrConstraint, studentID)
		}
		return nil, err
	}

	s.invalidateMonth(ctx, date)
	return s.attendance.GetByID(ctx, id)
}

// RecordBatch applies entries sequentially with one upsert each. The batch
// is not atomic: it stops at the first failure and reports how many entries
// were committed before it.
func (s *AttendanceService) RecordBatch(ctx context.Context, entries []model.RecordAttendanceRequest) (int, error) {
	for i, e := range entries {
		if _, err := s.Record(ctx, e.StudentID, e.Date, e.Status); err != nil {
			return i, fmt.Errorf("record %d/%d: %w", i+1, len(entries), err)
		}
	}
	return len(entries), nil
}

// GetByID retrieves a record, or (nil, nil) when the ID does not exist.
func (s *AttendanceService) GetByID(ctx context.Context, id int64) (*model.AttendanceRecord, error) {
	rec, err := s.attendance.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

// ByStudent retrieves a student's records, most recent date first.
func (s *AttendanceService) ByStudent(ctx context.Context, studentID int64) ([]model.AttendanceRecord, error) {
	return s.attendance.ListByStudent(ctx, studentID)
}

// ByDate retrieves all records for one date, ordered by student ID.
func (s *AttendanceService) ByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error) {
	if !model.ValidateDate(date) {
		return nil, ErrInvalidDate
	}
	return s.attendance.ListByDate(ctx, date)
}

// ByDateRange retrieves records between two dates, both inclusive.
func (s *AttendanceService) ByDateRange(ctx context.Context, start, end string) ([]model.AttendanceRecord, error) {
	if !model.ValidateDate(start) || !model.ValidateDate(end) {
		return nil, ErrInvalidDate
	}
	return s.attendance.ListByDateRange(ctx, start, end)
}

// Delete removes a record by ID.
func (s *AttendanceService) Delete(ctx context.Context, id int64) (bool, error) {
	rec, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, nil
	}

	deleted, err := s.attendance.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidateMonth(ctx, rec.Date)
	}
	return deleted, nil
}

// Summary aggregates a student's attendance history. A student with no
// records gets an all-zero summary, not a division-by-zero failure.
func (s *AttendanceService) Summary(ctx context.Context, studentID int64) (model.AttendanceSummary, error) {
	total, present, absent, err := s.attendance.CountByStudent(ctx, studentID)
	if err != nil {
		return model.AttendanceSummary{}, err
	}

	var percentage float64
	if total > 0 {
		percentage = round2(float64(present) / float64(total) * 100)
	}

	return model.AttendanceSummary{
		StudentID:            studentID,
		TotalDays:            total,
		PresentDays:          present,
		AbsentDays:           absent,
		AttendancePercentage: percentage,
	}, nil
}

// MonthlyReport aggregates one calendar month, first to last day, leap years
// included. Per-day percentages stay unrounded; the overall percentage is
// rounded to two decimals.
func (s *AttendanceService) MonthlyReport(ctx context.Context, year, month int) (*model.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be 1-12", ErrValidation)
	}

	start, end := monthSpan(year, month)

	dayCounts, err := s.attendance.CountByDay(ctx, start, end)
	if err != nil {
		return nil, err
	}

	days := make(map[string]model.MonthlyDayStats, len(dayCounts))
	for _, d := range dayCounts {
		var pct float64
		if d.Total > 0 {
			pct = float64(d.Present) / float64(d.Total) * 100
		}
		days[d.Date] = model.MonthlyDayStats{
			Present:           d.Present,
			Absent:            d.Absent,
			Total:             d.Total,
			PresentPercentage: pct,
		}
	}

	totals, err := s.attendance.CountRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var overall float64
	if totals.Records > 0 {
		overall = round2(float64(totals.Present) / float64(totals.Records) * 100)
	}

	return &model.MonthlyReport{
		Year:                        year,
		Month:                       month,
		MonthName:                   time.Month(month).String(),
		Days:                        days,
		TotalStudents:               totals.Students,
		TotalRecords:                totals.Records,
		TotalPresent:                totals.Present,
		TotalAbsent:                 totals.Absent,
		OverallAttendancePercentage: overall,
	}, nil
}

// invalidateMonth drops the cached monthly report covering the given date.
func (s *AttendanceService) invalidateMonth(ctx context.Context, date string) {
	if s.rdb == nil {
		return
	}
	day, err := time.Parse(model.DateFormat, date)
	if err != nil {
		return
	}
	key := config.CacheKey.MonthlyReportKey(day.Year(), int(day.Month()))
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("report cache invalidation failed")
	}
}

// monthSpan returns the first and last calendar day of a month as ISO dates.
func monthSpan(year, month int) (start, end string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(model.DateFormat), last.Format(model.DateFormat)
}

// round2 rounds to two decimal places, the presentation precision for all
// top-level percentages.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
