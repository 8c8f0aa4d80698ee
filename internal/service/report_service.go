package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/classtrack/attendance-backend/internal/config"
	"github.com/classtrack/attendance-backend/internal/model"
)

// generatedAtFormat timestamps reports with second precision.
const generatedAtFormat = "2006-01-02 15:04:05"

// ReportService composes the registry and the ledger into the four report
// shapes. Each report fails with ErrNotFound when its subject is absent.
type ReportService struct {
	students   *StudentService
	attendance *AttendanceService
	rdb        *redis.Client
	cacheTTL   time.Duration
	log        zerolog.Logger
}

// NewReportService creates a new ReportService. rdb may be nil to disable
// the monthly report cache.
func NewReportService(
	students *StudentService,
	attendance *AttendanceService,
	rdb *redis.Client,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{
		students:   students,
		attendance: attendance,
		rdb:        rdb,
		cacheTTL:   cacheTTL,
		log:        log.With().Str("component", "report_service").Logger(),
	}
}

// StudentReport builds the full report for one student: attributes, summary,
// and the complete record list in the ledger's date-descending order.
func (s *ReportService) StudentReport(ctx context.Context, studentID int64) (*model.StudentReport, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, fmt.Errorf("%w: student with id %d", ErrNotFound, studentID)
	}

	records, err := s.attendance.ByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	summary, err := s.attendance.Summary(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &model.StudentReport{
		Student:           *student,
		AttendanceSummary: summary,
		AttendanceRecords: records,
		GeneratedAt:       time.Now().Format(generatedAtFormat),
	}, nil
}

// DailyReport covers every currently registered student on one date, using
// the "Not Recorded" sentinel for students without a record. The percentage
// is present over all registered students, zero-guarded.
func (s *ReportService) DailyReport(ctx context.Context, date string) (*model.DailyReport, error) {
	records, err := s.attendance.ByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}

	statusByStudent := make(map[int64]model.Status, len(records))
	for _, rec := range records {
		statusByStudent[rec.StudentID] = rec.Status
	}

	entries := make([]model.DailyReportEntry, 0, len(students))
	var present, absent int
	for _, st := range students {
		status := model.StatusNotRecorded
		switch statusByStudent[st.ID] {
		case model.StatusPresent:
			status = string(model.StatusPresent)
			present++
		case model.StatusAbsent:
			status = string(model.StatusAbsent)
			absent++
		}
		entries = append(entries, model.DailyReportEntry{
			StudentID: st.ID,
			Name:      st.Name,
			Course:    st.Course,
			Status:    status,
		})
	}

	var percentage float64
	if len(students) > 0 {
		percentage = round2(float64(present) / float64(len(students)) * 100)
	}

	return &model.DailyReport{
		Date:                 date,
		PresentCount:         present,
		AbsentCount:          absent,
		NotRecorded:          len(students) - len(records),
		TotalStudents:        len(students),
		AttendancePercentage: percentage,
		Entries:              entries,
		GeneratedAt:          time.Now().Format(generatedAtFormat),
	}, nil
}

// CourseReport aggregates attendance over every student of exactly the given
// course. The overall percentage sums present days over total days across
// all matched students.
func (s *ReportService) CourseReport(ctx context.Context, course string) (*model.CourseReport, error) {
	students, err := s.students.ListByCourse(ctx, course)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, fmt.Errorf("%w: no students in course %q", ErrNotFound, course)
	}

	reports := make([]model.CourseStudentReport, 0, len(students))
	var totalPresent, totalDays int
	for _, st := range students {
		summary, err := s.attendance.Summary(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		totalPresent += summary.PresentDays
		totalDays += summary.TotalDays
		reports = append(reports, model.CourseStudentReport{
			Student:           st,
			AttendanceSummary: summary,
		})
	}

	var overall float64
	if totalDays > 0 {
		overall = round2(float64(totalPresent) / float64(totalDays) * 100)
	}

	return &model.CourseReport{
		Course:                      course,
		StudentCount:                len(students),
		OverallAttendancePercentage: overall,
		StudentReports:              reports,
		GeneratedAt:                 time.Now().Format(generatedAtFormat),
	}, nil
}

// MonthlyReport delegates to the ledger, serving from the Redis cache when a
// fresh copy exists. Attendance writes invalidate the cached month.
func (s *ReportService) MonthlyReport(ctx context.Context, year, month int) (*model.MonthlyReport, error) {
	key := config.CacheKey.MonthlyReportKey(year, month)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Bytes()
		if err == nil {
			report := &model.MonthlyReport{}
			if err := json.Unmarshal(cached, report); err == nil {
				return report, nil
			}
			// Unreadable cache entry; fall through and rebuild.
			s.rdb.Del(ctx, key)
		}
	}

	report, err := s.attendance.MonthlyReport(ctx, year, month)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(report); err == nil {
			if err := s.rdb.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Str("key", key).Msg("report cache write failed")
			}
		}
	}

	return report, nil
}
