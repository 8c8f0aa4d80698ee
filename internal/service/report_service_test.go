package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classtrack/attendance-backend/internal/model"
)

func newReportFixture() (*ReportService, *StudentService, *AttendanceService) {
	students := NewStudentService(newFakeStudentStore(), zerolog.Nop())
	attendance := NewAttendanceService(newFakeAttendanceStore(), nil, zerolog.Nop())
	reports := NewReportService(students, attendance, nil, 0, zerolog.Nop())
	return reports, students, attendance
}

func TestReportServiceStudentReport(t *testing.T) {
	ctx := context.Background()
	reports, students, attendance := newReportFixture()

	alice, err := students.Add(ctx, "Alice Johnson", "CS101")
	require.NoError(t, err)
	_, err = attendance.Record(ctx, alice.ID, "2024-01-15", model.StatusPresent)
	require.NoError(t, err)
	_, err = attendance.Record(ctx, alice.ID, "2024-01-16", model.StatusAbsent)
	require.NoError(t, err)

	report, err := reports.StudentReport(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", report.Student.Name)
	assert.Equal(t, 2, report.AttendanceSummary.TotalDays)
	assert.Equal(t, 50.0, report.AttendanceSummary.AttendancePercentage)
	assert.NotEmpty(t, report.GeneratedAt)

	// Records come back most recent first.
	require.Len(t, report.AttendanceRecords, 2)
	assert.Equal(t, "2024-01-16", report.AttendanceRecords[0].Date)
}

func TestReportServiceStudentReportMissing(t *testing.T) {
	ctx := context.Background()
	reports, _, _ := newReportFixture()

	_, err := reports.StudentReport(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportServiceDailyReport(t *testing.T) {
	ctx := context.Background()
	reports, students, attendance := newReportFixture()

	alice, err := students.Add(ctx, "Alice Johnson", "CS101")
	require.NoError(t, err)
	bob, err := students.Add(ctx, "Bob Smith", "MA201")
	require.NoError(t, err)
	_, err = students.Add(ctx, "Carol White", "CS101")
	require.NoError(t, err)

	_, err = attendance.Record(ctx, alice.ID, "2024-01-15", model.StatusPresent)
	require.NoError(t, err)
	_, err = attendance.Record(ctx, bob.ID, "2024-01-15", model.StatusAbsent)
	require.NoError(t, err)

	report, err := reports.DailyReport(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", report.Date)
	assert.Equal(t, 1, report.PresentCount)
	assert.Equal(t, 1, report.AbsentCount)
	assert.Equal(t, 1, report.NotRecorded)
	assert.Equal(t, 3, report.TotalStudents)
	assert.Equal(t, 33.33, report.AttendancePercentage)

	require.Len(t, report.Entries, 3)
	byName := make(map[string]string, len(report.Entries))
	for _, e := range report.Entries {
		byName[e.Name] = e.Status
	}
	assert.Equal(t, "Present", byName["Alice Johnson"])
	assert.Equal(t, "Absent", byName["Bob Smith"])
	assert.Equal(t, model.StatusNotRecorded, byName["Carol White"])
}

func TestReportServiceDailyReportNoStudents(t *testing.T) {
	ctx := context.Background()
	reports, _, _ := newReportFixture()

	report, err := reports.DailyReport(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Zero(t, report.TotalStudents)
	assert.Zero(t, report.AttendancePercentage)
	assert.Empty(t, report.Entries)
}

func TestReportServiceDailyReportBadDate(t *testing.T) {
	ctx := context.Background()
	reports, _, _ := newReportFixture()

	_, err := reports.DailyReport(ctx, "15-01-2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestReportServiceCourseReport(t *testing.T) {
	ctx := context.Background()
	reports, students, attendance := newReportFixture()

	alice, err := students.Add(ctx, "Alice Johnson", "CS101")
	require.NoError(t, err)
	bob, err := students.Add(ctx, "Bob Smith", "CS101")
	require.NoError(t, err)
	other, err := students.Add(ctx, "Carol White", "MA201")
	require.NoError(t, err)

	// Alice: 2/2 present. Bob: 0/1. Carol is in another course.
	_, err = attendance.Record(ctx, alice.ID, "2024-01-15", model.StatusPresent)
	require.NoError(t, err)
	_, err = attendance.Record(ctx, alice.ID, "2024-01-16", model.StatusPresent)
	require.NoError(t, err)
	_, err = attendance.Record(ctx, bob.ID, "2024-01-15", model.StatusAbsent)
	require.NoError(t, err)
	_, err = attendance.Record(ctx, other.ID, "2024-01-15", model.StatusPresent)
	require.NoError(t, err)

	report, err := reports.CourseReport(ctx, "CS101")
	require.NoError(t, err)
	assert.Equal(t, "CS101", report.Course)
	assert.Equal(t, 2, report.StudentCount)
	// Sum of present days over sum of total days: 2/3.
	assert.Equal(t, 66.67, report.OverallAttendancePercentage)

	require.Len(t, report.StudentReports, 2)
	assert.Equal(t, "Alice Johnson", report.StudentReports[0].Student.Name)
	assert.Equal(t, 100.0, report.StudentReports[0].AttendanceSummary.AttendancePercentage)
	assert.Equal(t, 0.0, report.StudentReports[1].AttendanceSummary.AttendancePercentage)
}

func TestReportServiceCourseReportMissing(t *testing.T) {
	ctx := context.Background()
	reports, _, _ := newReportFixture()

	_, err := reports.CourseReport(ctx, "ZZ999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportServiceMonthlyReportWithoutCache(t *testing.T) {
	ctx := context.Background()
	reports, _, attendance := newReportFixture()

	_, err := attendance.Record(ctx, 1, "2024-02-29", model.StatusPresent)
	require.NoError(t, err)

	report, err := reports.MonthlyReport(ctx, 2024, 2)
	require.NoError(t, err)
	assert.Equal(t, "February", report.MonthName)
	assert.Equal(t, 1, report.TotalRecords)
	assert.Contains(t, report.Days, "2024-02-29")
}
