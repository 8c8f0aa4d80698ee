package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classtrack/attendance-backend/internal/model"
)

// ErrStudentMissing is returned when an attendance write references a
// student ID that does not exist.
var ErrStudentMissing = errors.New("attendance references a missing student")

// AttendanceRepository handles attendance data access.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

const attendanceColumns = `attendance_id, student_id, date, status`

func scanRecord(row pgx.Row) (*model.AttendanceRecord, error) {
	rec := &model.AttendanceRecord{}
	var day time.Time
	if err := row.Scan(&rec.ID, &rec.StudentID, &day, &rec.Status); err != nil {
		return nil, err
	}
	rec.Date = day.Format(model.DateFormat)
	return rec, nil
}

func scanRecords(rows pgx.Rows) ([]model.AttendanceRecord, error) {
	defer rows.Close()

	var records []model.AttendanceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if records == nil {
		records = []model.AttendanceRecord{}
	}
	return records, rows.Err()
}

// Upsert inserts an attendance record or, when one already exists for the
// (student, date) pair, overwrites its status. The existing row keeps its
// ID, which is returned either way.
func (r *AttendanceRepository) Upsert(ctx context.Context, studentID int64, date string, status model.Status) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO attendance (student_id, date, status)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (student_id, date) DO UPDATE SET status = EXCLUDED.status
		 RETURNING attendance_id`,
		studentID, date, status,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return 0, ErrStudentMissing
		}
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a record by ID. Returns pgx.ErrNoRows when absent.
func (r *AttendanceRepository) GetByID(ctx context.Context, id int64) (*model.AttendanceRecord, error) {
	return scanRecord(r.pool.QueryRow(ctx,
		`SELECT `+attendanceColumns+` FROM attendance WHERE attendance_id = $1`, id))
}

// ListByStudent retrieves a student's records, most recent date first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]model.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+attendanceColumns+` FROM attendance
		 WHERE student_id = $1
		 ORDER BY date DESC`, studentID)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// ListByDate retrieves all records for one date, ordered by student ID.
func (r *AttendanceRepository) ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+attendanceColumns+` FROM attendance
		 WHERE date = $1
		 ORDER BY student_id`, date)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// ListByDateRange retrieves records between two dates inclusive, ordered by
// date then student ID.
func (r *AttendanceRepository) ListByDateRange(ctx context.Context, start, end string) ([]model.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+attendanceColumns+` FROM attendance
		 WHERE date BETWEEN $1 AND $2
		 ORDER BY date, student_id`, start, end)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// Delete removes a record by ID.
func (r *AttendanceRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM attendance WHERE attendance_id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CountByStudent retrieves a student's total, present, and absent day counts.
func (r *AttendanceRepository) CountByStudent(ctx context.Context, studentID int64) (total, present, absent int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Present'),
			COUNT(*) FILTER (WHERE status = 'Absent')
		 FROM attendance
		 WHERE student_id = $1`, studentID,
	).Scan(&total, &present, &absent)
	return
}

// DayCounts holds per-date counters inside a date range.
type DayCounts struct {
	Date    string
	Present int
	Absent  int
	Total   int
}

// CountByDay retrieves per-date counters for the inclusive range, ordered by
// date.
func (r *AttendanceRepository) CountByDay(ctx context.Context, start, end string) ([]DayCounts, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT date,
			COUNT(*) FILTER (WHERE status = 'Present'),
			COUNT(*) FILTER (WHERE status = 'Absent'),
			COUNT(*)
		 FROM attendance
		 WHERE date BETWEEN $1 AND $2
		 GROUP BY date
		 ORDER BY date`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []DayCounts
	for rows.Next() {
		var d DayCounts
		var day time.Time
		if err := rows.Scan(&day, &d.Present, &d.Absent, &d.Total); err != nil {
			return nil, err
		}
		d.Date = day.Format(model.DateFormat)
		days = append(days, d)
	}
	return days, rows.Err()
}

// RangeTotals holds the aggregated counters of a date range.
type RangeTotals struct {
	Students int
	Records  int
	Present  int
	Absent   int
}

// CountRange retrieves the overall counters for the inclusive range,
// including the number of distinct students with any record in it.
func (r *AttendanceRepository) CountRange(ctx context.Context, start, end string) (RangeTotals, error) {
	var t RangeTotals
	err := r.pool.QueryRow(ctx,
		`SELECT
			COUNT(DISTINCT student_id),
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Present'),
			COUNT(*) FILTER (WHERE status = 'Absent')
		 FROM attendance
		 WHERE date BETWEEN $1 AND $2`, start, end,
	).Scan(&t.Students, &t.Records, &t.Present, &t.Absent)
	return t, err
}
