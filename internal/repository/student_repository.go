package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classtrack/attendance-backend/internal/model"
)

// ErrDuplicateName is returned when an insert or update collides with the
// unique index on students.name.
var ErrDuplicateName = errors.New("student with this name already exists")

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = `student_id, name, course, enrollment_date`

func scanStudent(row pgx.Row) (*model.Student, error) {
	s := &model.Student{}
	var enrolled time.Time
	if err := row.Scan(&s.ID, &s.Name, &s.Course, &enrolled); err != nil {
		return nil, err
	}
	s.EnrollmentDate = enrolled.Format(model.DateFormat)
	return s, nil
}

func scanStudents(rows pgx.Rows) ([]model.Student, error) {
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, rows.Err()
}

// GetByID retrieves a student by ID. Returns pgx.ErrNoRows when absent.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE student_id = $1`, id))
}

// List retrieves all students ordered by ID.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY student_id`)
	if err != nil {
		return nil, err
	}
	return scanStudents(rows)
}

// ListByCourse retrieves students enrolled in exactly the given course,
// ordered by name.
func (r *StudentRepository) ListByCourse(ctx context.Context, course string) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students WHERE course = $1 ORDER BY name`, course)
	if err != nil {
		return nil, err
	}
	return scanStudents(rows)
}

// Create inserts a new student; the store assigns the ID and enrollment date.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	var enrolled time.Time
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (name, course) VALUES ($1, $2)
		 RETURNING student_id, enrollment_date`,
		s.Name, s.Course,
	).Scan(&s.ID, &enrolled)
	if err != nil {
		return mapNameConflict(err)
	}
	s.EnrollmentDate = enrolled.Format(model.DateFormat)
	return nil
}

// Update modifies a student's name and course. The enrollment date is never
// touched. Returns false when the ID does not exist.
func (r *StudentRepository) Update(ctx context.Context, id int64, name, course string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students SET name = $1, course = $2 WHERE student_id = $3`,
		name, course, id,
	)
	if err != nil {
		return false, mapNameConflict(err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateCourseForMany moves all matching students to a new course and
// returns the number of rows the store reports as updated. IDs without a
// matching student are skipped silently.
func (r *StudentRepository) UpdateCourseForMany(ctx context.Context, ids []int64, course string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students SET course = $1 WHERE student_id = ANY($2)`, course, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes a student by ID; dependent attendance rows cascade.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE student_id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteMany removes all matching students and returns the affected count.
func (r *StudentRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE student_id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Search matches the term as a case-insensitive substring of name or course,
// ordered by name.
func (r *StudentRepository) Search(ctx context.Context, term string) ([]model.Student, error) {
	pattern := "%" + term + "%"
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students
		 WHERE name ILIKE $1 OR course ILIKE $1
		 ORDER BY name`, pattern)
	if err != nil {
		return nil, err
	}
	return scanStudents(rows)
}

// AdvancedSearch applies the set criteria fields conjunctively, ordered by
// name. Callers handle the empty-criteria case.
func (r *StudentRepository) AdvancedSearch(ctx context.Context, c model.SearchCriteria) ([]model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE 1=1`
	var args []interface{}
	argIdx := 1

	next := func() string {
		n := strconv.Itoa(argIdx)
		argIdx++
		return "$" + n
	}

	if c.StudentID != nil {
		query += ` AND student_id = ` + next()
		args = append(args, *c.StudentID)
	}
	if c.Name != "" {
		query += ` AND name ILIKE ` + next()
		args = append(args, "%"+c.Name+"%")
	}
	if c.Course != "" {
		query += ` AND course ILIKE ` + next()
		args = append(args, "%"+c.Course+"%")
	}
	if c.EnrollmentFrom != "" {
		query += ` AND enrollment_date >= ` + next()
		args = append(args, c.EnrollmentFrom)
	}
	if c.EnrollmentTo != "" {
		query += ` AND enrollment_date <= ` + next()
		args = append(args, c.EnrollmentTo)
	}

	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanStudents(rows)
}

// CountByName counts students with exactly the given name, optionally
// excluding one ID (for update-time duplicate checks).
func (r *StudentRepository) CountByName(ctx context.Context, name string, excludeID *int64) (int, error) {
	var count int
	var err error
	if excludeID != nil {
		err = r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM students WHERE name = $1 AND student_id != $2`,
			name, *excludeID,
		).Scan(&count)
	} else {
		err = r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM students WHERE name = $1`, name,
		).Scan(&count)
	}
	return count, err
}

// mapNameConflict translates a unique-violation on the name index into
// ErrDuplicateName. The constraint is the authoritative guard; the service
// pre-check only exists for a friendlier message.
func mapNameConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateName
	}
	return err
}
