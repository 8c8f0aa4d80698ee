package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/classtrack/attendance-backend/internal/model"
	"github.com/classtrack/attendance-backend/internal/repository"
)

// StudentStore is the data access surface the registry needs. Implemented by
// repository.StudentRepository.
type StudentStore interface {
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	ListByCourse(ctx context.Context, course string) ([]model.Student, error)
	Create(ctx context.Context, s *model.Student) error
	Update(ctx context.Context, id int64, name, course string) (bool, error)
	UpdateCourseForMany(ctx context.Context, ids []int64, course string) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
	Search(ctx context.Context, term string) ([]model.Student, error)
	AdvancedSearch(ctx context.Context, c model.SearchCriteria) ([]model.Student, error)
	CountByName(ctx context.Context, name string, excludeID *int64) (int, error)
}

// StudentService owns the registry rules: course format validation and
// name uniqueness.
type StudentService struct {
	students StudentStore
	log      zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(students StudentStore, log zerolog.Logger) *StudentService {
	return &StudentService{
		students: students,
		log:      log.With().Str("component", "student_service").Logger(),
	}
}

// validateStudent applies the shared add/update rules.
func (s *StudentService) validateStudent(name, course string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if !model.ValidateCourse(course) {
		return ErrInvalidCourse
	}
	return nil
}

// Add registers a new student. The store assigns the ID and enrollment date.
func (s *StudentService) Add(ctx context.Context, name, course string) (*model.Student, error) {
	if err := s.validateStudent(name, course); err != nil {
		return nil, err
	}

	dup, err := s.IsDuplicateName(ctx, name, nil)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateName
	}

	student := &model.Student{Name: name, Course: course}
	if err := s.students.Create(ctx, student); err != nil {
		// The pre-check can lose a race; the unique index still guards.
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}

	s.log.Info().Int64("student_id", student.ID).Str("course", course).Msg("student registered")
	return student, nil
}

// GetByID retrieves a student, or (nil, nil) when the ID does not exist.
func (s *StudentService) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return student, err
}

// List retrieves all students ordered by ID.
func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	return s.students.List(ctx)
}

// ListByCourse retrieves students of exactly the given course, by name.
func (s *StudentService) ListByCourse(ctx context.Context, course string) ([]model.Student, error) {
	return s.students.ListByCourse(ctx, course)
}

// Update changes a student's name and course with the same validation as
// Add, except the duplicate-name check excludes the student's own record.
// Returns (nil, nil) when the ID does not exist.
func (s *StudentService) Update(ctx context.Context, id int64, name, course string) (*model.Student, error) {
	if err := s.validateStudent(name, course); err != nil {
		return nil, err
	}

	dup, err := s.IsDuplicateName(ctx, name, &id)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateName
	}

	updated, err := s.students.Update(ctx, id, name, course)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	if !updated {
		return nil, nil
	}

	return s.GetByID(ctx, id)
}

// UpdateCourseForMany moves all matching students to a new course. The
// course is validated once for the whole batch; missing IDs are skipped.
func (s *StudentService) UpdateCourseForMany(ctx context.Context, ids []int64, course string) (int64, error) {
	if !model.ValidateCourse(course) {
		return 0, ErrInvalidCourse
	}
	if len(ids) == 0 {
		return 0, nil
	}

	count, err := s.students.UpdateCourseForMany(ctx, ids, course)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("updated", count).Str("course", course).Msg("bulk course update")
	return count, nil
}

// Delete removes a student; attendance rows cascade at the store.
func (s *StudentService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.students.Delete(ctx, id)
}

// DeleteMany removes all matching students and returns the affected count.
func (s *StudentService) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.students.DeleteMany(ctx, ids)
}

// Search matches name or course by case-insensitive substring.
func (s *StudentService) Search(ctx context.Context, term string) ([]model.Student, error) {
	return s.students.Search(ctx, term)
}

// AdvancedSearch applies the set criteria conjunctively, ordered by name.
// Empty criteria degenerates to List.
func (s *StudentService) AdvancedSearch(ctx context.Context, c model.SearchCriteria) ([]model.Student, error) {
	if c.IsEmpty() {
		return s.List(ctx)
	}
	if c.EnrollmentFrom != "" && !model.ValidateDate(c.EnrollmentFrom) {
		return nil, ErrInvalidDate
	}
	if c.EnrollmentTo != "" && !model.ValidateDate(c.EnrollmentTo) {
		return nil, ErrInvalidDate
	}
	return s.students.AdvancedSearch(ctx, c)
}

// IsDuplicateName reports whether another student already has this exact
// name. excludeID, when set, leaves that student's own record out.
func (s *StudentService) IsDuplicateName(ctx context.Context, name string, excludeID *int64) (bool, error) {
	count, err := s.students.CountByName(ctx, name, excludeID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
