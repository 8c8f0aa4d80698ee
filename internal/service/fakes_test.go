package service

import (
	"context"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/classtrack/attendance-backend/internal/model"
	"github.com/classtrack/attendance-backend/internal/repository"
)

// fakeStudentStore is an in-memory StudentStore mirroring the store's
// ordering and uniqueness semantics.
type fakeStudentStore struct {
	students map[int64]model.Student
	nextID   int64
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]model.Student), nextID: 1}
}

func (f *fakeStudentStore) byID() []model.Student {
	out := make([]model.Student, 0, len(f.students))
	for _, s := range f.students {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortByName(students []model.Student) []model.Student {
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })
	return students
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*model.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &s, nil
}

func (f *fakeStudentStore) List(context.Context) ([]model.Student, error) {
	return f.byID(), nil
}

func (f *fakeStudentStore) ListByCourse(_ context.Context, course string) ([]model.Student, error) {
	var out []model.Student
	for _, s := range f.students {
		if s.Course == course {
			out = append(out, s)
		}
	}
	return sortByName(out), nil
}

func (f *fakeStudentStore) Create(_ context.Context, s *model.Student) error {
	for _, existing := range f.students {
		if existing.Name == s.Name {
			return repository.ErrDuplicateName
		}
	}
	s.ID = f.nextID
	f.nextID++
	if s.EnrollmentDate == "" {
		s.EnrollmentDate = "2024-01-15"
	}
	f.students[s.ID] = *s
	return nil
}

func (f *fakeStudentStore) Update(_ context.Context, id int64, name, course string) (bool, error) {
	s, ok := f.students[id]
	if !ok {
		return false, nil
	}
	for _, existing := range f.students {
		if existing.ID != id && existing.Name == name {
			return false, repository.ErrDuplicateName
		}
	}
	s.Name = name
	s.Course = course
	f.students[id] = s
	return true, nil
}

func (f *fakeStudentStore) UpdateCourseForMany(_ context.Context, ids []int64, course string) (int64, error) {
	var count int64
	for _, id := range ids {
		if s, ok := f.students[id]; ok {
			s.Course = course
			f.students[id] = s
			count++
		}
	}
	return count, nil
}

func (f *fakeStudentStore) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.students[id]; !ok {
		return false, nil
	}
	delete(f.students, id)
	return true, nil
}

func (f *fakeStudentStore) DeleteMany(_ context.Context, ids []int64) (int64, error) {
	var count int64
	for _, id := range ids {
		if _, ok := f.students[id]; ok {
			delete(f.students, id)
			count++
		}
	}
	return count, nil
}

func (f *fakeStudentStore) Search(_ context.Context, term string) ([]model.Student, error) {
	needle := strings.ToLower(term)
	var out []model.Student
	for _, s := range f.students {
		if strings.Contains(strings.ToLower(s.Name), needle) ||
			strings.Contains(strings.ToLower(s.Course), needle) {
			out = append(out, s)
		}
	}
	return sortByName(out), nil
}

func (f *fakeStudentStore) AdvancedSearch(_ context.Context, c model.SearchCriteria) ([]model.Student, error) {
	var out []model.Student
	for _, s := range f.students {
		if c.StudentID != nil && s.ID != *c.StudentID {
			continue
		}
		if c.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(c.Name)) {
			continue
		}
		if c.Course != "" && !strings.Contains(strings.ToLower(s.Course), strings.ToLower(c.Course)) {
			continue
		}
		if c.EnrollmentFrom != "" && s.EnrollmentDate < c.EnrollmentFrom {
			continue
		}
		if c.EnrollmentTo != "" && s.EnrollmentDate > c.EnrollmentTo {
			continue
		}
		out = append(out, s)
	}
	return sortByName(out), nil
}

func (f *fakeStudentStore) CountByName(_ context.Context, name string, excludeID *int64) (int, error) {
	count := 0
	for _, s := range f.students {
		if s.Name != name {
			continue
		}
		if excludeID != nil && s.ID == *excludeID {
			continue
		}
		count++
	}
	return count, nil
}

// fakeAttendanceStore is an in-memory AttendanceStore with the same upsert,
// ordering, and aggregation semantics as the SQL schema.
type fakeAttendanceStore struct {
	records map[int64]model.AttendanceRecord
	nextID  int64
	// validStudents guards the foreign key; nil disables the check.
	validStudents map[int64]bool
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{records: make(map[int64]model.AttendanceRecord), nextID: 1}
}

func (f *fakeAttendanceStore) Upsert(_ context.Context, studentID int64, date string, status model.Status) (int64, error) {
	for id, rec := range f.records {
		if rec.StudentID == studentID && rec.Date == date {
			rec.Status = status
			f.records[id] = rec
			return id, nil
		}
	}
	if f.validStudents != nil && !f.validStudents[studentID] {
		return 0, repository.ErrStudentMissing
	}
	id := f.nextID
	f.nextID++
	f.records[id] = model.AttendanceRecord{ID: id, StudentID: studentID, Date: date, Status: status}
	return id, nil
}

func (f *fakeAttendanceStore) GetByID(_ context.Context, id int64) (*model.AttendanceRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &rec, nil
}

func (f *fakeAttendanceStore) ListByStudent(_ context.Context, studentID int64) ([]model.AttendanceRecord, error) {
	out := []model.AttendanceRecord{}
	for _, rec := range f.records {
		if rec.StudentID == studentID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (f *fakeAttendanceStore) ListByDate(_ context.Context, date string) ([]model.AttendanceRecord, error) {
	out := []model.AttendanceRecord{}
	for _, rec := range f.records {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, nil
}

func (f *fakeAttendanceStore) ListByDateRange(_ context.Context, start, end string) ([]model.AttendanceRecord, error) {
	out := []model.AttendanceRecord{}
	for _, rec := range f.records {
		if rec.Date >= start && rec.Date <= end {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StudentID < out[j].StudentID
	})
	return out, nil
}

func (f *fakeAttendanceStore) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.records[id]; !ok {
		return false, nil
	}
	delete(f.records, id)
	return true, nil
}

func (f *fakeAttendanceStore) CountByStudent(_ context.Context, studentID int64) (total, present, absent int, err error) {
	for _, rec := range f.records {
		if rec.StudentID != studentID {
			continue
		}
		total++
		if rec.Status == model.StatusPresent {
			present++
		} else {
			absent++
		}
	}
	return
}

func (f *fakeAttendanceStore) CountByDay(_ context.Context, start, end string) ([]repository.DayCounts, error) {
	byDate := make(map[string]*repository.DayCounts)
	for _, rec := range f.records {
		if rec.Date < start || rec.Date > end {
			continue
		}
		d, ok := byDate[rec.Date]
		if !ok {
			d = &repository.DayCounts{Date: rec.Date}
			byDate[rec.Date] = d
		}
		d.Total++
		if rec.Status == model.StatusPresent {
			d.Present++
		} else {
			d.Absent++
		}
	}
	var out []repository.DayCounts
	for _, d := range byDate {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeAttendanceStore) CountRange(_ context.Context, start, end string) (repository.RangeTotals, error) {
	var t repository.RangeTotals
	seen := make(map[int64]bool)
	for _, rec := range f.records {
		if rec.Date < start || rec.Date > end {
			continue
		}
		t.Records++
		if rec.Status == model.StatusPresent {
			t.Present++
		} else {
			t.Absent++
		}
		if !seen[rec.StudentID] {
			seen[rec.StudentID] = true
			t.Students++
		}
	}
	return t, nil
}
