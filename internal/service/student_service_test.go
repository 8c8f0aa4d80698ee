package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classtrack/attendance-backend/internal/model"
)

func newStudentFixture() (*StudentService, *fakeStudentStore) {
	store := newFakeStudentStore()
	return NewStudentService(store, zerolog.Nop()), store
}

func TestStudentServiceAdd(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentFixture()

	student, err := svc.Add(ctx, "Alice Johnson", "CS101")
	require.NoError(t, err)
	require.NotNil(t, student)
	assert.Equal(t, int64(1), student.ID)
	assert.Equal(t, "Alice Johnson", student.Name)
	assert.Equal(t, "CS101", student.Course)
	assert.NotEmpty(t, student.EnrollmentDate)
}

func TestStudentServiceAddValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentFixture()

	_, err := svc.Add(ctx, "", "CS101")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.True(t, IsValidation(err))

	_, err = svc.Add(ctx, "   ", "CS101")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.Add(ctx, "Bob Smith", "C1")
	assert.ErrorIs(t, err, ErrInvalidCourse)

	_, err = svc.Add(ctx, "Bob Smith", "CSC1000")
	assert.ErrorIs(t, err, ErrInvalidCourse)
}

func TestStudentServiceAddDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentFixture()

	_, err := svc.Add(ctx, "Alice Johnson", "CS101")
	require.NoError(t, err)

	_, err = svc.Add(ctx, "Alice Johnson", "MA201")
	assert.ErrorIs(t, err, ErrDuplicateName)

	// Different case is a different name.
	_, err = svc.Add(ctx, "alice johnson", "MA201")
	assert.NoError(t, err)
}

func TestStudentServiceGetByIDMissing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentFixture()

	student, err := svc.GetByID(ctx, 42)
	assert.NoError(t, err)
	assert.Nil(t, student)
}

func TestStudentServiceUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentFixture()

	created, err := svc.Add(ctx, "Alice Johnson", "CS101")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, "Alice Brown", "MA201")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Alice Brown", updated.Name)
	assert.Equal(t, "MA201", updated.Course)
}

func TestStudentServiceUpdateKeepOwnName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentFixture()

	created, err := svc.Add(ctx, "Alice Johnson", "CS101")
	require.NoError(t, err)

	// Renaming a student to their current name is not a duplicate.
	updated, err := svc.Update(ctx, created.ID, "Alice Johnson", "MA201")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "MA201", updated.Course)
}

func TestStudentServiceUpdateDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentFixture()

	_, err := svc.Add(ctx, "Alice Johnson", "CS101")
	require.NoError(t, err)
	bob, err := svc.Add(ctx, "Bob Smith", "CS101")
	require.NoError(t, err)

	_, err = svc.Update(ctx, bob.ID, "Alice Johnson", "CS101")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestStudentServiceUpdateMissing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentFixture()

	student, err := svc.Update(ctx, 42, "Alice Johnson", "CS101")
	assert.NoError(t, err)
	assert.Nil(t, student)
}

func TestStudentServiceBulkCourseUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentFixture()

	a, err := svc.Add(ctx, "Alice Johnson", "CS101")
	require.NoError(t, err)
	b, err := svc.Add(ctx, "Bob Smith", "CS101")
	require.NoError(t, err)

	count, err := svc.UpdateCourseForMany(ctx, []int64{a.ID, b.ID, 999}, "MA201")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	moved, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "MA201", moved.Course)
}

func TestStudentServiceBulkCourseUpdateEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentFixture()

	count, err := svc.UpdateCourseForMany(ctx, nil, "MA201")
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = svc.UpdateCourseForMany(ctx, []int64{1}, "bad course")
	assert.ErrorIs(t, err, ErrInvalidCourse)
}

func TestStudentServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentFixture()

	created, err := svc.Add(ctx, "Alice Johnson", "CS101")
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStudentServiceDeleteMany(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentFixture()

	a, err := svc.Add(ctx, "Alice Johnson", "CS101")
	require.NoError(t, err)
	b, err := svc.Add(ctx, "Bob Smith", "CS101")
	require.NoError(t, err)

	count, err := svc.DeleteMany(ctx, []int64{a.ID, b.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = svc.DeleteMany(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStudentServiceSearch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentFixture()

	_, err := svc.Add(ctx, "Alice Johnson", "CS101")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Bob Smith", "MA201")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Carol Johnson", "CS102")
	require.NoError(t, err)

	found, err := svc.Search(ctx, "johnson")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Alice Johnson", found[0].Name)
	assert.Equal(t, "Carol Johnson", found[1].Name)

	found, err = svc.Search(ctx, "ma2")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Bob Smith", found[0].Name)
}

func TestStudentServiceAdvancedSearch(t *testing.T) {
	ctx := context.Background()
	svc, store := newStudentFixture()

	_, err := svc.Add(ctx, "Alice Johnson", "CS101")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Bob Smith", "MA201")
	require.NoError(t, err)

	// Empty criteria returns the full list in registry order.
	all, err := svc.AdvancedSearch(ctx, model.SearchCriteria{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alice Johnson", all[0].Name)

	found, err := svc.AdvancedSearch(ctx, model.SearchCriteria{Course: "cs"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Alice Johnson", found[0].Name)

	_, err = svc.AdvancedSearch(ctx, model.SearchCriteria{EnrollmentFrom: "bad"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	// Date bounds are inclusive on both ends.
	enrolled := store.students[1].EnrollmentDate
	found, err = svc.AdvancedSearch(ctx, model.SearchCriteria{
		EnrollmentFrom: enrolled,
		EnrollmentTo:   enrolled,
	})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestStudentServiceListByCourse(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentFixture()

	_, err := svc.Add(ctx, "Bob Smith", "CS101")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Alice Johnson", "CS101")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Carol White", "CS102")
	require.NoError(t, err)

	// Exact course match, ordered by name.
	found, err := svc.ListByCourse(ctx, "CS101")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Alice Johnson", found[0].Name)
	assert.Equal(t, "Bob Smith", found[1].Name)
}
