package model

import "regexp"

// courseRe matches course codes like CS101: exactly two letters followed by
// one to three digits.
var courseRe = regexp.MustCompile(`^[A-Za-z]{2}\d{1,3}$`)

// ValidateCourse reports whether a course code is well formed.
func ValidateCourse(course string) bool {
	return courseRe.MatchString(course)
}

// Student represents a registered student.
type Student struct {
	ID             int64  `json:"student_id"`
	Name           string `json:"name"`
	Course         string `json:"course"`
	EnrollmentDate string `json:"enrollment_date"`
}

// SearchCriteria holds the optional filters for an advanced student search.
// All set fields are combined with AND; a zero-value criteria matches all
// students.
type SearchCriteria struct {
	StudentID      *int64 `json:"student_id"`
	Name           string `json:"name"`
	Course         string `json:"course"`
	EnrollmentFrom string `json:"enrollment_date_from"`
	EnrollmentTo   string `json:"enrollment_date_to"`
}

// IsEmpty reports whether no filter is set.
func (c SearchCriteria) IsEmpty() bool {
	return c.StudentID == nil && c.Name == "" && c.Course == "" &&
		c.EnrollmentFrom == "" && c.EnrollmentTo == ""
}

// CreateStudentRequest is the payload for registering a new student.
type CreateStudentRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=100"`
	Course string `json:"course" binding:"required"`
}

// UpdateStudentRequest is the payload for updating an existing student.
// The enrollment date is immutable and therefore not part of the payload.
type UpdateStudentRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=100"`
	Course string `json:"course" binding:"required"`
}

// BulkCourseUpdateRequest is the payload for moving several students to a
// new course at once.
type BulkCourseUpdateRequest struct {
	StudentIDs []int64 `json:"student_ids" binding:"required"`
	Course     string  `json:"course" binding:"required"`
}

// BulkDeleteRequest is the payload for deleting several students at once.
type BulkDeleteRequest struct {
	StudentIDs []int64 `json:"student_ids" binding:"required"`
}
