package model

import "time"

// Status is the attendance status of a student on a given day.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// Valid reports whether the status is one of the two canonical values.
// Nothing above the repository stores or compares any other spelling.
func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// DateFormat is the wire format for all attendance and enrollment dates.
const DateFormat = "2006-01-02"

// ValidateDate reports whether a date string is a real calendar date in
// YYYY-MM-DD form.
func ValidateDate(date string) bool {
	_, err := time.Parse(DateFormat, date)
	return err == nil
}

// AttendanceRecord represents one student's attendance on one date.
// At most one record exists per (student, date) pair.
type AttendanceRecord struct {
	ID        int64  `json:"attendance_id"`
	StudentID int64  `json:"student_id"`
	Date      string `json:"date"`
	Status    Status `json:"status"`
}

// RecordAttendanceRequest is the payload for recording a single attendance
// event. Recording the same (student, date) pair again overwrites the status.
type RecordAttendanceRequest struct {
	StudentID int64  `json:"student_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Status    Status `json:"status" binding:"required,oneof=Present Absent"`
}

// BatchAttendanceRequest is the payload for recording attendance for several
// students in one call. Entries are applied sequentially and are not atomic
// as a whole.
type BatchAttendanceRequest struct {
	Records []RecordAttendanceRequest `json:"records" binding:"required,min=1,dive"`
}
