package model

// Report shapes are plain serialization-ready structures. Exporters and the
// HTTP layer consume them unmodified; no report carries behavior.

// AttendanceSummary aggregates one student's attendance history.
type AttendanceSummary struct {
	StudentID            int64   `json:"student_id"`
	TotalDays            int     `json:"total_days"`
	PresentDays          int     `json:"present_days"`
	AbsentDays           int     `json:"absent_days"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// StudentReport is the full attendance report for a single student.
type StudentReport struct {
	Student           Student            `json:"student"`
	AttendanceSummary AttendanceSummary  `json:"attendance_summary"`
	AttendanceRecords []AttendanceRecord `json:"attendance_records"`
	GeneratedAt       string             `json:"generated_at"`
}

// StatusNotRecorded is the sentinel shown in daily reports for students with
// no attendance record on the report date.
const StatusNotRecorded = "Not Recorded"

// DailyReportEntry is one student's line in a daily report.
type DailyReportEntry struct {
	StudentID int64  `json:"student_id"`
	Name      string `json:"name"`
	Course    string `json:"course"`
	Status    string `json:"status"`
}

// DailyReport covers every registered student for a single date.
type DailyReport struct {
	Date                 string             `json:"date"`
	PresentCount         int                `json:"present_count"`
	AbsentCount          int                `json:"absent_count"`
	NotRecorded          int                `json:"not_recorded"`
	TotalStudents        int                `json:"total_students"`
	AttendancePercentage float64            `json:"attendance_percentage"`
	Entries              []DailyReportEntry `json:"entries"`
	GeneratedAt          string             `json:"generated_at"`
}

// CourseStudentReport pairs a student with their attendance summary inside a
// course report.
type CourseStudentReport struct {
	Student           Student           `json:"student"`
	AttendanceSummary AttendanceSummary `json:"attendance_summary"`
}

// CourseReport aggregates attendance for every student of one course.
type CourseReport struct {
	Course                      string                `json:"course"`
	StudentCount                int                   `json:"student_count"`
	OverallAttendancePercentage float64               `json:"overall_attendance_percentage"`
	StudentReports              []CourseStudentReport `json:"student_reports"`
	GeneratedAt                 string                `json:"generated_at"`
}

// MonthlyDayStats holds the per-date counters of a monthly report. The
// percentage is kept unrounded; rounding is a presentation concern.
type MonthlyDayStats struct {
	Present           int     `json:"present"`
	Absent            int     `json:"absent"`
	Total             int     `json:"total"`
	PresentPercentage float64 `json:"present_percentage"`
}

// MonthlyReport covers one calendar month. Days maps ISO dates to their
// counters; dates without records are absent from the map.
type MonthlyReport struct {
	Year                        int                        `json:"year"`
	Month                       int                        `json:"month"`
	MonthName                   string                     `json:"month_name"`
	Days                        map[string]MonthlyDayStats `json:"days"`
	TotalStudents               int                        `json:"total_students"`
	TotalRecords                int                        `json:"total_records"`
	TotalPresent                int                        `json:"total_present"`
	TotalAbsent                 int                        `json:"total_absent"`
	OverallAttendancePercentage float64                    `json:"overall_attendance_percentage"`
}
