package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/classtrack/attendance-backend/internal/model"
)

// ToCSV writes the tabular section of a report as CSV and returns the
// absolute path written. Monthly reports have no flat row shape and are not
// supported in this format.
func (e *Exporter) ToCSV(report interface{}, filename string) (string, error) {
	path, err := e.resolve(filename, ".csv")
	if err != nil {
		return "", err
	}

	var header []string
	var rows [][]string

	switch r := report.(type) {
	case *model.DailyReport:
		header = []string{"student_id", "name", "course", "status"}
		for _, entry := range r.Entries {
			rows = append(rows, []string{
				strconv.FormatInt(entry.StudentID, 10),
				entry.Name,
				entry.Course,
				entry.Status,
			})
		}

	case *model.CourseReport:
		header = []string{"student_id", "name", "course", "total_days", "present_days", "absent_days", "attendance_percentage"}
		for _, sr := range r.StudentReports {
			rows = append(rows, []string{
				strconv.FormatInt(sr.Student.ID, 10),
				sr.Student.Name,
				sr.Student.Course,
				strconv.Itoa(sr.AttendanceSummary.TotalDays),
				strconv.Itoa(sr.AttendanceSummary.PresentDays),
				strconv.Itoa(sr.AttendanceSummary.AbsentDays),
				formatFloat(sr.AttendanceSummary.AttendancePercentage),
			})
		}

	case *model.StudentReport:
		header = []string{"date", "status"}
		for _, rec := range r.AttendanceRecords {
			rows = append(rows, []string{rec.Date, string(rec.Status)})
		}

	default:
		return "", ErrUnsupportedReport
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	e.log.Info().Str("path", path).Msg("csv report written")
	return path, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
