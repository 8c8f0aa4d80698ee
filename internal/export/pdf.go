package export

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/classtrack/attendance-backend/internal/model"
)

// ToPDF writes a paginated document rendering of the report and returns the
// absolute path written. Every report kind gets a title, a summary table,
// and a detail table.
func (e *Exporter) ToPDF(report interface{}, filename string) (string, error) {
	path, err := e.resolve(filename, ".pdf")
	if err != nil {
		return "", err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	switch r := report.(type) {
	case *model.DailyReport:
		writeTitle(pdf, "Daily Attendance Report - "+r.Date, r.GeneratedAt)
		writeSummary(pdf, [][2]string{
			{"Total Students", strconv.Itoa(r.TotalStudents)},
			{"Present", strconv.Itoa(r.PresentCount)},
			{"Absent", strconv.Itoa(r.AbsentCount)},
			{"Not Recorded", strconv.Itoa(r.NotRecorded)},
			{"Attendance %", formatFloat(r.AttendancePercentage) + "%"},
		})
		rows := make([][]string, 0, len(r.Entries))
		for _, entry := range r.Entries {
			rows = append(rows, []string{
				strconv.FormatInt(entry.StudentID, 10),
				entry.Name,
				entry.Course,
				entry.Status,
			})
		}
		writeTable(pdf, "Attendance Details",
			[]string{"ID", "Name", "Course", "Status"},
			[]float64{15, 80, 45, 40}, rows)

	case *model.CourseReport:
		writeTitle(pdf, "Course Attendance Report - "+r.Course, r.GeneratedAt)
		writeSummary(pdf, [][2]string{
			{"Number of Students", strconv.Itoa(r.StudentCount)},
			{"Overall Attendance %", formatFloat(r.OverallAttendancePercentage) + "%"},
		})
		rows := make([][]string, 0, len(r.StudentReports))
		for _, sr := range r.StudentReports {
			rows = append(rows, []string{
				strconv.FormatInt(sr.Student.ID, 10),
				sr.Student.Name,
				strconv.Itoa(sr.AttendanceSummary.PresentDays),
				strconv.Itoa(sr.AttendanceSummary.AbsentDays),
				formatFloat(sr.AttendanceSummary.AttendancePercentage) + "%",
			})
		}
		writeTable(pdf, "Student Details",
			[]string{"ID", "Name", "Present", "Absent", "Percentage"},
			[]float64{15, 85, 25, 25, 30}, rows)

	case *model.StudentReport:
		writeTitle(pdf, "Student Attendance Report - "+r.Student.Name, r.GeneratedAt)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6,
			fmt.Sprintf("ID: %d  |  Course: %s", r.Student.ID, r.Student.Course),
			"", 1, "L", false, 0, "")
		pdf.Ln(2)
		writeSummary(pdf, [][2]string{
			{"Total Days", strconv.Itoa(r.AttendanceSummary.TotalDays)},
			{"Present", strconv.Itoa(r.AttendanceSummary.PresentDays)},
			{"Absent", strconv.Itoa(r.AttendanceSummary.AbsentDays)},
			{"Attendance %", formatFloat(r.AttendanceSummary.AttendancePercentage) + "%"},
		})
		rows := make([][]string, 0, len(r.AttendanceRecords))
		for _, rec := range r.AttendanceRecords {
			rows = append(rows, []string{rec.Date, string(rec.Status)})
		}
		writeTable(pdf, "Attendance Records",
			[]string{"Date", "Status"},
			[]float64{45, 45}, rows)

	case *model.MonthlyReport:
		writeTitle(pdf, fmt.Sprintf("Monthly Attendance Report - %s %d", r.MonthName, r.Year), "")
		writeSummary(pdf, [][2]string{
			{"Total Students", strconv.Itoa(r.TotalStudents)},
			{"Total Records", strconv.Itoa(r.TotalRecords)},
			{"Overall Attendance %", formatFloat(r.OverallAttendancePercentage) + "%"},
		})
		dates := make([]string, 0, len(r.Days))
		for date := range r.Days {
			dates = append(dates, date)
		}
		sort.Strings(dates)
		rows := make([][]string, 0, len(dates))
		for _, date := range dates {
			day := r.Days[date]
			// Day percentages are stored unrounded; round at render time.
			rows = append(rows, []string{
				date,
				strconv.Itoa(day.Present),
				strconv.Itoa(day.Absent),
				strconv.Itoa(day.Total),
				fmt.Sprintf("%.2f%%", day.PresentPercentage),
			})
		}
		writeTable(pdf, "Daily Breakdown",
			[]string{"Date", "Present", "Absent", "Total", "Percentage"},
			[]float64{35, 30, 30, 30, 35}, rows)

	default:
		return "", ErrUnsupportedReport
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", err
	}

	e.log.Info().Str("path", path).Msg("pdf report written")
	return path, nil
}

func writeTitle(pdf *fpdf.Fpdf, title, generatedAt string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	if generatedAt != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 6, "Generated: "+generatedAt, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)
}

func writeSummary(pdf *fpdf.Fpdf, pairs [][2]string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, pair := range pairs {
		pdf.CellFormat(50, 7, pair[0], "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 7, pair[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func writeTable(pdf *fpdf.Fpdf, heading string, headers []string, widths []float64, rows [][]string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, heading, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(120, 120, 120)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
