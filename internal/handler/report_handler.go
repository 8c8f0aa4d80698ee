package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/classtrack/attendance-backend/internal/export"
	"github.com/classtrack/attendance-backend/internal/response"
	"github.com/classtrack/attendance-backend/internal/service"
	"github.com/classtrack/attendance-backend/internal/validator"
)

// ReportHandler handles report generation and file export.
type ReportHandler struct {
	reportService *service.ReportService
	exporter      *export.Exporter
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService, exporter *export.Exporter) *ReportHandler {
	return &ReportHandler{reportService: reportService, exporter: exporter}
}

// StudentReport godoc
// GET /api/v1/reports/student/:id
func (h *ReportHandler) StudentReport(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	report, err := h.reportService.StudentReport(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"report": report})
}

// DailyReport godoc
// GET /api/v1/reports/daily/:date
func (h *ReportHandler) DailyReport(c *gin.Context) {
	report, err := h.reportService.DailyReport(c.Request.Context(), c.Param("date"))
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"report": report})
}

// CourseReport godoc
// GET /api/v1/reports/course/:course
// The course must match exactly; a course with no students is a 404.
func (h *ReportHandler) CourseReport(c *gin.Context) {
	report, err := h.reportService.CourseReport(c.Request.Context(), c.Param("course"))
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"report": report})
}

// MonthlyReport godoc
// GET /api/v1/reports/monthly/:year/:month
func (h *ReportHandler) MonthlyReport(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	report, err := h.reportService.MonthlyReport(c.Request.Context(), year, month)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"report": report})
}

// ExportReportRequest selects a report and a target file.
type ExportReportRequest struct {
	Type     string `json:"type" binding:"required,oneof=student daily course monthly"`
	Format   string `json:"format" binding:"required,oneof=csv json pdf"`
	Filename string `json:"filename" binding:"required"`

	// Subject selectors; the one matching Type must be set.
	StudentID *int64 `json:"student_id"`
	Date      string `json:"date"`
	Course    string `json:"course"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
}

// ExportReport godoc
// POST /api/v1/reports/export
// Builds the selected report and writes it as csv, json, or pdf. Responds
// with the absolute path of the file written.
func (h *ReportHandler) ExportReport(c *gin.Context) {
	var req ExportReportRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ctx := c.Request.Context()

	var report interface{}
	var err error
	switch req.Type {
	case "student":
		if req.StudentID == nil {
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrValidation, "student_id is required for a student report")
			return
		}
		report, err = h.reportService.StudentReport(ctx, *req.StudentID)
	case "daily":
		report, err = h.reportService.DailyReport(ctx, req.Date)
	case "course":
		report, err = h.reportService.CourseReport(ctx, req.Course)
	case "monthly":
		report, err = h.reportService.MonthlyReport(ctx, req.Year, req.Month)
	}
	if err != nil {
		failFromError(c, err)
		return
	}

	path, err := h.exporter.Export(report, export.Format(req.Format), req.Filename)
	if err != nil {
		if errors.Is(err, export.ErrUnsupportedReport) || errors.Is(err, export.ErrUnknownFormat) {
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedExport)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"path": path})
}
