package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/classtrack/attendance-backend/internal/model"
	"github.com/classtrack/attendance-backend/internal/response"
	"github.com/classtrack/attendance-backend/internal/service"
	"github.com/classtrack/attendance-backend/internal/validator"
)

// AttendanceHandler handles the attendance ledger endpoints.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// RecordAttendance godoc
// POST /api/v1/attendance
// Records one attendance event; a repeat for the same (student, date) pair
// overwrites the stored status.
func (h *AttendanceHandler) RecordAttendance(c *gin.Context) {
	var req model.RecordAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.attendanceService.Record(c.Request.Context(), req.StudentID, req.Date, req.Status)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"record": record})
}

// RecordBatch godoc
// POST /api/v1/attendance/batch
// Applies entries sequentially. The batch is not atomic: on failure the
// response reports how many entries were committed before it.
func (h *AttendanceHandler) RecordBatch(c *gin.Context) {
	var req model.BatchAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	recorded, err := h.attendanceService.RecordBatch(c.Request.Context(), req.Records)
	if err != nil {
		status := http.StatusConflict
		if service.IsValidation(err) {
			status = http.StatusBadRequest
		}
		response.FailWithMessage(c, status, response.ErrConstraint,
			fmt.Sprintf("%v (%d of %d records committed)", err, recorded, len(req.Records)))
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"recorded": recorded})
}

// GetRecord godoc
// GET /api/v1/attendance/:id
func (h *AttendanceHandler) GetRecord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	record, err := h.attendanceService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if record == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"record": record})
}

// DeleteRecord godoc
// DELETE /api/v1/attendance/:id
func (h *AttendanceHandler) DeleteRecord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	deleted, err := h.attendanceService.Delete(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if !deleted {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ByStudent godoc
// GET /api/v1/attendance/student/:studentId
// A student's records, most recent date first.
func (h *AttendanceHandler) ByStudent(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("studentId"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	records, err := h.attendanceService.ByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"records": records})
}

// StudentSummary godoc
// GET /api/v1/attendance/student/:studentId/summary
func (h *AttendanceHandler) StudentSummary(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("studentId"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	summary, err := h.attendanceService.Summary(c.Request.Context(), studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// ByDate godoc
// GET /api/v1/attendance/date/:date
// All records for one date, ordered by student ID.
func (h *AttendanceHandler) ByDate(c *gin.Context) {
	records, err := h.attendanceService.ByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"records": records})
}

// ByDateRange godoc
// GET /api/v1/attendance/range?start=YYYY-MM-DD&end=YYYY-MM-DD
// Both bounds inclusive.
func (h *AttendanceHandler) ByDateRange(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")

	records, err := h.attendanceService.ByDateRange(c.Request.Context(), start, end)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"records": records})
}
