package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classtrack/attendance-backend/internal/response"
	"github.com/classtrack/attendance-backend/internal/service"
)

// failFromError maps a service-layer error onto the HTTP error vocabulary.
// Validation and duplicate-name failures carry their specific message so the
// caller can re-prompt; everything unexpected collapses to a generic 500.
func failFromError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrValidation, err.Error())
	case errors.Is(err, service.ErrDuplicateName):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateName)
	case errors.Is(err, service.ErrNotFound):
		response.FailWithMessage(c, http.StatusNotFound, response.ErrNotFound, err.Error())
	case errors.Is(err, service.ErrConstraint):
		response.FailWithMessage(c, http.StatusConflict, response.ErrConstraint, err.Error())
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
