package response

import (
	"errors"
	"net/http"

	"github.com/workpoint-hq/attendance-console/internal/domain/attendance"
	"github.com/workpoint-hq/attendance-console/internal/domain/leave"
	"github.com/workpoint-hq/attendance-console/internal/pkg/hrapi"
	"github.com/workpoint-hq/attendance-console/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Attendance console errors
	switch {
	case errors.Is(err, attendance.ErrNoDayLoaded):
		Conflict(w, "No attendance day is loaded")
		return
	case errors.Is(err, attendance.ErrStaleDay):
		Conflict(w, "The selected day changed while the request was in flight")
		return
	case errors.Is(err, attendance.ErrDraftHasNoStatus):
		BadRequest(w, "Set a status before saving this row", nil)
		return
	case errors.Is(err, attendance.ErrNoPendingPrompt):
		Conflict(w, "No late check-in decision is pending")
		return
	case errors.Is(err, attendance.ErrInvalidDate):
		BadRequest(w, "Date must be in YYYY-MM-DD format", nil)
		return

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
		return
	}

	// HR API errors surface as a gateway problem, except not-found which maps
	// through
	var apiErr *hrapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusNotFound {
			NotFound(w, apiErr.Message)
			return
		}
		BadGateway(w, apiErr.Message)
		return
	}

	// Default
	InternalServerError(w, "An unexpected error occurred")
}
