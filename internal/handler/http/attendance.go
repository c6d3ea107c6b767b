package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workpoint-hq/attendance-console/internal/domain/attendance"
	"github.com/workpoint-hq/attendance-console/internal/handler/http/response"
)

type AttendanceHandler interface {
	LoadDay(w http.ResponseWriter, r *http.Request)
	DayView(w http.ResponseWriter, r *http.Request)
	PatchRow(w http.ResponseWriter, r *http.Request)
	ResetRow(w http.ResponseWriter, r *http.Request)
	ResolvePrompt(w http.ResponseWriter, r *http.Request)
	DismissPrompt(w http.ResponseWriter, r *http.Request)
	MarkOne(w http.ResponseWriter, r *http.Request)
	SaveAll(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	consoleService attendance.ConsoleService
}

func NewAttendanceHandler(consoleService attendance.ConsoleService) AttendanceHandler {
	return &attendanceHandlerImpl{
		consoleService: consoleService,
	}
}

// LoadDay implements AttendanceHandler.
func (h *attendanceHandlerImpl) LoadDay(w http.ResponseWriter, r *http.Request) {
	var req attendance.LoadDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode load-day request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.consoleService.LoadDay(r.Context(), req.Date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// DayView implements AttendanceHandler.
func (h *attendanceHandlerImpl) DayView(w http.ResponseWriter, r *http.Request) {
	view, err := h.consoleService.DayView()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// PatchRow implements AttendanceHandler.
func (h *attendanceHandlerImpl) PatchRow(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req attendance.RowPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode row patch", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	view, err := h.consoleService.PatchRow(employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// ResetRow implements AttendanceHandler.
func (h *attendanceHandlerImpl) ResetRow(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	view, err := h.consoleService.ResetRow(employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// ResolvePrompt implements AttendanceHandler.
func (h *attendanceHandlerImpl) ResolvePrompt(w http.ResponseWriter, r *http.Request) {
	var req attendance.LateDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode late decision", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	view, err := h.consoleService.ResolveLatePrompt(req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// DismissPrompt implements AttendanceHandler.
func (h *attendanceHandlerImpl) DismissPrompt(w http.ResponseWriter, r *http.Request) {
	view, err := h.consoleService.DismissLatePrompt()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// MarkOne implements AttendanceHandler.
func (h *attendanceHandlerImpl) MarkOne(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	view, err := h.consoleService.MarkOne(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Marked attendance", view)
}

// SaveAll implements AttendanceHandler.
func (h *attendanceHandlerImpl) SaveAll(w http.ResponseWriter, r *http.Request) {
	view, err := h.consoleService.SaveAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance saved", view)
}
