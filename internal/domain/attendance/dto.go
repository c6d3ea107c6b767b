package attendance

import (
	"github.com/workpoint-hq/attendance-console/internal/pkg/validator"
)

// ========================================
// ATTENDANCE CONSOLE DTOs
// ========================================

type LoadDayRequest struct {
	Date string `json:"date"`
}

func (r *LoadDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RowPatchRequest carries one edit to an employee's row. Only the fields
// present in the request body are applied; time fields are accepted as-is
// since malformed time text degrades to "no time" instead of failing.
type RowPatchRequest struct {
	Status   *string `json:"status"`
	Note     *string `json:"note"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
}

func (r *RowPatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.hasField() {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one of status, note, check_in, check_out is required",
		})
	}

	if r.Status != nil && !IsKnownStatus(Status(*r.Status)) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "unknown status",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *RowPatchRequest) hasField() bool {
	return r.Status != nil || r.Note != nil || r.CheckIn != nil || r.CheckOut != nil
}

// Draft converts the request into a domain draft patch.
func (r *RowPatchRequest) Draft() Draft {
	var d Draft
	if r.Status != nil {
		s := Status(*r.Status)
		d.Status = &s
	}
	d.Note = r.Note
	d.CheckIn = r.CheckIn
	d.CheckOut = r.CheckOut
	return d
}

type LateDecisionRequest struct {
	Decision string `json:"decision"`
}

func (r *LateDecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Decision != string(DecisionPresent) && r.Decision != string(DecisionLate) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be present or late",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RowResponse struct {
	EmployeeID      string `json:"employee_id"`
	Status          string `json:"status"`
	Note            string `json:"note"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	WorkedMinutes   *int   `json:"worked_minutes"`
	DurationMinutes *int   `json:"duration_minutes"`
	Duration        string `json:"duration"`
	InvalidRange    bool   `json:"invalid_range"`
	HasDraft        bool   `json:"has_draft"`
}

type LatePromptResponse struct {
	EmployeeID    string `json:"employee_id"`
	CheckIn       string `json:"check_in"`
	LateByMinutes int    `json:"late_by_minutes"`
}

type DayViewResponse struct {
	Date          string              `json:"date"`
	Records       []RowResponse       `json:"records"`
	PendingPrompt *LatePromptResponse `json:"pending_prompt,omitempty"`
	UnsavedRows   int                 `json:"unsaved_rows"`
	TotalMinutes  int                 `json:"total_minutes"`
}
