package leave

import (
	"github.com/workpoint-hq/attendance-console/internal/pkg/validator"
)

// ListFilter narrows a leave-request listing. Empty fields disable the
// dimension.
type ListFilter struct {
	Status   string
	Category string
	UserID   string
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != "" && !validator.IsInSlice(f.Status, Statuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "unknown leave status",
		})
	}

	if f.Category != "" && !validator.IsInSlice(f.Category, Categories) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "unknown leave category",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecisionRequest struct {
	Status string `json:"status"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, accepted, rejected, on_hold",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Type         string `json:"type"`
	Category     string `json:"category"`
	Status       string `json:"status"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Reason       string `json:"reason"`
}
