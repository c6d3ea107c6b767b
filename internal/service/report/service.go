package report

import (
	"context"
	"fmt"

	"github.com/workpoint-hq/attendance-console/internal/domain/report"
	"github.com/workpoint-hq/attendance-console/internal/pkg/validator"
)

// Gateway is the slice of the HR API the report service needs.
type Gateway interface {
	MonthDays(ctx context.Context, userID string, year, month int) ([]report.MonthDay, error)
}

// MonthReport is one employee-month: the normalized days plus the tallies.
type MonthReport struct {
	UserID  string              `json:"user_id,omitempty"`
	Year    int                 `json:"year"`
	Month   int                 `json:"month"`
	Days    []NormalizedDay     `json:"days"`
	Summary report.MonthSummary `json:"summary"`
}

type NormalizedDay struct {
	Date          string `json:"date"`
	Status        string `json:"status"`
	Note          string `json:"note"`
	WorkedMinutes *int   `json:"worked_minutes"`
}

type ReportServiceImpl struct {
	gateway Gateway
}

func NewReportService(gateway Gateway) *ReportServiceImpl {
	return &ReportServiceImpl{gateway: gateway}
}

// UserMonth fetches one employee-month from the HR API, normalizes the status
// spellings and summarizes it. An empty userID means the authenticated user,
// resolved upstream.
func (s *ReportServiceImpl) UserMonth(ctx context.Context, userID string, year, month int) (MonthReport, error) {
	var errs validator.ValidationErrors
	if year < 2000 || year > 2200 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if len(errs) > 0 {
		return MonthReport{}, errs
	}

	days, err := s.gateway.MonthDays(ctx, userID, year, month)
	if err != nil {
		return MonthReport{}, fmt.Errorf("failed to fetch month days: %w", err)
	}

	result := MonthReport{
		UserID:  userID,
		Year:    year,
		Month:   month,
		Days:    make([]NormalizedDay, 0, len(days)),
		Summary: report.Summarize(days),
	}
	for _, d := range days {
		result.Days = append(result.Days, NormalizedDay{
			Date:          d.Date,
			Status:        string(report.NormalizeStatus(d.Status)),
			Note:          d.Note,
			WorkedMinutes: d.WorkedMinutes,
		})
	}
	return result, nil
}
