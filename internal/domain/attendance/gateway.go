package attendance

import (
	"context"
	"time"
)

// EmployeeDayRecord is one employee's persisted attendance for a day as the
// HR API returns it: clock times as full UTC instants or absent.
type EmployeeDayRecord struct {
	EmployeeID    string
	Status        Status
	Note          string
	CheckIn       *time.Time
	CheckOut      *time.Time
	WorkedMinutes *int
}

// MarkRecord is the wire shape submitted when persisting one employee's day.
// Date is the UTC-midnight instant of the calendar day; the clock times are
// combined UTC instants, nil for off statuses.
type MarkRecord struct {
	EmployeeID string
	Date       time.Time
	Status     Status
	Note       string
	CheckIn    *time.Time
	CheckOut   *time.Time
}

// Gateway is the persistence collaborator: the upstream HR API that owns
// attendance records. The console never stores records itself.
type Gateway interface {
	// DayRecords fetches all per-employee records for a calendar day (YYYY-MM-DD).
	DayRecords(ctx context.Context, date string) ([]EmployeeDayRecord, error)

	// Mark persists one employee's day and returns the authoritative record,
	// including server-computed worked minutes.
	Mark(ctx context.Context, req MarkRecord) (EmployeeDayRecord, error)

	// BulkMark persists a batch of records for one day. No per-item result is
	// relied upon; callers refetch the day afterwards.
	BulkMark(ctx context.Context, date time.Time, records []MarkRecord) error
}
