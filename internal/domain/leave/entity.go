package leave

import "time"

// Leave request option sets, as the review UI presents them.
var (
	Types      = []string{"full", "short", "half"}
	Categories = []string{"casual", "medical", "annual", "sick", "unpaid", "other"}
	Statuses   = []string{"pending", "accepted", "rejected", "on_hold"}
)

// Request is a leave request as the HR API returns it. The console lists and
// decides requests; quota accounting stays upstream.
type Request struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Type         string
	Category     string
	Status       string
	StartDate    time.Time
	EndDate      time.Time
	Reason       string
}
