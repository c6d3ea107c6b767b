package attendance

import (
	"context"
)

// ConsoleService defines the day-marking operations the rendering layer
// drives. All state it holds (drafts, the pending late prompt) is in-memory
// and scoped to the currently loaded day.
type ConsoleService interface {
	// LoadDay fetches a day's records from the HR API, fully replacing the
	// previous day's state and discarding all drafts. A response arriving for
	// a day that is no longer selected is discarded.
	LoadDay(ctx context.Context, date string) (DayViewResponse, error)

	// DayView returns the current merged view without touching the upstream.
	DayView() (DayViewResponse, error)

	// PatchRow applies a partial edit to one employee's draft. A check-in edit
	// runs lateness classification and may open (or replace) the late prompt.
	PatchRow(employeeID string, req RowPatchRequest) (DayViewResponse, error)

	// ResetRow discards one employee's unsaved changes.
	ResetRow(employeeID string) (DayViewResponse, error)

	// ResolveLatePrompt records the explicit present-or-late choice for the
	// pending prompt.
	ResolveLatePrompt(req LateDecisionRequest) (DayViewResponse, error)

	// DismissLatePrompt abandons the pending prompt; the employee's status
	// defaults to present.
	DismissLatePrompt() (DayViewResponse, error)

	// MarkOne persists one employee's merged row. The draft is cleared only on
	// a successful save; a failed save leaves it untouched.
	MarkOne(ctx context.Context, employeeID string) (DayViewResponse, error)

	// SaveAll submits every draft that has a status as one batch, refetches
	// the day for the authoritative values, and clears all drafts.
	SaveAll(ctx context.Context) (DayViewResponse, error)
}
