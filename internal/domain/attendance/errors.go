package attendance

import "errors"

// Attendance console domain errors
var (
	// Day session errors
	ErrNoDayLoaded      = errors.New("no attendance day is loaded")
	ErrStaleDay         = errors.New("response belongs to a day that is no longer selected")
	ErrDraftHasNoStatus = errors.New("draft has no status to save")

	// Late prompt errors
	ErrNoPendingPrompt = errors.New("no late check-in decision is pending")

	// General errors
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")
)
