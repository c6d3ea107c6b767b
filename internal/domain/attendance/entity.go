package attendance

// Status is a day's attendance classification.
type Status string

const (
	StatusPresent     Status = "present"
	StatusAbsent      Status = "absent"
	StatusLeave       Status = "leave"
	StatusLate        Status = "late"
	StatusOfficialOff Status = "official_off"
	StatusShortLeave  Status = "short_leave"
)

// KnownStatuses lists every status the console understands, in display order.
func KnownStatuses() []Status {
	return []Status{
		StatusPresent,
		StatusAbsent,
		StatusLeave,
		StatusLate,
		StatusOfficialOff,
		StatusShortLeave,
	}
}

// IsKnownStatus reports whether s is one of the recognized statuses.
func IsKnownStatus(s Status) bool {
	for _, known := range KnownStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// OffStatusSet holds the statuses that imply no physical attendance, so no
// time accounting. Deployments can redefine the set; by default short_leave
// and late still carry check-in/check-out.
type OffStatusSet map[Status]struct{}

func NewOffStatusSet(statuses ...Status) OffStatusSet {
	set := make(OffStatusSet, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}

// DefaultOffStatuses is the reference off-status policy.
func DefaultOffStatuses() OffStatusSet {
	return NewOffStatusSet(StatusAbsent, StatusLeave, StatusOfficialOff)
}

func (o OffStatusSet) Contains(s Status) bool {
	_, ok := o[s]
	return ok
}

// DayRecord is the persisted half of one employee's attendance for one day.
// Check-in/check-out are kept as "HH:MM" text, the form they are edited in;
// malformed or empty text simply means "no time".
type DayRecord struct {
	Status        Status
	Note          string
	CheckIn       string
	CheckOut      string
	WorkedMinutes *int
}

// Draft is a partial, unsaved edit for one employee's day. Nil fields do not
// override the persisted value. Drafts live only in memory and are keyed by
// employee, so they are implicitly scoped to the currently selected day.
type Draft struct {
	Status   *Status
	Note     *string
	CheckIn  *string
	CheckOut *string
}

// HasChanges reports whether any field of the draft is set. It gates whether
// a per-row save is meaningful.
func (d Draft) HasChanges() bool {
	return d.Status != nil || d.Note != nil || d.CheckIn != nil || d.CheckOut != nil
}

// Apply overlays patch onto d, field by field. Fields absent from the patch
// keep their current value.
func (d Draft) Apply(patch Draft) Draft {
	if patch.Status != nil {
		d.Status = patch.Status
	}
	if patch.Note != nil {
		d.Note = patch.Note
	}
	if patch.CheckIn != nil {
		d.CheckIn = patch.CheckIn
	}
	if patch.CheckOut != nil {
		d.CheckOut = patch.CheckOut
	}
	return d
}

// Merge shallow-merges a draft over a persisted record. This is the single
// source of truth for draft-over-persisted precedence.
func Merge(persisted DayRecord, draft Draft) DayRecord {
	merged := persisted
	if draft.Status != nil {
		merged.Status = *draft.Status
	}
	if draft.Note != nil {
		merged.Note = *draft.Note
	}
	if draft.CheckIn != nil {
		merged.CheckIn = *draft.CheckIn
	}
	if draft.CheckOut != nil {
		merged.CheckOut = *draft.CheckOut
	}
	return merged
}

// LatePrompt is a pending human decision for a check-in classified late.
// At most one prompt is active at a time; a newly classified late check-in
// replaces it.
type LatePrompt struct {
	EmployeeID    string
	CheckIn       string
	LateByMinutes int
}

// LateDecision is the outcome chosen for a late-classified check-in. There is
// no third terminal state; dismissing the prompt resolves to present.
type LateDecision string

const (
	DecisionPresent LateDecision = "present"
	DecisionLate    LateDecision = "late"
)

func (d LateDecision) Status() Status {
	if d == DecisionLate {
		return StatusLate
	}
	return StatusPresent
}
