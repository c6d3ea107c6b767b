package attendance

import (
	"github.com/workpoint-hq/attendance-console/internal/domain/timecode"
)

// DurationPolicy turns a pair of check-in/check-out times into a worked
// duration, honoring the off-status set.
type DurationPolicy struct {
	Off OffStatusSet
}

func NewDurationPolicy(off OffStatusSet) DurationPolicy {
	if off == nil {
		off = DefaultOffStatuses()
	}
	return DurationPolicy{Off: off}
}

// IsOffStatus reports whether s suppresses time accounting.
func (p DurationPolicy) IsOffStatus(s Status) bool {
	return p.Off.Contains(s)
}

// ClientDuration computes the minute difference between check-in and
// check-out text. The duration is nil when either side does not parse.
// invalid is true only for the inverted range (check-out before check-in),
// which the rendering layer shows as an explicit error state rather than a
// negative duration.
func (p DurationPolicy) ClientDuration(checkIn, checkOut string) (duration *int, invalid bool) {
	in, inOK := timecode.Parse(checkIn)
	out, outOK := timecode.Parse(checkOut)
	if !inOK || !outOK {
		return nil, false
	}
	if out.Minutes() < in.Minutes() {
		return nil, true
	}
	d := out.Minutes() - in.Minutes()
	return &d, false
}

// EffectiveDuration resolves the duration to display for a merged record.
// A server-supplied WorkedMinutes is authoritative for the value, but the
// invalid flag is computed from the check-in/check-out text alone: an
// inverted pair stays flagged for display even when the server has a number.
func (p DurationPolicy) EffectiveDuration(rec DayRecord) (duration *int, invalid bool) {
	duration, invalid = p.ClientDuration(rec.CheckIn, rec.CheckOut)
	if rec.WorkedMinutes != nil {
		duration = rec.WorkedMinutes
	}
	return duration, invalid
}

// LatenessPolicy classifies a check-in against the official start time and a
// grace window.
type LatenessPolicy struct {
	OfficialStart timecode.TimeCode
	GraceMinutes  int
}

// LateClassification is the outcome of classifying one check-in.
// LateByMinutes may be negative, meaning early.
type LateClassification struct {
	LateByMinutes int
	IsLate        bool
}

// Classify compares a parsed check-in to the official start. A check-in is
// late only strictly beyond the grace window: with a 5-minute grace the 6th
// minute past start is the first late one. Callers must not classify an
// unparsed check-in.
func (p LatenessPolicy) Classify(checkIn timecode.TimeCode) LateClassification {
	lateBy := checkIn.Minutes() - p.OfficialStart.Minutes()
	return LateClassification{
		LateByMinutes: lateBy,
		IsLate:        lateBy >= p.GraceMinutes+1,
	}
}
