package timecode

import (
	"fmt"
	"regexp"
	"time"
)

// TimeCode is a wall-clock time of day with minute resolution. It carries no
// date or timezone; the day it belongs to is supplied by the caller.
type TimeCode struct {
	hour   int
	minute int
}

var hhmmRegex = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Parse reads an "HH:MM" string. Anything that is not exactly two digits, a
// colon and two digits is rejected, as are out-of-range values like "25:99".
// The second return is false for empty or malformed input; callers treat that
// as "no time entered", never as an error.
func Parse(text string) (TimeCode, bool) {
	if !hhmmRegex.MatchString(text) {
		return TimeCode{}, false
	}
	hour := int(text[0]-'0')*10 + int(text[1]-'0')
	minute := int(text[3]-'0')*10 + int(text[4]-'0')
	if hour > 23 || minute > 59 {
		return TimeCode{}, false
	}
	return TimeCode{hour: hour, minute: minute}, true
}

// Hour returns the hour component (0-23).
func (t TimeCode) Hour() int { return t.hour }

// Minute returns the minute component (0-59).
func (t TimeCode) Minute() int { return t.minute }

// Minutes returns the total minutes since midnight, in [0, 1439].
func (t TimeCode) Minutes() int { return t.hour*60 + t.minute }

func (t TimeCode) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// FormatMinutes renders a minute count as "HH:MM". Negative totals get a
// leading minus with the absolute magnitude; they should not occur under the
// duration invariants but are supported for display.
func FormatMinutes(total int) string {
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	return fmt.Sprintf("%s%02d:%02d", sign, total/60, total%60)
}

// MidnightUTC converts a "2006-01-02" calendar day into its UTC-midnight
// instant, the wire representation the HR API expects for dates.
func MidnightUTC(ymd string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", ymd)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", ymd, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC), nil
}

// CombineUTC builds the UTC instant for a time of day on the given calendar
// day. The combination is always done in UTC; using the viewer's local zone
// here shifts records across day boundaries.
func CombineUTC(ymd string, t TimeCode) (time.Time, error) {
	day, err := MidnightUTC(ymd)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(t.Minutes()) * time.Minute), nil
}

// FromInstantUTC extracts the time of day from an instant using UTC getters.
func FromInstantUTC(instant time.Time) TimeCode {
	utc := instant.UTC()
	return TimeCode{hour: utc.Hour(), minute: utc.Minute()}
}
