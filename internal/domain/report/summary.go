package report

import (
	"strings"

	"github.com/workpoint-hq/attendance-console/internal/domain/attendance"
)

// MonthDay is one calendar day in a month report as the HR API returns it.
// Status arrives in whatever casing/spacing the backend stored.
type MonthDay struct {
	Date          string
	Status        string
	Note          string
	WorkedMinutes *int
}

// statusAliases maps the spellings seen in historical data onto canonical
// status slugs.
var statusAliases = map[string]attendance.Status{
	"short leave":  attendance.StatusShortLeave,
	"short_leave":  attendance.StatusShortLeave,
	"official off": attendance.StatusOfficialOff,
	"official_off": attendance.StatusOfficialOff,
	"present":      attendance.StatusPresent,
	"absent":       attendance.StatusAbsent,
	"leave":        attendance.StatusLeave,
	"late":         attendance.StatusLate,
}

// NormalizeStatus canonicalizes a raw status string: known aliases map
// directly, anything else is slugged (trimmed, lowercased, spaces to
// underscores) as a last resort.
func NormalizeStatus(raw string) attendance.Status {
	if raw == "" {
		return ""
	}
	key := strings.ToLower(strings.TrimSpace(raw))
	if s, ok := statusAliases[key]; ok {
		return s
	}
	return attendance.Status(strings.Join(strings.Fields(key), "_"))
}

// MonthSummary aggregates one employee-month: a count per known status, a
// bucket for anything unrecognized, and the total worked minutes across days
// that carry one.
type MonthSummary struct {
	Present       int `json:"present"`
	Absent        int `json:"absent"`
	Leave         int `json:"leave"`
	Late          int `json:"late"`
	OfficialOff   int `json:"official_off"`
	ShortLeave    int `json:"short_leave"`
	Other         int `json:"other"`
	WorkedMinutes int `json:"worked_minutes"`
}

// Summarize normalizes each day's status and tallies the month.
func Summarize(days []MonthDay) MonthSummary {
	var s MonthSummary
	for _, d := range days {
		switch NormalizeStatus(d.Status) {
		case attendance.StatusPresent:
			s.Present++
		case attendance.StatusAbsent:
			s.Absent++
		case attendance.StatusLeave:
			s.Leave++
		case attendance.StatusLate:
			s.Late++
		case attendance.StatusOfficialOff:
			s.OfficialOff++
		case attendance.StatusShortLeave:
			s.ShortLeave++
		case "":
			// unmarked day, not counted
		default:
			s.Other++
		}
		if d.WorkedMinutes != nil {
			s.WorkedMinutes += *d.WorkedMinutes
		}
	}
	return s
}
