package hrapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/workpoint-hq/attendance-console/internal/domain/attendance"
	"github.com/workpoint-hq/attendance-console/internal/domain/report"
)

// Wire shapes follow the HR API's camelCase contract. Clock times travel as
// full ISO instants in UTC, or null; the calendar day as a UTC-midnight
// instant.
type dayRecordPayload struct {
	UserID        string     `json:"userId"`
	Status        string     `json:"status"`
	Note          string     `json:"note"`
	CheckIn       *time.Time `json:"checkIn"`
	CheckOut      *time.Time `json:"checkOut"`
	WorkedMinutes *int       `json:"workedMinutes"`
}

func (p dayRecordPayload) toDomain() attendance.EmployeeDayRecord {
	return attendance.EmployeeDayRecord{
		EmployeeID:    p.UserID,
		Status:        attendance.Status(p.Status),
		Note:          p.Note,
		CheckIn:       p.CheckIn,
		CheckOut:      p.CheckOut,
		WorkedMinutes: p.WorkedMinutes,
	}
}

type markPayload struct {
	UserID   string     `json:"userId"`
	Date     time.Time  `json:"date"`
	Status   string     `json:"status"`
	Note     string     `json:"note"`
	CheckIn  *time.Time `json:"checkIn"`
	CheckOut *time.Time `json:"checkOut"`
}

func toMarkPayload(req attendance.MarkRecord) markPayload {
	return markPayload{
		UserID:   req.EmployeeID,
		Date:     req.Date,
		Status:   string(req.Status),
		Note:     req.Note,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
	}
}

// DayRecords implements attendance.Gateway.
func (c *Client) DayRecords(ctx context.Context, date string) ([]attendance.EmployeeDayRecord, error) {
	var body struct {
		Records []dayRecordPayload `json:"records"`
	}
	q := url.Values{}
	q.Set("date", date)
	if err := c.do(ctx, http.MethodGet, "/api/attendance/by-date", q, nil, &body); err != nil {
		return nil, err
	}

	records := make([]attendance.EmployeeDayRecord, 0, len(body.Records))
	for _, r := range body.Records {
		records = append(records, r.toDomain())
	}
	return records, nil
}

// Mark implements attendance.Gateway.
func (c *Client) Mark(ctx context.Context, req attendance.MarkRecord) (attendance.EmployeeDayRecord, error) {
	var body dayRecordPayload
	if err := c.do(ctx, http.MethodPost, "/api/attendance/mark", nil, toMarkPayload(req), &body); err != nil {
		return attendance.EmployeeDayRecord{}, err
	}
	result := body.toDomain()
	if result.EmployeeID == "" {
		result.EmployeeID = req.EmployeeID
	}
	return result, nil
}

// BulkMark implements attendance.Gateway. The response body carries no
// per-item detail the console relies on; callers refetch the day instead.
func (c *Client) BulkMark(ctx context.Context, date time.Time, records []attendance.MarkRecord) error {
	type bulkRecord struct {
		UserID   string     `json:"userId"`
		Status   string     `json:"status"`
		Note     string     `json:"note"`
		CheckIn  *time.Time `json:"checkIn"`
		CheckOut *time.Time `json:"checkOut"`
	}
	payload := struct {
		Date    time.Time    `json:"date"`
		Records []bulkRecord `json:"records"`
	}{Date: date}

	for _, r := range records {
		payload.Records = append(payload.Records, bulkRecord{
			UserID:   r.EmployeeID,
			Status:   string(r.Status),
			Note:     r.Note,
			CheckIn:  r.CheckIn,
			CheckOut: r.CheckOut,
		})
	}

	return c.do(ctx, http.MethodPost, "/api/attendance/bulk", nil, payload, nil)
}

// MonthDays fetches one employee-month of attendance days. An empty userID
// means the authenticated user, resolved upstream.
func (c *Client) MonthDays(ctx context.Context, userID string, year, month int) ([]report.MonthDay, error) {
	var body struct {
		Days []struct {
			Date          string `json:"date"`
			Status        string `json:"status"`
			Note          string `json:"note"`
			WorkedMinutes *int   `json:"workedMinutes"`
		} `json:"days"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/attendance/by-month", monthQuery(userID, year, month), nil, &body); err != nil {
		return nil, err
	}

	days := make([]report.MonthDay, 0, len(body.Days))
	for _, d := range body.Days {
		days = append(days, report.MonthDay{
			Date:          d.Date,
			Status:        d.Status,
			Note:          d.Note,
			WorkedMinutes: d.WorkedMinutes,
		})
	}
	return days, nil
}
