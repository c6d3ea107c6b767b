package hrapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/workpoint-hq/attendance-console/internal/domain/employee"
	"github.com/workpoint-hq/attendance-console/internal/domain/leave"
)

type userPayload struct {
	ID           string `json:"_id"`
	FullName     string `json:"fullName"`
	EmployeeCode string `json:"employeeId"`
	Email        string `json:"email"`
	Branch       string `json:"branch"`
	Department   string `json:"department"`
	Role         string `json:"role"`
	Status       string `json:"status"`
}

// ListEmployees fetches the full employee directory.
func (c *Client) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	var body []userPayload
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, nil, &body); err != nil {
		return nil, err
	}

	list := make([]employee.Employee, 0, len(body))
	for _, u := range body {
		list = append(list, employee.Employee{
			ID:           u.ID,
			FullName:     u.FullName,
			EmployeeCode: u.EmployeeCode,
			Email:        u.Email,
			Branch:       u.Branch,
			Department:   u.Department,
			Role:         u.Role,
			Status:       u.Status,
		})
	}
	return list, nil
}

type leavePayload struct {
	ID           string     `json:"_id"`
	UserID       string     `json:"userId"`
	EmployeeName string     `json:"fullName"`
	Type         string     `json:"type"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	From         *time.Time `json:"from"`
	To           *time.Time `json:"to"`
	Reason       string     `json:"reason"`
}

func (p leavePayload) toDomain() leave.Request {
	req := leave.Request{
		ID:           p.ID,
		EmployeeID:   p.UserID,
		EmployeeName: p.EmployeeName,
		Type:         p.Type,
		Category:     p.Category,
		Status:       p.Status,
		Reason:       p.Reason,
	}
	if p.From != nil {
		req.StartDate = *p.From
	}
	if p.To != nil {
		req.EndDate = *p.To
	}
	return req
}

// ListLeaves fetches leave requests matching the filter.
func (c *Client) ListLeaves(ctx context.Context, filter leave.ListFilter) ([]leave.Request, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.UserID != "" {
		q.Set("userId", filter.UserID)
	}

	var body []leavePayload
	if err := c.do(ctx, http.MethodGet, "/api/leaves", q, nil, &body); err != nil {
		return nil, err
	}

	list := make([]leave.Request, 0, len(body))
	for _, l := range body {
		list = append(list, l.toDomain())
	}
	return list, nil
}

// DecideLeave updates one leave request's status.
func (c *Client) DecideLeave(ctx context.Context, id, status string) (leave.Request, error) {
	payload := struct {
		Status string `json:"status"`
	}{Status: status}

	var body leavePayload
	if err := c.do(ctx, http.MethodPatch, "/api/leaves/"+url.PathEscape(id), nil, payload, &body); err != nil {
		return leave.Request{}, err
	}
	return body.toDomain(), nil
}
