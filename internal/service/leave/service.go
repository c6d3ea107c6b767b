package leave

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/workpoint-hq/attendance-console/internal/domain/leave"
	"github.com/workpoint-hq/attendance-console/internal/pkg/hrapi"
)

// Gateway is the slice of the HR API the leave service needs.
type Gateway interface {
	ListLeaves(ctx context.Context, filter leave.ListFilter) ([]leave.Request, error)
	DecideLeave(ctx context.Context, id, status string) (leave.Request, error)
}

type LeaveServiceImpl struct {
	gateway Gateway
}

func NewLeaveService(gateway Gateway) *LeaveServiceImpl {
	return &LeaveServiceImpl{gateway: gateway}
}

// List fetches leave requests matching the filter.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.ListFilter) ([]leave.RequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, err := s.gateway.ListLeaves(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, mapRequestToResponse(r))
	}
	return responses, nil
}

// Decide updates one leave request's status upstream.
func (s *LeaveServiceImpl) Decide(ctx context.Context, id string, req leave.DecisionRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	result, err := s.gateway.DecideLeave(ctx, id, req.Status)
	if err != nil {
		var apiErr *hrapi.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return leave.RequestResponse{}, leave.ErrLeaveRequestNotFound
		}
		return leave.RequestResponse{}, fmt.Errorf("failed to decide leave request: %w", err)
	}
	return mapRequestToResponse(result), nil
}

func mapRequestToResponse(r leave.Request) leave.RequestResponse {
	resp := leave.RequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Type:         r.Type,
		Category:     r.Category,
		Status:       r.Status,
		Reason:       r.Reason,
	}
	if !r.StartDate.IsZero() {
		resp.StartDate = r.StartDate.UTC().Format("2006-01-02")
	}
	if !r.EndDate.IsZero() {
		resp.EndDate = r.EndDate.UTC().Format("2006-01-02")
	}
	return resp
}
