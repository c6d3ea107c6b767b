package http

import (
	"net/http"

	"github.com/workpoint-hq/attendance-console/internal/domain/employee"
	"github.com/workpoint-hq/attendance-console/internal/handler/http/response"
	"github.com/workpoint-hq/attendance-console/internal/pkg/hrapi"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	client *hrapi.Client
}

func NewEmployeeHandler(client *hrapi.Client) EmployeeHandler {
	return &employeeHandlerImpl{client: client}
}

type employeeRow struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	EmployeeCode string `json:"employee_code"`
	Email        string `json:"email"`
	Branch       string `json:"branch"`
	Department   string `json:"department"`
}

type employeeListData struct {
	Employees   []employeeRow `json:"employees"`
	Branches    []string      `json:"branches"`
	Departments []string      `json:"departments"`
}

// List implements EmployeeHandler. The full directory comes from the HR API;
// branch, department and search narrowing happen here so the day table and
// its filter dropdowns stay consistent.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	directory, err := h.client.ListEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	query := employee.Query{
		Branch:     r.URL.Query().Get("branch"),
		Department: r.URL.Query().Get("department"),
		Search:     r.URL.Query().Get("q"),
	}

	filtered := employee.Filter(directory, query)
	rows := make([]employeeRow, 0, len(filtered))
	for _, e := range filtered {
		rows = append(rows, employeeRow{
			ID:           e.ID,
			FullName:     e.FullName,
			EmployeeCode: e.EmployeeCode,
			Email:        e.Email,
			Branch:       e.Branch,
			Department:   e.Department,
		})
	}

	response.Success(w, employeeListData{
		Employees:   rows,
		Branches:    employee.BranchOptions(directory),
		Departments: employee.DepartmentOptions(directory, query.Branch),
	})
}
