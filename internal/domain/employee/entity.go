package employee

// Employee is a directory entry as the HR API returns it. The console only
// reads the directory; registration and approval live upstream.
type Employee struct {
	ID           string
	FullName     string
	EmployeeCode string
	Email        string
	Branch       string
	Department   string
	Role         string
	Status       string
}
