package employee

import (
	"sort"
	"strings"
)

// AllOption is the sentinel that disables a branch or department filter.
const AllOption = "all"

// Query narrows the directory: branch first, then department within the
// branch, then a free-text search over name, employee code and email.
type Query struct {
	Branch     string
	Department string
	Search     string
}

// Filter applies q to list. Branch and department matching is
// case-insensitive on trimmed values; an empty or "all" value disables that
// dimension.
func Filter(list []Employee, q Query) []Employee {
	branch := normalize(q.Branch)
	dept := normalize(q.Department)
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]Employee, 0, len(list))
	for _, e := range list {
		if branch != "" && branch != AllOption && normalize(e.Branch) != branch {
			continue
		}
		if dept != "" && dept != AllOption && normalize(e.Department) != dept {
			continue
		}
		if search != "" && !matchesSearch(e, search) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesSearch(e Employee, needle string) bool {
	return strings.Contains(strings.ToLower(e.FullName), needle) ||
		strings.Contains(strings.ToLower(e.EmployeeCode), needle) ||
		strings.Contains(strings.ToLower(e.Email), needle) ||
		strings.Contains(strings.ToLower(e.Department), needle) ||
		strings.Contains(strings.ToLower(e.Role), needle)
}

// BranchOptions returns the selectable branches: "all" first, then the
// distinct branches present in the directory, sorted.
func BranchOptions(list []Employee) []string {
	return options(list, func(e Employee) string { return e.Branch })
}

// DepartmentOptions returns the selectable departments scoped to a branch:
// choosing a branch narrows the department list to that branch's departments.
func DepartmentOptions(list []Employee, branch string) []string {
	scoped := list
	if b := normalize(branch); b != "" && b != AllOption {
		scoped = Filter(list, Query{Branch: branch})
	}
	return options(scoped, func(e Employee) string { return e.Department })
}

// options deduplicates case-insensitively and re-capitalizes the first letter
// for display; the "all" sentinel stays lowercase.
func options(list []Employee, field func(Employee) string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, e := range list {
		v := normalize(field(e))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, capitalize(v))
	}
	sort.Strings(values)
	return append([]string{AllOption}, values...)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
