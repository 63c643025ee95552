package domain

import "time"

// DepartmentCategory tags the three top-level hospital groupings.
type DepartmentCategory string

const (
	CategoryMedical        DepartmentCategory = "Medical"
	CategoryAdministrative DepartmentCategory = "Administrative"
	CategorySupport        DepartmentCategory = "Support/Ancillary"
)

// Department is a top-level organizational unit. DefaultPriority is the
// fallback level for tickets that carry no sub-department.
type Department struct {
	ID              string
	Name            string
	Code            *string
	Category        DepartmentCategory
	DefaultPriority *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SubDepartment belongs to exactly one Department and carries at most
// one priority level. Priority is nil when the level was removed.
type SubDepartment struct {
	ID           string
	Name         string
	DepartmentID string
	Priority     *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
