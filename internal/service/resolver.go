package service

import (
	"github.com/spec-kit/hospital-helpdesk/internal/domain"
	apperrors "github.com/spec-kit/hospital-helpdesk/pkg/util"
)

// ValidateAssignment checks the cross-reference integrity between a
// ticket's department and its optional sub-department.
func ValidateAssignment(dept *domain.Department, sub *domain.SubDepartment) error {
	if dept == nil {
		return apperrors.NewValidationError("department is required", map[string]any{
			"field": "department_id",
		})
	}
	if sub != nil && sub.DepartmentID != dept.ID {
		return apperrors.NewValidationError("sub-department does not belong to chosen department", map[string]any{
			"field":          "sub_department_id",
			"department":     dept.Name,
			"sub_department": sub.Name,
		})
	}
	return nil
}

// ResolvePriority computes the authoritative priority for a ticket:
// the sub-department's level when present, otherwise the department's
// default. Returns nil when neither carries a level; the schema allows
// a null ticket priority for that case.
func ResolvePriority(dept *domain.Department, sub *domain.SubDepartment) *int {
	if sub != nil && sub.Priority != nil {
		level := *sub.Priority
		return &level
	}
	if dept != nil && dept.DefaultPriority != nil {
		level := *dept.DefaultPriority
		return &level
	}
	return nil
}
