package dto

import "github.com/spec-kit/hospital-helpdesk/internal/domain"

// PriorityLevelResponse representation.
type PriorityLevelResponse struct {
	Level       int    `json:"level"`
	Description string `json:"description"`
}

// SubDepartmentResponse representation.
type SubDepartmentResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DepartmentID string `json:"department_id"`
	Priority     *int   `json:"priority"`
}

// DepartmentResponse representation, optionally with sub-departments.
type DepartmentResponse struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Code            *string                 `json:"code"`
	Category        string                  `json:"category"`
	DefaultPriority *int                    `json:"default_priority"`
	SubDepartments  []SubDepartmentResponse `json:"sub_departments,omitempty"`
}

// NewPriorityLevelResponse maps a priority level.
func NewPriorityLevelResponse(pl domain.PriorityLevel) PriorityLevelResponse {
	return PriorityLevelResponse{Level: pl.Level, Description: pl.Description}
}

// NewSubDepartmentResponse maps a sub-department.
func NewSubDepartmentResponse(sub domain.SubDepartment) SubDepartmentResponse {
	return SubDepartmentResponse{
		ID:           sub.ID,
		Name:         sub.Name,
		DepartmentID: sub.DepartmentID,
		Priority:     sub.Priority,
	}
}

// NewDepartmentResponse maps a department and its sub-departments.
func NewDepartmentResponse(dept domain.Department, subs []domain.SubDepartment) DepartmentResponse {
	resp := DepartmentResponse{
		ID:              dept.ID,
		Name:            dept.Name,
		Code:            dept.Code,
		Category:        string(dept.Category),
		DefaultPriority: dept.DefaultPriority,
	}
	for _, sub := range subs {
		resp.SubDepartments = append(resp.SubDepartments, NewSubDepartmentResponse(sub))
	}
	return resp
}
