package service

import "github.com/spec-kit/hospital-helpdesk/internal/domain"

// LevelSpec declares one priority level row.
type LevelSpec struct {
	Level       int
	Description string
}

// SubDepartmentSpec declares one sub-department and the level it is
// bound to on creation.
type SubDepartmentSpec struct {
	Name  string
	Level int
}

// DepartmentSpec declares one top-level department.
type DepartmentSpec struct {
	Name           string
	Code           string
	Category       domain.DepartmentCategory
	DefaultLevel   int
	SubDepartments []SubDepartmentSpec
}

// SeedSpec is the static, versioned taxonomy specification consumed by
// the Seeder. Slices keep iteration order deterministic.
type SeedSpec struct {
	Levels      []LevelSpec
	Departments []DepartmentSpec
}

// DefaultSeedSpec returns the full hospital taxonomy.
func DefaultSeedSpec() SeedSpec {
	return SeedSpec{
		Levels: []LevelSpec{
			{Level: domain.PriorityLowest, Description: "Level 1 (Lowest)"},
			{Level: domain.PriorityMedium, Description: "Level 2 (Medium)"},
			{Level: domain.PriorityHighest, Description: "Level 3 (Highest)"},
		},
		Departments: []DepartmentSpec{
			{
				Name:         "Medical",
				Code:         "MED",
				Category:     domain.CategoryMedical,
				DefaultLevel: domain.PriorityHighest,
				SubDepartments: []SubDepartmentSpec{
					{Name: "PEDIATRICS", Level: 1},
					{Name: "OB-GYN", Level: 1},
					{Name: "CARDIOLOGY", Level: 1},
					{Name: "ONCOLOGY", Level: 1},
					{Name: "ORTHOPEDICS", Level: 1},
					{Name: "NEUROLOGY", Level: 1},
					{Name: "PSYCHIATRY AND MENTAL HEALTH", Level: 1},
					{Name: "DERMATOLOGY", Level: 1},
					{Name: "RADIOLOGY AND IMAGING", Level: 1},
					{Name: "PATHOLOGY", Level: 1},
					{Name: "OUTPATIENT DEPARTMENT (OPD)", Level: 3},
					{Name: "EMERGENCY DEPARTMENT (ED)", Level: 3},
					{Name: "INPATIENT DEPARTMENT", Level: 3},
					{Name: "SURGERY (OR)", Level: 3},
					{Name: "INTENSIVE CARE UNIT (ICU)", Level: 3},
				},
			},
			{
				Name:         "Administrative",
				Code:         "ADM",
				Category:     domain.CategoryAdministrative,
				DefaultLevel: domain.PriorityMedium,
				SubDepartments: []SubDepartmentSpec{
					{Name: "BILLING AND FINANCE", Level: 1},
					{Name: "HUMAN RESOURCES (HR)", Level: 1},
					{Name: "MEDICAL RECORDS", Level: 1},
					{Name: "QUALITY ASSURANCE", Level: 1},
					{Name: "PUBLIC RELATIONS / MARKETING", Level: 1},
					{Name: "ADMISSIONS AND REGISTRATION", Level: 3},
				},
			},
			{
				Name:         "Support/Ancillary",
				Code:         "SUP",
				Category:     domain.CategorySupport,
				DefaultLevel: domain.PriorityMedium,
				SubDepartments: []SubDepartmentSpec{
					{Name: "PHARMACY", Level: 1},
					{Name: "LABORATORY SERVICES", Level: 1},
					{Name: "BIOMEDICAL ENGINEERING", Level: 1},
					{Name: "HOUSEKEEPING / ENVIRONMENTAL SERVICES", Level: 2},
					{Name: "CATERING AND NUTRITION", Level: 2},
					{Name: "SECURITY", Level: 3},
					{Name: "IT / TECHNOLOGY", Level: 3},
					{Name: "TRANSPORT SERVICES", Level: 3},
				},
			},
		},
	}
}
