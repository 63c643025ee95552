package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/hospital-helpdesk/internal/domain"
	"github.com/spec-kit/hospital-helpdesk/internal/repository"
)

func TestSeederRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := repository.NewInMemoryTaxonomy()
	seeder := NewSeeder(store, zap.NewNop())
	spec := DefaultSeedSpec()

	first, err := seeder.Run(ctx, spec)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.LevelsCreated != 3 {
		t.Fatalf("expected 3 levels created, got %d", first.LevelsCreated)
	}
	if first.DepartmentsCreated != 3 {
		t.Fatalf("expected 3 departments created, got %d", first.DepartmentsCreated)
	}
	if first.SubDepartmentsCreated == 0 {
		t.Fatal("expected sub-departments created on first run")
	}
	if len(first.Skipped) != 0 {
		t.Fatalf("expected no skipped entries, got %v", first.Skipped)
	}

	levels, departments, subs := store.CountRows()

	second, err := seeder.Run(ctx, spec)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.LevelsCreated != 0 || second.DepartmentsCreated != 0 || second.SubDepartmentsCreated != 0 {
		t.Fatalf("second run must create nothing, got %+v", second)
	}

	levels2, departments2, subs2 := store.CountRows()
	if levels != levels2 || departments != departments2 || subs != subs2 {
		t.Fatalf("row counts changed on re-run: %d/%d/%d -> %d/%d/%d",
			levels, departments, subs, levels2, departments2, subs2)
	}
}

func TestSeederSkipsSubDepartmentWithMissingLevel(t *testing.T) {
	ctx := context.Background()
	store := repository.NewInMemoryTaxonomy()
	seeder := NewSeeder(store, zap.NewNop())

	spec := SeedSpec{
		Levels: []LevelSpec{
			{Level: domain.PriorityLowest, Description: "Level 1 (Lowest)"},
		},
		Departments: []DepartmentSpec{
			{
				Name:         "Medical",
				Code:         "MED",
				Category:     domain.CategoryMedical,
				DefaultLevel: domain.PriorityHighest,
				SubDepartments: []SubDepartmentSpec{
					{Name: "ICU", Level: domain.PriorityLowest},
					{Name: "EMERGENCY DEPARTMENT (ED)", Level: domain.PriorityHighest},
				},
			},
		},
	}

	report, err := seeder.Run(ctx, spec)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.SubDepartmentsCreated != 1 {
		t.Fatalf("expected 1 sub-department created, got %d", report.SubDepartmentsCreated)
	}
	if len(report.Skipped) != 1 {
		t.Fatalf("expected 1 skipped sub-department, got %d", len(report.Skipped))
	}
	skipped := report.Skipped[0]
	if skipped.Name != "EMERGENCY DEPARTMENT (ED)" || skipped.Level != domain.PriorityHighest {
		t.Fatalf("unexpected skip record %+v", skipped)
	}

	// Department is still seeded, just without the missing default.
	dept, err := store.GetDepartment(ctx, "Medical")
	if err != nil {
		t.Fatalf("get department: %v", err)
	}
	if dept.DefaultPriority != nil {
		t.Fatalf("expected department without default priority, got %d", *dept.DefaultPriority)
	}
}

func TestSeederDefaultSpecCoversAllCategories(t *testing.T) {
	ctx := context.Background()
	store := repository.NewInMemoryTaxonomy()
	if _, err := NewSeeder(store, zap.NewNop()).Run(ctx, DefaultSeedSpec()); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, tc := range []struct {
		name  string
		level int
	}{
		{"Medical", domain.PriorityHighest},
		{"Administrative", domain.PriorityMedium},
		{"Support/Ancillary", domain.PriorityMedium},
	} {
		dept, err := store.GetDepartment(ctx, tc.name)
		if err != nil {
			t.Fatalf("department %q not seeded: %v", tc.name, err)
		}
		if dept.DefaultPriority == nil || *dept.DefaultPriority != tc.level {
			t.Fatalf("department %q: expected default level %d, got %v", tc.name, tc.level, dept.DefaultPriority)
		}
		subs, err := store.ListSubDepartments(ctx, dept.ID)
		if err != nil {
			t.Fatalf("list sub-departments: %v", err)
		}
		if len(subs) == 0 {
			t.Fatalf("department %q seeded without sub-departments", tc.name)
		}
	}
}
