package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/hospital-helpdesk/internal/domain"
	"github.com/spec-kit/hospital-helpdesk/internal/repository"
)

// SkippedSubDepartment records a sub-department the seeder could not
// create because its priority level was missing from the store.
type SkippedSubDepartment struct {
	Name  string
	Level int
}

// SeedReport summarizes one seeding run.
type SeedReport struct {
	LevelsCreated         int
	DepartmentsCreated    int
	SubDepartmentsCreated int
	Skipped               []SkippedSubDepartment
}

// Seeder idempotently populates the taxonomy store from a SeedSpec.
// Re-running with the same spec never duplicates rows and never errors
// on existing data.
type Seeder struct {
	taxonomy repository.TaxonomyRepository
	logger   *zap.Logger
}

// NewSeeder constructs the seeder.
func NewSeeder(taxonomy repository.TaxonomyRepository, logger *zap.Logger) *Seeder {
	return &Seeder{taxonomy: taxonomy, logger: logger}
}

// Run seeds priority levels, then departments, then sub-departments.
// Each group runs inside one transaction when the store supports it, so
// a partial failure never leaves a half-seeded group behind.
func (s *Seeder) Run(ctx context.Context, spec SeedSpec) (*SeedReport, error) {
	report := &SeedReport{}

	if err := s.inGroupTransaction(ctx, func(store repository.TaxonomyRepository) error {
		return s.seedLevels(ctx, store, spec, report)
	}); err != nil {
		return nil, fmt.Errorf("seed priority levels: %w", err)
	}

	if err := s.inGroupTransaction(ctx, func(store repository.TaxonomyRepository) error {
		return s.seedDepartments(ctx, store, spec, report)
	}); err != nil {
		return nil, fmt.Errorf("seed departments: %w", err)
	}

	if err := s.inGroupTransaction(ctx, func(store repository.TaxonomyRepository) error {
		return s.seedSubDepartments(ctx, store, spec, report)
	}); err != nil {
		return nil, fmt.Errorf("seed sub-departments: %w", err)
	}

	s.logger.Info("seeding complete",
		zap.Int("levels_created", report.LevelsCreated),
		zap.Int("departments_created", report.DepartmentsCreated),
		zap.Int("sub_departments_created", report.SubDepartmentsCreated),
		zap.Int("skipped", len(report.Skipped)),
	)
	return report, nil
}

func (s *Seeder) inGroupTransaction(ctx context.Context, fn func(repository.TaxonomyRepository) error) error {
	if tx, ok := s.taxonomy.(repository.TransactionalTaxonomy); ok {
		return tx.RunInTransaction(ctx, fn)
	}
	return fn(s.taxonomy)
}

func (s *Seeder) seedLevels(ctx context.Context, store repository.TaxonomyRepository, spec SeedSpec, report *SeedReport) error {
	for _, level := range spec.Levels {
		if !domain.ValidPriorityLevel(level.Level) {
			return fmt.Errorf("invalid priority level %d in seed spec", level.Level)
		}
		_, created, err := store.GetOrCreatePriorityLevel(ctx, level.Level, level.Description)
		if err != nil {
			return err
		}
		if created {
			report.LevelsCreated++
			s.logger.Info("created priority level", zap.Int("level", level.Level))
		}
	}
	return nil
}

func (s *Seeder) seedDepartments(ctx context.Context, store repository.TaxonomyRepository, spec SeedSpec, report *SeedReport) error {
	for _, deptSpec := range spec.Departments {
		dept := domain.Department{
			Name:     deptSpec.Name,
			Category: deptSpec.Category,
		}
		if deptSpec.Code != "" {
			code := deptSpec.Code
			dept.Code = &code
		}
		if deptSpec.DefaultLevel != 0 {
			if _, err := store.GetPriorityLevel(ctx, deptSpec.DefaultLevel); err == nil {
				level := deptSpec.DefaultLevel
				dept.DefaultPriority = &level
			} else if errors.Is(err, pgx.ErrNoRows) {
				s.logger.Warn("default priority level missing; department seeded without one",
					zap.String("department", deptSpec.Name),
					zap.Int("level", deptSpec.DefaultLevel))
			} else {
				return err
			}
		}
		created, err := store.GetOrCreateDepartment(ctx, &dept)
		if err != nil {
			return err
		}
		if created {
			report.DepartmentsCreated++
			s.logger.Info("created department", zap.String("name", dept.Name))
		}
	}
	return nil
}

func (s *Seeder) seedSubDepartments(ctx context.Context, store repository.TaxonomyRepository, spec SeedSpec, report *SeedReport) error {
	for _, deptSpec := range spec.Departments {
		dept, err := store.GetDepartment(ctx, deptSpec.Name)
		if err != nil {
			return fmt.Errorf("department %q: %w", deptSpec.Name, err)
		}
		for _, subSpec := range deptSpec.SubDepartments {
			if _, err := store.GetPriorityLevel(ctx, subSpec.Level); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					// Missing level: skip and report, do not fail the run.
					report.Skipped = append(report.Skipped, SkippedSubDepartment{Name: subSpec.Name, Level: subSpec.Level})
					s.logger.Warn("priority level not found; skipping sub-department",
						zap.String("sub_department", subSpec.Name),
						zap.Int("level", subSpec.Level))
					continue
				}
				return err
			}
			level := subSpec.Level
			sub := domain.SubDepartment{
				Name:         subSpec.Name,
				DepartmentID: dept.ID,
				Priority:     &level,
			}
			created, err := store.GetOrCreateSubDepartment(ctx, &sub)
			if err != nil {
				return err
			}
			if created {
				report.SubDepartmentsCreated++
				s.logger.Info("created sub-department",
					zap.String("name", sub.Name),
					zap.String("department", dept.Name))
			}
		}
	}
	return nil
}
