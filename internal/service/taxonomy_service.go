package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/hospital-helpdesk/internal/domain"
	"github.com/spec-kit/hospital-helpdesk/internal/repository"
)

const (
	taxonomyTreeCacheKey = "taxonomy:tree"
	taxonomyTreeCacheTTL = 5 * time.Minute
)

// DepartmentNode is one department with its sub-departments.
type DepartmentNode struct {
	Department     domain.Department     `json:"department"`
	SubDepartments []domain.SubDepartment `json:"sub_departments"`
}

// TaxonomyService exposes read access to the taxonomy with an optional
// Redis read-through cache. The reference data changes only through
// seeding, so a short TTL is plenty.
type TaxonomyService struct {
	taxonomy repository.TaxonomyRepository
	cache    *redis.Client
	logger   *zap.Logger
}

// NewTaxonomyService constructs the service; cache may be nil.
func NewTaxonomyService(taxonomy repository.TaxonomyRepository, cache *redis.Client, logger *zap.Logger) *TaxonomyService {
	return &TaxonomyService{taxonomy: taxonomy, cache: cache, logger: logger}
}

// ListPriorityLevels returns all priority levels, ascending.
func (s *TaxonomyService) ListPriorityLevels(ctx context.Context) ([]domain.PriorityLevel, error) {
	return s.taxonomy.ListPriorityLevels(ctx)
}

// GetDepartment fetches a department by name.
func (s *TaxonomyService) GetDepartment(ctx context.Context, name string) (*domain.Department, error) {
	return s.taxonomy.GetDepartment(ctx, name)
}

// ListSubDepartments lists the sub-departments of the named department.
func (s *TaxonomyService) ListSubDepartments(ctx context.Context, departmentName string) ([]domain.SubDepartment, error) {
	dept, err := s.taxonomy.GetDepartment(ctx, departmentName)
	if err != nil {
		return nil, err
	}
	return s.taxonomy.ListSubDepartments(ctx, dept.ID)
}

// DepartmentTree returns every department with its sub-departments,
// served from Redis when a cached copy exists.
func (s *TaxonomyService) DepartmentTree(ctx context.Context) ([]DepartmentNode, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, taxonomyTreeCacheKey).Bytes()
		if err == nil {
			var tree []DepartmentNode
			if err := json.Unmarshal(cached, &tree); err == nil {
				return tree, nil
			}
		} else if err != redis.Nil {
			s.logger.Debug("taxonomy cache read failed", zap.Error(err))
		}
	}

	departments, err := s.taxonomy.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	tree := make([]DepartmentNode, 0, len(departments))
	for _, dept := range departments {
		subs, err := s.taxonomy.ListSubDepartments(ctx, dept.ID)
		if err != nil {
			return nil, err
		}
		tree = append(tree, DepartmentNode{Department: dept, SubDepartments: subs})
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(tree); err == nil {
			if err := s.cache.Set(ctx, taxonomyTreeCacheKey, encoded, taxonomyTreeCacheTTL).Err(); err != nil {
				s.logger.Debug("taxonomy cache write failed", zap.Error(err))
			}
		}
	}
	return tree, nil
}

// InvalidateTree drops the cached taxonomy tree, e.g. after seeding.
func (s *TaxonomyService) InvalidateTree(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, taxonomyTreeCacheKey).Err(); err != nil {
		s.logger.Debug("taxonomy cache invalidation failed", zap.Error(err))
	}
}
