package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hospital-helpdesk/internal/api/dto"
	"github.com/spec-kit/hospital-helpdesk/internal/service"
	apperrors "github.com/spec-kit/hospital-helpdesk/pkg/util"
)

// TaxonomyHandler exposes the department/priority reference data.
type TaxonomyHandler struct {
	service *service.TaxonomyService
}

// NewTaxonomyHandler constructs handler.
func NewTaxonomyHandler(taxonomyService *service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{service: taxonomyService}
}

// ListPriorityLevels GET /priority-levels.
func (h *TaxonomyHandler) ListPriorityLevels(c *fiber.Ctx) error {
	levels, err := h.service.ListPriorityLevels(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.PriorityLevelResponse, 0, len(levels))
	for _, pl := range levels {
		items = append(items, dto.NewPriorityLevelResponse(pl))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListDepartments GET /departments — full tree with sub-departments.
func (h *TaxonomyHandler) ListDepartments(c *fiber.Ctx) error {
	tree, err := h.service.DepartmentTree(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.DepartmentResponse, 0, len(tree))
	for _, node := range tree {
		items = append(items, dto.NewDepartmentResponse(node.Department, node.SubDepartments))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListSubDepartments GET /departments/:name/sub-departments.
func (h *TaxonomyHandler) ListSubDepartments(c *fiber.Ctx) error {
	name := c.Params("name")
	subs, err := h.service.ListSubDepartments(c.UserContext(), name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("department", map[string]any{"name": name})
		}
		return err
	}
	items := make([]dto.SubDepartmentResponse, 0, len(subs))
	for _, sub := range subs {
		items = append(items, dto.NewSubDepartmentResponse(sub))
	}
	return c.JSON(fiber.Map{"data": items})
}
