package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-planner/internal/api/dto"
	"github.com/spec-kit/shift-planner/internal/domain"
	"github.com/spec-kit/shift-planner/internal/service"
)

// CatalogHandler exposes the department and shift catalogs.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListDepartments handles GET /departments.
func (h *CatalogHandler) ListDepartments(c *fiber.Ctx) error {
	depts, err := h.catalog.ListDepartments(c.Context())
	if err != nil {
		return err
	}
	resp := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		resp = append(resp, departmentResponse(&depts[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// ListShifts handles GET /departments/:id/shifts.
func (h *CatalogHandler) ListShifts(c *fiber.Ctx) error {
	defs, err := h.catalog.ListShifts(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	resp := make([]dto.ShiftResponse, 0, len(defs))
	for i := range defs {
		resp = append(resp, shiftResponse(&defs[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// UpdateShift handles PUT /departments/:id/shifts/:shift.
func (h *CatalogHandler) UpdateShift(c *fiber.Ctx) error {
	var req dto.UpdateShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	def, err := h.catalog.UpdateShift(c.Context(), c.Params("id"), c.Params("shift"), service.UpdateShiftInput{
		Name:              req.Name,
		StartTime:         domain.TimeOfDay(req.StartTime),
		EndTime:           domain.TimeOfDay(req.EndTime),
		RequiredHeadcount: req.RequiredHeadcount,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": shiftResponse(def)})
}

// SetHeadcount handles PUT /departments/:id/shifts/:shift/headcount.
func (h *CatalogHandler) SetHeadcount(c *fiber.Ctx) error {
	var req dto.HeadcountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	def, err := h.catalog.SetRequiredHeadcount(c.Context(), c.Params("id"), c.Params("shift"), req.RequiredHeadcount)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": shiftResponse(def)})
}

func departmentResponse(dept *domain.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:       dept.ID,
		Name:     dept.Name,
		MaxStaff: dept.MaxStaff,
	}
}

func shiftResponse(def *domain.ShiftDefinition) dto.ShiftResponse {
	return dto.ShiftResponse{
		ID:                def.ID,
		DepartmentID:      def.DepartmentID,
		Name:              def.Name,
		StartTime:         string(def.StartTime),
		EndTime:           string(def.EndTime),
		RequiredHeadcount: def.Headcount(),
	}
}
