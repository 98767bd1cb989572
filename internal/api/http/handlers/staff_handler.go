package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-planner/internal/api/dto"
	"github.com/spec-kit/shift-planner/internal/domain"
	"github.com/spec-kit/shift-planner/internal/service"
)

// StaffHandler exposes roster management endpoints.
type StaffHandler struct {
	roster *service.RosterService
}

// NewStaffHandler constructs the handler.
func NewStaffHandler(roster *service.RosterService) *StaffHandler {
	return &StaffHandler{roster: roster}
}

// Register handles POST /staff.
func (h *StaffHandler) Register(c *fiber.Ctx) error {
	var req dto.StaffRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	staff, err := h.roster.Register(c.Context(), staffInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": staffResponse(staff)})
}

// Update handles PUT /staff/:id.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	var req dto.StaffRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	staff, err := h.roster.Update(c.Context(), c.Params("id"), staffInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffResponse(staff)})
}

// Remove handles DELETE /staff/:id.
func (h *StaffHandler) Remove(c *fiber.Ctx) error {
	if err := h.roster.Remove(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "removed"}})
}

// Get handles GET /staff/:id.
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	staff, err := h.roster.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffResponse(staff)})
}

// List handles GET /staff, optionally filtered by department_id.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	members, err := h.roster.List(c.Context(), c.Query("department_id"))
	if err != nil {
		return err
	}
	resp := make([]dto.StaffResponse, 0, len(members))
	for i := range members {
		resp = append(resp, staffResponse(&members[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Summary handles GET /staff/summary.
func (h *StaffHandler) Summary(c *fiber.Ctx) error {
	summaries, err := h.roster.Summary(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summaries})
}

func staffInput(req dto.StaffRequest) service.RegisterStaffInput {
	in := service.RegisterStaffInput{
		EmployeeID:       req.EmployeeID,
		Name:             req.Name,
		DepartmentID:     req.DepartmentID,
		Employment:       domain.EmploymentType(req.Employment),
		Experience:       domain.ExperienceTier(req.Experience),
		Personality:      domain.Personality(req.Personality),
		WeeklyMaxHours:   req.WeeklyMaxHours,
		DailyMaxHours:    req.DailyMaxHours,
		ShiftPreferences: req.ShiftPreferences,
	}
	for _, day := range req.AvailableWeekdays {
		in.AvailableWeekdays = append(in.AvailableWeekdays, time.Weekday(day))
	}
	for _, date := range req.UnavailableDates {
		in.UnavailableDates = append(in.UnavailableDates, domain.Date(date))
	}
	if len(req.Compatibility) > 0 {
		in.CompatibilityMap = make(map[string]domain.Compatibility, len(req.Compatibility))
		for id, grade := range req.Compatibility {
			in.CompatibilityMap[id] = domain.Compatibility(grade)
		}
	}
	return in
}

func staffResponse(staff *domain.Staff) dto.StaffResponse {
	resp := dto.StaffResponse{
		ID:               staff.UniqueID,
		EmployeeID:       staff.EmployeeID,
		Name:             staff.Name,
		DepartmentID:     staff.DepartmentID,
		Employment:       string(staff.Employment),
		Experience:       string(staff.Experience),
		Personality:      string(staff.Personality),
		WeeklyMaxHours:   staff.WeeklyMaxHours,
		DailyMaxHours:    staff.DailyMaxHours,
		ShiftPreferences: staff.ShiftPreferences,
	}
	for _, day := range staff.AvailableWeekdays {
		resp.AvailableWeekdays = append(resp.AvailableWeekdays, int(day))
	}
	for _, date := range staff.UnavailableDates {
		resp.UnavailableDates = append(resp.UnavailableDates, string(date))
	}
	if len(staff.CompatibilityMap) > 0 {
		resp.Compatibility = make(map[string]string, len(staff.CompatibilityMap))
		for id, grade := range staff.CompatibilityMap {
			resp.Compatibility[id] = string(grade)
		}
	}
	return resp
}
