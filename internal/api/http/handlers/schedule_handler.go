package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-planner/internal/api/dto"
	"github.com/spec-kit/shift-planner/internal/domain"
	"github.com/spec-kit/shift-planner/internal/schedule"
	"github.com/spec-kit/shift-planner/internal/service"
)

// ScheduleHandler exposes generation, the week view and manual overrides.
type ScheduleHandler struct {
	planner *service.PlannerService
	export  *service.ExportService
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(planner *service.PlannerService, export *service.ExportService) *ScheduleHandler {
	return &ScheduleHandler{planner: planner, export: export}
}

// Generate handles POST /schedule/generate.
func (h *ScheduleHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid payload")
		}
	}
	ref, err := refDate(req.Date)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	result, err := h.planner.Generate(c.Context(), ref)
	if err != nil {
		return err
	}

	resp := dto.GenerateResponse{
		Week:       datesToJSON(result.Week),
		TotalSlots: result.TotalSlots,
		Filled:     result.Filled,
		Unfilled:   make([]dto.SlotResponse, 0, len(result.Unfilled)),
	}
	for _, slot := range result.Unfilled {
		resp.Unfilled = append(resp.Unfilled, slotResponse(slot))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Week handles GET /schedule/week?date=YYYY-MM-DD.
func (h *ScheduleHandler) Week(c *fiber.Ctx) error {
	ref, err := refDate(c.Query("date"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	view, err := h.planner.WeekViewFor(c.Context(), ref)
	if err != nil {
		return err
	}

	resp := dto.WeekViewResponse{
		WeekStart: string(view.Week[0]),
		Dates:     datesToJSON(view.Week),
	}
	for i := range view.Departments {
		resp.Departments = append(resp.Departments, departmentResponse(&view.Departments[i]))
		for j := range view.Shifts[view.Departments[i].ID] {
			resp.Shifts = append(resp.Shifts, shiftResponse(&view.Shifts[view.Departments[i].ID][j]))
		}
	}
	for slot, staffID := range view.Ledger {
		entry := dto.WeekEntryResponse{Slot: slotResponse(slot), StaffID: staffID}
		if member, ok := view.StaffByID[staffID]; ok {
			entry.StaffName = member.Name
		}
		resp.Entries = append(resp.Entries, entry)
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Export handles GET /schedule/week/export?date=YYYY-MM-DD.
func (h *ScheduleHandler) Export(c *fiber.Ctx) error {
	ref, err := refDate(c.Query("date"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	content, filename, err := h.export.ExportWeek(c.Context(), ref)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(content)
}

// DaySlots handles GET /schedule/days/:date/slots.
func (h *ScheduleHandler) DaySlots(c *fiber.Ctx) error {
	date, err := domain.ParseDate(c.Params("date"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	statuses, err := h.planner.SlotsForDate(c.Context(), date)
	if err != nil {
		return err
	}
	resp := make([]dto.DaySlotResponse, 0, len(statuses))
	for _, status := range statuses {
		resp = append(resp, dto.DaySlotResponse{
			Slot:    slotResponse(status.Slot),
			StaffID: status.StaffID,
			Filled:  status.Filled,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}

// GetAssignment handles GET /schedule/assignments/:date/:department/:shift/:index.
func (h *ScheduleHandler) GetAssignment(c *fiber.Ctx) error {
	slot, err := slotFromParams(c)
	if err != nil {
		return err
	}
	member, err := h.planner.GetAssignment(c.Context(), slot)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"slot":  slotResponse(slot),
		"staff": staffResponse(member),
	}})
}

// SetAssignment handles PUT /schedule/assignments/:date/:department/:shift/:index.
func (h *ScheduleHandler) SetAssignment(c *fiber.Ctx) error {
	slot, err := slotFromParams(c)
	if err != nil {
		return err
	}
	var req dto.AssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.StaffID == "" {
		return fiber.NewError(http.StatusBadRequest, "staff_id required")
	}

	decision, err := h.planner.SetAssignment(c.Context(), slot, req.StaffID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AssignmentResponse{
		Slot:     slotResponse(slot),
		StaffID:  req.StaffID,
		Warnings: violationsResponse(decision.Warnings),
	}})
}

// ClearAssignment handles DELETE /schedule/assignments/:date/:department/:shift/:index.
func (h *ScheduleHandler) ClearAssignment(c *fiber.Ctx) error {
	slot, err := slotFromParams(c)
	if err != nil {
		return err
	}
	if err := h.planner.ClearAssignment(c.Context(), slot); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "cleared"}})
}

// Candidates handles GET /schedule/assignments/:date/:department/:shift/:index/candidates.
func (h *ScheduleHandler) Candidates(c *fiber.Ctx) error {
	slot, err := slotFromParams(c)
	if err != nil {
		return err
	}
	candidates, err := h.planner.Candidates(c.Context(), slot)
	if err != nil {
		return err
	}
	resp := make([]dto.CandidateResponse, 0, len(candidates))
	for i := range candidates {
		resp = append(resp, dto.CandidateResponse{
			Staff:      staffResponse(&candidates[i].Staff),
			Allowed:    candidates[i].Decision.Allowed,
			Violations: violationsResponse(candidates[i].Decision.Violations),
			Warnings:   violationsResponse(candidates[i].Decision.Warnings),
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}

func slotFromParams(c *fiber.Ctx) (domain.Slot, error) {
	date, err := domain.ParseDate(c.Params("date"))
	if err != nil {
		return domain.Slot{}, fiber.NewError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil || index < 0 {
		return domain.Slot{}, fiber.NewError(http.StatusBadRequest, "invalid slot index")
	}
	return domain.Slot{
		Date:         date,
		ShiftID:      c.Params("shift"),
		DepartmentID: c.Params("department"),
		Index:        index,
	}, nil
}

func refDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse(time.DateOnly, raw)
}

func datesToJSON(week [7]domain.Date) []string {
	out := make([]string, 0, len(week))
	for _, date := range week {
		out = append(out, string(date))
	}
	return out
}

func slotResponse(slot domain.Slot) dto.SlotResponse {
	return dto.SlotResponse{
		Date:         string(slot.Date),
		ShiftID:      slot.ShiftID,
		DepartmentID: slot.DepartmentID,
		SlotIndex:    slot.Index,
	}
}

func violationsResponse(violations []schedule.Violation) []dto.ViolationResponse {
	if len(violations) == 0 {
		return nil
	}
	out := make([]dto.ViolationResponse, 0, len(violations))
	for _, v := range violations {
		out = append(out, dto.ViolationResponse{Code: v.Code, Message: v.Message})
	}
	return out
}
