package dto

// GenerateRequest selects the week to generate. Date defaults to today.
type GenerateRequest struct {
	Date string `json:"date"`
}

// GenerateResponse summarizes a generation pass.
type GenerateResponse struct {
	Week       []string       `json:"week"`
	TotalSlots int            `json:"total_slots"`
	Filled     int            `json:"filled"`
	Unfilled   []SlotResponse `json:"unfilled"`
}

// SlotResponse identifies one slot of the week grid.
type SlotResponse struct {
	Date         string `json:"date"`
	ShiftID      string `json:"shift_id"`
	DepartmentID string `json:"department_id"`
	SlotIndex    int    `json:"slot_index"`
}

// DaySlotResponse is one derived slot of a single date, filled or not.
type DaySlotResponse struct {
	Slot    SlotResponse `json:"slot"`
	StaffID string       `json:"staff_id,omitempty"`
	Filled  bool         `json:"filled"`
}

// AssignmentRequest places a member into a slot.
type AssignmentRequest struct {
	StaffID string `json:"staff_id"`
}

// ViolationResponse describes one conflict rule outcome.
type ViolationResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AssignmentResponse reports a manual assignment, including advisory
// warnings that did not block it.
type AssignmentResponse struct {
	Slot     SlotResponse        `json:"slot"`
	StaffID  string              `json:"staff_id"`
	Warnings []ViolationResponse `json:"warnings,omitempty"`
}

// CandidateResponse pairs a member with the validator verdict for a slot.
type CandidateResponse struct {
	Staff      StaffResponse       `json:"staff"`
	Allowed    bool                `json:"allowed"`
	Violations []ViolationResponse `json:"violations,omitempty"`
	Warnings   []ViolationResponse `json:"warnings,omitempty"`
}

// WeekEntryResponse is one filled slot of the week view.
type WeekEntryResponse struct {
	Slot      SlotResponse `json:"slot"`
	StaffID   string       `json:"staff_id"`
	StaffName string       `json:"staff_name,omitempty"`
}

// WeekViewResponse renders a whole stored week.
type WeekViewResponse struct {
	WeekStart   string               `json:"week_start"`
	Dates       []string             `json:"dates"`
	Departments []DepartmentResponse `json:"departments"`
	Shifts      []ShiftResponse      `json:"shifts"`
	Entries     []WeekEntryResponse  `json:"entries"`
}
