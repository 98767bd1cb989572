package dto

// DepartmentResponse describes one department.
type DepartmentResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MaxStaff int    `json:"max_staff"`
}

// ShiftResponse describes one shift definition.
type ShiftResponse struct {
	ID                string `json:"id"`
	DepartmentID      string `json:"department_id"`
	Name              string `json:"name"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	RequiredHeadcount int    `json:"required_headcount"`
}

// UpdateShiftRequest replaces a shift definition's editable attributes.
type UpdateShiftRequest struct {
	Name              string `json:"name"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	RequiredHeadcount int    `json:"required_headcount"`
}

// HeadcountRequest adjusts a shift's staffing target.
type HeadcountRequest struct {
	RequiredHeadcount int `json:"required_headcount"`
}
