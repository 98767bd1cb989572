package dto

// StaffRequest payload for registering or updating a roster member.
type StaffRequest struct {
	EmployeeID        string            `json:"employee_id"`
	Name              string            `json:"name"`
	DepartmentID      string            `json:"department_id"`
	Employment        string            `json:"employment"`
	Experience        string            `json:"experience"`
	Personality       string            `json:"personality"`
	WeeklyMaxHours    int               `json:"weekly_max_hours"`
	DailyMaxHours     int               `json:"daily_max_hours"`
	AvailableWeekdays []int             `json:"available_weekdays"`
	UnavailableDates  []string          `json:"unavailable_dates"`
	ShiftPreferences  map[string]bool   `json:"shift_preferences"`
	Compatibility     map[string]string `json:"compatibility"`
}

// StaffResponse describes one roster member.
type StaffResponse struct {
	ID                string            `json:"id"`
	EmployeeID        string            `json:"employee_id"`
	Name              string            `json:"name"`
	DepartmentID      string            `json:"department_id"`
	Employment        string            `json:"employment"`
	Experience        string            `json:"experience"`
	Personality       string            `json:"personality,omitempty"`
	WeeklyMaxHours    int               `json:"weekly_max_hours"`
	DailyMaxHours     int               `json:"daily_max_hours"`
	AvailableWeekdays []int             `json:"available_weekdays,omitempty"`
	UnavailableDates  []string          `json:"unavailable_dates,omitempty"`
	ShiftPreferences  map[string]bool   `json:"shift_preferences,omitempty"`
	Compatibility     map[string]string `json:"compatibility,omitempty"`
}
