package domain

import "time"

// Department represents an organizational unit staff belong to. The
// catalog is fixed configuration; departments are not mutated at runtime.
type Department struct {
	ID        string
	Name      string
	MaxStaff  int
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
