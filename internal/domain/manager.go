package domain

import "time"

// Manager is an administrative account allowed to edit the roster, the
// shift catalog and the schedule.
type Manager struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
