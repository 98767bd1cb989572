package schedule

import "github.com/spec-kit/shift-planner/internal/domain"

// Ledger is the sparse mapping from slot identity to the assigned staff
// UniqueID. Absence of an entry means the slot is unfilled.
type Ledger map[domain.Slot]string

// NewLedger returns an empty ledger.
func NewLedger() Ledger {
	return make(Ledger)
}

// Assign records staffID for the slot, replacing any previous holder.
func (l Ledger) Assign(slot domain.Slot, staffID string) {
	l[slot] = staffID
}

// Clear removes the slot's entry, leaving it unfilled.
func (l Ledger) Clear(slot domain.Slot) {
	delete(l, slot)
}

// StaffFor returns the staff assigned to the slot, if any.
func (l Ledger) StaffFor(slot domain.Slot) (string, bool) {
	id, ok := l[slot]
	return id, ok
}

// AssignedOn reports whether staffID already holds any slot on the given
// date, optionally ignoring one slot (used when re-validating an edit of
// a slot the member already occupies).
func (l Ledger) AssignedOn(date domain.Date, staffID string, ignore *domain.Slot) bool {
	for slot, id := range l {
		if slot.Date != date || id != staffID {
			continue
		}
		if ignore != nil && slot == *ignore {
			continue
		}
		return true
	}
	return false
}

// SlotsFor lists every slot currently held by staffID.
func (l Ledger) SlotsFor(staffID string) []domain.Slot {
	var slots []domain.Slot
	for slot, id := range l {
		if id == staffID {
			slots = append(slots, slot)
		}
	}
	return slots
}

// RemoveStaff purges every entry referencing staffID and returns how many
// entries were removed.
func (l Ledger) RemoveStaff(staffID string) int {
	removed := 0
	for slot, id := range l {
		if id == staffID {
			delete(l, slot)
			removed++
		}
	}
	return removed
}

// Clone returns an independent copy of the ledger.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for slot, id := range l {
		out[slot] = id
	}
	return out
}
