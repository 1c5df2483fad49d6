package domain

import (
	"fmt"
	"time"
)

// DefectStatus represents a defect's state
type DefectStatus int

const (
	// StatusUndefined is the sentinel for an uninitialized status.
	StatusUndefined DefectStatus = iota
	// StatusOpened means the defect is published.
	StatusOpened
	// StatusFixing means the defect is being fixed.
	StatusFixing
	// StatusEliminated means the defect no longer exists.
	StatusEliminated
)

// Valid reports whether the status is one of the assignable values
func (s DefectStatus) Valid() bool {
	return s >= StatusOpened && s <= StatusEliminated
}

func (s DefectStatus) String() string {
	switch s {
	case StatusOpened:
		return "Opened"
	case StatusFixing:
		return "Fixing"
	case StatusEliminated:
		return "Eliminated"
	}
	return "Undefined"
}

// briefDescriptionLen caps the description shown on a selection button.
const briefDescriptionLen = 20

// Defect represents a reported facility defect entity
type Defect struct {
	ID             int64
	RoomNumber     int
	Description    string
	CreatedBy      int64 // publisher chat id
	CreatedAt      time.Time
	Status         DefectStatus
	AssignedChatID int64 // 0 when unassigned
	ClosedAt       *time.Time
}

// IsClosed reports whether the defect was closed
func (d *Defect) IsClosed() bool {
	return d.ClosedAt != nil
}

// IsAssignedTo reports whether the defect is assigned to the chat
func (d *Defect) IsAssignedTo(chatID int64) bool {
	return d.AssignedChatID != 0 && d.AssignedChatID == chatID
}

// BriefDetails formats the defect for a selection button label. Truncation
// counts runes so a multi-byte description is never cut mid-character.
func (d *Defect) BriefDetails() string {
	desc := d.Description
	if runes := []rune(desc); len(runes) > briefDescriptionLen {
		desc = string(runes[:briefDescriptionLen]) + "..."
	}
	return fmt.Sprintf("Room %d: %s", d.RoomNumber, desc)
}

// ApplyStatus sets a new status. Eliminated also closes the defect;
// a closed defect is list-invisible but never deleted.
func (d *Defect) ApplyStatus(status DefectStatus, now time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("invalid defect status %d", int(status))
	}
	d.Status = status
	if status == StatusEliminated && d.ClosedAt == nil {
		closed := now
		d.ClosedAt = &closed
	}
	return nil
}
