package domain

import (
	"fmt"
	"time"
)

// TaskStage is the step a multi-step conversation is waiting on.
// A closed task has no stage semantics anymore.
type TaskStage int

const (
	// StageSelectingDefect means the defect selection keyboard was (or is about
	// to be) presented and no defect was chosen yet.
	StageSelectingDefect TaskStage = iota + 1
	// StageSelectingStatus means a defect was chosen and the status selection
	// keyboard is awaiting the user's choice.
	StageSelectingStatus
)

// CommandTask is a durable record of an in-progress multi-step command for one
// chat. At most one task per chat may have ClosedAt == nil.
type CommandTask struct {
	ID          string
	ChatID      int64
	CommandName string
	Stage       TaskStage
	DefectID    int64 // valid from StageSelectingStatus on
	CreatedAt   time.Time
	ExpiresAt   time.Time
	ClosedAt    *time.Time
}

// IsOpen reports whether the task is still open
func (t *CommandTask) IsOpen() bool {
	return t.ClosedAt == nil
}

// IsExpired reports whether the task's expiration time has passed
func (t *CommandTask) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// SelectDefect records the chosen defect and moves the task to the status
// selection stage. Only valid while the task is open and selecting a defect.
func (t *CommandTask) SelectDefect(defectID int64) error {
	if !t.IsOpen() {
		return fmt.Errorf("task %s is closed", t.ID)
	}
	if t.Stage != StageSelectingDefect {
		return fmt.Errorf("task %s is not selecting a defect (stage %d)", t.ID, int(t.Stage))
	}
	t.DefectID = defectID
	t.Stage = StageSelectingStatus
	return nil
}

// Close stamps the closing time. Closing an already closed task is a no-op so
// repeated settling never re-stamps it.
func (t *CommandTask) Close(now time.Time) {
	if t.ClosedAt != nil {
		return
	}
	closed := now
	t.ClosedAt = &closed
}
