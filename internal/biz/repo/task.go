package repo

import (
	"context"
	"errors"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
)

// ErrTaskConflict is returned when a second open task would be created for a
// chat. The store enforces the single-open-task invariant with a uniqueness
// constraint, so two concurrent begins cannot both win.
var ErrTaskConflict = errors.New("another command task is already open for this chat")

// TaskRepo is the command task repository interface
type TaskRepo interface {
	// GetOpen gets the chat's open task (ClosedAt == nil), nil when none
	GetOpen(ctx context.Context, chatID int64) (*domain.CommandTask, error)

	// Add saves a brand new task. Returns ErrTaskConflict when the chat
	// already has an open one.
	Add(ctx context.Context, task *domain.CommandTask) error

	// Update updates an existing task
	Update(ctx context.Context, task *domain.CommandTask) error
}
