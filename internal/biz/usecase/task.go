package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
	"github.com/digichlist/digichlist-bot/internal/biz/repo"
)

// SettleResult is the outcome of checking a chat's ongoing task
type SettleResult int

const (
	// SettleClear means the chat has no live task and may start a new one
	SettleClear SettleResult = iota
	// SettleBlocked means an unexpired task is open; the caller must not
	// begin a new one
	SettleBlocked
)

// TaskUsecase enforces the single-open-task invariant and drives the
// per-chat conversation state. Expiration is lazy: an expired task is closed
// when the chat is next looked at, never by a background sweep.
type TaskUsecase struct {
	tasks repo.TaskRepo
	ttl   time.Duration
	now   func() time.Time
}

// NewTaskUsecase creates a new task usecase
func NewTaskUsecase(tasks repo.TaskRepo, ttl time.Duration) *TaskUsecase {
	return &TaskUsecase{
		tasks: tasks,
		ttl:   ttl,
		now:   time.Now,
	}
}

// TrySettleOngoing reads the chat's open task, closing it in passing when it
// has expired. Clear means a new task may begin; Blocked means a live task
// still owns the chat.
func (uc *TaskUsecase) TrySettleOngoing(ctx context.Context, chatID int64) (SettleResult, error) {
	task, err := uc.tasks.GetOpen(ctx, chatID)
	if err != nil {
		return SettleClear, fmt.Errorf("get open task: %w", err)
	}
	if task == nil {
		return SettleClear, nil
	}

	now := uc.now()
	if task.IsExpired(now) {
		task.Close(now)
		if err := uc.tasks.Update(ctx, task); err != nil {
			return SettleClear, fmt.Errorf("close expired task: %w", err)
		}
		return SettleClear, nil
	}

	return SettleBlocked, nil
}

// Begin creates and persists a new task for the chat. Only valid after
// TrySettleOngoing returned Clear; a concurrent begin racing past the settle
// check loses with repo.ErrTaskConflict.
func (uc *TaskUsecase) Begin(ctx context.Context, chatID int64, commandName string) (*domain.CommandTask, error) {
	now := uc.now()
	task := &domain.CommandTask{
		ID:          uuid.NewString(),
		ChatID:      chatID,
		CommandName: commandName,
		Stage:       domain.StageSelectingDefect,
		CreatedAt:   now,
		ExpiresAt:   now.Add(uc.ttl),
	}
	if err := uc.tasks.Add(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Open gets the chat's open task, nil when none
func (uc *TaskUsecase) Open(ctx context.Context, chatID int64) (*domain.CommandTask, error) {
	return uc.tasks.GetOpen(ctx, chatID)
}

// SelectDefect records the chosen defect on the task and persists the
// transition before anything acts on it.
func (uc *TaskUsecase) SelectDefect(ctx context.Context, task *domain.CommandTask, defectID int64) error {
	if err := task.SelectDefect(defectID); err != nil {
		return err
	}
	if err := uc.tasks.Update(ctx, task); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Complete closes the task and persists it. Called before the business effect
// is applied so the conversation is terminated even if the effect fails.
func (uc *TaskUsecase) Complete(ctx context.Context, task *domain.CommandTask) error {
	task.Close(uc.now())
	if err := uc.tasks.Update(ctx, task); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Cancel closes the chat's open task regardless of expiration. False means
// there was nothing to cancel.
func (uc *TaskUsecase) Cancel(ctx context.Context, chatID int64) (bool, error) {
	task, err := uc.tasks.GetOpen(ctx, chatID)
	if err != nil {
		return false, fmt.Errorf("get open task: %w", err)
	}
	if task == nil {
		return false, nil
	}
	task.Close(uc.now())
	if err := uc.tasks.Update(ctx, task); err != nil {
		return false, fmt.Errorf("update task: %w", err)
	}
	return true, nil
}
