package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
	"github.com/digichlist/digichlist-bot/internal/biz/repo"
)

// taskRepo implements the CommandTask repository
type taskRepo struct {
	db *sql.DB
}

// NewTaskRepo creates a new CommandTask repository
func NewTaskRepo(db *sql.DB) repo.TaskRepo {
	return &taskRepo{db: db}
}

// GetOpen gets the chat's open task
func (r *taskRepo) GetOpen(ctx context.Context, chatID int64) (*domain.CommandTask, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, chat_id, command_name, stage, defect_id, created_at, expires_at, closed_at
		FROM command_tasks
		WHERE chat_id = ? AND closed_at IS NULL
	`, chatID)

	var task domain.CommandTask
	var stage int
	var createdAt, expiresAt int64
	var closedAt sql.NullInt64
	err := row.Scan(&task.ID, &task.ChatID, &task.CommandName, &stage,
		&task.DefectID, &createdAt, &expiresAt, &closedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query task: %w", err)
	}

	task.Stage = domain.TaskStage(stage)
	task.CreatedAt = time.Unix(createdAt, 0)
	task.ExpiresAt = time.Unix(expiresAt, 0)
	if closedAt.Valid {
		closed := time.Unix(closedAt.Int64, 0)
		task.ClosedAt = &closed
	}

	return &task, nil
}

// Add saves a brand new task. The partial unique index on open tasks turns a
// racing second insert into repo.ErrTaskConflict.
func (r *taskRepo) Add(ctx context.Context, task *domain.CommandTask) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO command_tasks (id, chat_id, command_name, stage, defect_id,
		                           created_at, expires_at, closed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		task.ID,
		task.ChatID,
		task.CommandName,
		int(task.Stage),
		task.DefectID,
		task.CreatedAt.Unix(),
		task.ExpiresAt.Unix(),
		unixOrNil(task.ClosedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return repo.ErrTaskConflict
		}
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// Update updates an existing task
func (r *taskRepo) Update(ctx context.Context, task *domain.CommandTask) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE command_tasks
		SET stage = ?, defect_id = ?, expires_at = ?, closed_at = ?
		WHERE id = ?
	`,
		int(task.Stage),
		task.DefectID,
		task.ExpiresAt.Unix(),
		unixOrNil(task.ClosedAt),
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}
