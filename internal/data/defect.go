package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
	"github.com/digichlist/digichlist-bot/internal/biz/repo"
)

// defectRepo implements the Defect repository
type defectRepo struct {
	db *sql.DB
}

// NewDefectRepo creates a new Defect repository
func NewDefectRepo(db *sql.DB) repo.DefectRepo {
	return &defectRepo{db: db}
}

// GetByID gets a defect by id
func (r *defectRepo) GetByID(ctx context.Context, id int64) (*domain.Defect, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, room_number, description, created_by, created_at, status,
		       assigned_chat_id, closed_at
		FROM defects
		WHERE id = ?
	`, id)

	defect, err := scanDefect(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query defect: %w", err)
	}
	return defect, nil
}

// ListOpenAssigned lists the open defects assigned to a chat
func (r *defectRepo) ListOpenAssigned(ctx context.Context, chatID int64) ([]*domain.Defect, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, room_number, description, created_by, created_at, status,
		       assigned_chat_id, closed_at
		FROM defects
		WHERE assigned_chat_id = ? AND closed_at IS NULL
		ORDER BY id
	`, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list defects: %w", err)
	}
	defer rows.Close()

	var defects []*domain.Defect
	for rows.Next() {
		defect, err := scanDefect(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan defect: %w", err)
		}
		defects = append(defects, defect)
	}
	return defects, rows.Err()
}

// Add saves a brand new defect
func (r *defectRepo) Add(ctx context.Context, defect *domain.Defect) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO defects (room_number, description, created_by, created_at,
		                     status, assigned_chat_id, closed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		defect.RoomNumber,
		defect.Description,
		defect.CreatedBy,
		defect.CreatedAt.Unix(),
		int(defect.Status),
		defect.AssignedChatID,
		unixOrNil(defect.ClosedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save defect: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		defect.ID = id
	}
	return nil
}

// Update updates an existing defect
func (r *defectRepo) Update(ctx context.Context, defect *domain.Defect) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE defects
		SET room_number = ?, description = ?, status = ?, assigned_chat_id = ?, closed_at = ?
		WHERE id = ?
	`,
		defect.RoomNumber,
		defect.Description,
		int(defect.Status),
		defect.AssignedChatID,
		unixOrNil(defect.ClosedAt),
		defect.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update defect: %w", err)
	}
	return nil
}

func scanDefect(scan func(...any) error) (*domain.Defect, error) {
	var defect domain.Defect
	var createdAt int64
	var status int
	var closedAt sql.NullInt64
	err := scan(&defect.ID, &defect.RoomNumber, &defect.Description, &defect.CreatedBy,
		&createdAt, &status, &defect.AssignedChatID, &closedAt)
	if err != nil {
		return nil, err
	}

	defect.CreatedAt = time.Unix(createdAt, 0)
	defect.Status = domain.DefectStatus(status)
	if closedAt.Valid {
		closed := time.Unix(closedAt.Int64, 0)
		defect.ClosedAt = &closed
	}
	return &defect, nil
}

func unixOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}
