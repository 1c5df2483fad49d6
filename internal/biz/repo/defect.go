package repo

import (
	"context"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
)

// DefectRepo is the defect repository interface
type DefectRepo interface {
	// GetByID gets a defect by id, nil when absent
	GetByID(ctx context.Context, id int64) (*domain.Defect, error)

	// ListOpenAssigned lists the open defects assigned to a chat
	ListOpenAssigned(ctx context.Context, chatID int64) ([]*domain.Defect, error)

	// Add saves a brand new defect and fills in the generated id
	Add(ctx context.Context, defect *domain.Defect) error

	// Update updates an existing defect
	Update(ctx context.Context, defect *domain.Defect) error
}
