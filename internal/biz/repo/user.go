package repo

import (
	"context"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
)

// UserRepo is the user repository interface
type UserRepo interface {
	// GetByChatID gets a user by chat id, nil when absent
	GetByChatID(ctx context.Context, chatID int64) (*domain.User, error)

	// Save saves a brand new user and fills in the generated id
	Save(ctx context.Context, user *domain.User) error
}
