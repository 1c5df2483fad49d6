package usecase

import (
	"context"
	"fmt"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
	"github.com/digichlist/digichlist-bot/internal/biz/repo"
)

// AuthUsecase checks capability flags before a command proceeds.
// It is a pure read; the denial notice is the caller's responsibility.
type AuthUsecase struct {
	users repo.UserRepo
}

// NewAuthUsecase creates a new authorization usecase
func NewAuthUsecase(users repo.UserRepo) *AuthUsecase {
	return &AuthUsecase{users: users}
}

// Authorize reports whether the chat's user holds the capability. An absent
// user, an absent role, and a missing flag all deny the same way.
func (uc *AuthUsecase) Authorize(ctx context.Context, chatID int64, c domain.Capability) (bool, error) {
	user, err := uc.users.GetByChatID(ctx, chatID)
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return false, nil
	}
	return user.Can(c), nil
}
