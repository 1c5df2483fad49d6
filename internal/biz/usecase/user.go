package usecase

import (
	"context"
	"fmt"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
	"github.com/digichlist/digichlist-bot/internal/biz/repo"
)

// RegistrationOutcome is the result of a registration request
type RegistrationOutcome int

const (
	// RegistrationRequested means a new registration request was stored
	RegistrationRequested RegistrationOutcome = iota
	// RegistrationPending means the user already requested and awaits review
	RegistrationPending
	// RegistrationDone means the user is already registered
	RegistrationDone
)

// UserUsecase handles user registration. Registration is the only place a
// user record is created; role assignment happens outside the bot.
type UserUsecase struct {
	users repo.UserRepo
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(users repo.UserRepo) *UserUsecase {
	return &UserUsecase{users: users}
}

// Register stores a registration request for the chat unless one exists
func (uc *UserUsecase) Register(ctx context.Context, env domain.Envelope) (RegistrationOutcome, error) {
	user, err := uc.users.GetByChatID(ctx, env.ChatID)
	if err != nil {
		return 0, fmt.Errorf("get user: %w", err)
	}
	if user != nil {
		if user.IsRegistered {
			return RegistrationDone, nil
		}
		return RegistrationPending, nil
	}

	user = &domain.User{
		ChatID:    env.ChatID,
		FirstName: orNA(env.FirstName),
		LastName:  orNA(env.LastName),
		Username:  orNA(env.Username),
	}
	if err := uc.users.Save(ctx, user); err != nil {
		return 0, fmt.Errorf("save user: %w", err)
	}
	return RegistrationRequested, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
