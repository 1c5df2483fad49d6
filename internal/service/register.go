package service

import (
	"context"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
	"github.com/digichlist/digichlist-bot/internal/biz/repo"
	"github.com/digichlist/digichlist-bot/internal/biz/usecase"
	"github.com/digichlist/digichlist-bot/internal/conf"
)

// RegisterMeCommand stores a registration request
type RegisterMeCommand struct {
	users    *usecase.UserUsecase
	messages repo.MessageRepo
	texts    *conf.Messages
}

// NewRegisterMeCommand creates the /registerme handler
func NewRegisterMeCommand(users *usecase.UserUsecase, messages repo.MessageRepo, texts *conf.Messages) *RegisterMeCommand {
	return &RegisterMeCommand{users: users, messages: messages, texts: texts}
}

func (c *RegisterMeCommand) Process(ctx context.Context, env domain.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	outcome, err := c.users.Register(ctx, env)
	if err != nil {
		return err
	}

	var reply string
	switch outcome {
	case usecase.RegistrationRequested:
		reply = c.texts.RegistrationSent
	case usecase.RegistrationPending:
		reply = c.texts.RegistrationPending
	default:
		reply = c.texts.RegistrationDone
	}
	return c.messages.SendText(ctx, env.ChatID, reply)
}
