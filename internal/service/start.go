package service

import (
	"context"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
	"github.com/digichlist/digichlist-bot/internal/biz/repo"
	"github.com/digichlist/digichlist-bot/internal/conf"
)

// StartCommand replies with the welcome text
type StartCommand struct {
	messages repo.MessageRepo
	texts    *conf.Messages
}

// NewStartCommand creates the /start handler
func NewStartCommand(messages repo.MessageRepo, texts *conf.Messages) *StartCommand {
	return &StartCommand{messages: messages, texts: texts}
}

func (c *StartCommand) Process(ctx context.Context, env domain.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.messages.SendText(ctx, env.ChatID, c.texts.Welcome)
}
