package service

import (
	"context"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
	"github.com/digichlist/digichlist-bot/internal/biz/repo"
	"github.com/digichlist/digichlist-bot/internal/biz/usecase"
	"github.com/digichlist/digichlist-bot/internal/conf"
)

// CancelCommand closes the chat's ongoing command task, expired or not
type CancelCommand struct {
	tasks    *usecase.TaskUsecase
	messages repo.MessageRepo
	texts    *conf.Messages
}

// NewCancelCommand creates the /cancel handler
func NewCancelCommand(tasks *usecase.TaskUsecase, messages repo.MessageRepo, texts *conf.Messages) *CancelCommand {
	return &CancelCommand{tasks: tasks, messages: messages, texts: texts}
}

func (c *CancelCommand) Process(ctx context.Context, env domain.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	canceled, err := c.tasks.Cancel(ctx, env.ChatID)
	if err != nil {
		return err
	}
	if !canceled {
		return c.messages.SendText(ctx, env.ChatID, c.texts.NothingToCancel)
	}
	return c.messages.SendText(ctx, env.ChatID, c.texts.Canceled)
}
