package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
	"github.com/digichlist/digichlist-bot/internal/biz/repo"
	"github.com/digichlist/digichlist-bot/internal/biz/usecase"
	"github.com/digichlist/digichlist-bot/internal/conf"
)

// NewDefectCommand publishes a defect from "/newdefect <room> <description>"
// free text in a single shot.
type NewDefectCommand struct {
	auth     *usecase.AuthUsecase
	defects  *usecase.DefectUsecase
	messages repo.MessageRepo
	texts    *conf.Messages
}

// NewNewDefectCommand creates the /newdefect handler
func NewNewDefectCommand(auth *usecase.AuthUsecase, defects *usecase.DefectUsecase, messages repo.MessageRepo, texts *conf.Messages) *NewDefectCommand {
	return &NewDefectCommand{auth: auth, defects: defects, messages: messages, texts: texts}
}

func (c *NewDefectCommand) Process(ctx context.Context, env domain.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	allowed, err := c.auth.Authorize(ctx, env.ChatID, domain.CapabilityAddDefects)
	if err != nil {
		return err
	}
	if !allowed {
		return c.messages.SendText(ctx, env.ChatID, c.texts.NoPermission)
	}

	defect, err := c.defects.Submit(ctx, env.ChatID, env.Text)
	if errors.Is(err, usecase.ErrInvalidSubmission) {
		return c.messages.SendText(ctx, env.ChatID, c.texts.DefectFormat)
	}
	if err != nil {
		return err
	}

	return c.messages.SendText(ctx, env.ChatID, fmt.Sprintf(c.texts.DefectSaved, defect.RoomNumber))
}
