package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
	"github.com/digichlist/digichlist-bot/internal/biz/repo"
	"github.com/digichlist/digichlist-bot/internal/conf"
	"github.com/digichlist/digichlist-bot/telegram"
)

// Dispatcher is the top-level entry point for inbound updates:
// classify, resolve the command, delegate. Failures are terminal for the
// current update only; the loop keeps serving other chats.
type Dispatcher struct {
	registry *Registry
	messages repo.MessageRepo
	texts    *conf.Messages
	log      *zap.Logger
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(registry *Registry, messages repo.MessageRepo, texts *conf.Messages, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		messages: messages,
		texts:    texts,
		log:      log,
	}
}

// Dispatch processes one transport update end to end
func (d *Dispatcher) Dispatch(ctx context.Context, update *telegram.Update) {
	env, err := Classify(update)
	if err != nil {
		if errors.Is(err, ErrMalformedText) {
			d.log.Error("the command message was incorrect",
				zap.Int64("chat_id", env.ChatID),
				zap.String("text", env.Text))
			_ = d.messages.SendText(ctx, env.ChatID, d.texts.InvalidCommand)
			return
		}
		d.log.Error("update was invalid", zap.Error(err))
		return
	}

	token := env.Text
	if env.IsCallback() {
		callback, err := domain.DecodeCallback(env.CallbackData)
		if err != nil {
			d.log.Error("could not decode callback payload",
				zap.Int64("chat_id", env.ChatID),
				zap.String("payload", env.CallbackData),
				zap.Error(err))
			_ = d.messages.SendText(ctx, env.ChatID, d.texts.SomethingWentWrong)
			return
		}
		token = callback.Command
	}

	command, err := d.registry.Resolve(token)
	if err != nil {
		d.log.Error("no such command",
			zap.Int64("chat_id", env.ChatID),
			zap.String("command", token))
		_ = d.messages.SendText(ctx, env.ChatID, fmt.Sprintf(d.texts.UnknownCommand, token))
		return
	}

	if err := command.Process(ctx, env); err != nil {
		// Fail safe, not fail loud: an unanticipated handler error is logged
		// and swallowed, never surfaced or allowed to take the loop down.
		d.log.Error("command execution failed",
			zap.Int64("chat_id", env.ChatID),
			zap.String("command", token),
			zap.Error(err))
	}
}
