package service

import (
	"errors"
	"strings"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
	"github.com/digichlist/digichlist-bot/internal/conf"
	"github.com/digichlist/digichlist-bot/telegram"
)

// ErrEmptyUpdate means the update carried no usable envelope at all.
// Logged, never reported to the user.
var ErrEmptyUpdate = errors.New("update carries no usable message")

// ErrMalformedText means the text failed low-level validation. The chat id is
// known, so the dispatcher sends the invalid-command notice.
var ErrMalformedText = errors.New("malformed command text")

// Classify validates a transport update and normalizes it into the canonical
// envelope. For ErrMalformedText the returned envelope has a valid ChatID.
func Classify(update *telegram.Update) (domain.Envelope, error) {
	if update == nil {
		return domain.Envelope{}, ErrEmptyUpdate
	}

	if msg := update.Message; msg != nil {
		return classifyText(msg)
	}
	if query := update.CallbackQuery; query != nil {
		return classifyCallback(query)
	}
	return domain.Envelope{}, ErrEmptyUpdate
}

func classifyText(msg *telegram.Message) (domain.Envelope, error) {
	if msg.Chat == nil || msg.Chat.ID < 0 {
		return domain.Envelope{}, ErrEmptyUpdate
	}

	env := domain.Envelope{
		ChatID: msg.Chat.ID,
		Text:   msg.Text,
	}
	if msg.From != nil {
		env.FirstName = msg.From.FirstName
		env.LastName = msg.From.LastName
		env.Username = msg.From.Username
	}

	// Low-level validation: reject malformed free text before any command
	// logic runs. Only the defect submission command legitimately carries
	// multi-token arguments.
	text := msg.Text
	if strings.TrimSpace(text) == "" {
		return env, ErrMalformedText
	}
	if len(strings.Fields(text)) > 1 && !strings.Contains(text, conf.CommandNewDefect) {
		return env, ErrMalformedText
	}

	return env, nil
}

func classifyCallback(query *telegram.CallbackQuery) (domain.Envelope, error) {
	if query.From == nil || query.From.ID < 0 || query.Data == "" {
		return domain.Envelope{}, ErrEmptyUpdate
	}

	env := domain.Envelope{
		ChatID:       query.From.ID,
		CallbackData: query.Data,
		FirstName:    query.From.FirstName,
		LastName:     query.From.LastName,
		Username:     query.From.Username,
	}
	if query.Message != nil {
		env.MessageID = query.Message.MessageID
	}
	return env, nil
}
