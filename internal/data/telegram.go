package data

import (
	"context"

	"github.com/digichlist/digichlist-bot/internal/biz/repo"
	"github.com/digichlist/digichlist-bot/telegram"
)

// telegramRepo implements the outbound message repository over the Bot API
// client
type telegramRepo struct {
	client *telegram.Client
}

// NewTelegramRepo creates a new Telegram-backed message repository
func NewTelegramRepo(client *telegram.Client) repo.MessageRepo {
	return &telegramRepo{client: client}
}

// SendText sends a plain text message
func (r *telegramRepo) SendText(ctx context.Context, chatID int64, text string) error {
	return r.client.SendText(ctx, chatID, text)
}

// SendKeyboard sends text with selectable options
func (r *telegramRepo) SendKeyboard(ctx context.Context, chatID int64, text string, buttons []repo.Button) (int, error) {
	return r.client.SendKeyboard(ctx, chatID, text, toTelegramButtons(buttons))
}

// EditText replaces a message's text and options
func (r *telegramRepo) EditText(ctx context.Context, chatID int64, messageID int, text string, buttons []repo.Button) error {
	return r.client.EditMessageText(ctx, chatID, messageID, text, toTelegramButtons(buttons))
}

// DeleteMessage deletes a message by id
func (r *telegramRepo) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	return r.client.DeleteMessage(ctx, chatID, messageID)
}

func toTelegramButtons(buttons []repo.Button) []telegram.Button {
	var result []telegram.Button
	for _, b := range buttons {
		result = append(result, telegram.Button{Label: b.Label, Data: b.Data})
	}
	return result
}
