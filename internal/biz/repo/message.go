package repo

import "context"

// Button is one labeled selectable option. Data carries the encoded
// continuation token back when the option is chosen.
type Button struct {
	Label string
	Data  string
}

// MessageRepo is the outbound transport interface
type MessageRepo interface {
	// SendText sends a plain text message to a chat
	SendText(ctx context.Context, chatID int64, text string) error

	// SendKeyboard sends text with selectable options and returns the sent
	// message id. The transport groups buttons into rows of its configured
	// row width.
	SendKeyboard(ctx context.Context, chatID int64, text string, buttons []Button) (int, error)

	// EditText replaces a message's text and options. Empty buttons removes
	// the keyboard.
	EditText(ctx context.Context, chatID int64, messageID int, text string, buttons []Button) error

	// DeleteMessage deletes a message by id
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}
