package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// Client is a long-polling Telegram Bot API client
type Client struct {
	token       string
	baseURL     string
	httpClient  *http.Client
	pollTimeout int // seconds, long poll
	rowWidth    int // buttons per keyboard row
	offset      int64
	onUpdate    func(*Update)
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewClient creates a new Bot API client
func NewClient(token string, pollTimeoutSeconds, buttonsPerRow int) *Client {
	return &Client{
		token:       token,
		baseURL:     defaultBaseURL,
		pollTimeout: pollTimeoutSeconds,
		rowWidth:    buttonsPerRow,
		httpClient: &http.Client{
			// Must outlive the long poll window
			Timeout: time.Duration(pollTimeoutSeconds+15) * time.Second,
		},
	}
}

// OnUpdate sets the inbound update handler
func (c *Client) OnUpdate(handler func(*Update)) {
	c.onUpdate = handler
}

// Start runs the long-poll loop, blocking until Stop or a fatal error
func (c *Client) Start() error {
	c.ctx, c.cancel = context.WithCancel(context.Background())

	for {
		select {
		case <-c.ctx.Done():
			return nil
		default:
		}

		updates, err := c.getUpdates(c.ctx)
		if err != nil {
			if c.ctx.Err() != nil {
				return nil
			}
			// brief pause before retrying the poll
			time.Sleep(time.Second)
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= c.offset {
				c.offset = update.UpdateID + 1
			}
			if c.onUpdate != nil {
				c.onUpdate(update)
			}
		}
	}
}

// Stop stops the long-poll loop
func (c *Client) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Client) getUpdates(ctx context.Context) ([]*Update, error) {
	payload := map[string]any{
		"offset":          c.offset,
		"timeout":         c.pollTimeout,
		"allowed_updates": []string{"message", "callback_query"},
	}

	var updates []*Update
	if err := c.call(ctx, "getUpdates", payload, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SendText sends a plain text message
func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	payload := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	return c.call(ctx, "sendMessage", payload, nil)
}

// SendKeyboard sends text with an inline keyboard and returns the message id.
// Buttons are grouped into rows of the configured row width.
func (c *Client) SendKeyboard(ctx context.Context, chatID int64, text string, buttons []Button) (int, error) {
	payload := map[string]any{
		"chat_id":      chatID,
		"text":         text,
		"reply_markup": c.keyboard(buttons),
	}
	var sent Message
	if err := c.call(ctx, "sendMessage", payload, &sent); err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// EditMessageText replaces a message's text and keyboard. Empty buttons
// removes the keyboard.
func (c *Client) EditMessageText(ctx context.Context, chatID int64, messageID int, text string, buttons []Button) error {
	payload := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
	}
	if len(buttons) > 0 {
		payload["reply_markup"] = c.keyboard(buttons)
	}
	return c.call(ctx, "editMessageText", payload, nil)
}

// DeleteMessage deletes a message by id
func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	payload := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
	}
	return c.call(ctx, "deleteMessage", payload, nil)
}

// AnswerCallbackQuery acknowledges a button press so the client stops showing
// its loading state
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID string) error {
	payload := map[string]any{
		"callback_query_id": callbackID,
	}
	return c.call(ctx, "answerCallbackQuery", payload, nil)
}

// keyboard groups a flat button list into rows of rowWidth
func (c *Client) keyboard(buttons []Button) inlineKeyboardMarkup {
	width := c.rowWidth
	if width <= 0 {
		width = 1
	}

	var rows [][]inlineKeyboardButton
	for i := 0; i < len(buttons); i += width {
		end := i + width
		if end > len(buttons) {
			end = len(buttons)
		}
		var row []inlineKeyboardButton
		for _, b := range buttons[i:end] {
			row = append(row, inlineKeyboardButton{Text: b.Label, CallbackData: b.Data})
		}
		rows = append(rows, row)
	}
	return inlineKeyboardMarkup{InlineKeyboard: rows}
}

// apiResponse is the Bot API envelope
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

// call posts a method to the Bot API and decodes the result into out
func (c *Client) call(ctx context.Context, method string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("%s error: %s", method, apiResp.Description)
	}

	if out != nil && len(apiResp.Result) > 0 {
		if err := json.Unmarshal(apiResp.Result, out); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
	}
	return nil
}
