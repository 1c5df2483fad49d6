package domain

// Envelope is the canonical inbound message: either plain text or a callback
// payload from a selection button, never neither. The classifier is the only
// producer.
type Envelope struct {
	ChatID       int64
	MessageID    int    // message the callback originates from, 0 for plain text
	Text         string // plain text, empty for callbacks
	CallbackData string // raw continuation-token payload, empty for plain text
	FirstName    string
	LastName     string
	Username     string
}

// IsCallback reports whether the envelope carries a continuation-token payload
func (e *Envelope) IsCallback() bool {
	return e.CallbackData != ""
}
