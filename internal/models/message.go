package models

import "time"

// Message is one entry of a conversation. Messages are values; once
// appended to a session they are never modified.
type Message struct {
	Text      string    `json:"text"`
	IsUser    bool      `json:"isUser"`
	Error     bool      `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUserMessage creates a message typed by the user
func NewUserMessage(text string, at time.Time) Message {
	return Message{Text: text, IsUser: true, Timestamp: at}
}

// NewBotMessage creates a successful reply from the pipeline
func NewBotMessage(text string, at time.Time) Message {
	return Message{Text: text, Timestamp: at}
}

// NewErrorMessage creates a failed reply. The text is prefixed with
// "Error: " so it reads the same wherever it is displayed.
func NewErrorMessage(err error, at time.Time) Message {
	return Message{Text: "Error: " + err.Error(), Error: true, Timestamp: at}
}

// Role returns "user" or "assistant"
func (m Message) Role() string {
	if m.IsUser {
		return RoleUser
	}
	return RoleAssistant
}

// ISOTimestamp returns the timestamp in RFC 3339 form
func (m Message) ISOTimestamp() string {
	return m.Timestamp.Format(time.RFC3339Nano)
}
