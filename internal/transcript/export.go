// Package transcript exports a chat session to Markdown or JSON.
package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diogo/redactchat/internal/models"
)

// Title heads every exported transcript
const Title = "REDACTOR Assistant"

// Format is an export format
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Session is the exported view of a conversation
type Session struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	ExportedAt time.Time        `json:"exported_at"`
	Messages   []models.Message `json:"messages"`
}

// New snapshots messages into a Session
func New(id string, messages []models.Message, at time.Time) Session {
	msgs := make([]models.Message, len(messages))
	copy(msgs, messages)
	return Session{ID: id, Title: Title, ExportedAt: at, Messages: msgs}
}

// FormatForPath picks JSON for .json files and Markdown otherwise
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatMarkdown
}

// Markdown renders the session as a Markdown document
func (s Session) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(s.Title)
	sb.WriteString("\n\n")
	sb.WriteString("**Session:** ")
	sb.WriteString(s.ID)
	sb.WriteString("\n")
	sb.WriteString("**Exported:** ")
	sb.WriteString(s.ExportedAt.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	if len(s.Messages) > 0 {
		sb.WriteString("**Started:** ")
		sb.WriteString(s.Messages[0].ISOTimestamp())
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("**Messages:** %d\n\n---\n\n", len(s.Messages)))

	for i, msg := range s.Messages {
		role := "User"
		if !msg.IsUser {
			role = "Assistant"
		}
		if msg.Error {
			role += " (error)"
		}

		sb.WriteString("## ")
		sb.WriteString(role)
		if !msg.Timestamp.IsZero() {
			sb.WriteString(" (")
			sb.WriteString(msg.Timestamp.Format("15:04:05"))
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")

		if msg.Error {
			sb.WriteString("> ")
		}
		sb.WriteString(msg.Text)
		sb.WriteString("\n")

		if i < len(s.Messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

// JSON renders the session as indented JSON
func (s Session) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Encode renders the session in the given format
func (s Session) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return s.JSON()
	case FormatMarkdown:
		return []byte(s.Markdown()), nil
	default:
		return nil, fmt.Errorf("unknown transcript format %q", format)
	}
}

// WriteFile writes the session to path, choosing the format from the
// extension. Parent directories are created as needed.
func (s Session) WriteFile(path string) error {
	data, err := s.Encode(FormatForPath(path))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return nil
}
