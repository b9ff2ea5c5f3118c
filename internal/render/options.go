// Package render turns bot replies into terminal markdown and holds the
// chat palettes.
package render

import (
	"fmt"
	"os"

	"github.com/diogo/redactchat/internal/config"
)

// EnvGlamourStyle overrides the configured markdown style
const EnvGlamourStyle = "GLAMOUR_STYLE"

// Options configures the markdown renderer
type Options struct {
	// Width is the word-wrap column
	Width int

	// Style is a glamour built-in ("dark", "light", "notty", ...) or a path to a JSON style
	Style string

	EnableEmoji      bool
	PreserveNewLines bool
	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	md := config.DefaultMarkdownConfig()
	return Options{
		Width:            80,
		Style:            md.Style,
		EnableEmoji:      md.EnableEmoji,
		PreserveNewLines: md.PreserveNewLines,
		TableWrap:        md.TableWrap,
		InlineTableLinks: md.InlineTableLinks,
	}
}

// FromConfig builds options from the markdown section of the config.
// GLAMOUR_STYLE wins over the configured style.
func FromConfig(md config.MarkdownConfig, width int) Options {
	opts := DefaultOptions().WithEmoji(md.EnableEmoji)
	if md.Style != "" {
		opts = opts.WithStyle(md.Style)
	}
	opts.PreserveNewLines = md.PreserveNewLines
	opts.TableWrap = md.TableWrap
	opts.InlineTableLinks = md.InlineTableLinks
	if style := os.Getenv(EnvGlamourStyle); style != "" {
		opts = opts.WithStyle(style)
	}
	return opts.WithWidth(width)
}

// WithWidth returns a copy with the wrap column set. Non-positive widths
// keep the current value.
func (o Options) WithWidth(width int) Options {
	if width > 0 {
		o.Width = width
	}
	return o
}

// WithStyle returns a copy with the style set
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// WithEmoji returns a copy with emoji conversion toggled
func (o Options) WithEmoji(enabled bool) Options {
	o.EnableEmoji = enabled
	return o
}

// key identifies a renderer configuration in the pool
func (o Options) key() string {
	return fmt.Sprintf("%s|%d|%t|%t|%t|%t",
		o.Style, o.Width, o.EnableEmoji, o.PreserveNewLines, o.TableWrap, o.InlineTableLinks)
}
