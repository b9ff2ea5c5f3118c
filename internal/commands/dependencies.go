package commands

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/diogo/redactchat/internal/api"
	"github.com/diogo/redactchat/internal/conversation"
	"github.com/diogo/redactchat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(orch *conversation.Orchestrator, opts tui.Options) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client replaces the HTTP pipeline client built from the configuration.
	Client api.PipelineClient

	// TUI is the terminal user interface.
	TUI TUIInterface

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	StdinIsTerminal  func() bool
	StdoutIsTerminal func() bool

	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(orch *conversation.Orchestrator, opts tui.Options) error {
	return tui.RunChat(orch, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:    &DefaultTUI{},
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		StdinIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		StdoutIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
		Clipboard: clipboard.WriteAll,
	}
}

// withDefaults fills the fields a test left empty
func (d *Dependencies) withDefaults() *Dependencies {
	def := NewDependencies()
	if d == nil {
		return def
	}
	out := *d
	if out.TUI == nil {
		out.TUI = def.TUI
	}
	if out.Stdin == nil {
		out.Stdin = def.Stdin
	}
	if out.Stdout == nil {
		out.Stdout = def.Stdout
	}
	if out.Stderr == nil {
		out.Stderr = def.Stderr
	}
	if out.StdinIsTerminal == nil {
		out.StdinIsTerminal = def.StdinIsTerminal
	}
	if out.StdoutIsTerminal == nil {
		out.StdoutIsTerminal = def.StdoutIsTerminal
	}
	if out.Clipboard == nil {
		out.Clipboard = def.Clipboard
	}
	return &out
}
