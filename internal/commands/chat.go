package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/redactchat/internal/conversation"
	"github.com/diogo/redactchat/internal/render"
	"github.com/diogo/redactchat/internal/tui"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies, g *globalOptions) *cobra.Command {
	deps = deps.withDefaults()
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with the REDACTOR assistant.

Every message is redacted before it is sent to the query service.
Type /help for commands; 'exit', '/quit', Esc or Ctrl+C end the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(deps, g)
		},
	}
}

func runChat(deps *Dependencies, g *globalOptions) error {
	rt, err := openRuntime(deps, g)
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.cfg.TUITheme != "" && !tui.SetTheme(rt.cfg.TUITheme) {
		fmt.Fprintf(deps.Stderr, "Warning: unknown theme %q, using %s\n", rt.cfg.TUITheme, render.CurrentPalette().Name)
	}

	orch := conversation.New(rt.client, conversation.WithLogger(rt.logger))
	defer orch.Close()

	return deps.TUI.RunChat(orch, tui.Options{
		Endpoints: rt.cfg.Endpoints,
		Render:    render.FromConfig(rt.cfg.Markdown, 0),
		Clipboard: deps.Clipboard,
	})
}
