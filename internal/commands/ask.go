package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/diogo/redactchat/internal/conversation"
	"github.com/diogo/redactchat/internal/render"
	"github.com/diogo/redactchat/internal/tui"
)

var (
	redactedLabelStyle = lipgloss.NewStyle().
				Foreground(colorTextDim).
				Bold(true)

	redactedTextStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderLeft(true).
				BorderForeground(colorTextDim).
				Foreground(colorTextDim).
				PaddingLeft(1)

	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginBottom(1)
)

// askOptions are the flags of a one-shot run
type askOptions struct {
	file   string
	output string
	raw    bool
	copy   bool
}

func (a *askOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&a.file, "file", "f", "", "Read text from file")
	cmd.Flags().StringVarP(&a.output, "output", "o", "", "Save the answer to file")
	cmd.Flags().BoolVar(&a.raw, "raw", false, "Print only the answer, undecorated")
	cmd.Flags().BoolVar(&a.copy, "copy", false, "Copy the answer to the clipboard")
}

// NewAskCmd creates the one-shot command
func NewAskCmd(deps *Dependencies, g *globalOptions) *cobra.Command {
	deps = deps.withDefaults()
	ask := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask [text]",
		Short: "Redact text and query the assistant once",
		Long: `Send text to the redaction service, print the redacted text, then send
the redacted text to the query service and print the answer.

Text comes from the argument, --file, or stdin. With none of those on a
terminal you are prompted for it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(deps, args, ask.file)
			if err != nil {
				return err
			}
			return runAsk(cmd.Context(), deps, g, text, *ask)
		},
	}
	ask.bind(cmd)
	return cmd
}

// readInput picks the text from args, a file, stdin or an interactive prompt
func readInput(deps *Dependencies, args []string, file string) (string, error) {
	switch {
	case len(args) > 0:
		return args[0], nil

	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil

	case !deps.StdinIsTerminal():
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	fmt.Fprint(deps.Stderr, "Enter text to be redacted: ")
	line, err := bufio.NewReader(deps.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return line, nil
}

// runAsk runs the pipeline once. Decorated output goes to a terminal;
// otherwise only the answer is written to stdout.
func runAsk(ctx context.Context, deps *Dependencies, g *globalOptions, text string, ask askOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("text cannot be empty")
	}

	rt, err := openRuntime(deps, g)
	if err != nil {
		return err
	}
	defer rt.Close()

	decorated := !ask.raw && deps.StdoutIsTerminal()
	start := time.Now()

	var spin *spinner
	if decorated {
		spin = newSpinner(deps.Stderr, "Redacting")
		spin.start()
	}
	redacted, err := conversation.Redact(ctx, rt.client, text)
	if err != nil {
		if decorated {
			spin.stopWithError()
			fmt.Fprintln(deps.Stderr, tui.FormatError(err))
		}
		rt.logger.Warn("ask failed", zap.String("stage", "redact"), zap.Error(err))
		return fmt.Errorf("redaction failed: %w", err)
	}
	if decorated {
		spin.stopWithSuccess("Redacted")
		fmt.Fprintln(deps.Stdout, redactedLabelStyle.Render("Redacted Text"))
		fmt.Fprintln(deps.Stdout, redactedTextStyle.Render(redacted))
		fmt.Fprintln(deps.Stdout)

		spin = newSpinner(deps.Stderr, "Querying")
		spin.start()
	}

	answer, err := conversation.Query(ctx, rt.client, redacted)
	if err != nil {
		if decorated {
			spin.stopWithError()
			fmt.Fprintln(deps.Stderr, tui.FormatError(err))
		}
		rt.logger.Warn("ask failed", zap.String("stage", "query"), zap.Error(err))
		return fmt.Errorf("query failed: %w", err)
	}
	if decorated {
		spin.stopWithSuccess("Done")
	}

	rt.logger.Info("ask answered",
		zap.Int("reply_chars", len(answer)),
		zap.Duration("elapsed", time.Since(start)))

	if ask.copy || rt.cfg.CopyToClipboard {
		if err := deps.Clipboard(answer); err != nil {
			warn := lipgloss.NewStyle().Foreground(colorWarn).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err))
			fmt.Fprintln(deps.Stderr, warn)
		} else if decorated {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	if ask.output != "" {
		if err := os.WriteFile(ask.output, []byte(answer), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if decorated {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
				fmt.Sprintf("✓ Answer saved to %s", ask.output)))
		}
		return nil
	}

	if !decorated {
		fmt.Fprintln(deps.Stdout, answer)
		return nil
	}

	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}

	rendered, err := render.Reply(answer, render.FromConfig(rt.cfg.Markdown, bubbleWidth-4))
	if err != nil {
		rt.logger.Debug("markdown render failed", zap.Error(err))
	}

	fmt.Fprintln(deps.Stdout, assistantLabelStyle.Render(tui.Title))
	fmt.Fprintln(deps.Stdout, assistantBubbleStyle.Width(bubbleWidth).Render(rendered))
	return nil
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
