// Package tui provides the terminal chat view for redactchat.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/redactchat/internal/errors"
	"github.com/diogo/redactchat/internal/render"
)

// Colors of the active palette
var (
	colorSurface     lipgloss.Color
	colorBorder      lipgloss.Color
	colorUserBubble  lipgloss.Color
	colorBotBubble   lipgloss.Color
	colorErrorBubble lipgloss.Color
	colorPrimary     lipgloss.Color
	colorAccent      lipgloss.Color
	colorWarning     lipgloss.Color
	colorText        lipgloss.Color
	colorTextDim     lipgloss.Color
)

// Styles, rebuilt whenever the palette changes
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	messagesAreaStyle lipgloss.Style

	userLabelStyle   lipgloss.Style
	userBubbleStyle  lipgloss.Style
	botLabelStyle    lipgloss.Style
	botBubbleStyle   lipgloss.Style
	errorLabelStyle  lipgloss.Style
	errorBubbleStyle lipgloss.Style

	dotStyle       lipgloss.Style
	dotActiveStyle lipgloss.Style

	inputPanelStyle lipgloss.Style
	inputLabelStyle lipgloss.Style
	loadingStyle    lipgloss.Style

	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style

	noticeStyle lipgloss.Style
	errorStyle  lipgloss.Style

	welcomeTitleStyle lipgloss.Style
	welcomeStyle      lipgloss.Style
)

func init() {
	UpdateTheme()
}

// UpdateTheme rebuilds every style from render.CurrentPalette
func UpdateTheme() {
	p := render.CurrentPalette()

	colorSurface = p.Surface
	colorBorder = p.Border
	colorUserBubble = p.UserBubble
	colorBotBubble = p.BotBubble
	colorErrorBubble = p.ErrorBubble
	colorPrimary = p.Primary
	colorAccent = p.Accent
	colorWarning = p.Warning
	colorText = p.Text
	colorTextDim = p.TextDim

	rebuildStyles()
}

// SetTheme activates the named palette and rebuilds the styles. Unknown
// names keep the current palette and report false.
func SetTheme(name string) bool {
	if !render.UsePalette(name) {
		return false
	}
	UpdateTheme()
	return true
}

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		Background(colorSurface).
		Padding(0, 2).
		MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
		Background(colorSurface).
		Foreground(colorText).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Background(colorSurface).
		Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
		Background(colorSurface).
		Foreground(colorTextDim).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		Padding(0, 1)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	userBubbleStyle = lipgloss.NewStyle().
		Background(colorUserBubble).
		Foreground(colorText).
		Padding(0, 1)

	botLabelStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	botBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBotBubble).
		Foreground(colorText).
		Padding(0, 1)

	errorLabelStyle = lipgloss.NewStyle().
		Foreground(colorErrorBubble).
		Bold(true)

	errorBubbleStyle = lipgloss.NewStyle().
		Background(colorErrorBubble).
		Foreground(colorText).
		Padding(0, 1)

	dotStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	dotActiveStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(colorBorder).
		Padding(0, 1).
		MarginTop(1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorWarning).
		Italic(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorErrorBubble).
		Bold(true)

	welcomeTitleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Align(lipgloss.Center)

	welcomeStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Align(lipgloss.Center)
}

// FormatError returns a styled error message with the details carried by
// the structured error types
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().Foreground(colorErrorBubble)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if stage := errors.GetStage(err); stage != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Stage: %s", stage)))
	}
	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}
	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	if body := errors.GetResponseBody(err); body != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n\n  %s", strings.ReplaceAll(body, "\n", "\n  "))))
		return sb.String()
	}

	switch {
	case errors.IsTimeoutError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The service did not answer in time. Raise --timeout or try again"))
	case errors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check that the redact and query services are running"))
	case errors.IsPipelineError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The service answered without the expected text field"))
	}

	return sb.String()
}

// PrintError prints a styled error message
func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Println(FormatError(err))
}
