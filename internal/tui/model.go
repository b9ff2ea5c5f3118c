package tui

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/redactchat/internal/config"
	"github.com/diogo/redactchat/internal/conversation"
	"github.com/diogo/redactchat/internal/models"
	"github.com/diogo/redactchat/internal/render"
	"github.com/diogo/redactchat/internal/transcript"
)

// Title is shown in the header and the welcome screen
const Title = "REDACTOR Assistant"

type animationTickMsg time.Time

// pipelineDoneMsg carries the bot message a submission appended
type pipelineDoneMsg struct {
	reply models.Message
}

// Options configures the chat view
type Options struct {
	Endpoints config.Endpoints
	Render    render.Options

	// Clipboard writes text to the system clipboard; nil uses atotto/clipboard
	Clipboard func(string) error
}

// Model is the chat view. All conversation state lives in the
// orchestrator; the model only mirrors it on screen.
type Model struct {
	orch *conversation.Orchestrator
	opts Options
	ctx  context.Context
	now  func() time.Time

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	ready          bool
	seen           int
	animationFrame int
	notice         string
	err            error

	width  int
	height int
}

// NewChatModel creates a chat view driving orch
func NewChatModel(orch *conversation.Orchestrator, opts Options) Model {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Render.Style == "" {
		opts.Render = render.DefaultOptions()
	}

	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.CharLimit = 8000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = loadingStyle

	return Model{
		orch:     orch,
		opts:     opts,
		ctx:      context.Background(),
		now:      time.Now,
		textarea: ta,
		spinner:  s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func animationTick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		inputHeight := 5
		statusHeight := 1

		vpHeight := m.height - headerHeight - inputHeight - statusHeight
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 2

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 2)
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m.quit()

		case "enter":
			// Enter is the send button; it stays disabled while loading
			if m.orch.Loading() {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				m.textarea.Reset()
				return m, nil
			}
			if handled, next, cmd := m.handleCommand(input); handled {
				return next, cmd
			}
			return m.submit()
		}

	case pipelineDoneMsg:
		m.updateViewport()

	case spinner.TickMsg:
		if m.orch.Loading() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.orch.Loading() {
			m.animationFrame++
			m.updateViewport()
			cmds = append(cmds, animationTick())
		}
	}

	// Only keys reach the textarea so escape sequences never leak into the input
	if !m.orch.Loading() {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit starts the pipeline for the textarea contents
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.orch.SetInput(m.textarea.Value())
	sub, err := m.orch.Begin(m.orch.Input())
	m.textarea.Reset()
	m.notice = ""
	m.err = err
	if err != nil || sub == nil {
		return m, nil
	}

	m.animationFrame = 0
	m.updateViewport()

	return m, tea.Batch(
		m.runSubmission(sub),
		m.spinner.Tick,
		animationTick(),
	)
}

// runSubmission runs the pipeline off the event loop
func (m Model) runSubmission(sub *conversation.Submission) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return pipelineDoneMsg{reply: sub.Run(ctx)}
	}
}

// handleCommand runs slash commands; it reports false for ordinary text
func (m Model) handleCommand(input string) (bool, tea.Model, tea.Cmd) {
	switch strings.ToLower(input) {
	case "exit", "quit", "/exit", "/quit":
		next, cmd := m.quit()
		return true, next, cmd
	}

	fields := strings.Fields(input)
	switch strings.ToLower(fields[0]) {
	case "/copy":
		m.textarea.Reset()
		m.err = nil
		reply, ok := m.orch.LastReply()
		if !ok {
			m.notice = "Nothing to copy yet"
			return true, m, nil
		}
		if err := m.opts.Clipboard(reply.Text); err != nil {
			m.notice = ""
			m.err = fmt.Errorf("failed to copy to clipboard: %w", err)
			return true, m, nil
		}
		m.notice = "Copied the last reply to the clipboard"
		return true, m, nil

	case "/save":
		m.textarea.Reset()
		m.err = nil
		m.notice = ""
		path := strings.TrimSpace(strings.TrimPrefix(input, fields[0]))
		if path == "" {
			m.err = fmt.Errorf("usage: /save <path>")
			return true, m, nil
		}
		t := transcript.New(m.orch.ID(), m.orch.Messages(), m.now())
		if err := t.WriteFile(path); err != nil {
			m.err = err
			return true, m, nil
		}
		m.notice = fmt.Sprintf("Saved %d messages to %s", len(t.Messages), path)
		return true, m, nil

	case "/help":
		m.textarea.Reset()
		m.err = nil
		m.notice = "/copy copies the last reply · /save <path> exports the chat (.json for JSON) · /quit exits"
		return true, m, nil
	}
	return false, m, nil
}

// quit closes the session so a running pipeline is cancelled and discarded
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.orch.Close()
	return m, tea.Quit
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 2
	var sections []string

	sections = append(sections, m.renderHeader(contentWidth))

	var messages string
	if m.orch.Len() == 0 && !m.orch.Loading() {
		messages = m.renderWelcome()
	} else {
		messages = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messages))

	var input string
	if m.orch.Loading() {
		input = m.spinner.View() + loadingStyle.Render(" Redacting and querying...")
	} else {
		input = lipgloss.JoinVertical(lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(input))

	switch {
	case m.err != nil:
		sections = append(sections, FormatError(m.err))
	case m.notice != "":
		sections = append(sections, noticeStyle.Render(m.notice))
	default:
		sections = append(sections, m.renderStatusBar(contentWidth))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(width int) string {
	parts := []string{titleStyle.Render(Title)}
	if host := endpointHost(m.opts.Endpoints.Query); host != "" {
		parts = append(parts,
			hintStyle.Render("  •  "),
			subtitleStyle.Render(host),
		)
	}
	return headerStyle.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Center, parts...))
}

func endpointHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

func (m Model) renderWelcome() string {
	width := m.viewport.Width - 2
	content := lipgloss.JoinVertical(lipgloss.Center,
		welcomeTitleStyle.Width(width).Render(Title),
		"",
		welcomeStyle.Width(width).Render("Messages are redacted before they reach the assistant."),
		welcomeStyle.Width(width).Render("Type a message below and press Enter."),
	)

	top := (m.viewport.Height - lipgloss.Height(content)) / 2
	if top < 0 {
		top = 0
	}
	return strings.Repeat("\n", top) + content
}

// renderLoadingAnimation draws three dots, one raised per frame
func (m Model) renderLoadingAnimation() string {
	active := m.animationFrame % 3
	dots := make([]string, 3)
	for i := range dots {
		if i == active {
			dots[i] = dotActiveStyle.Render("●")
		} else {
			dots[i] = dotStyle.Render("•")
		}
	}
	return botBubbleStyle.Render(strings.Join(dots, " "))
}

func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
		{"/help", "Commands"},
	}

	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// updateViewport rebuilds the message list and follows the newest message
func (m *Model) updateViewport() {
	messages := m.orch.Messages()
	bubbleWidth := m.viewport.Width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = m.viewport.Width
	}

	var content strings.Builder
	for i, msg := range messages {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(m.renderMessage(msg, bubbleWidth))
		content.WriteString("\n")
	}
	if m.orch.Loading() {
		content.WriteString("\n")
		content.WriteString(botLabelStyle.Render("Assistant"))
		content.WriteString("\n")
		content.WriteString(m.renderLoadingAnimation())
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())

	if len(messages) != m.seen || m.orch.Loading() {
		m.viewport.GotoBottom()
	}
	m.seen = len(messages)
}

func (m Model) renderMessage(msg models.Message, width int) string {
	stamp := msg.Timestamp.Format("15:04")

	switch {
	case msg.IsUser:
		label := userLabelStyle.Render("You") + statusDescStyle.Render(" · "+stamp)
		bubble := userBubbleStyle.MaxWidth(width).Render(wrap(msg.Text, width-2))
		return lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right,
			lipgloss.JoinVertical(lipgloss.Right, label, bubble))

	case msg.Error:
		label := errorLabelStyle.Render("Assistant") + statusDescStyle.Render(" · "+stamp)
		bubble := errorBubbleStyle.MaxWidth(width).Render(wrap(msg.Text, width-2))
		return label + "\n" + bubble

	default:
		label := botLabelStyle.Render("Assistant") + statusDescStyle.Render(" · "+stamp)
		rendered, err := render.Reply(msg.Text, m.opts.Render.WithWidth(width-4))
		if err != nil {
			rendered = wrap(msg.Text, width-4)
		}
		return label + "\n" + botBubbleStyle.Render(rendered)
	}
}

func wrap(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

// RunChat runs the chat view until the user quits, then closes the session
func RunChat(orch *conversation.Orchestrator, opts Options) error {
	defer orch.Close()

	p := tea.NewProgram(
		NewChatModel(orch, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
