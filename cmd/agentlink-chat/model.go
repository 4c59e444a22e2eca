package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	processing "github.com/lverhagen/agentlink/client"
	"github.com/lverhagen/agentlink/client/mediatrust"
	"github.com/lverhagen/agentlink/client/messages"
)

type snapshotMsg struct {
	notification processing.Notification
}

type streamErrMsg struct {
	err error
}

type styles struct {
	user      lipgloss.Style
	assistant lipgloss.Style
	thought   lipgloss.Style
	tool      lipgloss.Style
	status    lipgloss.Style
	warning   lipgloss.Style
	media     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		user:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		assistant: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		thought:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		tool:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		media:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	}
}

type chatModel struct {
	processor *processing.Processor
	send      func([]byte) error

	sessionID string
	snapshot  *processing.SessionSnapshot

	viewport viewport.Model
	input    textinput.Model
	th       styles

	width  int
	height int
	ready  bool

	statusLine string
	lastErr    error
}

func newChatModel(processor *processing.Processor, sessionID string, send func([]byte) error) chatModel {
	input := textinput.New()
	input.Placeholder = "waiting for the stream..."
	input.CharLimit = 4096

	return chatModel{
		processor:  processor,
		send:       send,
		sessionID:  sessionID,
		input:      input,
		th:         defaultStyles(),
		statusLine: "connecting",
	}
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch t := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = t.Width
		m.height = t.Height
		inputHeight := 3
		if !m.ready {
			m.viewport = viewport.New(t.Width, t.Height-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = t.Width
			m.viewport.Height = t.Height - inputHeight
		}
		m.viewport.SetContent(m.renderConversation())
		m.viewport.GotoBottom()
		return m, nil

	case snapshotMsg:
		return m.onNotification(t.notification), nil

	case streamErrMsg:
		m.lastErr = t.err
		return m, nil

	case tea.KeyMsg:
		switch t.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m chatModel) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.snapshot == nil || !m.snapshot.ReadyForInput() {
		return m, nil
	}
	payload, err := m.processor.ComposeUserMessage(m.snapshot.SessionID, text)
	if err != nil {
		m.lastErr = err
		return m, nil
	}
	if err := m.send(payload); err != nil {
		m.lastErr = err
		return m, nil
	}
	m.input.Reset()
	return m, nil
}

func (m chatModel) onNotification(n processing.Notification) chatModel {
	// Follow the configured session, or adopt the first one the stream
	// produces.
	if m.sessionID == "" && n.SessionID != "" {
		m.sessionID = n.SessionID
	}
	if n.SessionID != m.sessionID {
		return m
	}
	if n.SessionDeleted {
		m.snapshot = nil
		m.statusLine = "session deleted"
		m.input.Blur()
		return m
	}
	if n.Session != nil {
		m.snapshot = n.Session
	}
	if n.Err != nil {
		m.lastErr = n.Err
	}
	for _, w := range n.Warnings {
		m.statusLine = w.Code
	}

	if m.snapshot != nil {
		if m.snapshot.ReadyForInput() {
			m.statusLine = "your turn"
			m.input.Placeholder = "say something"
			m.input.Focus()
		} else {
			m.statusLine = string(m.snapshot.TurnPhase)
			m.input.Blur()
		}
	}

	if m.ready {
		m.viewport.SetContent(m.renderConversation())
		m.viewport.GotoBottom()
	}
	return m
}

func (m chatModel) renderConversation() string {
	if m.snapshot == nil {
		return m.th.status.Render("waiting for session history...")
	}
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	for _, message := range m.snapshot.Messages {
		b.WriteString(m.renderMessage(message, width))
	}
	if open := m.snapshot.OpenInteraction; open != nil {
		b.WriteString(m.renderInteraction(*open, width))
	}
	for _, artifact := range m.snapshot.Media {
		b.WriteString(m.renderMedia(artifact, width))
	}
	return b.String()
}

func (m chatModel) renderMessage(message messages.Message, width int) string {
	text := message.PlainText()
	if strings.TrimSpace(text) == "" {
		return ""
	}
	wrapped := wordwrap.String(text, width-4)
	switch message.Role {
	case messages.RoleUser:
		return m.th.user.Render("you") + "\n" + wrapped + "\n\n"
	case messages.RoleAssistantThought:
		return m.th.thought.Render(wrapped) + "\n\n"
	default:
		return m.th.assistant.Render("assistant") + "\n" + wrapped + "\n\n"
	}
}

func (m chatModel) renderInteraction(open processing.InteractionSnapshot, width int) string {
	var b strings.Builder
	if open.Thought != "" {
		b.WriteString(m.th.thought.Render(wordwrap.String(open.Thought, width-4)) + "\n")
	}
	for _, call := range open.ToolCalls {
		b.WriteString(m.th.tool.Render(fmt.Sprintf("[%s] %s", call.Status, call.Name)) + "\n")
	}
	if open.Text != "" {
		b.WriteString(m.th.assistant.Render("assistant") + "\n")
		b.WriteString(wordwrap.String(open.Text, width-4) + "\n")
	}
	return b.String()
}

func (m chatModel) renderMedia(artifact processing.MediaArtifact, width int) string {
	label := fmt.Sprintf("media %s (%s, %s)", artifact.ID, artifact.ContentType, artifact.Trust)
	line := m.th.media.Render(label)
	if artifact.Trust == mediatrust.TrustSandboxed {
		line += m.th.warning.Render("  [sandboxed]")
	}
	for _, warning := range artifact.Warnings {
		line += m.th.warning.Render("  " + warning)
	}
	return wordwrap.String(line, width) + "\n"
}

func (m chatModel) View() string {
	if !m.ready {
		return "loading..."
	}
	status := m.statusLine
	if m.lastErr != nil {
		status += m.th.warning.Render("  " + m.lastErr.Error())
	}
	return m.viewport.View() + "\n" +
		m.th.status.Render(status) + "\n" +
		m.input.View()
}
