package cli

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/edgehq/edge-cli/internal/chat"
	"github.com/edgehq/edge-cli/internal/models"
)

// chatTheme holds the color scheme for the chat display.
type chatTheme struct {
	User      lipgloss.Color
	Agent     lipgloss.Color
	ActiveTab lipgloss.Color
	Hint      lipgloss.Color
	Error     lipgloss.Color
}

var defaultChatTheme = chatTheme{
	User:      lipgloss.Color("#00D787"), // green
	Agent:     lipgloss.Color("#5FAFD7"), // light blue
	ActiveTab: lipgloss.Color("#FFAF00"), // amber
	Hint:      lipgloss.Color("#6C6C6C"), // dim gray
	Error:     lipgloss.Color("#FF005F"), // red
}

func (t chatTheme) userStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.User).Bold(true)
}

func (t chatTheme) agentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Agent).Bold(true)
}

func (t chatTheme) activeTabStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.ActiveTab).Bold(true).Underline(true)
}

func (t chatTheme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t chatTheme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error)
}

// transcriptChangedMsg fires whenever the controller mutates the
// transcript, including every reveal frame.
type transcriptChangedMsg struct{}

// historyLoadedMsg carries the result of a history fetch.
type historyLoadedMsg struct {
	err error
}

// sendDoneMsg carries the result of a send.
type sendDoneMsg struct {
	err error
}

// chatModel is the bubbletea model for the interactive chat.
type chatModel struct {
	ctrl  *chat.Controller
	user  models.User
	roles []models.Role

	input textinput.Model
	spin  spinner.Model
	theme chatTheme

	width int
	err   error
}

// newChatModel creates the chat model for the given agent roles.
func newChatModel(ctrl *chat.Controller, user models.User, roles []models.Role) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Message your co-founder... (Enter to send, Tab to switch, Esc to quit)"
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return chatModel{
		ctrl:  ctrl,
		user:  user,
		roles: roles,
		input: ti,
		spin:  sp,
		theme: defaultChatTheme,
		width: 80,
	}
}

// Init starts the history fetch and the input cursor.
func (m chatModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadHistory(),
		m.spin.Tick,
	)
}

// loadHistory fetches the selected agent's conversation in the background.
func (m chatModel) loadHistory() tea.Cmd {
	return func() tea.Msg {
		return historyLoadedMsg{err: m.ctrl.LoadHistory(context.Background())}
	}
}

// send submits the message in the background; the reveal frames arrive as
// transcriptChangedMsg.
func (m chatModel) send(text string) tea.Cmd {
	return func() tea.Msg {
		return sendDoneMsg{err: m.ctrl.Send(context.Background(), text)}
	}
}

// Update handles messages and returns the updated model.
func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.ctrl.Close()
			return m, tea.Quit

		case "tab":
			m.err = nil
			m.ctrl.SwitchRole(m.nextRole())
			return m, m.loadHistory()

		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.ctrl.State() != chat.StateReady {
				return m, nil
			}
			m.err = nil
			m.input.Reset()
			return m, m.send(text)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(msg.Width - 4)
		return m, nil

	case transcriptChangedMsg:
		// Repaint only; the controller already holds the new transcript.
		return m, nil

	case historyLoadedMsg:
		m.err = msg.err
		return m, nil

	case sendDoneMsg:
		// The synthetic error reply is already in the transcript; keep the
		// underlying failure for the footer.
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// nextRole returns the agent after the current one, wrapping around.
func (m chatModel) nextRole() models.Role {
	current := m.ctrl.Role()
	for i, r := range m.roles {
		if r == current {
			return m.roles[(i+1)%len(m.roles)]
		}
	}
	return m.roles[0]
}

// View renders the chat display.
func (m chatModel) View() tea.View {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderTranscript())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return tea.NewView(b.String())
}

func (m chatModel) renderTabs() string {
	current := m.ctrl.Role()
	tabs := make([]string, 0, len(m.roles))
	for _, r := range m.roles {
		label := fmt.Sprintf(" %s ", r)
		if r == current {
			tabs = append(tabs, m.theme.activeTabStyle().Render(label))
		} else {
			tabs = append(tabs, m.theme.hintStyle().Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m chatModel) renderTranscript() string {
	messages := m.ctrl.Messages()
	if len(messages) == 0 {
		return m.renderEmptyState()
	}

	var b strings.Builder
	role := m.ctrl.Role()
	for _, msg := range messages {
		if msg.IsFromUser {
			b.WriteString(m.theme.userStyle().Render("You"))
		} else {
			b.WriteString(m.theme.agentStyle().Render(string(role)))
		}
		b.WriteString(": ")
		b.WriteString(msg.Message)
		b.WriteString("\n")
	}
	return b.String()
}

func (m chatModel) renderEmptyState() string {
	role := m.ctrl.Role()
	if m.ctrl.State() == chat.StateLoadingHistory {
		return fmt.Sprintf("%s Loading your conversation with the %s...\n", m.spin.View(), role)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "No conversation with your %s yet. Some openers:\n\n", role)
	for _, prompt := range chat.StarterPrompts(role) {
		fmt.Fprintf(&b, "  %s\n", m.theme.hintStyle().Render(prompt))
	}
	return b.String()
}

func (m chatModel) renderFooter() string {
	var b strings.Builder

	switch m.ctrl.State() {
	case chat.StateSending:
		fmt.Fprintf(&b, "%s The %s is thinking...\n", m.spin.View(), m.ctrl.Role())
	case chat.StateRevealing:
		b.WriteString("\n")
	default:
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(m.theme.errorStyle().Render(fmt.Sprintf("! %v", m.err)))
		b.WriteString("\n")
	}
	return b.String()
}
