package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timoelan/crudai/cli/chat/styles"
	"github.com/timoelan/crudai/cli/chat/types"
)

// Update implements tea.Model. Session side effects are applied here, before
// the panes see the message, so both render against the same session state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sidebar.SetSize(styles.SidebarWidth, m.height)
		threadWidth := m.width - styles.SidebarWidth - 1
		if threadWidth < 20 {
			threadWidth = 20
		}
		m.thread.SetSize(threadWidth, m.height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			return m, m.toggleFocus()
		case "esc":
			if m.focus == focusSidebar {
				return m, m.toggleFocus()
			}
		}

	case types.ChatSelectedMsg:
		m.sess.Activate(msg.Chat)
		if m.focus == focusSidebar {
			cmds = append(cmds, m.toggleFocus())
		}

	case types.ChatCreatedMsg:
		if msg.Select {
			m.sess.Activate(msg.Chat)
		}

	case types.ShowWelcomeMsg:
		m.sess.Clear()
		if m.focus == focusSidebar {
			cmds = append(cmds, m.toggleFocus())
		}

	case types.ChatDeletedMsg:
		// Deleting the active chat drops the user back on the welcome
		// screen instead of leaving a dead thread on screen.
		if m.sess.ActiveID() == msg.ChatID {
			m.sess.Clear()
			cmds = append(cmds, m.forward(types.ShowWelcomeMsg{})...)
		}
	}

	cmds = append(cmds, m.forward(msg)...)
	return m, tea.Batch(cmds...)
}

// forward hands a message to both panes.
func (m *Model) forward(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	if cmd := m.sidebar.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.thread.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return cmds
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusThread {
		m.focus = focusSidebar
		m.thread.Blur()
		m.sidebar.Focus()
		return nil
	}
	m.focus = focusThread
	m.sidebar.Blur()
	return m.thread.Focus()
}
