package sidebar

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timoelan/crudai/cli/chat/types"
	"github.com/timoelan/crudai/internal/api"
)

// Update handles messages. Cross-pane messages arrive here regardless of
// focus; key messages only matter while the sidebar is focused.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case types.AuthStateMsg:
		m.auth = msg.State
		if msg.State.Authenticated && !m.loaded {
			m.loaded = true
			return m.loadChats()
		}
		if !msg.State.Authenticated && !msg.State.Loading {
			// Auth lost: drop the list and allow a future reload.
			m.chats = nil
			m.cursor = 0
			m.loaded = false
			m.menuOpen = false
			m.cancelRename()
		}
		return nil

	case types.ChatsLoadedMsg:
		m.chats = msg.Chats
		m.clampCursor()
		return nil

	case types.ChatCreatedMsg:
		m.chats = append([]*api.Chat{msg.Chat}, m.chats...)
		if msg.Select {
			m.cursor = 0
		} else if m.cursor > 0 {
			// Keep the cursor on the row it was on.
			m.cursor++
		}
		return nil

	case types.ChatRenamedMsg:
		for _, chat := range m.chats {
			if chat.ID == msg.Chat.ID {
				chat.Title = msg.Chat.Title
				break
			}
		}
		return nil

	case types.ChatDeletedMsg:
		filtered := m.chats[:0]
		for _, chat := range m.chats {
			if chat.ID != msg.ChatID {
				filtered = append(filtered, chat)
			}
		}
		m.chats = filtered
		m.clampCursor()
		return nil

	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		if m.renaming {
			return m.updateRename(msg)
		}
		return m.handleKey(msg)
	}

	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.menuOpen = false

	case "down", "j":
		if m.cursor < len(m.chats)-1 {
			m.cursor++
		}
		m.menuOpen = false

	case "enter":
		if chat := m.selected(); chat != nil {
			m.menuOpen = false
			return selectChat(chat)
		}

	case "n":
		return m.createChat()

	case "m":
		if m.selected() != nil {
			m.menuOpen = !m.menuOpen
		}

	case "r":
		if chat := m.selected(); chat != nil {
			m.renaming = true
			m.menuOpen = false
			m.input.SetValue(chat.Title)
			m.input.CursorEnd()
			return m.input.Focus()
		}

	case "d":
		if chat := m.selected(); chat != nil {
			m.menuOpen = false
			return m.deleteChat(chat.ID)
		}

	case "g":
		m.menuOpen = false
		return showWelcome()
	}

	return nil
}

func (m *Model) updateRename(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		chat := m.selected()
		title := m.input.Value()
		m.cancelRename()
		if chat == nil || title == "" || title == chat.Title {
			return nil
		}
		return m.renameChat(chat.ID, title)

	case "esc":
		m.cancelRename()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}
