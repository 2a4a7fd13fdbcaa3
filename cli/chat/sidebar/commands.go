package sidebar

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timoelan/crudai/cli/chat/types"
	"github.com/timoelan/crudai/internal/api"
)

func (m *Model) loadChats() tea.Cmd {
	return func() tea.Msg {
		return types.ChatsLoadedMsg{Chats: m.client.ListChats(m.ctx)}
	}
}

func (m *Model) createChat() tea.Cmd {
	title := fmt.Sprintf("New Chat %d", len(m.chats)+1)
	return func() tea.Msg {
		chat := m.client.CreateChat(m.ctx, title)
		if chat == nil {
			// The failure was already logged; the list stays as it is.
			return nil
		}
		return types.ChatCreatedMsg{Chat: chat}
	}
}

func (m *Model) renameChat(chatID int64, title string) tea.Cmd {
	return func() tea.Msg {
		chat := m.client.UpdateChat(m.ctx, chatID, title)
		if chat == nil {
			return nil
		}
		return types.ChatRenamedMsg{Chat: chat}
	}
}

func (m *Model) deleteChat(chatID int64) tea.Cmd {
	return func() tea.Msg {
		if !m.client.DeleteChat(m.ctx, chatID) {
			return nil
		}
		return types.ChatDeletedMsg{ChatID: chatID}
	}
}

func selectChat(chat *api.Chat) tea.Cmd {
	return func() tea.Msg {
		return types.ChatSelectedMsg{Chat: chat}
	}
}

func showWelcome() tea.Cmd {
	return func() tea.Msg {
		return types.ShowWelcomeMsg{}
	}
}
