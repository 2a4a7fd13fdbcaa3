package thread

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/timoelan/crudai/cli/chat/types"
)

const titleMaxRunes = 50

var (
	errChatCreateFailed = errors.New("could not create the chat")
	errSendFailed       = errors.New("could not send the message")
	errAIUnavailable    = errors.New("AI reply unavailable")
)

// TitleFromContent derives a chat title from the first message. Long
// content is cut at 50 characters with a "..." suffix.
func TitleFromContent(content string) string {
	runes := []rune(content)
	if len(runes) <= titleMaxRunes {
		return content
	}
	return string(runes[:titleMaxRunes]) + "..."
}

func (m *Model) loadMessages(chatID int64) tea.Cmd {
	return func() tea.Msg {
		messages := m.client.ListMessages(m.ctx, chatID)
		return types.MessagesLoadedMsg{ChatID: chatID, Messages: messages}
	}
}

// createChatFromFirstMessage backs the placeholder mode: the chat is
// created first, then the root model routes the resulting ChatCreatedMsg
// back here to continue the send.
func (m *Model) createChatFromFirstMessage(content string) tea.Cmd {
	return func() tea.Msg {
		chat := m.client.CreateChat(m.ctx, TitleFromContent(content))
		if chat == nil {
			return types.ChatCreateFailedMsg{}
		}
		return types.ChatCreatedMsg{Chat: chat, Select: true, FirstMessage: content}
	}
}

func (m *Model) sendUserMessage(chatID int64, content string) tea.Cmd {
	return func() tea.Msg {
		message := m.client.SendMessage(m.ctx, chatID, content, true)
		if message == nil {
			return types.MessageSendFailedMsg{}
		}
		return types.MessageSentMsg{Message: message}
	}
}

func (m *Model) generateReply(chatID int64) tea.Cmd {
	return func() tea.Msg {
		return types.AIReplyMsg{Message: m.client.GenerateReply(m.ctx, chatID)}
	}
}
