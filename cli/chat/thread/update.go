package thread

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"
	"golang.design/x/clipboard"

	"github.com/timoelan/crudai/cli/chat/types"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	outAlert, alertCmd := m.alert.Update(msg)
	m.alert = outAlert.(bubbleup.AlertModel)
	if alertCmd != nil {
		cmds = append(cmds, alertCmd)
	}

	switch msg := msg.(type) {
	case types.ChatSelectedMsg:
		// The session store is already pointing at the chat; reset the
		// pane and fetch its thread.
		m.entries = nil
		m.typing = false
		m.sending = false
		m.err = nil
		m.loading = true
		m.textarea.Placeholder = "Type a message..."
		m.recalculateLayout()
		cmds = append(cmds, m.loadMessages(msg.Chat.ID))
		return tea.Batch(cmds...)

	case types.ChatCreatedMsg:
		if !msg.Select {
			return tea.Batch(cmds...)
		}
		// Implicit creation from the first message: the chat is brand
		// new, so there is nothing to fetch. Continue the send.
		m.entries = nil
		m.typing = false
		m.err = nil
		m.textarea.Placeholder = "Type a message..."
		m.recalculateLayout()
		if msg.FirstMessage != "" {
			cmds = append(cmds, m.sendUserMessage(msg.Chat.ID, msg.FirstMessage))
		}
		return tea.Batch(cmds...)

	case types.ChatCreateFailedMsg:
		m.sending = false
		m.err = errChatCreateFailed
		m.recalculateLayout()
		cmds = append(cmds, m.alert.NewAlertCmd(bubbleup.ErrorKey, "Failed to create the chat"))
		if m.focused {
			cmds = append(cmds, m.textarea.Focus())
		}
		return tea.Batch(cmds...)

	case types.MessagesLoadedMsg:
		// Ignore a load that raced a newer selection.
		if m.sess.ActiveID() != msg.ChatID {
			return tea.Batch(cmds...)
		}
		m.loading = false
		m.entries = nil
		for _, message := range msg.Messages {
			m.appendEntry(&types.Entry{Message: message})
		}
		m.recalculateLayout()
		m.viewport.GotoBottom()
		return tea.Batch(cmds...)

	case types.MessageSentMsg:
		// Render the user's message first, then show the typing
		// placeholder while the reply is generated.
		m.appendEntry(&types.Entry{Message: msg.Message})
		m.typing = true
		m.recalculateLayout()
		m.viewport.GotoBottom()
		cmds = append(cmds, m.generateReply(msg.Message.ChatID))
		return tea.Batch(cmds...)

	case types.MessageSendFailedMsg:
		// No AI request is issued; the thread stays unchanged and the
		// cleared input is not restored.
		m.sending = false
		m.err = errSendFailed
		m.recalculateLayout()
		cmds = append(cmds, m.alert.NewAlertCmd(bubbleup.ErrorKey, "Failed to send the message"))
		if m.focused {
			cmds = append(cmds, m.textarea.Focus())
		}
		return tea.Batch(cmds...)

	case types.AIReplyMsg:
		m.typing = false
		m.sending = false
		if msg.Message != nil {
			m.appendEntry(&types.Entry{Message: msg.Message})
		} else {
			m.appendEntry(&types.Entry{Err: errAIUnavailable})
		}
		m.recalculateLayout()
		m.viewport.GotoBottom()
		if m.focused {
			cmds = append(cmds, m.textarea.Focus())
		}
		return tea.Batch(cmds...)

	case types.ShowWelcomeMsg:
		m.entries = nil
		m.typing = false
		m.sending = false
		m.loading = false
		m.err = nil
		m.textarea.Placeholder = "Write your first message..."
		m.recalculateLayout()
		return tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		return tea.Batch(cmds...)

	case tea.KeyMsg:
		if !m.focused {
			return tea.Batch(cmds...)
		}
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return tea.Batch(cmds...)
	}

	return tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		if m.sending {
			return nil
		}
		return m.submit()

	case "ctrl+y":
		if m.clipboardOK {
			if message := m.lastMessage(); message != nil {
				clipboard.Write(clipboard.FmtText, []byte(message.Content))
				return m.alert.NewAlertCmd(bubbleup.InfoKey, "Copied to clipboard!")
			}
		}
		return nil

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd

	case "ctrl+p":
		if m.sending {
			return nil
		}
		if entry, ok := m.history.Previous(m.textarea.Value()); ok {
			m.textarea.SetValue(entry)
			m.textarea.CursorEnd()
			m.adjustTextareaHeight()
		}
		return nil

	case "ctrl+n":
		if m.sending {
			return nil
		}
		if entry, ok := m.history.Next(); ok {
			m.textarea.SetValue(entry)
			m.textarea.CursorEnd()
			m.adjustTextareaHeight()
		}
		return nil
	}

	if m.sending {
		return nil
	}
	// Any other edit leaves history navigation.
	m.history.Reset()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.adjustTextareaHeight()
	return cmd
}

// submit runs the send flow. Empty input after trimming is silently ignored.
// The input is cleared before the send attempt and not restored on failure.
func (m *Model) submit() tea.Cmd {
	content := strings.TrimSpace(m.textarea.Value())
	if content == "" {
		return nil
	}

	m.history.Add(content)
	m.textarea.Reset()
	m.adjustTextareaHeight()
	m.sending = true
	m.err = nil

	if m.sess.InPlaceholder() {
		return m.createChatFromFirstMessage(content)
	}
	return m.sendUserMessage(m.sess.ActiveID(), content)
}
