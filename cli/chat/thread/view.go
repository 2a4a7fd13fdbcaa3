package thread

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/timoelan/crudai/cli/chat/styles"
	"github.com/timoelan/crudai/cli/chat/types"
)

// View renders the chat pane.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.sess.InPlaceholder() {
		return m.alert.Render(m.welcomeView())
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString(m.inputView())
	return m.alert.Render(b.String())
}

func (m *Model) headerView() string {
	title := "Chat"
	if chat := m.sess.Active(); chat != nil {
		title = chat.Title
	}
	return styles.TitleStyle.Width(m.width).Render(" " + title)
}

func (m *Model) welcomeView() string {
	content := styles.WelcomeTitleStyle.Render("Welcome!") + "\n\n" +
		"Send a message below to start a new chat,\n" +
		"or pick one from the sidebar."
	box := styles.WelcomeBoxStyle.Render(content)

	inputHeight := lipgloss.Height(m.inputView())
	boxArea := m.height - inputHeight
	if boxArea < 1 {
		boxArea = 1
	}
	centered := lipgloss.Place(m.width, boxArea, lipgloss.Center, lipgloss.Center, box)

	var b strings.Builder
	b.WriteString(centered)
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString(m.inputView())
	return b.String()
}

func (m *Model) inputView() string {
	if m.sending {
		return styles.TextAreaStyle.Render(styles.TypingStyle.Render(m.spinner.View() + " Generating..."))
	}
	help := styles.HelpStyle.Render("enter send • alt+enter newline • ctrl+y copy last • tab sidebar")
	return styles.TextAreaStyle.Render(m.textarea.View()) + "\n" + help
}

// renderEntries produces the scrollback content for the viewport.
func (m *Model) renderEntries() string {
	if m.loading {
		return styles.TypingStyle.Render(m.spinner.View() + " Loading messages...")
	}
	if len(m.entries) == 0 && !m.typing {
		return styles.HelpStyle.Render("No messages yet. Say hello!")
	}

	parts := make([]string, 0, len(m.entries)+1)
	for _, entry := range m.entries {
		parts = append(parts, m.renderEntry(entry))
	}
	if m.typing {
		parts = append(parts, styles.AIMessageStyle.Render(
			styles.TypingStyle.Render(m.spinner.View()+" typing...")))
	}
	return strings.Join(parts, "\n\n")
}

func (m *Model) renderEntry(entry *types.Entry) string {
	if entry.Err != nil {
		return styles.AIMessageStyle.Render(styles.MessageErrorStyle.Render(entry.Err.Error()))
	}

	message := entry.Message
	stamp := styles.MessageTimeStyle.Render(message.CreatedAt.Local().Format("15:04"))

	if message.IsFromUser {
		body := message.Content
		return styles.UserMessageStyle.Width(m.messageWidth()).Render(body + "\n" + stamp)
	}

	body := m.renderer.Render(message.Content)
	body = strings.TrimRight(body, "\n")
	return styles.AIMessageStyle.Width(m.messageWidth()).Render(body + "\n" + stamp)
}

func (m *Model) messageWidth() int {
	width := m.width - styles.MessageHorizontalFrameSize()
	if width < 20 {
		width = 20
	}
	return width
}
