package sidebar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/timoelan/crudai/cli/chat/styles"
)

// View renders the chat list.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.SidebarHeaderStyle.Render("💬 Chats"))
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("[n]ew  [g]o home  [m]enu"))
	b.WriteString("\n\n")

	contentWidth := m.width - styles.SidebarStyle.GetHorizontalFrameSize()

	switch {
	case m.auth.Loading:
		b.WriteString(styles.AuthStatusStyle.Render("Checking login..."))
	case !m.auth.Authenticated:
		b.WriteString(styles.AuthStatusStyle.Render("Signed out. Run crudai login."))
	case len(m.chats) == 0:
		b.WriteString(styles.AuthStatusStyle.Render("No chats yet."))
	}

	for i, chat := range m.chats {
		title := truncateRow(chat.Title, contentWidth-4)
		prefix := "  "
		if chat.ID == m.sess.ActiveID() {
			prefix = styles.ChatRowActiveStyle.Render("● ")
		}

		row := prefix + title
		if i == m.cursor && m.focused {
			if m.renaming {
				row = m.input.View()
			} else {
				row = styles.ChatRowSelectedStyle.Render("> " + title)
				if m.menuOpen {
					row += "\n" + styles.MenuStyle.Render("    ⋮ [r]ename  [d]elete")
				}
			}
		} else {
			row = styles.ChatRowStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	body := b.String()
	footer := m.authStatus()
	gap := m.height - lipgloss.Height(body) - lipgloss.Height(footer)
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}

	return styles.SidebarStyle.Width(m.width).Height(m.height).Render(body + footer)
}

func (m *Model) authStatus() string {
	switch {
	case m.auth.Loading:
		return styles.AuthStatusStyle.Render("…")
	case !m.auth.Authenticated:
		return styles.AuthStatusStyle.Render("✗ signed out")
	case m.auth.Profile != nil && m.auth.Profile.Email != "":
		return styles.AuthStatusStyle.Render(fmt.Sprintf("✓ %s", m.auth.Profile.Email))
	default:
		return styles.AuthStatusStyle.Render("✓ signed in")
	}
}

func truncateRow(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 1 || len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
