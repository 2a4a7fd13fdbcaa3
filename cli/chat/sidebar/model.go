// Package sidebar renders the chat list pane: load, create, rename, delete
// and selection. It never fetches messages; selection is handed to the
// thread via ChatSelectedMsg.
package sidebar

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/timoelan/crudai/cli/chat/styles"
	"github.com/timoelan/crudai/internal/api"
	"github.com/timoelan/crudai/internal/auth"
	"github.com/timoelan/crudai/internal/session"
)

// Model is the sidebar pane.
type Model struct {
	ctx    context.Context
	client *api.Client
	sess   *session.Store

	chats  []*api.Chat
	cursor int
	// loaded guards against re-fetching the list on every auth
	// notification.
	loaded bool
	auth   auth.State

	// menuOpen shows the action menu for the row under the cursor. It
	// closes whenever the cursor moves or the pane loses focus.
	menuOpen bool
	renaming bool
	input    textinput.Model

	width   int
	height  int
	focused bool
}

// New creates the sidebar.
func New(ctx context.Context, client *api.Client, sess *session.Store) *Model {
	input := textinput.New()
	input.CharLimit = 120
	input.Prompt = "✏ "
	return &Model{
		ctx:    ctx,
		client: client,
		sess:   sess,
		input:  input,
		auth:   auth.State{Loading: true},
	}
}

// SetSize sets the pane dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - styles.SidebarStyle.GetHorizontalFrameSize() - 4
}

// Focus gives the pane keyboard focus.
func (m *Model) Focus() {
	m.focused = true
}

// Blur removes keyboard focus and closes any open row menu.
func (m *Model) Blur() {
	m.focused = false
	m.menuOpen = false
	m.cancelRename()
}

// Focused reports keyboard focus.
func (m *Model) Focused() bool {
	return m.focused
}

// Chats exposes the local chat list.
func (m *Model) Chats() []*api.Chat {
	return m.chats
}

// Loaded reports whether the initial fetch has been issued.
func (m *Model) Loaded() bool {
	return m.loaded
}

func (m *Model) selected() *api.Chat {
	if m.cursor < 0 || m.cursor >= len(m.chats) {
		return nil
	}
	return m.chats[m.cursor]
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.chats) {
		m.cursor = len(m.chats) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) cancelRename() {
	m.renaming = false
	m.input.Blur()
	m.input.Reset()
}
