// Package thread renders the message view: the welcome placeholder when no
// chat is active, the active chat's thread otherwise, and the send + AI-reply
// flow.
package thread

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"

	"github.com/timoelan/crudai/cli/chat/styles"
	"github.com/timoelan/crudai/cli/chat/types"
	"github.com/timoelan/crudai/internal/api"
	"github.com/timoelan/crudai/internal/history"
	"github.com/timoelan/crudai/internal/markdown"
	"github.com/timoelan/crudai/internal/session"
)

// Model is the thread pane.
type Model struct {
	ctx    context.Context
	client *api.Client
	sess   *session.Store

	entries []*types.Entry
	loading bool
	// sending disables the input for the whole send flow; a second submit
	// is prevented by this flag, not by cancelling the first request.
	sending bool
	// typing shows the transient "AI is typing" placeholder. It is always
	// cleared before the reply or the fallback error is rendered.
	typing bool

	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *markdown.Renderer
	alert    bubbleup.AlertModel
	history  *history.History

	// err is the user-visible failure banner for send and chat-creation
	// failures. Cleared on the next submit.
	err error

	clipboardOK bool

	width   int
	height  int
	ready   bool
	focused bool
}

// New creates the thread pane.
func New(ctx context.Context, client *api.Client, sess *session.Store) (*Model, error) {
	ta := textarea.New()
	ta.Placeholder = "Write your first message..."
	ta.CharLimit = 0
	ta.SetWidth(styles.DefaultTextareaWidth)
	ta.SetHeight(styles.MinTextareaHeight)
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	// Enter submits; alt+enter inserts a newline.
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	renderer, err := markdown.NewRenderer(styles.DefaultTextareaWidth)
	if err != nil {
		return nil, err
	}

	alert := bubbleup.NewAlertModel(25, true, 1)

	return &Model{
		ctx:      ctx,
		client:   client,
		sess:     sess,
		textarea: ta,
		spinner:  sp,
		renderer: renderer,
		alert:    *alert,
		history:  history.New(),
	}, nil
}

// Init initializes the pane.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.alert.Init(),
	)
}

// SetClipboardAvailable enables copy-to-clipboard.
func (m *Model) SetClipboardAvailable(ok bool) {
	m.clipboardOK = ok
}

// SetSize sets the pane dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.recalculateLayout()
}

// Focus gives the pane keyboard focus.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	if !m.sending {
		return m.textarea.Focus()
	}
	return nil
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.focused = false
	m.textarea.Blur()
}

// Focused reports keyboard focus.
func (m *Model) Focused() bool {
	return m.focused
}

// Entries exposes the displayed thread.
func (m *Model) Entries() []*types.Entry {
	return m.entries
}

// Sending reports whether a send flow is in flight.
func (m *Model) Sending() bool {
	return m.sending
}

// Typing reports whether the "AI is typing" placeholder is showing.
func (m *Model) Typing() bool {
	return m.typing
}

func (m *Model) appendEntry(entry *types.Entry) {
	m.entries = append(m.entries, entry)
}

func (m *Model) lastMessage() *api.Message {
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].Message != nil {
			return m.entries[i].Message
		}
	}
	return nil
}
