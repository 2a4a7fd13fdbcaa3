// Package chat implements the interactive chat TUI: a sidebar of chats and
// the thread pane, composed into a single bubbletea program.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timoelan/crudai/cli/chat/sidebar"
	"github.com/timoelan/crudai/cli/chat/thread"
	"github.com/timoelan/crudai/internal/api"
	"github.com/timoelan/crudai/internal/session"
)

type focusArea int

const (
	focusThread focusArea = iota
	focusSidebar
)

// Model is the root TUI model. It owns the session store and routes messages
// between the panes: pane commands emit typed messages, the root applies the
// session side effects, then both panes see the message.
type Model struct {
	ctx  context.Context
	sess *session.Store

	sidebar *sidebar.Model
	thread  *thread.Model

	focus  focusArea
	width  int
	height int
}

// NewModel creates the root model and its panes.
func NewModel(ctx context.Context, client *api.Client, sess *session.Store) (*Model, error) {
	threadPane, err := thread.New(ctx, client, sess)
	if err != nil {
		return nil, err
	}
	m := &Model{
		ctx:     ctx,
		sess:    sess,
		sidebar: sidebar.New(ctx, client, sess),
		thread:  threadPane,
	}
	m.thread.Focus()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.thread.Init()
}
