// Package types holds the messages routed between the sidebar and the
// thread view. They are the in-process counterpart of wire events: the two
// panes never call each other directly.
package types

import (
	"github.com/timoelan/crudai/internal/api"
	"github.com/timoelan/crudai/internal/auth"
)

// Entry is one displayed item of the thread. Err marks inline failure
// entries that were never persisted (e.g. "AI unavailable").
type Entry struct {
	Message *api.Message
	Err     error
}

// AuthStateMsg carries a gate notification into the program.
type AuthStateMsg struct {
	State auth.State
}

// ChatsLoadedMsg delivers the initial chat list.
type ChatsLoadedMsg struct {
	Chats []*api.Chat
}

// ChatSelectedMsg is raised by the sidebar when the user picks a chat.
type ChatSelectedMsg struct {
	Chat *api.Chat
}

// ChatCreatedMsg is raised after a successful create. Select is set when the
// creation originated from the thread's first-message flow; FirstMessage then
// carries the text still to be sent.
type ChatCreatedMsg struct {
	Chat         *api.Chat
	Select       bool
	FirstMessage string
}

// ChatCreateFailedMsg aborts a first-message send.
type ChatCreateFailedMsg struct{}

// ChatRenamedMsg delivers the renamed chat on success only.
type ChatRenamedMsg struct {
	Chat *api.Chat
}

// ChatDeletedMsg is raised after the backend confirmed a delete.
type ChatDeletedMsg struct {
	ChatID int64
}

// ShowWelcomeMsg returns the thread to placeholder mode.
type ShowWelcomeMsg struct{}

// MessagesLoadedMsg delivers a chat's thread. ChatID guards against a
// selection change racing the load.
type MessagesLoadedMsg struct {
	ChatID   int64
	Messages []*api.Message
}

// MessageSentMsg confirms the user's message was persisted.
type MessageSentMsg struct {
	Message *api.Message
}

// MessageSendFailedMsg reports a failed send; no AI reply is requested.
type MessageSendFailedMsg struct{}

// AIReplyMsg delivers the AI's reply. A nil Message means the AI was
// unavailable.
type AIReplyMsg struct {
	Message *api.Message
}
