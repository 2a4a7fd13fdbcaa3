package thread

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/timoelan/crudai/cli/chat/types"
	"github.com/timoelan/crudai/internal/api"
	"github.com/timoelan/crudai/internal/auth"
	"github.com/timoelan/crudai/internal/configuration"
	"github.com/timoelan/crudai/internal/session"
)

func TestTitleFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "short content unchanged",
			content:  "Hello world",
			expected: "Hello world",
		},
		{
			name:     "exactly fifty characters unchanged",
			content:  strings.Repeat("a", 50),
			expected: strings.Repeat("a", 50),
		},
		{
			name:     "long content cut at fifty",
			content:  strings.Repeat("a", 60),
			expected: strings.Repeat("a", 50) + "...",
		},
		{
			name:     "multibyte content cut by runes",
			content:  strings.Repeat("ü", 60),
			expected: strings.Repeat("ü", 50) + "...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, TitleFromContent(tt.content))
		})
	}
}

func newTestThread(t *testing.T, handler http.Handler) (*Model, *session.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	config := &configuration.Config{APIBaseURL: server.URL}
	client := api.New(config, auth.Disabled{})

	sess := session.NewStore()
	m, err := New(context.Background(), client, sess)
	require.NoError(t, err)
	m.Focus()
	m.SetSize(80, 24)
	return m, sess
}

func TestSubmitInPlaceholderCreatesChatThenSends(t *testing.T) {
	m, sess := newTestThread(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/chats":
			var body struct {
				Title string `json:"title"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			json.NewEncoder(w).Encode(&api.Chat{ID: 9, Title: body.Title})
		case r.Method == http.MethodPost && r.URL.Path == "/messages":
			json.NewEncoder(w).Encode(&api.Message{ID: 1, ChatID: 9, Content: "first message", IsFromUser: true})
		default:
			http.NotFound(w, r)
		}
	}))

	m.textarea.SetValue("first message")
	cmd := m.submit()
	require.NotNil(t, cmd)
	require.True(t, m.Sending())
	require.Empty(t, m.textarea.Value())

	created, ok := cmd().(types.ChatCreatedMsg)
	require.True(t, ok)
	require.True(t, created.Select)
	require.Equal(t, "first message", created.FirstMessage)
	require.Equal(t, "first message", created.Chat.Title)

	// The root model activates the chat before the panes see the message.
	sess.Activate(created.Chat)
	cmd = m.Update(created)
	require.NotNil(t, cmd)

	sent, ok := findMsg[types.MessageSentMsg](t, cmd)
	require.True(t, ok)
	require.Equal(t, "first message", sent.Message.Content)
}

func TestSubmitEmptyInputIgnored(t *testing.T) {
	m, _ := newTestThread(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	m.textarea.SetValue("   \n  ")
	require.Nil(t, m.submit())
	require.False(t, m.Sending())
}

func TestMessageSentShowsTypingAndRequestsReply(t *testing.T) {
	m, sess := newTestThread(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ai/generate/9", r.URL.Path)
		json.NewEncoder(w).Encode(&api.Message{ID: 2, ChatID: 9, Content: "hi!", IsFromUser: false})
	}))
	sess.Activate(&api.Chat{ID: 9})

	cmd := m.Update(types.MessageSentMsg{Message: &api.Message{ID: 1, ChatID: 9, Content: "hello", IsFromUser: true}})
	require.True(t, m.Typing())
	require.Len(t, m.Entries(), 1)
	require.NotNil(t, cmd)

	reply, ok := findMsg[types.AIReplyMsg](t, cmd)
	require.True(t, ok)
	require.NotNil(t, reply.Message)

	m.Update(reply)
	require.False(t, m.Typing())
	require.False(t, m.Sending())
	require.Len(t, m.Entries(), 2)
	require.Equal(t, "hi!", m.Entries()[1].Message.Content)
}

func TestSendFailureSkipsAIRequest(t *testing.T) {
	aiRequested := false
	m, sess := newTestThread(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/ai/") {
			aiRequested = true
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	sess.Activate(&api.Chat{ID: 9})

	m.textarea.SetValue("hello")
	cmd := m.submit()
	failed, ok := cmd().(types.MessageSendFailedMsg)
	require.True(t, ok)

	m.Update(failed)
	require.False(t, m.Sending())
	require.False(t, m.Typing())
	require.Empty(t, m.Entries())
	require.NotNil(t, m.err)
	require.False(t, aiRequested)

	// The cleared input is not restored.
	require.Empty(t, m.textarea.Value())
}

func TestSendFailureToastIsRendered(t *testing.T) {
	m, sess := newTestThread(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	sess.Activate(&api.Chat{ID: 9})

	// The toast renders at a fixed width, so assert on a fragment that
	// cannot be split by its word wrap.
	cmd := m.Update(types.MessageSendFailedMsg{})
	require.True(t, pumpUntilRendered(m, cmd, "Failed to send"))
}

func TestClipboardCopyToastIsRendered(t *testing.T) {
	m, sess := newTestThread(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	sess.Activate(&api.Chat{ID: 9})
	m.SetClipboardAvailable(false)
	m.Update(types.MessagesLoadedMsg{ChatID: 9, Messages: []*api.Message{{ID: 1, Content: "hello"}}})

	// Without clipboard support no toast may appear.
	require.Nil(t, m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlY}))
}

// pumpUntilRendered feeds every message produced by cmd back through Update,
// checking each rendered frame for want.
func pumpUntilRendered(m *Model, cmd tea.Cmd, want string) bool {
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < 50; steps++ {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if msg == nil {
			continue
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if followup := m.Update(msg); followup != nil {
			queue = append(queue, followup)
		}
		if strings.Contains(m.View(), want) {
			return true
		}
	}
	return false
}

func TestNilReplyRendersInlineError(t *testing.T) {
	m, sess := newTestThread(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	sess.Activate(&api.Chat{ID: 9})
	m.typing = true
	m.sending = true

	m.Update(types.AIReplyMsg{})
	require.False(t, m.Typing())
	require.Len(t, m.Entries(), 1)
	require.Error(t, m.Entries()[0].Err)
	require.Nil(t, m.Entries()[0].Message)
}

func TestMessagesLoadedForStaleChatIgnored(t *testing.T) {
	m, sess := newTestThread(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	sess.Activate(&api.Chat{ID: 2})

	m.Update(types.MessagesLoadedMsg{ChatID: 1, Messages: []*api.Message{{ID: 1}}})
	require.Empty(t, m.Entries())

	m.Update(types.MessagesLoadedMsg{ChatID: 2, Messages: []*api.Message{{ID: 1}, {ID: 2}}})
	require.Len(t, m.Entries(), 2)
}

func TestShowWelcomeResetsPane(t *testing.T) {
	m, sess := newTestThread(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	sess.Activate(&api.Chat{ID: 9})
	m.Update(types.MessagesLoadedMsg{ChatID: 9, Messages: []*api.Message{{ID: 1}}})
	require.Len(t, m.Entries(), 1)

	sess.Clear()
	m.Update(types.ShowWelcomeMsg{})
	require.Empty(t, m.Entries())
	require.False(t, m.Typing())
	require.False(t, m.Sending())
}

// findMsg runs a command, following batches, until a message of type T turns
// up.
func findMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) (T, bool) {
	t.Helper()
	var zero T
	if cmd == nil {
		return zero, false
	}
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if typed, ok := msg.(T); ok {
			return typed, true
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
		}
	}
	return zero, false
}
