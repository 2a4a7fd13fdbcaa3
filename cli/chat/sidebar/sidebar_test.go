package sidebar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/timoelan/crudai/cli/chat/types"
	"github.com/timoelan/crudai/internal/api"
	"github.com/timoelan/crudai/internal/auth"
	"github.com/timoelan/crudai/internal/configuration"
	"github.com/timoelan/crudai/internal/session"
)

func newTestModel(t *testing.T, handler http.Handler) *Model {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	config := &configuration.Config{APIBaseURL: server.URL}
	client := api.New(config, auth.Disabled{})
	return New(context.Background(), client, session.NewStore())
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAuthLoadsChatsOnce(t *testing.T) {
	requests := 0
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode([]*api.Chat{{ID: 1, Title: "First"}})
	}))

	cmd := m.Update(types.AuthStateMsg{State: auth.State{Authenticated: true}})
	require.NotNil(t, cmd)
	m.Update(cmd())
	require.Len(t, m.Chats(), 1)
	require.Equal(t, 1, requests)

	// A second auth notification must not refetch.
	cmd = m.Update(types.AuthStateMsg{State: auth.State{Authenticated: true}})
	require.Nil(t, cmd)
	require.Equal(t, 1, requests)
}

func TestAuthLossClearsList(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]*api.Chat{{ID: 1}})
	}))

	cmd := m.Update(types.AuthStateMsg{State: auth.State{Authenticated: true}})
	m.Update(cmd())
	require.Len(t, m.Chats(), 1)

	m.Update(types.AuthStateMsg{State: auth.State{}})
	require.Empty(t, m.Chats())
	require.False(t, m.Loaded())
}

func TestLoadingStateDoesNotClearList(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]*api.Chat{{ID: 1}})
	}))

	cmd := m.Update(types.AuthStateMsg{State: auth.State{Authenticated: true}})
	m.Update(cmd())

	m.Update(types.AuthStateMsg{State: auth.State{Loading: true}})
	require.Len(t, m.Chats(), 1)
	require.True(t, m.Loaded())
}

func TestCreatedChatIsPrepended(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	m.Update(types.ChatsLoadedMsg{Chats: []*api.Chat{{ID: 1}, {ID: 2}}})

	m.Update(types.ChatCreatedMsg{Chat: &api.Chat{ID: 3}, Select: true})
	require.Equal(t, int64(3), m.Chats()[0].ID)
	require.Equal(t, 0, m.cursor)
}

func TestCreatedChatWithoutSelectKeepsCursorRow(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	m.Update(types.ChatsLoadedMsg{Chats: []*api.Chat{{ID: 1}, {ID: 2}}})
	m.Focus()
	m.Update(keyMsg("j"))
	require.Equal(t, 1, m.cursor)

	m.Update(types.ChatCreatedMsg{Chat: &api.Chat{ID: 3}})
	require.Equal(t, 2, m.cursor)
	require.Equal(t, int64(2), m.selected().ID)
}

func TestRenamedChatUpdatesTitleInPlace(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	m.Update(types.ChatsLoadedMsg{Chats: []*api.Chat{{ID: 1, Title: "Old"}, {ID: 2}}})

	m.Update(types.ChatRenamedMsg{Chat: &api.Chat{ID: 1, Title: "New"}})
	require.Equal(t, "New", m.Chats()[0].Title)
	require.Len(t, m.Chats(), 2)
}

func TestDeletedChatIsRemovedAndCursorClamped(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	m.Update(types.ChatsLoadedMsg{Chats: []*api.Chat{{ID: 1}, {ID: 2}}})
	m.Focus()
	m.Update(keyMsg("j"))

	m.Update(types.ChatDeletedMsg{ChatID: 2})
	require.Len(t, m.Chats(), 1)
	require.Equal(t, 0, m.cursor)
}

func TestEnterEmitsChatSelected(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	m.Update(types.ChatsLoadedMsg{Chats: []*api.Chat{{ID: 1, Title: "First"}}})
	m.Focus()

	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	selected, ok := cmd().(types.ChatSelectedMsg)
	require.True(t, ok)
	require.Equal(t, int64(1), selected.Chat.ID)
}

func TestKeysIgnoredWithoutFocus(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	m.Update(types.ChatsLoadedMsg{Chats: []*api.Chat{{ID: 1}, {ID: 2}}})

	require.Nil(t, m.Update(keyMsg("j")))
	require.Equal(t, 0, m.cursor)
}

func TestRenameCommitSendsUpdate(t *testing.T) {
	var gotTitle string
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Title string `json:"title"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotTitle = body.Title
		json.NewEncoder(w).Encode(&api.Chat{ID: 1, Title: body.Title})
	}))
	m.Update(types.ChatsLoadedMsg{Chats: []*api.Chat{{ID: 1, Title: "Old"}}})
	m.Focus()

	m.Update(keyMsg("r"))
	require.True(t, m.renaming)

	m.input.SetValue("Renamed")
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	renamed, ok := cmd().(types.ChatRenamedMsg)
	require.True(t, ok)
	require.Equal(t, "Renamed", renamed.Chat.Title)
	require.Equal(t, "Renamed", gotTitle)
	require.False(t, m.renaming)
}

func TestRenameEscCancels(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	m.Update(types.ChatsLoadedMsg{Chats: []*api.Chat{{ID: 1, Title: "Old"}}})
	m.Focus()

	m.Update(keyMsg("r"))
	m.input.SetValue("changed")
	require.Nil(t, m.Update(tea.KeyMsg{Type: tea.KeyEsc}))
	require.False(t, m.renaming)
	require.Equal(t, "Old", m.Chats()[0].Title)
}
