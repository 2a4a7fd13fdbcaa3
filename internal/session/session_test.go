package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timoelan/crudai/internal/api"
)

func TestStoreStartsInPlaceholder(t *testing.T) {
	store := NewStore()
	require.True(t, store.InPlaceholder())
	require.Nil(t, store.Active())
	require.Equal(t, int64(0), store.ActiveID())
}

func TestActivate(t *testing.T) {
	store := NewStore()
	store.Activate(&api.Chat{ID: 5, Title: "Plans"})

	require.False(t, store.InPlaceholder())
	require.Equal(t, int64(5), store.ActiveID())
	require.Equal(t, "Plans", store.Active().Title)
}

func TestClearRevertsToPlaceholder(t *testing.T) {
	store := NewStore()
	store.Activate(&api.Chat{ID: 5})
	store.Clear()

	require.True(t, store.InPlaceholder())
	require.Nil(t, store.Active())
	require.Equal(t, int64(0), store.ActiveID())
}

func TestActivateReplacesActiveChat(t *testing.T) {
	store := NewStore()
	store.Activate(&api.Chat{ID: 5})
	store.Activate(&api.Chat{ID: 9})

	require.Equal(t, int64(9), store.ActiveID())
}
