// Package session owns the single "active chat" reference shared by the
// sidebar and the thread view. It is written only from the TUI update loop.
package session

import "github.com/timoelan/crudai/internal/api"

// Store holds the view state of the current session: at most one chat is
// active at any time; no active chat means placeholder (welcome) mode.
type Store struct {
	active      *api.Chat
	placeholder bool
}

// NewStore starts in placeholder mode.
func NewStore() *Store {
	return &Store{placeholder: true}
}

// Activate makes chat the active one and leaves placeholder mode.
func (s *Store) Activate(chat *api.Chat) {
	s.active = chat
	s.placeholder = false
}

// Clear drops the active chat and returns to placeholder mode.
func (s *Store) Clear() {
	s.active = nil
	s.placeholder = true
}

// Active returns the active chat, or nil in placeholder mode.
func (s *Store) Active() *api.Chat {
	return s.active
}

// ActiveID returns the active chat's id, or 0.
func (s *Store) ActiveID() int64 {
	if s.active == nil {
		return 0
	}
	return s.active.ID
}

// InPlaceholder reports whether the welcome screen is showing.
func (s *Store) InPlaceholder() bool {
	return s.placeholder
}
