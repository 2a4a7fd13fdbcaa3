package api

import (
	"context"
	"fmt"
	"net/http"
)

type chatRequest struct {
	Title string `json:"title"`
}

// ListChats returns the user's chats in the backend's order. It returns an
// empty list when unauthenticated or on any failure.
func (c *Client) ListChats(ctx context.Context) []*Chat {
	if !c.authenticated() {
		return nil
	}
	var chats []*Chat
	if err := c.do(ctx, http.MethodGet, "/chats", nil, &chats); err != nil {
		c.log.Error("listing chats", "error", err)
		return nil
	}
	return chats
}

// CreateChat creates a chat with the given title. Returns nil on failure.
func (c *Client) CreateChat(ctx context.Context, title string) *Chat {
	chat := &Chat{}
	if err := c.do(ctx, http.MethodPost, "/chats", chatRequest{Title: title}, chat); err != nil {
		c.log.Error("creating chat", "title", title, "error", err)
		return nil
	}
	return chat
}

// UpdateChat renames a chat. Returns nil on failure.
func (c *Client) UpdateChat(ctx context.Context, chatID int64, title string) *Chat {
	chat := &Chat{}
	path := fmt.Sprintf("/chats/%d", chatID)
	if err := c.do(ctx, http.MethodPut, path, chatRequest{Title: title}, chat); err != nil {
		c.log.Error("updating chat", "chat_id", chatID, "error", err)
		return nil
	}
	return chat
}

// DeleteChat deletes a chat. Returns false on failure.
func (c *Client) DeleteChat(ctx context.Context, chatID int64) bool {
	path := fmt.Sprintf("/chats/%d", chatID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		c.log.Error("deleting chat", "chat_id", chatID, "error", err)
		return false
	}
	return true
}
