package api

import (
	"context"
	"fmt"
	"net/http"
)

type messageRequest struct {
	ChatID     int64  `json:"chat_id"`
	Content    string `json:"content"`
	IsFromUser bool   `json:"is_from_user"`
}

// ListMessages returns a chat's messages oldest first, as ordered by the
// backend. It returns an empty list when unauthenticated or on any failure.
func (c *Client) ListMessages(ctx context.Context, chatID int64) []*Message {
	if !c.authenticated() {
		return nil
	}
	var messages []*Message
	path := fmt.Sprintf("/messages/%d", chatID)
	if err := c.do(ctx, http.MethodGet, path, nil, &messages); err != nil {
		c.log.Error("listing messages", "chat_id", chatID, "error", err)
		return nil
	}
	return messages
}

// SendMessage persists a message against a chat. Returns nil on failure.
func (c *Client) SendMessage(ctx context.Context, chatID int64, content string, isFromUser bool) *Message {
	message := &Message{}
	body := messageRequest{ChatID: chatID, Content: content, IsFromUser: isFromUser}
	if err := c.do(ctx, http.MethodPost, "/messages", body, message); err != nil {
		c.log.Error("sending message", "chat_id", chatID, "error", err)
		return nil
	}
	return message
}
