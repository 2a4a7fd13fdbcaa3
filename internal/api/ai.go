package api

import (
	"context"
	"fmt"
	"net/http"
)

// GenerateReply asks the backend to append an AI-generated reply to the
// chat and returns it. Returns nil when the AI is unavailable or the call
// fails for any reason.
func (c *Client) GenerateReply(ctx context.Context, chatID int64) *Message {
	message := &Message{}
	path := fmt.Sprintf("/ai/generate/%d", chatID)
	if err := c.do(ctx, http.MethodPost, path, nil, message); err != nil {
		c.log.Error("generating ai reply", "chat_id", chatID, "error", err)
		return nil
	}
	return message
}
