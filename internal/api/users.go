package api

import (
	"context"
	"net/http"
)

// UpdateUserRequest carries the editable profile fields. Nil fields are left
// untouched by the backend.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Name     *string `json:"name,omitempty"`
}

// GetCurrentUser returns the backend's profile of the authenticated user,
// or nil when unauthenticated or on failure.
func (c *Client) GetCurrentUser(ctx context.Context) *User {
	if !c.authenticated() {
		return nil
	}
	user := &User{}
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, user); err != nil {
		c.log.Error("fetching current user", "error", err)
		return nil
	}
	return user
}

// UpdateCurrentUser updates the profile. Returns nil on failure.
func (c *Client) UpdateCurrentUser(ctx context.Context, req UpdateUserRequest) *User {
	user := &User{}
	if err := c.do(ctx, http.MethodPut, "/users/me", req, user); err != nil {
		c.log.Error("updating current user", "error", err)
		return nil
	}
	return user
}
