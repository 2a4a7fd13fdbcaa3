package auth

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/timoelan/crudai/internal/configuration"
)

func TestDisabledGateIsAlwaysAuthenticated(t *testing.T) {
	gate := Disabled{}
	require.True(t, gate.State().Authenticated)
	require.Empty(t, gate.Token(context.Background()))
}

func TestDisabledGateSubscribeDeliversImmediately(t *testing.T) {
	var received []State
	cancel := Disabled{}.Subscribe(func(state State) {
		received = append(received, state)
	})
	defer cancel()

	require.Len(t, received, 1)
	require.True(t, received[0].Authenticated)
}

func TestNewOIDCRequiresDomainAndClientID(t *testing.T) {
	_, err := NewOIDC(&configuration.AuthConfig{})
	require.Error(t, err)

	_, err = NewOIDC(&configuration.AuthConfig{Domain: "tenant.invalid"})
	require.Error(t, err)

	_, err = NewOIDC(&configuration.AuthConfig{ClientID: "client"})
	require.Error(t, err)
}

func TestNewOIDCWithoutCachedToken(t *testing.T) {
	gate, err := NewOIDC(&configuration.AuthConfig{
		Domain:    "tenant.invalid",
		ClientID:  "client",
		TokenFile: filepath.Join(t.TempDir(), "token.json"),
	})
	require.NoError(t, err)

	state := gate.State()
	require.False(t, state.Authenticated)
	require.False(t, state.Loading)
	require.Empty(t, gate.Token(context.Background()))
}

func TestNewOIDCWithValidCachedToken(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token.json")
	writeToken(t, tokenFile, &oauth2.Token{
		AccessToken: "cached-token",
		Expiry:      time.Now().Add(time.Hour),
	})

	gate, err := NewOIDC(&configuration.AuthConfig{
		Domain:    "tenant.invalid",
		ClientID:  "client",
		TokenFile: tokenFile,
	})
	require.NoError(t, err)

	require.True(t, gate.State().Authenticated)
	require.Equal(t, "cached-token", gate.Token(context.Background()))
}

func TestNewOIDCWithExpiredTokenAndNoRefreshToken(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token.json")
	writeToken(t, tokenFile, &oauth2.Token{
		AccessToken: "stale",
		Expiry:      time.Now().Add(-time.Hour),
	})

	gate, err := NewOIDC(&configuration.AuthConfig{
		Domain:    "tenant.invalid",
		ClientID:  "client",
		TokenFile: tokenFile,
	})
	require.NoError(t, err)
	require.False(t, gate.State().Authenticated)
}

func TestFailedRefreshDowngradesState(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token.json")
	// Expired with a refresh token: the refresh goes to an unresolvable
	// host and fails, which must flip the gate to unauthenticated.
	writeToken(t, tokenFile, &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(-time.Hour),
	})

	gate, err := NewOIDC(&configuration.AuthConfig{
		Domain:    "tenant.invalid",
		ClientID:  "client",
		TokenFile: tokenFile,
	})
	require.NoError(t, err)

	var states []State
	gate.Subscribe(func(state State) { states = append(states, state) })

	require.Empty(t, gate.Token(context.Background()))
	require.False(t, gate.State().Authenticated)
	// Initial delivery plus the downgrade notification.
	require.GreaterOrEqual(t, len(states), 2)
	require.False(t, states[len(states)-1].Authenticated)
}

func TestSubscribeCancelStopsNotifications(t *testing.T) {
	gate, err := NewOIDC(&configuration.AuthConfig{
		Domain:    "tenant.invalid",
		ClientID:  "client",
		TokenFile: filepath.Join(t.TempDir(), "token.json"),
	})
	require.NoError(t, err)

	count := 0
	cancel := gate.Subscribe(func(State) { count++ })
	require.Equal(t, 1, count)

	cancel()
	gate.setState(State{Authenticated: true})
	require.Equal(t, 1, count)
}

func TestLogoutRemovesToken(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token.json")
	writeToken(t, tokenFile, &oauth2.Token{
		AccessToken: "cached-token",
		Expiry:      time.Now().Add(time.Hour),
	})

	gate, err := NewOIDC(&configuration.AuthConfig{
		Domain:    "tenant.invalid",
		ClientID:  "client",
		TokenFile: tokenFile,
	})
	require.NoError(t, err)
	require.True(t, gate.State().Authenticated)

	require.NoError(t, gate.Logout())
	require.False(t, gate.State().Authenticated)
	_, statErr := os.Stat(tokenFile)
	require.True(t, os.IsNotExist(statErr))
}

func writeToken(t *testing.T, path string, token *oauth2.Token) {
	t.Helper()
	bytes, err := json.Marshal(token)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, bytes, 0600))
}
