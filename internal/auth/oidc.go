package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/timoelan/crudai/internal/configuration"
	"github.com/timoelan/crudai/internal/debug"
)

const scopes = "openid profile email offline_access " +
	"read:profile write:profile read:chats write:chats delete:chats " +
	"read:messages write:messages read:ai"

// OIDC is the identity provider gate. Tokens are cached on disk and
// refreshed silently; a refresh failure downgrades the state to
// unauthenticated instead of surfacing an error to callers.
type OIDC struct {
	oauth     oauth2.Config
	domain    string
	audience  string
	tokenFile string
	http      *http.Client

	mu        sync.Mutex
	token     *oauth2.Token
	state     State
	observers map[int]func(State)
	nextObs   int
}

// NewOIDC builds the gate from configuration. Required settings missing is a
// startup error.
func NewOIDC(config *configuration.AuthConfig) (*OIDC, error) {
	if config.Domain == "" || config.ClientID == "" {
		return nil, errors.New("identity provider configuration missing: domain and client id are required")
	}
	redirectURI := config.RedirectURI
	if redirectURI == "" {
		redirectURI = "http://localhost:5173/callback"
	}

	g := &OIDC{
		oauth: oauth2.Config{
			ClientID:    config.ClientID,
			RedirectURL: redirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:  fmt.Sprintf("https://%s/authorize", config.Domain),
				TokenURL: fmt.Sprintf("https://%s/oauth/token", config.Domain),
			},
			Scopes: []string{scopes},
		},
		domain:    config.Domain,
		audience:  config.Audience,
		tokenFile: config.TokenFile,
		http:      &http.Client{Timeout: 10 * time.Second},
		state:     State{Loading: true},
		observers: map[int]func(State){},
	}

	// Determine the initial state from the cached token, then fetch the
	// profile if we are still logged in.
	if token, err := g.loadToken(); err == nil {
		g.token = token
		g.state = State{Authenticated: true}
		if profile, err := g.fetchProfile(context.Background()); err == nil {
			g.state.Profile = profile
		}
	} else {
		g.state = State{}
	}
	return g, nil
}

// State implements Gate.
func (g *OIDC) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Token implements Gate. The refresh is silent: on failure the gate flips to
// unauthenticated and returns an empty token.
func (g *OIDC) Token(ctx context.Context) string {
	g.mu.Lock()
	token := g.token
	g.mu.Unlock()
	if token == nil {
		return ""
	}

	fresh, err := g.oauth.TokenSource(ctx, token).Token()
	if err != nil {
		debug.GetLogger().Warn("silent token refresh failed", "error", err)
		g.setState(State{})
		return ""
	}
	if fresh.AccessToken != token.AccessToken {
		g.mu.Lock()
		g.token = fresh
		g.mu.Unlock()
		g.saveToken(fresh)
	}
	return fresh.AccessToken
}

// Subscribe implements Gate.
func (g *OIDC) Subscribe(fn func(State)) func() {
	g.mu.Lock()
	id := g.nextObs
	g.nextObs++
	g.observers[id] = fn
	state := g.state
	g.mu.Unlock()

	fn(state)
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.observers, id)
	}
}

// StartPolling re-checks token validity on a fixed interval and re-notifies
// observers. It is a fallback for providers without push events; state
// changes are already delivered synchronously. The returned function stops
// the poll.
func (g *OIDC) StartPolling(interval time.Duration) func() {
	if interval <= 0 {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				g.Token(context.Background())
				g.notify(g.State())
			}
		}
	}()
	return func() { close(done) }
}

// Login runs the authorization-code flow: it opens the provider's login page
// in a browser and waits for the redirect on a local listener bound to the
// configured redirect URI.
func (g *OIDC) Login(ctx context.Context) error {
	redirect, err := url.Parse(g.oauth.RedirectURL)
	if err != nil {
		return errors.Wrap(err, "parsing redirect uri")
	}

	listener, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return errors.Wrap(err, "listening on redirect uri")
	}
	defer listener.Close()

	state := uuid.NewString()
	authURL := g.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("audience", g.audience))

	fmt.Printf("Opening browser for login. If it does not open, visit:\n%s\n", authURL)
	openBrowser(authURL)

	type result struct {
		code string
		err  error
	}
	results := make(chan result, 1)
	server := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			results <- result{err: errors.New("state mismatch in callback")}
			return
		}
		if errCode := query.Get("error"); errCode != "" {
			http.Error(w, errCode, http.StatusBadRequest)
			results <- result{err: errors.Errorf("provider returned %s", errCode)}
			return
		}
		fmt.Fprintln(w, "Logged in. You can close this tab.")
		results <- result{code: query.Get("code")}
	})}
	go server.Serve(listener)
	defer server.Close()

	var res result
	select {
	case res = <-results:
	case <-ctx.Done():
		return ctx.Err()
	}
	if res.err != nil {
		return res.err
	}

	token, err := g.oauth.Exchange(ctx, res.code)
	if err != nil {
		return errors.Wrap(err, "exchanging authorization code")
	}
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
	if err := g.saveToken(token); err != nil {
		return errors.Wrap(err, "saving token")
	}

	newState := State{Authenticated: true}
	if profile, err := g.fetchProfile(ctx); err == nil {
		newState.Profile = profile
	}
	g.setState(newState)
	return nil
}

// Logout drops the cached token and flips the state.
func (g *OIDC) Logout() error {
	g.mu.Lock()
	g.token = nil
	g.mu.Unlock()
	if err := os.Remove(g.tokenFile); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing token file")
	}
	g.setState(State{})
	return nil
}

func (g *OIDC) setState(state State) {
	g.mu.Lock()
	g.state = state
	g.mu.Unlock()
	g.notify(state)
}

func (g *OIDC) notify(state State) {
	g.mu.Lock()
	fns := make([]func(State), 0, len(g.observers))
	for _, fn := range g.observers {
		fns = append(fns, fn)
	}
	g.mu.Unlock()
	for _, fn := range fns {
		fn(state)
	}
}

func (g *OIDC) fetchProfile(ctx context.Context) (*Profile, error) {
	token := g.Token(ctx)
	if token == "" {
		return nil, errors.New("no token")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("https://%s/userinfo", g.domain), nil)
	if err != nil {
		return nil, errors.Wrap(err, "building userinfo request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := g.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching userinfo")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("userinfo returned %d", resp.StatusCode)
	}
	profile := &Profile{}
	if err := json.NewDecoder(resp.Body).Decode(profile); err != nil {
		return nil, errors.Wrap(err, "decoding userinfo")
	}
	return profile, nil
}

func (g *OIDC) loadToken() (*oauth2.Token, error) {
	bytes, err := os.ReadFile(g.tokenFile)
	if err != nil {
		return nil, err
	}
	token := &oauth2.Token{}
	if err := json.Unmarshal(bytes, token); err != nil {
		return nil, err
	}
	if token.RefreshToken == "" && !token.Valid() {
		return nil, errors.New("cached token expired")
	}
	return token, nil
}

func (g *OIDC) saveToken(token *oauth2.Token) error {
	bytes, err := json.Marshal(token)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(g.tokenFile), 0700); err != nil {
		return err
	}
	return os.WriteFile(g.tokenFile, bytes, 0600)
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		debug.GetLogger().Warn("opening browser failed", "error", err)
	}
}
