// Package session tracks the identity state that decides which authority
// (remote API or local cache) the stores talk to. A Session is created per
// identity and passed explicitly to store constructors; sign-in and
// sign-out discard it and everything built on it.
package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"taskflow/internal/config"
)

// LocalOwner is the owner id recorded on tasks created while signed out.
const LocalOwner = "local"

// State is the identity state of a session.
type State int

const (
	// Unauthenticated sessions target the local cache only.
	Unauthenticated State = iota

	// Authenticating is the transient state while a credential is being
	// acquired; it resolves to Authenticated or back to Unauthenticated.
	Authenticating

	// Authenticated sessions treat the remote store as authority.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Session is the identity context for one signed-in user or for the
// anonymous local-only mode.
type Session struct {
	state  State
	userID string
	source oauth2.TokenSource
}

// Anonymous returns the local-only session.
func Anonymous() *Session {
	return &Session{state: Unauthenticated, userID: LocalOwner}
}

// Static returns an authenticated session with a fixed identity and no
// credential source. It backs tests and factories that inject their own
// transport.
func Static(userID string) *Session {
	return &Session{state: Authenticated, userID: userID}
}

// Load restores a session from the stored token, or returns the anonymous
// session when no token is stored. A stored but unparseable token counts as
// signed out.
func Load(ctx context.Context, cfg *config.Config) *Session {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return Anonymous()
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil || token.RefreshToken == "" {
		return Anonymous()
	}
	return fromToken(ctx, cfg, &token)
}

// Login acquires a credential with the password grant, stores it, and
// returns the authenticated session. On failure the caller remains signed
// out.
func Login(ctx context.Context, cfg *config.Config, email, password string) (*Session, error) {
	conf := oauthConfig(cfg)

	grantCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	token, err := conf.PasswordCredentialsToken(grantCtx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign-in failed: %w", err)
	}

	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := saveToken(cfg.TokenPath(), token); err != nil {
		return nil, fmt.Errorf("failed to save token: %w", err)
	}

	return fromToken(ctx, cfg, token), nil
}

func fromToken(ctx context.Context, cfg *config.Config, token *oauth2.Token) *Session {
	return &Session{
		state:  Authenticated,
		userID: subjectClaim(token.AccessToken),
		source: oauthConfig(cfg).TokenSource(ctx, token),
	}
}

// State returns the session's identity state.
func (s *Session) State() State { return s.state }

// Authenticated reports whether the remote store is the authority.
func (s *Session) Authenticated() bool { return s.state == Authenticated }

// UserID returns the signed-in user id, or LocalOwner when signed out.
func (s *Session) UserID() string { return s.userID }

// Client returns an HTTP client that injects the bearer credential and
// refreshes it as needed. Nil for unauthenticated sessions.
func (s *Session) Client(ctx context.Context) *http.Client {
	if s.source == nil {
		return nil
	}
	return oauth2.NewClient(ctx, s.source)
}

func oauthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID: cfg.Settings.ClientID,
		Endpoint: oauth2.Endpoint{
			TokenURL:  cfg.Settings.AuthURL + "/oauth/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// saveToken writes the token file with mode 0600.
func saveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// subjectClaim extracts the sub claim from a JWT access token without
// verifying the signature; verification is the server's job, the client
// only needs the owner id for display and record stamping.
func subjectClaim(accessToken string) string {
	parts := strings.Split(accessToken, ".")
	if len(parts) != 3 {
		return ""
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return ""
	}
	var claims struct {
		Sub string `json:"sub"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return ""
	}
	return claims.Sub
}
