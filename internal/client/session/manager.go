// Package session owns authentication state: it establishes the server
// session, guards data calls behind it, and persists the connection profile
// only after a successful login.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/odooclock/internal/client/models"
	"github.com/dmitrijs2005/odooclock/internal/client/rpc"
	"github.com/dmitrijs2005/odooclock/internal/client/secretstore"
	"github.com/dmitrijs2005/odooclock/internal/common"
	"github.com/dmitrijs2005/odooclock/internal/logging"
)

const authEndpoint = "/web/session/authenticate"

// Session holds the identifiers of an established server session.
// At most one live Session exists per Manager.
type Session struct {
	UID       int64
	SessionID string
	PartnerID int64
}

// Caller is the transport surface the manager builds on. *rpc.Client
// satisfies it; tests substitute fakes.
type Caller interface {
	Call(ctx context.Context, endpoint string, params any) (json.RawMessage, error)
}

// ClientFactory builds a fresh transport for a server base URL. Each
// authentication gets a new transport so cookies never leak across profiles.
type ClientFactory func(baseURL string) Caller

// Manager is the session state machine:
//
//	Unauthenticated -> Authenticating -> Authenticated -> Unauthenticated
//
// A mutex serializes session establishment; data calls wait for an
// authenticate in progress before reading the current transport, so a data
// call can never race an authenticate for the cookie.
type Manager struct {
	store     secretstore.Store
	log       logging.Logger
	newClient ClientFactory

	mu      sync.Mutex // held across the whole authenticate RPC
	client  Caller
	profile *models.Profile
	session *Session
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClientFactory replaces the transport constructor (used by tests).
func WithClientFactory(f ClientFactory) Option {
	return func(m *Manager) { m.newClient = f }
}

// NewManager constructs an unauthenticated Manager.
func NewManager(store secretstore.Store, log logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		log:   log.With("component", "session"),
	}
	m.newClient = func(baseURL string) Caller {
		return rpc.NewClient(baseURL, log)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Authenticate establishes a session for the given profile and persists the
// profile on success. On any failure the manager stays (or becomes)
// unauthenticated with no partial session state, and previously saved
// configuration is left untouched.
//
// Concurrent calls are serialized: a second Authenticate waits for the one
// in flight and then runs; two authentication RPCs are never in flight at
// once.
func (m *Manager) Authenticate(ctx context.Context, profile models.Profile) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticateLocked(ctx, profile, true)
}

func (m *Manager) authenticateLocked(ctx context.Context, profile models.Profile, persist bool) (int64, error) {
	client := m.newClient(profile.URL)

	result, err := client.Call(ctx, authEndpoint, map[string]any{
		"db":       profile.Database,
		"login":    profile.Username,
		"password": profile.Password,
	})
	if err != nil {
		m.log.Warn(ctx, "authentication failed", "db", profile.Database, "login", profile.Username, "err", err)
		return 0, fmt.Errorf("authenticate: %w", err)
	}

	// uid/partner_id arrive as false rather than a number when the login is
	// rejected without an error envelope, so decode through tolerant types.
	var payload struct {
		UID       models.OptFloat  `json:"uid"`
		SessionID models.OptString `json:"session_id"`
		PartnerID models.OptFloat  `json:"partner_id"`
	}
	if err := json.Unmarshal(result, &payload); err != nil {
		return 0, fmt.Errorf("authenticate: decoding session: %w", err)
	}
	if payload.UID == 0 {
		return 0, fmt.Errorf("authenticate: %w", &rpc.ProtocolError{Message: "invalid credentials"})
	}
	sess := Session{
		UID:       int64(payload.UID),
		SessionID: string(payload.SessionID),
		PartnerID: int64(payload.PartnerID),
	}

	if persist {
		if err := m.store.Save(ctx, profile); err != nil {
			// Session without persisted profile would be partially applied
			// state; fail the whole attempt.
			return 0, fmt.Errorf("authenticate: saving profile: %w", err)
		}
	}

	p := profile
	m.client = client
	m.profile = &p
	m.session = &sess

	m.log.Info(ctx, "authenticated", "uid", sess.UID, "partner_id", sess.PartnerID)
	return sess.UID, nil
}

// Reconnect re-authenticates using the saved profile. Fails with
// common.ErrMissingConfiguration when nothing was saved.
func (m *Manager) Reconnect(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	profile := m.profile
	if profile == nil {
		loaded, err := m.store.Load(ctx)
		if err != nil {
			return 0, err
		}
		profile = loaded
	}
	// The profile is already persisted; no need to write it back.
	return m.authenticateLocked(ctx, *profile, false)
}

// Logout clears in-memory session state unconditionally and erases the
// persisted profile. Idempotent.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.client = nil
	m.profile = nil
	m.session = nil

	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: clearing stored profile: %w", err)
	}
	m.log.Info(ctx, "logged out")
	return nil
}

// Call forwards a data call through the authenticated transport. It fails
// immediately with common.ErrNotAuthenticated when no session is held,
// without issuing a network call. Acquiring the session lock first means the
// call waits for any authenticate in progress instead of racing its cookie.
func (m *Manager) Call(ctx context.Context, endpoint string, params any) (json.RawMessage, error) {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()

	if client == nil {
		return nil, common.ErrNotAuthenticated
	}
	return client.Call(ctx, endpoint, params)
}

// Session returns a copy of the current session, or nil when unauthenticated.
func (m *Manager) Session() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil
	}
	s := *m.session
	return &s
}

// IsAuthenticated reports whether a session is currently held.
func (m *Manager) IsAuthenticated() bool {
	return m.Session() != nil
}

