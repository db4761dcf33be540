package campusfound

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/campusfound/campusfound-go/apierror"
	"github.com/campusfound/campusfound-go/credstore"
	"github.com/campusfound/campusfound-go/signal"
	"github.com/campusfound/campusfound-go/transport"
)

// Client is the single source of truth for the current identity, readable by
// every component — pipeline, guard, UI — without direct coupling. Session
// fields are mutated only by Client methods; the request pipeline reaches the
// session exclusively through the auth:logout signal.
type Client struct {
	cfg      Config
	log      zerolog.Logger
	store    credstore.Store
	hub      *signal.Hub
	pipeline *transport.Pipeline
	metrics  *Metrics

	mu            sync.RWMutex
	token         string
	identity      Identity
	role          Role
	authenticated bool

	loginInFlight atomic.Bool
	unsubscribe   func()
}

// Session returns a point-in-time copy of the session record. The copy is
// internally consistent: a commit writes token, identity, and role within one
// critical section, so no reader observes a partially-updated session.
func (c *Client) Session() SessionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return SessionState{
		Token:         c.token,
		Identity:      c.identity,
		Role:          c.role,
		Authenticated: c.authenticated,
	}
}

// IsAuthenticated reports whether token, identity, and role are all present.
func (c *Client) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authenticated
}

// Token returns the bearer credential, or an empty string when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Role returns the session role, or an empty Role when logged out.
func (c *Client) Role() Role {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.role
}

// Identity returns the server-issued profile blob.
func (c *Client) Identity() Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.identity
}

// LoginInFlight reports whether a login call is outstanding. The flag is
// advisory, intended to let a UI disable duplicate submissions; it is not a
// mutual-exclusion lock.
func (c *Client) LoginInFlight() bool {
	return c.loginInFlight.Load()
}

// TokenExpired reports whether the current session token carries an elapsed
// JWT exp claim. See the package-level [TokenExpired] for the exact rules.
func (c *Client) TokenExpired() bool {
	return TokenExpired(c.Token())
}

// HasRole reports whether the session holds any of the given roles. It is
// false whenever the session is unauthenticated, regardless of the argument.
func (c *Client) HasRole(roles ...Role) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.authenticated {
		return false
	}
	for _, r := range roles {
		if c.role == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the session holds either admin role.
func (c *Client) IsAdmin() bool {
	return c.HasRole(RoleLostItemAdmin, RoleSuperAdmin)
}

// Pipeline exposes the request pipeline for the domain API wrappers.
func (c *Client) Pipeline() *transport.Pipeline {
	return c.pipeline
}

// Hub exposes the signal hub so applications can observe auth:logout.
func (c *Client) Hub() *signal.Hub {
	return c.hub
}

// Errors exposes the in-memory ring of classified failures.
func (c *Client) Errors() *apierror.Log {
	return c.pipeline.Ring()
}

// MetricsSnapshot copies the SDK counters.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// RetryPolicy returns the configured default retry policy for call sites that
// opt in to retries.
func (c *Client) RetryPolicy() transport.Policy {
	return transport.Policy{
		MaxAttempts:   c.cfg.Retry.MaxAttempts,
		InitialDelay:  c.cfg.Retry.InitialDelay.Std(),
		BackoffFactor: c.cfg.Retry.BackoffFactor,
		Retryable:     apierror.DefaultRetryable,
	}
}

// Close deregisters the client's signal subscription. The client must not be
// used afterwards.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}
