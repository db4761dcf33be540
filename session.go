package campusfound

import (
	"context"
	"fmt"
	"net/http"

	"github.com/campusfound/campusfound-go/credstore"
	"github.com/campusfound/campusfound-go/transport"
)

// Initialize restores the session from the persisted record. The current
// layout wins when complete; otherwise a complete legacy-layout record is
// migrated — written into the current layout and deleted — before use.
// Migration is idempotent: once the legacy keys are gone, later runs are
// no-ops, and running against an already-current record changes nothing.
//
// Corrupt persisted data never fails Initialize: the problem is logged and
// the session falls back to logged-out, wholesale. A session is never
// restored partially populated.
func (c *Client) Initialize(ctx context.Context) error {
	values, err := c.store.Load(ctx, credstore.AllKeys()...)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	token := values[credstore.KeyToken]
	rawIdentity := values[credstore.KeyIdentity]
	role := Role(values[credstore.KeyRole])

	legacyToken, hasLT := values[credstore.LegacyKeyToken]
	legacyIdentity, hasLI := values[credstore.LegacyKeyIdentity]
	legacyRole, hasLR := values[credstore.LegacyKeyRole]
	if hasLT && hasLI && hasLR {
		token = legacyToken
		rawIdentity = legacyIdentity
		role = Role(legacyRole)

		if err := c.store.Save(ctx, map[string]string{
			credstore.KeyToken:    token,
			credstore.KeyIdentity: rawIdentity,
			credstore.KeyRole:     string(role),
		}); err != nil {
			return fmt.Errorf("migrate legacy session: %w", err)
		}
		if err := c.store.Delete(ctx, credstore.LegacyKeys()...); err != nil {
			return fmt.Errorf("drop legacy session keys: %w", err)
		}
		c.metrics.Inc(MetricLegacyMigrations)
		c.log.Info().Str("role", string(role)).Msg("migrated legacy session record")
	}

	if token == "" && rawIdentity == "" && role == "" {
		return nil
	}

	var identity Identity
	if rawIdentity != "" {
		identity, err = IdentityFromJSON([]byte(rawIdentity))
		if err != nil {
			c.log.Warn().Err(err).Msg("persisted identity is corrupt, dropping session")
			return c.clear(ctx)
		}
	}
	if role != "" && !role.Valid() {
		c.log.Warn().Str("role", string(role)).Msg("persisted role is unknown, dropping session")
		return c.clear(ctx)
	}

	c.mu.Lock()
	c.token = token
	c.identity = identity
	c.role = role
	c.authenticated = token != "" && !identity.IsZero() && role.Valid()
	c.mu.Unlock()
	return nil
}

// LoginAs authenticates against the endpoint for role and, on success,
// commits token, identity, and role together to memory and the persisted
// record. On failure the session is left exactly as it was and the classified
// error is returned. A role outside the three known values is rejected with
// [ErrUnsupportedRole] before any network call.
func (c *Client) LoginAs(ctx context.Context, role Role, creds Credentials) (SessionState, error) {
	var path string
	switch role {
	case RoleNormalUser:
		path = pathUserLogin
	case RoleLostItemAdmin:
		path = pathLostItemAdminLogin
	case RoleSuperAdmin:
		path = pathSuperAdminLogin
	default:
		return SessionState{}, fmt.Errorf("%w: %q", ErrUnsupportedRole, role)
	}

	c.loginInFlight.Store(true)
	defer c.loginInFlight.Store(false)

	env, err := c.pipeline.SendEnvelope(ctx, http.MethodPost, path, creds, transport.SendOptions{})
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		return SessionState{}, err
	}
	if env.Token == "" || len(env.Data) == 0 {
		c.metrics.Inc(MetricLoginFailure)
		return SessionState{}, ErrLoginResponseInvalid
	}
	identity, err := IdentityFromJSON(env.Data)
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		return SessionState{}, fmt.Errorf("%w: %v", ErrLoginResponseInvalid, err)
	}

	if err := c.commit(ctx, env.Token, identity, role); err != nil {
		c.metrics.Inc(MetricLoginFailure)
		return SessionState{}, err
	}

	c.metrics.Inc(MetricLoginSuccess)
	c.log.Info().Str("role", string(role)).Msg("login committed")
	return c.Session(), nil
}

// Logout invokes the server-side logout best-effort — a failure there is
// logged and never prevents local clearing — and then unconditionally clears
// the in-memory session and deletes both current and legacy persisted keys.
func (c *Client) Logout(ctx context.Context) error {
	opts := transport.SendOptions{SuppressNotify: true}
	if _, err := c.pipeline.Send(ctx, http.MethodPost, pathLogout, nil, opts); err != nil {
		c.log.Warn().Err(err).Msg("server logout failed, clearing local session anyway")
	}

	c.metrics.Inc(MetricLogout)
	return c.clear(ctx)
}

// RefreshIdentity re-fetches the profile through the role-appropriate
// endpoint and replaces only the identity field, leaving token and role
// untouched. It fails with [ErrNotAuthenticated] when no session is live.
func (c *Client) RefreshIdentity(ctx context.Context) (Identity, error) {
	state := c.Session()
	if !state.Authenticated {
		return Identity{}, ErrNotAuthenticated
	}
	id, ok := state.Identity.ID()
	if !ok {
		return Identity{}, fmt.Errorf("%w: identity has no id", ErrNotAuthenticated)
	}

	var path string
	switch state.Role {
	case RoleNormalUser:
		path = fmt.Sprintf("%s/%d", pathUserProfile, id)
	case RoleLostItemAdmin, RoleSuperAdmin:
		path = fmt.Sprintf("%s/%d", pathAdminProfile, id)
	default:
		return Identity{}, fmt.Errorf("%w: %q", ErrUnsupportedRole, state.Role)
	}

	data, err := c.pipeline.Send(ctx, http.MethodGet, path, nil, transport.SendOptions{})
	if err != nil {
		return Identity{}, err
	}
	identity, err := IdentityFromJSON(data)
	if err != nil {
		return Identity{}, fmt.Errorf("profile response malformed: %w", err)
	}

	if err := c.store.Save(ctx, map[string]string{
		credstore.KeyIdentity: string(identity.Raw()),
	}); err != nil {
		return Identity{}, fmt.Errorf("persist refreshed identity: %w", err)
	}

	c.mu.Lock()
	c.identity = identity
	c.mu.Unlock()
	return identity, nil
}

// commit writes the full artifact. The persisted record is written first so
// a storage failure leaves the in-memory session untouched; the in-memory
// fields are then set within a single critical section so no reader observes
// one or two of the three present.
func (c *Client) commit(ctx context.Context, token string, identity Identity, role Role) error {
	if err := c.store.Save(ctx, map[string]string{
		credstore.KeyToken:    token,
		credstore.KeyIdentity: string(identity.Raw()),
		credstore.KeyRole:     string(role),
	}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	c.mu.Lock()
	c.token = token
	c.identity = identity
	c.role = role
	c.authenticated = true
	c.mu.Unlock()
	return nil
}

func (c *Client) clear(ctx context.Context) error {
	c.mu.Lock()
	c.token = ""
	c.identity = Identity{}
	c.role = ""
	c.authenticated = false
	c.mu.Unlock()

	if err := c.store.Delete(ctx, credstore.AllKeys()...); err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}
	return nil
}

// handleForcedLogout runs synchronously inside the auth:logout broadcast,
// before the 401-bearing call's failure reaches its caller. Storage errors
// are logged only; the in-memory session is gone regardless.
func (c *Client) handleForcedLogout() {
	if err := c.clear(context.Background()); err != nil {
		c.log.Error().Err(err).Msg("clearing persisted session after credential rejection")
	}
}
