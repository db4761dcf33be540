package campusfound

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusfound/campusfound-go/credstore"
	"github.com/campusfound/campusfound-go/signal"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *credstore.Memory, func()) {
	t.Helper()

	srv := httptest.NewServer(handler)
	store := credstore.NewMemory()

	client, err := New().
		WithBaseURL(srv.URL).
		WithStore(store).
		Build()
	if err != nil {
		srv.Close()
		t.Fatalf("Build failed: %v", err)
	}

	return client, store, srv.Close
}

func writeEnvelope(w http.ResponseWriter, code int, data string, token string) {
	w.Header().Set("Content-Type", "application/json")
	body := map[string]any{
		"code":    code,
		"message": "ok",
		"data":    json.RawMessage(data),
	}
	if token != "" {
		body["token"] = token
	}
	_ = json.NewEncoder(w).Encode(body)
}

func loginHandler(t *testing.T, token, identity string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decode credentials: %v", err)
		}
		writeEnvelope(w, 200, identity, token)
	})
}

func TestLoginCommitsSessionAtomically(t *testing.T) {
	client, store, done := newTestClient(t, loginHandler(t, "tok-1", `{"id":7,"username":"alice"}`))
	defer done()

	state, err := client.LoginAs(context.Background(), RoleNormalUser, Credentials{
		Username: "alice",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("LoginAs failed: %v", err)
	}

	if !state.Authenticated {
		t.Fatal("expected authenticated state")
	}
	if state.Token != "tok-1" {
		t.Errorf("token = %q, want tok-1", state.Token)
	}
	if state.Role != RoleNormalUser {
		t.Errorf("role = %q, want normal_user", state.Role)
	}
	if name := state.Identity.DisplayName(); name != "alice" {
		t.Errorf("display name = %q, want alice", name)
	}

	values, err := store.Load(context.Background(), credstore.CurrentKeys()...)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if values[credstore.KeyToken] != "tok-1" {
		t.Errorf("persisted token = %q, want tok-1", values[credstore.KeyToken])
	}
	if values[credstore.KeyRole] != string(RoleNormalUser) {
		t.Errorf("persisted role = %q", values[credstore.KeyRole])
	}
	if values[credstore.KeyIdentity] == "" {
		t.Error("persisted identity is empty")
	}
}

func TestLoginUnsupportedRole(t *testing.T) {
	client, _, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent for an unknown role")
	}))
	defer done()

	_, err := client.LoginAs(context.Background(), Role("moderator"), Credentials{})
	if !errors.Is(err, ErrUnsupportedRole) {
		t.Fatalf("err = %v, want ErrUnsupportedRole", err)
	}
}

func TestLoginBusinessFailureLeavesSessionUntouched(t *testing.T) {
	client, store, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 1001, `null`, "")
	}))
	defer done()

	_, err := client.LoginAs(context.Background(), RoleNormalUser, Credentials{Username: "a", Password: "b"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if client.IsAuthenticated() {
		t.Error("session must stay logged out after a failed login")
	}
	values, _ := store.Load(context.Background(), credstore.AllKeys()...)
	if len(values) != 0 {
		t.Errorf("store should be empty, got %v", values)
	}
}

func TestLoginEmptyTokenRejected(t *testing.T) {
	client, _, done := newTestClient(t, loginHandler(t, "", `{"id":1}`))
	defer done()

	_, err := client.LoginAs(context.Background(), RoleSuperAdmin, Credentials{Username: "a", Password: "b"})
	if !errors.Is(err, ErrLoginResponseInvalid) {
		t.Fatalf("err = %v, want ErrLoginResponseInvalid", err)
	}
	if client.IsAuthenticated() {
		t.Error("session must stay logged out")
	}
}

func TestSessionInvariantPartialRecordIsLoggedOut(t *testing.T) {
	client, store, done := newTestClient(t, http.NotFoundHandler())
	defer done()

	ctx := context.Background()
	if err := store.Save(ctx, map[string]string{credstore.KeyToken: "orphan"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := client.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if client.IsAuthenticated() {
		t.Error("token without identity and role must not authenticate")
	}
	if client.HasRole(RoleNormalUser) {
		t.Error("HasRole must be false while unauthenticated")
	}
}

func TestInitializeMigratesLegacyRecord(t *testing.T) {
	client, store, done := newTestClient(t, http.NotFoundHandler())
	defer done()

	ctx := context.Background()
	if err := store.Save(ctx, map[string]string{
		credstore.LegacyKeyToken:    "t1",
		credstore.LegacyKeyIdentity: `{"id":1}`,
		credstore.LegacyKeyRole:     string(RoleSuperAdmin),
	}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := client.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	state := client.Session()
	if !state.Authenticated || state.Token != "t1" || state.Role != RoleSuperAdmin {
		t.Fatalf("restored state = %+v", state)
	}
	if id, ok := state.Identity.ID(); !ok || id != 1 {
		t.Errorf("identity id = %d (%v), want 1", id, ok)
	}

	values, _ := store.Load(ctx, credstore.AllKeys()...)
	for _, key := range credstore.LegacyKeys() {
		if _, present := values[key]; present {
			t.Errorf("legacy key %q should be deleted", key)
		}
	}
	if values[credstore.KeyToken] != "t1" {
		t.Errorf("current token = %q, want t1", values[credstore.KeyToken])
	}

	// A second run over the migrated record changes nothing.
	if err := client.Initialize(ctx); err != nil {
		t.Fatalf("second Initialize failed: %v", err)
	}
	again, _ := store.Load(ctx, credstore.AllKeys()...)
	if fmt.Sprint(again) != fmt.Sprint(values) {
		t.Errorf("second Initialize changed the store: %v vs %v", again, values)
	}

	snap := client.MetricsSnapshot()
	if got := snap.Counters[MetricLegacyMigrations]; got != 1 {
		t.Errorf("legacy migrations = %d, want 1", got)
	}
}

func TestInitializeCorruptIdentityDropsSession(t *testing.T) {
	client, store, done := newTestClient(t, http.NotFoundHandler())
	defer done()

	ctx := context.Background()
	if err := store.Save(ctx, map[string]string{
		credstore.KeyToken:    "t1",
		credstore.KeyIdentity: `{not json`,
		credstore.KeyRole:     string(RoleNormalUser),
	}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := client.Initialize(ctx); err != nil {
		t.Fatalf("Initialize should fail open, got %v", err)
	}
	if client.IsAuthenticated() {
		t.Error("corrupt identity must drop the whole session")
	}
	values, _ := store.Load(ctx, credstore.AllKeys()...)
	if len(values) != 0 {
		t.Errorf("store should be cleared, got %v", values)
	}
}

func TestLogoutClearsEvenWhenServerFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/api/user/login", loginHandler(t, "tok", `{"id":3}`))
	mux.HandleFunc("/api/logout", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	client, store, done := newTestClient(t, mux)
	defer done()

	ctx := context.Background()
	if _, err := client.LoginAs(ctx, RoleNormalUser, Credentials{Username: "a", Password: "b"}); err != nil {
		t.Fatalf("LoginAs failed: %v", err)
	}

	if err := client.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if client.IsAuthenticated() {
		t.Error("session must be cleared despite the server failure")
	}
	values, _ := store.Load(ctx, credstore.AllKeys()...)
	if len(values) != 0 {
		t.Errorf("store should be empty, got %v", values)
	}
}

func TestUnauthorizedResponseClearsSessionAndSignalsOnce(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/api/user/login", loginHandler(t, "tok", `{"id":3}`))
	mux.HandleFunc("/api/lost-items/all", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired", http.StatusUnauthorized)
	})
	client, store, done := newTestClient(t, mux)
	defer done()

	ctx := context.Background()
	if _, err := client.LoginAs(ctx, RoleNormalUser, Credentials{Username: "a", Password: "b"}); err != nil {
		t.Fatalf("LoginAs failed: %v", err)
	}

	fired := 0
	cancel := client.Hub().Subscribe(signal.AuthLogout, func() { fired++ })
	defer cancel()

	_, err := client.Pipeline().Get(ctx, "/api/lost-items/all", nil)
	if err == nil {
		t.Fatal("expected an error from the 401 response")
	}

	if fired != 1 {
		t.Errorf("auth:logout fired %d times, want 1", fired)
	}
	if client.IsAuthenticated() {
		t.Error("session must be unauthenticated after a 401")
	}
	values, _ := store.Load(ctx, credstore.AllKeys()...)
	if len(values) != 0 {
		t.Errorf("store should be empty, got %v", values)
	}
}

func TestRefreshIdentityReplacesOnlyIdentity(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/api/user/login", loginHandler(t, "tok", `{"id":3,"username":"old"}`))
	mux.HandleFunc("/api/user/profile/3", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, `{"id":3,"username":"new"}`, "")
	})
	client, store, done := newTestClient(t, mux)
	defer done()

	ctx := context.Background()
	if _, err := client.LoginAs(ctx, RoleNormalUser, Credentials{Username: "a", Password: "b"}); err != nil {
		t.Fatalf("LoginAs failed: %v", err)
	}

	identity, err := client.RefreshIdentity(ctx)
	if err != nil {
		t.Fatalf("RefreshIdentity failed: %v", err)
	}
	if name := identity.DisplayName(); name != "new" {
		t.Errorf("display name = %q, want new", name)
	}

	state := client.Session()
	if state.Token != "tok" || state.Role != RoleNormalUser {
		t.Errorf("token/role must be untouched, got %+v", state)
	}

	values, _ := store.Load(ctx, credstore.KeyIdentity)
	if values[credstore.KeyIdentity] == "" {
		t.Fatal("persisted identity missing")
	}
	var persisted struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal([]byte(values[credstore.KeyIdentity]), &persisted); err != nil {
		t.Fatalf("decode persisted identity: %v", err)
	}
	if persisted.Username != "new" {
		t.Errorf("persisted username = %q, want new", persisted.Username)
	}
}

func TestRefreshIdentityRequiresSession(t *testing.T) {
	client, _, done := newTestClient(t, http.NotFoundHandler())
	defer done()

	_, err := client.RefreshIdentity(context.Background())
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("err = %v, want ErrNotAuthenticated", err)
	}
}

func TestHasRole(t *testing.T) {
	client, _, done := newTestClient(t, loginHandler(t, "tok", `{"id":9}`))
	defer done()

	ctx := context.Background()
	if _, err := client.LoginAs(ctx, RoleLostItemAdmin, Credentials{Username: "a", Password: "b"}); err != nil {
		t.Fatalf("LoginAs failed: %v", err)
	}

	if !client.HasRole(RoleLostItemAdmin, RoleSuperAdmin) {
		t.Error("lost_item_admin should satisfy the admin role set")
	}
	if client.HasRole(RoleSuperAdmin) {
		t.Error("roles are siblings; lost_item_admin must not satisfy super_admin")
	}
	if !client.IsAdmin() {
		t.Error("IsAdmin should be true for lost_item_admin")
	}
}
