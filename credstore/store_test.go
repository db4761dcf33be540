package credstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// storeContract exercises the Store behaviors every backend must share.
func storeContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	// Absent keys never invent entries.
	values, err := store.Load(ctx, AllKeys()...)
	if err != nil {
		t.Fatalf("Load on empty store failed: %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("empty store returned %v", values)
	}

	record := map[string]string{
		KeyToken:    "tok",
		KeyIdentity: `{"id":1}`,
		KeyRole:     "normal_user",
	}
	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	values, err = store.Load(ctx, CurrentKeys()...)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	for k, want := range record {
		if values[k] != want {
			t.Errorf("Load[%q] = %q, want %q", k, values[k], want)
		}
	}

	// Overwrites replace, partial saves leave siblings alone.
	if err := store.Save(ctx, map[string]string{KeyToken: "tok-2"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	values, _ = store.Load(ctx, KeyToken, KeyRole)
	if values[KeyToken] != "tok-2" {
		t.Errorf("token = %q, want tok-2", values[KeyToken])
	}
	if values[KeyRole] != "normal_user" {
		t.Errorf("role = %q, partial save must not disturb it", values[KeyRole])
	}

	// Deleting absent keys is not an error.
	if err := store.Delete(ctx, LegacyKeyToken); err != nil {
		t.Fatalf("Delete of absent key failed: %v", err)
	}

	if err := store.Delete(ctx, CurrentKeys()...); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	values, _ = store.Load(ctx, AllKeys()...)
	if len(values) != 0 {
		t.Errorf("store not empty after delete: %v", values)
	}
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemory())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storeContract(t, NewFile(path))
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ctx := context.Background()

	first := NewFile(path)
	if err := first.Save(ctx, map[string]string{KeyToken: "tok"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := NewFile(path)
	values, err := second.Load(ctx, KeyToken)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if values[KeyToken] != "tok" {
		t.Errorf("token = %q, want tok", values[KeyToken])
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store := NewFile(filepath.Join(t.TempDir(), "never-written.json"))
	values, err := store.Load(context.Background(), AllKeys()...)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("values = %v, want empty", values)
	}
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisStore(t *testing.T) {
	storeContract(t, NewRedis(newTestRedis(t), ""))
}

func TestRedisStorePrefixIsolation(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()

	a := NewRedis(client, "kiosk:a")
	b := NewRedis(client, "kiosk:b")

	if err := a.Save(ctx, map[string]string{KeyToken: "tok-a"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	values, err := b.Load(ctx, KeyToken)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("prefix b sees %v, want nothing", values)
	}
}
