package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

var adminUser = models.User{ID: "admin_001", Name: "System Administrator", Email: "admin@university.edu", Role: models.RoleAdmin}

type flakyBackend struct {
	*MemoryBackend
	failGet bool
	failSet bool
}

func (b *flakyBackend) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	if b.failGet {
		return "", false, errors.New("storage offline")
	}
	return b.MemoryBackend.Get(ctx, clientID, key)
}

func (b *flakyBackend) Set(ctx context.Context, clientID, key, value string) error {
	if b.failSet {
		return errors.New("storage full")
	}
	return b.MemoryBackend.Set(ctx, clientID, key, value)
}

func TestLoginPersistsRecord(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	store := NewStore("client-1", backend, nil)
	store.Restore(ctx)

	require.NoError(t, store.Login(ctx, adminUser))

	raw, ok, err := backend.Get(ctx, "client-1", StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	assert.JSONEq(t, `"admin"`, string(payload["role"]))
	assert.Contains(t, string(payload["user"]), `"id":"admin_001"`)

	sess := store.Current()
	assert.True(t, sess.Authenticated())
	assert.Equal(t, models.RoleAdmin, sess.Role)
}

func TestRestoreEntersAuthenticatedDirectly(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, NewStore("c", backend, nil).Login(ctx, adminUser))

	fresh := NewStore("c", backend, nil)
	assert.Equal(t, Loading, fresh.Current().State)
	sess := fresh.Restore(ctx)
	assert.Equal(t, Authenticated, sess.State)
	assert.Equal(t, "admin_001", sess.User.ID)
}

func TestRestoreDiscardsCorruptRecord(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.ErrorLevel)
	backend := NewMemoryBackend()

	for _, raw := range []string{"{not json", `{"user":{"id":"x"},"role":"teacher"}`, `{"role":"admin"}`} {
		require.NoError(t, backend.Set(ctx, "c", StorageKey, raw))
		store := NewStore("c", backend, zap.New(core))

		sess := store.Restore(ctx)
		assert.Equal(t, Unauthenticated, sess.State, raw)
		_, ok, _ := backend.Get(ctx, "c", StorageKey)
		assert.False(t, ok, "corrupt key must be removed")
	}
	assert.Equal(t, 3, logs.FilterMessage("discarding corrupt session record").Len())
}

func TestRestoreRunsOnce(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	store := NewStore("c", backend, nil)
	assert.Equal(t, Unauthenticated, store.Restore(ctx).State)

	require.NoError(t, backend.Set(ctx, "c", StorageKey, `{"user":{"id":"admin_001","role":"admin"},"role":"admin"}`))
	assert.Equal(t, Unauthenticated, store.Restore(ctx).State)
}

func TestRestoreStaysLoadingWhileStorageFails(t *testing.T) {
	ctx := context.Background()
	backend := &flakyBackend{MemoryBackend: NewMemoryBackend(), failGet: true}
	store := NewStore("c", backend, nil)

	assert.Equal(t, Loading, store.Restore(ctx).State)

	backend.failGet = false
	assert.Equal(t, Unauthenticated, store.Restore(ctx).State)
}

func TestLoginFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	backend := &flakyBackend{MemoryBackend: NewMemoryBackend(), failSet: true}
	store := NewStore("c", backend, nil)
	store.Restore(ctx)

	assert.Error(t, store.Login(ctx, adminUser))
	assert.Equal(t, Unauthenticated, store.Current().State)
	assert.Error(t, store.Login(ctx, models.User{ID: "x", Role: "teacher"}))
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	store := NewStore("c", backend, nil)
	store.Restore(ctx)
	require.NoError(t, store.Login(ctx, adminUser))

	require.NoError(t, store.Logout(ctx))
	require.NoError(t, store.Logout(ctx))

	_, ok, _ := backend.Get(ctx, "c", StorageKey)
	assert.False(t, ok)
	assert.Equal(t, Unauthenticated, store.Current().State)
	assert.Nil(t, store.Current().User)
}

func TestUpdateUserKeepsRole(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	store := NewStore("c", backend, nil)
	store.Restore(ctx)
	assert.Error(t, store.UpdateUser(ctx, adminUser))

	require.NoError(t, store.Login(ctx, adminUser))
	updated := adminUser
	updated.Name = "Ops"
	updated.Role = models.RoleStudent
	require.NoError(t, store.UpdateUser(ctx, updated))

	reloaded := NewStore("c", backend, nil).Restore(ctx)
	assert.Equal(t, "Ops", reloaded.User.Name)
	assert.Equal(t, models.RoleAdmin, reloaded.Role)
	assert.Equal(t, models.RoleAdmin, reloaded.User.Role)
}

func TestManagerCachesStores(t *testing.T) {
	manager := NewManager(NewMemoryBackend(), nil)
	a := manager.Store("a")
	assert.Same(t, a, manager.Store("a"))
	assert.NotSame(t, a, manager.Store("b"))

	manager.Forget("a")
	assert.NotSame(t, a, manager.Store("a"))
}

func TestManagerEvictsIdleStores(t *testing.T) {
	now := time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)
	manager := NewManager(NewMemoryBackend(), nil, WithIdleTTL(time.Minute))
	manager.now = func() time.Time { return now }

	stale := manager.Store("stale")
	now = now.Add(30 * time.Second)
	fresh := manager.Store("fresh")
	now = now.Add(45 * time.Second)

	assert.Same(t, fresh, manager.Store("fresh"))
	assert.Equal(t, 1, manager.Len())
	assert.NotSame(t, stale, manager.Store("stale"))
}

func TestManagerCapsCachedStores(t *testing.T) {
	manager := NewManager(NewMemoryBackend(), nil, WithMaxStores(3))
	first := manager.Store("c-0")
	for i := 1; i < 100; i++ {
		manager.Store(fmt.Sprintf("c-%d", i))
	}

	assert.Equal(t, 3, manager.Len())
	assert.NotSame(t, first, manager.Store("c-0"))
}

func TestManagerReleaseKeepsOnlyAuthenticatedStores(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	manager := NewManager(backend, nil)

	for i := 0; i < 1000; i++ {
		id := fmt.Sprintf("anon-%d", i)
		manager.Store(id).Restore(ctx)
		manager.Release(id)
	}
	assert.Zero(t, manager.Len())

	store := manager.Store("admin")
	store.Restore(ctx)
	require.NoError(t, store.Login(ctx, adminUser))
	manager.Release("admin")
	assert.Same(t, store, manager.Store("admin"))

	require.NoError(t, store.Logout(ctx))
	manager.Release("admin")
	assert.Zero(t, manager.Len())
}

func TestEvictedStoreRestoresFromBackend(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewMemoryBackend(), nil)
	store := manager.Store("c")
	store.Restore(ctx)
	require.NoError(t, store.Login(ctx, adminUser))

	manager.Forget("c")
	sess := manager.Store("c").Restore(ctx)
	assert.True(t, sess.Authenticated())
	assert.Equal(t, models.RoleAdmin, sess.Role)
}
