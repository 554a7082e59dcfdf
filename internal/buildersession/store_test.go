package buildersession

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/aslanbekov/pcforge-backend/internal/builder"
	"github.com/aslanbekov/pcforge-backend/pkg/enums"
)

type mockBackend struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
}

func newMockBackend() *mockBackend {
	return &mockBackend{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mockBackend) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = ttl
	return nil
}

func (m *mockBackend) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockBackend) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockBackend) BuilderSessionKey(userID string) string {
	return fmt.Sprintf("builder:%s", userID)
}

func TestStoreRoundTrip(t *testing.T) {
	backend := newMockBackend()
	store := &Store{store: backend, keyer: backend, ttl: time.Hour}
	userID := uuid.New()

	state := builder.NewState()
	state, _ = builder.Apply(state, builder.SetBudget(500_000))
	state, _ = builder.Apply(state, builder.SetActiveCategory(enums.CategoryGPU))

	if err := store.Save(context.Background(), userID, state); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(context.Background(), userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected stored session")
	}
	if loaded.Budget != 500_000 || loaded.ActiveCategory != enums.CategoryGPU {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
	if backend.ttls[backend.BuilderSessionKey(userID.String())] != time.Hour {
		t.Fatal("expected save to refresh ttl")
	}
}

func TestStoreLoadMissingReturnsNil(t *testing.T) {
	backend := newMockBackend()
	store := &Store{store: backend, keyer: backend, ttl: time.Hour}

	loaded, err := store.Load(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Fatal("expected nil state for absent session")
	}
}

func TestStoreDelete(t *testing.T) {
	backend := newMockBackend()
	store := &Store{store: backend, keyer: backend, ttl: time.Hour}
	userID := uuid.New()

	if err := store.Save(context.Background(), userID, builder.NewState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(context.Background(), userID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	loaded, err := store.Load(context.Background(), userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Fatal("expected deleted session to be gone")
	}
}
