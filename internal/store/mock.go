package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Xain3/foundryvtt-over-my-head-sub003/pkg/placeable"
)

// MockStore is an in-memory implementation of Store for testing and for
// running the module without Redis.
type MockStore struct {
	mu        sync.RWMutex
	tiles     map[uuid.UUID]*placeable.Tile
	settings  map[string]any
	contexts  map[string]map[string]any
	pingError error
}

// Ensure MockStore implements Store interface
var _ Store = (*MockStore)(nil)

// NewMockStore creates a new mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		tiles:    make(map[uuid.UUID]*placeable.Tile),
		settings: make(map[string]any),
		contexts: make(map[string]map[string]any),
	}
}

// SetPingError configures the mock to fail on ping with the given error.
func (m *MockStore) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MockStore) Ping(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStore) Close() error {
	return nil
}

// Tile document operations

func (m *MockStore) SaveTile(_ context.Context, tile *placeable.Tile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tiles[tile.ID] = cloneTile(tile)
	return nil
}

func (m *MockStore) GetTile(_ context.Context, id uuid.UUID) (*placeable.Tile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tile, ok := m.tiles[id]
	if !ok {
		return nil, nil
	}
	return cloneTile(tile), nil
}

func (m *MockStore) ListSceneTiles(_ context.Context, sceneID uuid.UUID) ([]*placeable.Tile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var tiles []*placeable.Tile
	for _, tile := range m.tiles {
		if tile.SceneID == sceneID {
			tiles = append(tiles, cloneTile(tile))
		}
	}
	sort.Slice(tiles, func(i, j int) bool {
		return tiles[i].ID.String() < tiles[j].ID.String()
	})
	return tiles, nil
}

func (m *MockStore) DeleteTile(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tiles, id)
	return nil
}

// Setting value operations

func (m *MockStore) SaveSetting(_ context.Context, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

func (m *MockStore) GetSetting(_ context.Context, key string) (any, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.settings[key]
	return value, ok, nil
}

// Context key-value operations

func (m *MockStore) SetContextValue(_ context.Context, name, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.contexts[name] == nil {
		m.contexts[name] = make(map[string]any)
	}
	m.contexts[name][key] = value
	return nil
}

func (m *MockStore) GetContextValue(_ context.Context, name, key string) (any, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.contexts[name][key]
	return value, ok, nil
}

func (m *MockStore) DeleteContextValue(_ context.Context, name, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.contexts[name], key)
	return nil
}

func (m *MockStore) ContextKeys(_ context.Context, name string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.contexts[name]))
	for key := range m.contexts[name] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// cloneTile copies a tile so callers cannot alias the stored document.
func cloneTile(tile *placeable.Tile) *placeable.Tile {
	clone := *tile
	if tile.Flags != nil {
		clone.Flags = make(map[string]map[string]any, len(tile.Flags))
		for ns, kv := range tile.Flags {
			inner := make(map[string]any, len(kv))
			for k, v := range kv {
				inner[k] = v
			}
			clone.Flags[ns] = inner
		}
	}
	return &clone
}
