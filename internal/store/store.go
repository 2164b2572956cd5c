// Package store persists module documents, setting values, and context
// key-value data. It stands in for the host's document storage so the
// module is fully exercisable without the host application.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/Xain3/foundryvtt-over-my-head-sub003/pkg/placeable"
)

// Store is the persistence contract shared by the redis and mock
// implementations. Lookups for missing records return nil (or ok=false)
// rather than an error.
type Store interface {
	// Tile document operations
	SaveTile(ctx context.Context, tile *placeable.Tile) error
	GetTile(ctx context.Context, id uuid.UUID) (*placeable.Tile, error)
	ListSceneTiles(ctx context.Context, sceneID uuid.UUID) ([]*placeable.Tile, error)
	DeleteTile(ctx context.Context, id uuid.UUID) error

	// Setting value operations (world-scoped settings)
	SaveSetting(ctx context.Context, key string, value any) error
	GetSetting(ctx context.Context, key string) (any, bool, error)

	// Context key-value operations
	SetContextValue(ctx context.Context, name, key string, value any) error
	GetContextValue(ctx context.Context, name, key string) (any, bool, error)
	DeleteContextValue(ctx context.Context, name, key string) error
	ContextKeys(ctx context.Context, name string) ([]string, error)

	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error
}
