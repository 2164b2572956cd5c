package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Xain3/foundryvtt-over-my-head-sub003/pkg/placeable"
)

// Key layout:
//
//	tile:<id>            JSON-marshalled tile document
//	scene:<id>:tiles     set of tile IDs on the scene
//	setting:<key>        JSON-marshalled setting value
//	context:<name>       hash of context keys to JSON values
const (
	tilePrefix    = "tile:"
	scenePrefix   = "scene:"
	sceneSuffix   = ":tiles"
	settingPrefix = "setting:"
	contextPrefix = "context:"
)

// RedisStore implements the Store interface using Redis.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisStore implements Store interface
var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a new Redis store from a redis:// URL.
func NewRedisStore(redisURL string, logger *slog.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &RedisStore{
		client: redis.NewClient(opt),
		logger: logger,
	}, nil
}

// Health and lifecycle methods

func (r *RedisStore) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStore) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Tile document operations

func (r *RedisStore) SaveTile(ctx context.Context, tile *placeable.Tile) error {
	data, err := json.Marshal(tile)
	if err != nil {
		r.logger.Error("Failed to marshal tile", "uuid", tile.ID, "error", err)
		return fmt.Errorf("failed to marshal tile: %w", err)
	}

	key := tilePrefix + tile.ID.String()
	if err := r.client.Set(ctx, key, string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save tile", "uuid", tile.ID, "error", err)
		return fmt.Errorf("failed to save tile: %w", err)
	}

	sceneKey := scenePrefix + tile.SceneID.String() + sceneSuffix
	if err := r.client.SAdd(ctx, sceneKey, tile.ID.String()).Err(); err != nil {
		r.logger.Error("Failed to index tile on scene", "uuid", tile.ID, "scene", tile.SceneID, "error", err)
		return fmt.Errorf("failed to index tile on scene: %w", err)
	}

	return nil
}

func (r *RedisStore) GetTile(ctx context.Context, id uuid.UUID) (*placeable.Tile, error) {
	cmd := r.client.Get(ctx, tilePrefix+id.String())
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			r.logger.Warn("Tile not found", "uuid", id)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load tile", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load tile: %w", err)
	}

	var tile placeable.Tile
	if err := json.Unmarshal([]byte(cmd.Val()), &tile); err != nil {
		r.logger.Error("Failed to unmarshal tile", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal tile: %w", err)
	}

	return &tile, nil
}

func (r *RedisStore) ListSceneTiles(ctx context.Context, sceneID uuid.UUID) ([]*placeable.Tile, error) {
	sceneKey := scenePrefix + sceneID.String() + sceneSuffix
	ids, err := r.client.SMembers(ctx, sceneKey).Result()
	if err != nil {
		r.logger.Error("Failed to list scene tiles", "scene", sceneID, "error", err)
		return nil, fmt.Errorf("failed to list scene tiles: %w", err)
	}

	tiles := make([]*placeable.Tile, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			r.logger.Warn("Skipping malformed tile ID in scene index", "scene", sceneID, "id", raw)
			continue
		}
		tile, err := r.GetTile(ctx, id)
		if err != nil {
			return nil, err
		}
		if tile == nil {
			// Stale index entry; tile was deleted out of band.
			continue
		}
		tiles = append(tiles, tile)
	}

	return tiles, nil
}

func (r *RedisStore) DeleteTile(ctx context.Context, id uuid.UUID) error {
	tile, err := r.GetTile(ctx, id)
	if err != nil {
		return err
	}
	if tile == nil {
		return nil
	}

	if err := r.client.Del(ctx, tilePrefix+id.String()).Err(); err != nil {
		r.logger.Error("Failed to delete tile", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete tile: %w", err)
	}

	sceneKey := scenePrefix + tile.SceneID.String() + sceneSuffix
	if err := r.client.SRem(ctx, sceneKey, id.String()).Err(); err != nil {
		r.logger.Error("Failed to remove tile from scene index", "uuid", id, "error", err)
		return fmt.Errorf("failed to remove tile from scene index: %w", err)
	}

	return nil
}

// Setting value operations

func (r *RedisStore) SaveSetting(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Failed to marshal setting", "key", key, "error", err)
		return fmt.Errorf("failed to marshal setting: %w", err)
	}

	if err := r.client.Set(ctx, settingPrefix+key, string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save setting", "key", key, "error", err)
		return fmt.Errorf("failed to save setting: %w", err)
	}

	return nil
}

func (r *RedisStore) GetSetting(ctx context.Context, key string) (any, bool, error) {
	cmd := r.client.Get(ctx, settingPrefix+key)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		r.logger.Error("Failed to load setting", "key", key, "error", err)
		return nil, false, fmt.Errorf("failed to load setting: %w", err)
	}

	var value any
	if err := json.Unmarshal([]byte(cmd.Val()), &value); err != nil {
		r.logger.Error("Failed to unmarshal setting", "key", key, "error", err)
		return nil, false, fmt.Errorf("failed to unmarshal setting: %w", err)
	}

	return value, true, nil
}

// Context key-value operations

func (r *RedisStore) SetContextValue(ctx context.Context, name, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Failed to marshal context value", "context", name, "key", key, "error", err)
		return fmt.Errorf("failed to marshal context value: %w", err)
	}

	if err := r.client.HSet(ctx, contextPrefix+name, key, string(data)).Err(); err != nil {
		r.logger.Error("Failed to set context value", "context", name, "key", key, "error", err)
		return fmt.Errorf("failed to set context value: %w", err)
	}

	return nil
}

func (r *RedisStore) GetContextValue(ctx context.Context, name, key string) (any, bool, error) {
	cmd := r.client.HGet(ctx, contextPrefix+name, key)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		r.logger.Error("Failed to get context value", "context", name, "key", key, "error", err)
		return nil, false, fmt.Errorf("failed to get context value: %w", err)
	}

	var value any
	if err := json.Unmarshal([]byte(cmd.Val()), &value); err != nil {
		r.logger.Error("Failed to unmarshal context value", "context", name, "key", key, "error", err)
		return nil, false, fmt.Errorf("failed to unmarshal context value: %w", err)
	}

	return value, true, nil
}

func (r *RedisStore) DeleteContextValue(ctx context.Context, name, key string) error {
	if err := r.client.HDel(ctx, contextPrefix+name, key).Err(); err != nil {
		r.logger.Error("Failed to delete context value", "context", name, "key", key, "error", err)
		return fmt.Errorf("failed to delete context value: %w", err)
	}
	return nil
}

func (r *RedisStore) ContextKeys(ctx context.Context, name string) ([]string, error) {
	keys, err := r.client.HKeys(ctx, contextPrefix+name).Result()
	if err != nil {
		r.logger.Error("Failed to list context keys", "context", name, "error", err)
		return nil, fmt.Errorf("failed to list context keys: %w", err)
	}
	return keys, nil
}
