package hooks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RelayChannel is the pub/sub channel hook events are mirrored onto.
const RelayChannel = "overmyhead:hooks"

// HookEvent is the JSON payload relayed for each hook dispatch.
type HookEvent struct {
	Name string `json:"name"`
	Args []any  `json:"args,omitempty"`
}

// Relay mirrors hook dispatches onto a Redis pub/sub channel so that
// out-of-process tooling can observe module lifecycle events.
type Relay struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRelay creates a relay publishing on the given Redis client.
func NewRelay(client *redis.Client, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{
		client: client,
		logger: logger,
	}
}

// Publish sends one hook event to the relay channel.
func (r *Relay) Publish(ctx context.Context, name string, args ...any) error {
	event := HookEvent{
		Name: name,
		Args: args,
	}

	data, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("Failed to marshal hook event", "hook", name, "error", err)
		return fmt.Errorf("failed to marshal hook event: %w", err)
	}

	if err := r.client.Publish(ctx, RelayChannel, data).Err(); err != nil {
		r.logger.Error("Failed to publish hook event", "hook", name, "error", err)
		return fmt.Errorf("failed to publish hook event: %w", err)
	}

	r.logger.Debug("Hook relayed", "hook", name, "args", len(args))
	return nil
}
