// Package modcontext provides named key-value scopes the module shares with
// out-of-process tooling. A Context is passed explicitly to the code that
// needs it; there is no ambient global registry.
package modcontext

import (
	"context"
	"fmt"
	"log/slog"
)

// Store is the persistence contract a context binds to.
type Store interface {
	SetContextValue(ctx context.Context, name, key string, value any) error
	GetContextValue(ctx context.Context, name, key string) (any, bool, error)
	DeleteContextValue(ctx context.Context, name, key string) error
	ContextKeys(ctx context.Context, name string) ([]string, error)
}

// Context is one named key-value scope. Reads degrade to a warning and a
// missing result when the backing store fails; writes surface their errors.
type Context struct {
	name   string
	store  Store
	logger *slog.Logger
}

// New creates a context scope over the given store.
func New(name string, store Store, logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	return &Context{
		name:   name,
		store:  store,
		logger: logger,
	}
}

// Name returns the scope name.
func (c *Context) Name() string {
	return c.name
}

// Get reads a value from the scope. Store failures are logged and reported
// as a missing key.
func (c *Context) Get(ctx context.Context, key string) (any, bool) {
	value, ok, err := c.store.GetContextValue(ctx, c.name, key)
	if err != nil {
		c.logger.Warn("Failed to read context value", "context", c.name, "key", key, "error", err)
		return nil, false
	}
	return value, ok
}

// Set writes a value into the scope.
func (c *Context) Set(ctx context.Context, key string, value any) error {
	if err := c.store.SetContextValue(ctx, c.name, key, value); err != nil {
		return fmt.Errorf("failed to set context value: %w", err)
	}
	return nil
}

// Delete removes a key from the scope. Deleting an absent key is a no-op.
func (c *Context) Delete(ctx context.Context, key string) error {
	if err := c.store.DeleteContextValue(ctx, c.name, key); err != nil {
		return fmt.Errorf("failed to delete context value: %w", err)
	}
	return nil
}

// Keys lists the keys currently present in the scope. Store failures are
// logged and yield an empty list.
func (c *Context) Keys(ctx context.Context) []string {
	keys, err := c.store.ContextKeys(ctx, c.name)
	if err != nil {
		c.logger.Warn("Failed to list context keys", "context", c.name, "error", err)
		return nil
	}
	return keys
}
