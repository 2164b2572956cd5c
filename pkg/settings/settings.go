// Package settings registers module settings and resolves their localized
// labels once localization is ready. World-scoped values persist through an
// injected store; client-scoped values live in memory.
package settings

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Scope declares where a setting value lives.
type Scope string

const (
	ScopeWorld  Scope = "world"
	ScopeClient Scope = "client"
)

// Type declares the value type a setting accepts.
type Type string

const (
	TypeBoolean Type = "boolean"
	TypeNumber  Type = "number"
	TypeString  Type = "string"
)

// Definition describes one module setting prior to registration.
type Definition struct {
	Key     string
	NameKey string // localization key for the display name
	HintKey string // localization key for the hint text
	Scope   Scope
	Type    Type
	Default any
	Choices []string // optional, string settings only
}

// ValueStore persists world-scoped setting values.
type ValueStore interface {
	SaveSetting(ctx context.Context, key string, value any) error
	GetSetting(ctx context.Context, key string) (any, bool, error)
}

// Localizer resolves localization keys to display strings.
type Localizer interface {
	Localize(key string) string
}

type registered struct {
	def   Definition
	name  string
	hint  string
	value any
}

// Registry holds the module's registered settings and their current values.
// Reads of unknown keys degrade to a warning and a zero value; they never
// panic.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	items  map[string]*registered
	store  ValueStore
	logger *slog.Logger
}

// NewRegistry creates an empty settings registry. The store may be nil, in
// which case world-scoped values are not persisted.
func NewRegistry(store ValueStore, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		items:  make(map[string]*registered),
		store:  store,
		logger: logger,
	}
}

// Register adds a setting definition. The definition's default must match
// its declared type.
func (r *Registry) Register(def Definition) error {
	if def.Key == "" {
		return fmt.Errorf("setting key must not be empty")
	}
	if def.Scope != ScopeWorld && def.Scope != ScopeClient {
		return fmt.Errorf("setting %q has unknown scope %q", def.Key, def.Scope)
	}
	if !valueMatches(def.Type, def.Default) {
		return fmt.Errorf("setting %q default %v does not match type %q", def.Key, def.Default, def.Type)
	}
	if len(def.Choices) > 0 {
		if def.Type != TypeString {
			return fmt.Errorf("setting %q declares choices but is not a string setting", def.Key)
		}
		if !slices.Contains(def.Choices, def.Default.(string)) {
			return fmt.Errorf("setting %q default %v is not among its choices", def.Key, def.Default)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[def.Key]; ok {
		return fmt.Errorf("setting %q already registered", def.Key)
	}
	r.items[def.Key] = &registered{def: def, value: def.Default}
	r.order = append(r.order, def.Key)

	r.logger.Debug("Setting registered", "key", def.Key, "scope", def.Scope, "type", def.Type)
	return nil
}

// Load pulls persisted world-scoped values from the store, replacing
// defaults. Values that no longer match the declared type are skipped.
func (r *Registry) Load(ctx context.Context) error {
	if r.store == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range r.order {
		item := r.items[key]
		if item.def.Scope != ScopeWorld {
			continue
		}
		value, ok, err := r.store.GetSetting(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to load setting %q: %w", key, err)
		}
		if !ok {
			continue
		}
		if !valueMatches(item.def.Type, value) {
			r.logger.Warn("Persisted setting has wrong type, keeping default",
				"key", key, "value", value, "type", item.def.Type)
			continue
		}
		item.value = value
	}
	return nil
}

// Set updates a setting value, persisting world-scoped values through the
// store.
func (r *Registry) Set(ctx context.Context, key string, value any) error {
	r.mu.Lock()
	item, ok := r.items[key]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("setting %q is not registered", key)
	}
	if !valueMatches(item.def.Type, value) {
		r.mu.Unlock()
		return fmt.Errorf("setting %q rejects %v: not a %s", key, value, item.def.Type)
	}
	if len(item.def.Choices) > 0 && !slices.Contains(item.def.Choices, value.(string)) {
		r.mu.Unlock()
		return fmt.Errorf("setting %q rejects %v: not among choices", key, value)
	}
	item.value = value
	scope := item.def.Scope
	r.mu.Unlock()

	if scope == ScopeWorld && r.store != nil {
		if err := r.store.SaveSetting(ctx, key, value); err != nil {
			return fmt.Errorf("failed to persist setting %q: %w", key, err)
		}
	}
	return nil
}

// Get returns a setting's current value. Unknown keys are logged and yield
// nil.
func (r *Registry) Get(key string) any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[key]
	if !ok {
		r.logger.Warn("Unknown setting requested", "key", key)
		return nil
	}
	return item.value
}

// GetBool returns a boolean setting, or false when the key is unknown or
// holds a non-boolean value.
func (r *Registry) GetBool(key string) bool {
	b, ok := r.Get(key).(bool)
	if !ok {
		return false
	}
	return b
}

// GetFloat returns a number setting, or 0 when the key is unknown or holds
// a non-numeric value. Integers are widened.
func (r *Registry) GetFloat(key string) float64 {
	switch v := r.Get(key).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// GetString returns a string setting, or "" when the key is unknown or
// holds a non-string value.
func (r *Registry) GetString(key string) string {
	s, ok := r.Get(key).(string)
	if !ok {
		return ""
	}
	return s
}

// Localize resolves every definition's name and hint keys. It is intended
// to run once, after the i18nInit hook fires.
func (r *Registry) Localize(loc Localizer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range r.order {
		item := r.items[key]
		item.name = loc.Localize(item.def.NameKey)
		item.hint = loc.Localize(item.def.HintKey)
	}
}

// Name returns a setting's localized display name, falling back to its
// localization key before Localize runs.
func (r *Registry) Name(key string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[key]
	if !ok {
		r.logger.Warn("Unknown setting requested", "key", key)
		return ""
	}
	if item.name == "" {
		return item.def.NameKey
	}
	return item.name
}

// Hint returns a setting's localized hint text, with the same fallback as
// Name.
func (r *Registry) Hint(key string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[key]
	if !ok {
		r.logger.Warn("Unknown setting requested", "key", key)
		return ""
	}
	if item.hint == "" {
		return item.def.HintKey
	}
	return item.hint
}

// Definitions returns the registered definitions in registration order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]Definition, 0, len(r.order))
	for _, key := range r.order {
		defs = append(defs, r.items[key].def)
	}
	return defs
}

func valueMatches(t Type, value any) bool {
	switch t {
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	case TypeNumber:
		switch value.(type) {
		case float64, int:
			return true
		}
		return false
	case TypeString:
		_, ok := value.(string)
		return ok
	}
	return false
}
