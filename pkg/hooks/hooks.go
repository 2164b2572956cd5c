// Package hooks provides the in-process lifecycle hook bus the module uses
// to sequence work against host events, plus the namespaced hook-name
// formatter for events the module emits itself.
package hooks

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lifecycle hook names fired by the host.
const (
	EventInit     = "init"
	EventI18nInit = "i18nInit"
)

var titleCaser = cases.Title(language.English)

// FormatName builds a namespaced hook name from an event description,
// camel-casing space/dash/underscore separated words:
//
//	FormatName("overMyHead", "settings registered") == "overMyHead.settingsRegistered"
func FormatName(namespace, event string) string {
	fields := strings.FieldsFunc(event, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	if len(fields) == 0 {
		return namespace
	}

	var b strings.Builder
	for _, f := range fields {
		b.WriteString(titleCaser.String(strings.ToLower(f)))
	}
	name := b.String()

	r, size := utf8.DecodeRuneInString(name)
	name = strings.ToLower(string(r)) + name[size:]

	return namespace + "." + name
}

// Callback is invoked synchronously when its hook fires.
type Callback func(args ...any)

type listener struct {
	id   int
	fn   Callback
	once bool
}

// Bus dispatches named hook events to registered callbacks in registration
// order. Dispatch is synchronous; a callback that panics is recovered and
// logged so one listener cannot break the rest of the dispatch.
type Bus struct {
	mu        sync.Mutex
	listeners map[string][]listener
	nextID    int
	relay     *Relay
	logger    *slog.Logger
}

// NewBus creates an empty hook bus.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		listeners: make(map[string][]listener),
		logger:    logger,
	}
}

// SetRelay mirrors every dispatched hook onto the given relay.
func (b *Bus) SetRelay(r *Relay) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.relay = r
}

// On registers a callback for a hook and returns an ID usable with Off.
func (b *Bus) On(name string, fn Callback) int {
	return b.register(name, fn, false)
}

// Once registers a callback that is removed after its first invocation.
func (b *Bus) Once(name string, fn Callback) int {
	return b.register(name, fn, true)
}

func (b *Bus) register(name string, fn Callback, once bool) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.listeners[name] = append(b.listeners[name], listener{id: b.nextID, fn: fn, once: once})
	return b.nextID
}

// Off removes the callback registered under id for the named hook. Unknown
// IDs are ignored.
func (b *Bus) Off(name string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ls := b.listeners[name]
	for i, l := range ls {
		if l.id == id {
			b.listeners[name] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// CallAll invokes every callback registered for the named hook, in
// registration order, then drops any once-callbacks that ran.
func (b *Bus) CallAll(name string, args ...any) {
	b.mu.Lock()
	ls := b.listeners[name]
	snapshot := make([]listener, len(ls))
	copy(snapshot, ls)

	remaining := ls[:0:0]
	for _, l := range ls {
		if !l.once {
			remaining = append(remaining, l)
		}
	}
	b.listeners[name] = remaining
	relay := b.relay
	b.mu.Unlock()

	for _, l := range snapshot {
		b.invoke(name, l, args)
	}

	if relay != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := relay.Publish(ctx, name, args...); err != nil {
			b.logger.Warn("Failed to relay hook", "hook", name, "error", err)
		}
		cancel()
	}
}

func (b *Bus) invoke(name string, l listener, args []any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Hook callback panicked", "hook", name, "panic", r)
		}
	}()
	l.fn(args...)
}
