// Package module bridges the host's game and module objects and wires the
// library's components together through the lifecycle hook sequence.
package module

import (
	"log/slog"
	"sync"
)

// Identity of this module within the host.
const (
	ID        = "over-my-head"
	Namespace = "overMyHead" // hook namespace
	Version   = "1.2.0"
)

// Module mirrors the host's module record.
type Module struct {
	ID      string
	Title   string
	Version string
	Active  bool
	API     map[string]any
}

// Game is a null-guarded view over the host's module registry. Lookups of
// missing modules are logged and yield safe defaults rather than panics.
type Game struct {
	mu      sync.RWMutex
	modules map[string]*Module
	logger  *slog.Logger
}

// NewGame creates an empty module registry.
func NewGame(logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	return &Game{
		modules: make(map[string]*Module),
		logger:  logger,
	}
}

// Add registers a module record, replacing any previous record with the
// same ID.
func (g *Game) Add(m *Module) {
	if m == nil {
		g.logger.Warn("Attempted to register nil module")
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.modules[m.ID] = m
}

// Module returns the module registered under id.
func (g *Game) Module(id string) (*Module, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	m, ok := g.modules[id]
	if !ok {
		g.logger.Warn("Module not found", "id", id)
		return nil, false
	}
	return m, true
}

// ModuleAPI returns the API surface a module exposes, or an empty map when
// the module is missing or exposes none.
func (g *Game) ModuleAPI(id string) map[string]any {
	m, ok := g.Module(id)
	if !ok || m.API == nil {
		return map[string]any{}
	}
	return m.API
}
