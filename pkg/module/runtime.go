package module

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Xain3/foundryvtt-over-my-head-sub003/internal/config"
	"github.com/Xain3/foundryvtt-over-my-head-sub003/internal/i18n"
	"github.com/Xain3/foundryvtt-over-my-head-sub003/internal/store"
	"github.com/Xain3/foundryvtt-over-my-head-sub003/pkg/geometry"
	"github.com/Xain3/foundryvtt-over-my-head-sub003/pkg/hooks"
	"github.com/Xain3/foundryvtt-over-my-head-sub003/pkg/modcontext"
	"github.com/Xain3/foundryvtt-over-my-head-sub003/pkg/placeable"
	"github.com/Xain3/foundryvtt-over-my-head-sub003/pkg/settings"
)

// Setting keys registered by the module.
const (
	SettingDebug                = "debug"
	SettingFadeOpacity          = "fadeOpacity"
	SettingDefaultTargetMode    = "defaultTargetMode"
	SettingDefaultReferenceMode = "defaultReferenceMode"
)

// Runtime composes the module's components and drives them through the
// lifecycle hook sequence: init, i18nInit, then settingsRegistered.
type Runtime struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    store.Store
	bus      *hooks.Bus
	bundle   *i18n.Bundle
	settings *settings.Registry
	flags    *placeable.Flags
	relation *placeable.Relationship
	game     *Game
}

// NewRuntime creates an unstarted runtime over the given store.
func NewRuntime(cfg *config.Config, st store.Store, logger *slog.Logger) *Runtime {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runtime{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		bus:      hooks.NewBus(logger),
		bundle:   i18n.Empty(logger),
		settings: settings.NewRegistry(st, logger),
		flags:    placeable.NewFlags(cfg.FlagNamespace, logger),
		relation: placeable.NewRelationship(nil, nil, logger),
		game:     NewGame(logger),
	}
}

// Start runs the lifecycle sequence. Settings are registered on init;
// localization of their labels waits for the i18nInit hook, after which
// the settingsRegistered hook announces the module is ready.
func (r *Runtime) Start(ctx context.Context) error {
	// Sequence settings localization after localization is ready.
	r.bus.Once(hooks.EventI18nInit, func(...any) {
		r.settings.Localize(r.bundle)
	})

	r.bus.CallAll(hooks.EventInit)

	if err := r.registerSettings(ctx); err != nil {
		return err
	}

	bundle, err := i18n.LoadDir(r.cfg.LangDir, r.cfg.Language, r.logger)
	if err != nil {
		// Missing translations are not fatal; keys show through instead.
		r.logger.Warn("Failed to load translations", "dir", r.cfg.LangDir, "error", err)
	} else {
		r.bundle = bundle
	}
	r.bus.CallAll(hooks.EventI18nInit)

	r.game.Add(&Module{
		ID:      ID,
		Title:   r.bundle.Localize("OVERMYHEAD.Title"),
		Version: Version,
		Active:  true,
		API: map[string]any{
			"isUnder": r.IsUnder,
			"isOver":  r.IsOver,
		},
	})

	r.bus.CallAll(hooks.FormatName(Namespace, "settings registered"))

	r.logger.Info("Module started",
		"id", ID,
		"version", Version,
		"language", r.bundle.Language())
	return nil
}

func (r *Runtime) registerSettings(ctx context.Context) error {
	modeChoices := []string{string(geometry.UseCenter), string(geometry.UseRectangle)}

	defs := []settings.Definition{
		{
			Key:     SettingDebug,
			NameKey: "OVERMYHEAD.Settings.Debug.Name",
			HintKey: "OVERMYHEAD.Settings.Debug.Hint",
			Scope:   settings.ScopeClient,
			Type:    settings.TypeBoolean,
			Default: false,
		},
		{
			Key:     SettingFadeOpacity,
			NameKey: "OVERMYHEAD.Settings.FadeOpacity.Name",
			HintKey: "OVERMYHEAD.Settings.FadeOpacity.Hint",
			Scope:   settings.ScopeWorld,
			Type:    settings.TypeNumber,
			Default: 0.25,
		},
		{
			Key:     SettingDefaultTargetMode,
			NameKey: "OVERMYHEAD.Settings.DefaultTargetMode.Name",
			HintKey: "OVERMYHEAD.Settings.DefaultTargetMode.Hint",
			Scope:   settings.ScopeWorld,
			Type:    settings.TypeString,
			Default: string(geometry.UseCenter),
			Choices: modeChoices,
		},
		{
			Key:     SettingDefaultReferenceMode,
			NameKey: "OVERMYHEAD.Settings.DefaultReferenceMode.Name",
			HintKey: "OVERMYHEAD.Settings.DefaultReferenceMode.Hint",
			Scope:   settings.ScopeWorld,
			Type:    settings.TypeString,
			Default: string(geometry.UseRectangle),
			Choices: modeChoices,
		},
	}

	for _, def := range defs {
		if err := r.settings.Register(def); err != nil {
			return fmt.Errorf("failed to register settings: %w", err)
		}
	}

	if err := r.settings.Load(ctx); err != nil {
		return fmt.Errorf("failed to load persisted settings: %w", err)
	}
	return nil
}

// IsUnder reports whether target sits under ref using the configured
// default use modes.
func (r *Runtime) IsUnder(target, ref any) bool {
	return r.relation.IsUnder(target, ref, r.defaultTargetMode(), r.defaultReferenceMode())
}

// IsOver reports whether target sits over ref using the configured default
// use modes.
func (r *Runtime) IsOver(target, ref any) bool {
	return r.relation.IsOver(target, ref, r.defaultTargetMode(), r.defaultReferenceMode())
}

func (r *Runtime) defaultTargetMode() geometry.UseMode {
	return geometry.UseMode(r.settings.GetString(SettingDefaultTargetMode))
}

func (r *Runtime) defaultReferenceMode() geometry.UseMode {
	return geometry.UseMode(r.settings.GetString(SettingDefaultReferenceMode))
}

// Context returns a named key-value scope backed by the runtime's store.
func (r *Runtime) Context(name string) *modcontext.Context {
	return modcontext.New(name, r.store, r.logger)
}

// Bus returns the lifecycle hook bus.
func (r *Runtime) Bus() *hooks.Bus {
	return r.bus
}

// Settings returns the settings registry.
func (r *Runtime) Settings() *settings.Registry {
	return r.settings
}

// Flags returns the module flag accessor.
func (r *Runtime) Flags() *placeable.Flags {
	return r.flags
}

// Relationship returns the under/over relationship facade.
func (r *Runtime) Relationship() *placeable.Relationship {
	return r.relation
}

// Game returns the module registry bridge.
func (r *Runtime) Game() *Game {
	return r.game
}

// Localize resolves a localization key through the loaded bundle.
func (r *Runtime) Localize(key string) string {
	return r.bundle.Localize(key)
}
