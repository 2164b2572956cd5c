package placeable

import (
	"context"
	"log/slog"
)

// Flag keys the module writes under its namespace.
const (
	FlagAlsoFade  = "alsoFade"
	FlagOverrides = "overrides"
)

// Flags reads and writes the module's flags on host documents. Missing or
// malformed documents degrade to a warning and a safe default value; flag
// access never panics.
type Flags struct {
	namespace string
	logger    *slog.Logger
}

// NewFlags creates a flag accessor writing under the given namespace.
func NewFlags(namespace string, logger *slog.Logger) *Flags {
	if logger == nil {
		logger = slog.Default()
	}
	return &Flags{
		namespace: namespace,
		logger:    logger,
	}
}

// Namespace returns the namespace flags are written under.
func (f *Flags) Namespace() string {
	return f.namespace
}

// AlsoFade reports whether the document is marked to fade along with its
// linked placeable. Missing documents and non-boolean values yield false.
func (f *Flags) AlsoFade(doc Document) bool {
	if doc == nil {
		f.logger.Warn("AlsoFade requested on nil document")
		return false
	}
	value, ok := doc.GetFlag(f.namespace, FlagAlsoFade)
	if !ok {
		return false
	}
	b, ok := value.(bool)
	if !ok {
		f.logger.Warn("alsoFade flag is not a boolean", "value", value)
		return false
	}
	return b
}

// SetAlsoFade writes the alsoFade flag. A nil document is logged and
// ignored rather than treated as an error.
func (f *Flags) SetAlsoFade(ctx context.Context, doc Document, value bool) error {
	if doc == nil {
		f.logger.Warn("SetAlsoFade requested on nil document")
		return nil
	}
	return doc.SetFlag(ctx, f.namespace, FlagAlsoFade, value)
}

// Overrides returns the per-document setting overrides. Missing documents
// and malformed values yield an empty map.
func (f *Flags) Overrides(doc Document) map[string]any {
	if doc == nil {
		f.logger.Warn("Overrides requested on nil document")
		return map[string]any{}
	}
	value, ok := doc.GetFlag(f.namespace, FlagOverrides)
	if !ok {
		return map[string]any{}
	}
	m, ok := value.(map[string]any)
	if !ok {
		f.logger.Warn("overrides flag is not a map", "value", value)
		return map[string]any{}
	}
	return m
}

// SetOverrides replaces the per-document setting overrides. A nil document
// is logged and ignored; a nil map clears the flag.
func (f *Flags) SetOverrides(ctx context.Context, doc Document, overrides map[string]any) error {
	if doc == nil {
		f.logger.Warn("SetOverrides requested on nil document")
		return nil
	}
	if overrides == nil {
		return doc.UnsetFlag(ctx, f.namespace, FlagOverrides)
	}
	return doc.SetFlag(ctx, f.namespace, FlagOverrides, overrides)
}
