// Package i18n loads the module's translation files and resolves
// localization keys with language fallback.
package i18n

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
)

// Bundle holds the loaded translations and the selected language. Lookups
// fall back from the selected language to English, then to the key itself.
type Bundle struct {
	selected     language.Tag
	fallback     language.Tag
	translations map[language.Tag]map[string]string
	logger       *slog.Logger
}

// Empty returns a bundle with no translations; every lookup echoes its key.
func Empty(logger *slog.Logger) *Bundle {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bundle{
		translations: make(map[language.Tag]map[string]string),
		logger:       logger,
	}
}

// LoadDir reads every <lang>.json file in dir, flattens nested objects into
// dotted keys, and selects the best available match for the preferred
// language tag.
func LoadDir(dir, preferred string, logger *slog.Logger) (*Bundle, error) {
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read language directory: %w", err)
	}

	translations := make(map[language.Tag]map[string]string)
	var tags []language.Tag
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		tag, err := language.Parse(name)
		if err != nil {
			logger.Warn("Skipping translation file with invalid language tag", "file", entry.Name())
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read translation file %s: %w", entry.Name(), err)
		}

		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse translation file %s: %w", entry.Name(), err)
		}

		flat := make(map[string]string)
		flatten("", raw, flat)
		translations[tag] = flat
		tags = append(tags, tag)

		logger.Debug("Loaded translations", "language", tag, "keys", len(flat))
	}

	if len(tags) == 0 {
		logger.Warn("No translation files found", "dir", dir)
		return Empty(logger), nil
	}

	matcher := language.NewMatcher(tags)
	_, index, _ := matcher.Match(language.Make(preferred))
	selected := tags[index]

	fallback := language.English
	if _, ok := translations[fallback]; !ok {
		fallback = selected
	}

	logger.Info("Localization ready", "language", selected, "available", len(tags))

	return &Bundle{
		selected:     selected,
		fallback:     fallback,
		translations: translations,
		logger:       logger,
	}, nil
}

// Language returns the selected language tag.
func (b *Bundle) Language() language.Tag {
	return b.selected
}

// Has reports whether the key resolves in the selected language or the
// fallback.
func (b *Bundle) Has(key string) bool {
	if _, ok := b.translations[b.selected][key]; ok {
		return true
	}
	_, ok := b.translations[b.fallback][key]
	return ok
}

// Localize resolves a dotted localization key. Unknown keys are returned
// unchanged, matching the host's behavior.
func (b *Bundle) Localize(key string) string {
	if value, ok := b.translations[b.selected][key]; ok {
		return value
	}
	if value, ok := b.translations[b.fallback][key]; ok {
		return value
	}
	b.logger.Debug("Localization key not found", "key", key)
	return key
}

// flatten converts nested JSON objects into dotted keys. Non-string leaves
// are ignored.
func flatten(prefix string, raw map[string]any, out map[string]string) {
	for key, value := range raw {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[full] = v
		case map[string]any:
			flatten(full, v, out)
		}
	}
}
