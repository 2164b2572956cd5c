package i18n

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeLangFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func setupLangDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeLangFile(t, dir, "en.json", `{
		"OVERMYHEAD": {
			"Settings": {
				"Debug": {"Name": "Debug logging", "Hint": "Log verbose diagnostics."}
			}
		}
	}`)
	writeLangFile(t, dir, "pt-BR.json", `{
		"OVERMYHEAD": {
			"Settings": {
				"Debug": {"Name": "Registro de depuração"}
			}
		}
	}`)
	return dir
}

func TestLoadDir_FlattensNestedKeys(t *testing.T) {
	bundle, err := LoadDir(setupLangDir(t), "en", testLogger())
	require.NoError(t, err)

	assert.Equal(t, language.English, bundle.Language())
	assert.Equal(t, "Debug logging", bundle.Localize("OVERMYHEAD.Settings.Debug.Name"))
	assert.Equal(t, "Log verbose diagnostics.", bundle.Localize("OVERMYHEAD.Settings.Debug.Hint"))
}

func TestLoadDir_MatchesRegionalVariant(t *testing.T) {
	bundle, err := LoadDir(setupLangDir(t), "pt", testLogger())
	require.NoError(t, err)

	assert.Equal(t, "Registro de depuração", bundle.Localize("OVERMYHEAD.Settings.Debug.Name"))
}

func TestLocalize_FallsBackToEnglishThenKey(t *testing.T) {
	bundle, err := LoadDir(setupLangDir(t), "pt-BR", testLogger())
	require.NoError(t, err)

	// Missing in pt-BR, present in en.
	assert.Equal(t, "Log verbose diagnostics.", bundle.Localize("OVERMYHEAD.Settings.Debug.Hint"))

	// Missing everywhere: the key shows through.
	assert.Equal(t, "OVERMYHEAD.Missing", bundle.Localize("OVERMYHEAD.Missing"))
	assert.False(t, bundle.Has("OVERMYHEAD.Missing"))
}

func TestLoadDir_UnknownPreferredFallsBackToAvailable(t *testing.T) {
	bundle, err := LoadDir(setupLangDir(t), "zz", testLogger())
	require.NoError(t, err)

	// The matcher settles on one of the loaded languages, so the key
	// still resolves to a real translation.
	got := bundle.Localize("OVERMYHEAD.Settings.Debug.Name")
	assert.Contains(t, []string{"Debug logging", "Registro de depuração"}, got)
}

func TestLoadDir_EmptyDirYieldsEchoBundle(t *testing.T) {
	bundle, err := LoadDir(t.TempDir(), "en", testLogger())
	require.NoError(t, err)

	assert.Equal(t, "some.key", bundle.Localize("some.key"))
}

func TestLoadDir_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeLangFile(t, dir, "en.json", `{not json`)

	_, err := LoadDir(dir, "en", testLogger())
	assert.Error(t, err)
}

func TestLoadDir_MissingDir(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "absent"), "en", testLogger())
	assert.Error(t, err)
}

func TestEmpty(t *testing.T) {
	bundle := Empty(testLogger())
	assert.Equal(t, "a.b", bundle.Localize("a.b"))
}
