package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "keyroute.log", cfg.Log.File)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "remap", cfg.Input.Strategy)
	assert.Equal(t, 8192, cfg.Input.QueueCapacity)
	assert.Equal(t, "config.cfg", cfg.Bindings.File)
	assert.True(t, cfg.Bindings.Watch)
	assert.True(t, cfg.Bindings.Defaults)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyroute.toml")
	data := `
[log]
level = "debug"

[input]
strategy = "chars"
debug_events = true

[bindings]
file = "binds.cfg"
watch = false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "chars", cfg.Input.Strategy)
	assert.True(t, cfg.Input.DebugEvents)
	assert.Equal(t, 8192, cfg.Input.QueueCapacity, "unset keys keep defaults")
	assert.Equal(t, "binds.cfg", cfg.Bindings.File)
	assert.False(t, cfg.Bindings.Watch)
	assert.True(t, cfg.Bindings.Defaults)
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, path, perr.Path)
	assert.Equal(t, 2, perr.Line)
	assert.Contains(t, perr.Error(), "line 2")
}

func TestLoadUnknownKey(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("[input]\nstrategy = \"remap\"\nbogus = 1\n"))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "<reader>", perr.Path)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"KEYROUTE_LOG_LEVEL":      "warn",
		"KEYROUTE_LOG_FILE":       "",
		"KEYROUTE_INPUT_STRATEGY": "chars",
		"KEYROUTE_BINDINGS_FILE":  "/tmp/x.cfg",
		"KEYROUTE_BINDINGS_WATCH": "false",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, "chars", cfg.Input.Strategy)
	assert.Equal(t, "/tmp/x.cfg", cfg.Bindings.File)
	assert.False(t, cfg.Bindings.Watch)
}

func TestApplyEnvBadBool(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "KEYROUTE_BINDINGS_WATCH" {
			return "sometimes", true
		}
		return "", false
	}
	assert.Error(t, Default().ApplyEnv(lookup))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "verbose"
	assert.ErrorIs(t, cfg.Validate(), ErrValidationFailed)

	cfg = Default()
	cfg.Input.Strategy = "scancodes"
	assert.ErrorIs(t, cfg.Validate(), ErrValidationFailed)

	cfg = Default()
	cfg.Log.Format = "xml"
	assert.ErrorIs(t, cfg.Validate(), ErrValidationFailed)

	cfg = Default()
	cfg.Input.QueueCapacity = -1
	assert.ErrorIs(t, cfg.Validate(), ErrValidationFailed)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Input.Strategy = "chars"

	data, err := cfg.Marshal()
	require.NoError(t, err)

	got, err := LoadFromReader(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestParseErrorMessages(t *testing.T) {
	assert.Equal(t, "parse error in a.toml: oops", (&ParseError{Path: "a.toml", Message: "oops"}).Error())
	assert.Equal(t, "parse error in a.toml at line 3: oops", (&ParseError{Path: "a.toml", Line: 3, Message: "oops"}).Error())
	assert.Equal(t, "parse error in a.toml at line 3, column 7: oops",
		(&ParseError{Path: "a.toml", Line: 3, Column: 7, Message: "oops"}).Error())
}
