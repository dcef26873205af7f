package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "KEYROUTE_"

// Config is the client configuration.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Input    InputConfig    `toml:"input"`
	Bindings BindingsConfig `toml:"bindings"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// File receives log output. Empty means standard error.
	File string `toml:"file"`

	// Format is "console" or "json".
	Format string `toml:"format"`
}

// InputConfig configures the key dispatcher.
type InputConfig struct {
	// Strategy selects the text-input strategy: "remap" or "chars".
	Strategy string `toml:"strategy"`

	// DebugEvents traces every key event at debug level.
	DebugEvents bool `toml:"debug_events"`

	// QueueCapacity is the command buffer size in bytes.
	QueueCapacity int `toml:"queue_capacity"`
}

// BindingsConfig configures binding persistence.
type BindingsConfig struct {
	// File holds the persisted bind lines.
	File string `toml:"file"`

	// Script is an optional Lua script run after File.
	Script string `toml:"script"`

	// Watch re-executes File when it changes on disk.
	Watch bool `toml:"watch"`

	// Defaults seeds the default bindings when File does not exist.
	Defaults bool `toml:"defaults"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			File:   "keyroute.log",
			Format: "console",
		},
		Input: InputConfig{
			Strategy:      "remap",
			QueueCapacity: 8192,
		},
		Bindings: BindingsConfig{
			File:     "config.cfg",
			Watch:    true,
			Defaults: true,
		},
	}
}

// Load reads the configuration at path over the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := cfg.parse(path, data); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromReader reads configuration over the defaults from r.
func LoadFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := cfg.parse("<reader>", data); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) parse(source string, data []byte) error {
	dec := toml.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

// ApplyEnv overrides settings from KEYROUTE_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FILE"); ok {
		c.Log.File = v
	}
	if v, ok := lookup(EnvPrefix + "INPUT_STRATEGY"); ok {
		c.Input.Strategy = v
	}
	if v, ok := lookup(EnvPrefix + "BINDINGS_FILE"); ok {
		c.Bindings.File = v
	}
	if v, ok := lookup(EnvPrefix + "BINDINGS_WATCH"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sBINDINGS_WATCH: %w", EnvPrefix, err)
		}
		c.Bindings.Watch = b
	}
	return nil
}

// Validate checks settings that have a fixed set of values.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrValidationFailed, c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log.format %q (must be console or json)", ErrValidationFailed, c.Log.Format)
	}
	switch c.Input.Strategy {
	case "remap", "chars":
	default:
		return fmt.Errorf("%w: input.strategy %q (must be remap or chars)", ErrValidationFailed, c.Input.Strategy)
	}
	if c.Input.QueueCapacity < 0 {
		return fmt.Errorf("%w: input.queue_capacity must not be negative", ErrValidationFailed)
	}
	return nil
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
