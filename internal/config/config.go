// Package config assembles the server's runtime configuration: compiled-in
// defaults overridden by flags, merged the way
// curol-go-net/server/config.go's mergeConfigs overlays a non-zero options
// struct onto a defaults struct — except the merge step here goes through
// mapstructure.Decode over a map[string]any, so the same Config can later be
// filled from a file or environment map without a second merge function.
package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

const mb = 1024 * 1024

// Config holds everything main.go needs to start listening.
type Config struct {
	Network        string        `mapstructure:"network"`
	Address        string        `mapstructure:"address"`
	Directory      string        `mapstructure:"directory"`
	MaxConnections int           `mapstructure:"max_connections"`
	MaxRequestSize int           `mapstructure:"max_request_size"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	LogPath        string        `mapstructure:"log_path"`
	LogLevel       string        `mapstructure:"log_level"`
}

// Defaults returns the compiled-in baseline, the way
// curol-go-net/server/config.go's NewConfig seeds defaultConfig before any
// merge.
func Defaults() Config {
	return Config{
		Network:        "tcp",
		Address:        "localhost:8080",
		Directory:      ".",
		MaxConnections: 100,
		MaxRequestSize: 5 * mb,
		ReadTimeout:    5 * time.Minute,
		LogPath:        "",
		LogLevel:       "info",
	}
}

// Overrides is the sparse set of fields a caller (the CLI flags, in
// practice) wants to overlay onto Defaults(). Merge applies every entry
// present, an empty value included; only a nil value leaves its field
// untouched. main.go adds entries only for the flags that were set.
type Overrides map[string]any

// Merge decodes overrides onto a copy of base using mapstructure, so an
// absent key in overrides leaves the corresponding Config field untouched —
// the map-shaped analogue of mergeConfigs' "skip zero-valued fields" rule.
func Merge(base Config, overrides Overrides) (Config, error) {
	out := base
	if len(overrides) == 0 {
		return out, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return Config{}, fmt.Errorf("config: build decoder: %w", err)
	}
	if err := decoder.Decode(map[string]any(overrides)); err != nil {
		return Config{}, fmt.Errorf("config: decode overrides: %w", err)
	}
	return out, nil
}

// Validate reports the handful of invariants main.go must hold before it
// starts accepting connections.
func (c Config) Validate() error {
	if c.Directory == "" {
		return fmt.Errorf("config: directory must not be empty")
	}
	if c.MaxConnections <= 0 {
		return fmt.Errorf("config: max_connections must be positive, got %d", c.MaxConnections)
	}
	if c.MaxRequestSize <= 0 {
		return fmt.Errorf("config: max_request_size must be positive, got %d", c.MaxRequestSize)
	}
	return nil
}
