// Package config loads and saves vnav's user settings.
//
// Settings live in a TOML file, by default
// $XDG_CONFIG_HOME/vnav/config.toml (falling back to ~/.config/vnav).
// A [Store] owns the file; nothing in vnav reads settings from a global.
//
//	store := config.Store{Path: path}
//	s, err := store.Load()   // defaults if the file does not exist
//	s.StrictColor = true
//	err = store.Save(s)
//
// Example file:
//
//	default_color = "#1e90ff"
//	strict_color = false
//
//	[repair]
//	check_cycles = true
//	check_curved_lines = true
//	check_anchor_kinds = true
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"regexp"
	"slices"
	"time"

	"github.com/matzehuels/vnav/pkg/cache"
	"github.com/matzehuels/vnav/pkg/drawing"
	"github.com/matzehuels/vnav/pkg/errors"
	"github.com/matzehuels/vnav/pkg/repair"
	"github.com/matzehuels/vnav/pkg/schema"
)

// Environment variables that override file settings.
const (
	EnvRedisAddr  = "VNAV_REDIS_ADDR"
	EnvServerAddr = "VNAV_SERVER_ADDR"
)

// Defaults used when a setting is absent.
const (
	DefaultTTL        = 7 * 24 * time.Hour
	DefaultServerAddr = ":8080"
)

// Settings is the full set of user settings.
type Settings struct {
	// DefaultColor is the color given to newly created drawings.
	DefaultColor string `toml:"default_color"`
	// StrictColor rejects colors with trailing characters after #rrggbb.
	StrictColor bool `toml:"strict_color"`

	Repair repair.Options `toml:"repair"`
	Cache  CacheSettings  `toml:"cache"`
	Server ServerSettings `toml:"server"`
}

// CacheSettings selects where parse results are cached.
type CacheSettings struct {
	// Backend is "file", "redis" or "none".
	Backend   string        `toml:"backend"`
	RedisAddr string        `toml:"redis_addr,omitempty"`
	TTL       time.Duration `toml:"ttl"`
}

// ServerSettings configures "vnav serve".
type ServerSettings struct {
	Addr string `toml:"addr"`
}

// Defaults returns the settings used when no file exists.
func Defaults() Settings {
	return Settings{
		DefaultColor: drawing.DefaultColor,
		Repair:       repair.DefaultOptions(),
		Cache: CacheSettings{
			Backend: cache.BackendFile,
			TTL:     DefaultTTL,
		},
		Server: ServerSettings{Addr: DefaultServerAddr},
	}
}

var colorRe = regexp.MustCompile(schema.StrictColorPattern)

var backends = []string{cache.BackendFile, cache.BackendRedis, cache.BackendNone}

// Validate checks s for values vnav cannot use.
func (s Settings) Validate() error {
	if !colorRe.MatchString(s.DefaultColor) {
		return errors.New(errors.ErrCodeInvalidConfig, "default_color %q is not a #rrggbb color", s.DefaultColor)
	}
	if !slices.Contains(backends, s.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q must be one of: file, redis, none", s.Cache.Backend)
	}
	if s.Cache.Backend == cache.BackendRedis && s.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if s.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if s.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr cannot be empty")
	}
	return nil
}

// ApplyEnv overrides settings from environment variables read with getenv.
func (s *Settings) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvRedisAddr); v != "" {
		s.Cache.RedisAddr = v
	}
	if v := getenv(EnvServerAddr); v != "" {
		s.Server.Addr = v
	}
}
