// Package config loads netmap's TOML configuration.
//
// The file lives at $XDG_CONFIG_HOME/netmap/netmap.toml (default
// ~/.config/netmap/netmap.toml). Missing files are not an error: every
// field has a default, and values present in the file override them.
// After decoding, the configuration is validated with struct tags.
//
//	[canvas]
//	width = 1200
//	height = 800
//
//	[layout]
//	algorithm = "hybrid"
//	node_radius = 30
//
//	[server]
//	addr = ":8080"
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	nmerrors "github.com/matzehuels/netmap/pkg/errors"
	"github.com/matzehuels/netmap/pkg/layout"
	"github.com/matzehuels/netmap/pkg/store"
	"github.com/matzehuels/netmap/pkg/viewport"
)

const appName = "netmap"

// Config holds netmap configuration.
type Config struct {
	Canvas   CanvasConfig   `toml:"canvas"`
	Layout   LayoutConfig   `toml:"layout"`
	Viewport ViewportConfig `toml:"viewport"`
	Server   ServerConfig   `toml:"server"`
	Store    StoreConfig    `toml:"store"`
	Cache    CacheConfig    `toml:"cache"`
}

// CanvasConfig is the drawing area shared by placement, layout and viewport.
type CanvasConfig struct {
	Width  float64 `toml:"width" validate:"gt=0,lte=100000"`
	Height float64 `toml:"height" validate:"gt=0,lte=100000"`
}

// LayoutConfig controls the layout engine.
type LayoutConfig struct {
	Algorithm           string  `toml:"algorithm" validate:"oneof=hybrid circular grid radial"`
	NodeRadius          float64 `toml:"node_radius" validate:"gt=0,lte=500"`
	LargeGraphThreshold int     `toml:"large_graph_threshold" validate:"gte=1"`
	AnchorRadius        float64 `toml:"anchor_radius" validate:"gte=0"`
}

// ViewportConfig controls zoom limits and transitions.
type ViewportConfig struct {
	MinScale float64  `toml:"min_scale" validate:"gt=0"`
	MaxScale float64  `toml:"max_scale" validate:"gtfield=MinScale"`
	Duration Duration `toml:"duration"`
	Padding  float64  `toml:"padding" validate:"gte=0"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr            string   `toml:"addr" validate:"required"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	Metrics         bool     `toml:"metrics"`
}

// StoreConfig selects the topology store backend.
type StoreConfig struct {
	Backend         string `toml:"backend" validate:"oneof=memory file redis mongo"`
	Path            string `toml:"path"`
	RedisAddr       string `toml:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword   string `toml:"redis_password"`
	RedisDB         int    `toml:"redis_db" validate:"gte=0"`
	RedisPrefix     string `toml:"redis_prefix"`
	MongoURI        string `toml:"mongo_uri" validate:"required_if=Backend mongo"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// CacheConfig controls the layout cache.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Duration is a time.Duration that decodes from TOML strings like "750ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the default configuration.
func Default() *Config {
	lo := layout.DefaultOptions()
	vo := viewport.DefaultOptions()
	return &Config{
		Canvas: CanvasConfig{Width: lo.Width, Height: lo.Height},
		Layout: LayoutConfig{
			Algorithm:           "hybrid",
			NodeRadius:          lo.NodeRadius,
			LargeGraphThreshold: lo.LargeGraphThreshold,
			AnchorRadius:        30,
		},
		Viewport: ViewportConfig{
			MinScale: vo.Extent.Min,
			MaxScale: vo.Extent.Max,
			Duration: Duration{vo.Duration},
			Padding:  vo.Padding,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration{10 * time.Second},
			WriteTimeout:    Duration{30 * time.Second},
			ShutdownTimeout: Duration{5 * time.Second},
			Metrics:         true,
		},
		Store: StoreConfig{Backend: store.BackendFile},
		Cache: CacheConfig{Enabled: true},
	}
}

// Dir returns the netmap config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "netmap.toml")
}

// Load reads the config file at path over the defaults and validates the
// result. An empty path means [Path]. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, nmerrors.Wrap(nmerrors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := Decode(data, cfg); err != nil {
		return nil, nmerrors.Wrap(nmerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, nil
}

// Decode unmarshals TOML into cfg and validates it. Keys the schema does
// not know are rejected so typos surface.
func Decode(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Save writes cfg to path, creating the directory.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

var validate = validator.New()

// Validate checks field constraints and returns the first violation in a
// readable form.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	e := verrs[0]
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "required", "required_if":
		return nmerrors.New(nmerrors.ErrCodeInvalidConfig, "%s: field is required", field)
	case "oneof":
		return nmerrors.New(nmerrors.ErrCodeInvalidConfig, "%s: must be one of %s", field, e.Param())
	case "gt", "gte":
		return nmerrors.New(nmerrors.ErrCodeInvalidConfig, "%s: must be at least %s", field, e.Param())
	case "lte":
		return nmerrors.New(nmerrors.ErrCodeInvalidConfig, "%s: must not exceed %s", field, e.Param())
	case "gtfield":
		return nmerrors.New(nmerrors.ErrCodeInvalidConfig, "%s: must be greater than %s", field, e.Param())
	default:
		return nmerrors.New(nmerrors.ErrCodeInvalidConfig, "%s: validation failed (%s)", field, e.Tag())
	}
}

// =============================================================================
// Conversions
// =============================================================================

// LayoutOptions returns the layout engine options.
func (c *Config) LayoutOptions() layout.Options {
	return layout.Options{
		Width:               c.Canvas.Width,
		Height:              c.Canvas.Height,
		NodeRadius:          c.Layout.NodeRadius,
		LargeGraphThreshold: c.Layout.LargeGraphThreshold,
	}
}

// ViewportOptions returns the viewport controller options.
func (c *Config) ViewportOptions() viewport.Options {
	return viewport.Options{
		Width:    c.Canvas.Width,
		Height:   c.Canvas.Height,
		Extent:   viewport.Extent{Min: c.Viewport.MinScale, Max: c.Viewport.MaxScale},
		Duration: c.Viewport.Duration.Duration,
		Padding:  c.Viewport.Padding,
	}
}

// StoreConfig returns the store backend configuration.
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Backend: c.Store.Backend,
		Path:    c.Store.Path,
		Redis: store.RedisConfig{
			Addr:     c.Store.RedisAddr,
			Password: c.Store.RedisPassword,
			DB:       c.Store.RedisDB,
			Prefix:   c.Store.RedisPrefix,
		},
		Mongo: store.MongoConfig{
			URI:        c.Store.MongoURI,
			Database:   c.Store.MongoDatabase,
			Collection: c.Store.MongoCollection,
		},
	}
}
