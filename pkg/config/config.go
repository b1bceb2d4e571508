// Package config loads wordcloud settings from a TOML file.
//
// A configuration file is optional. When present it supplies defaults that
// command-line flags override:
//
//	[layout]
//	width = 500.0
//	height = 500.0
//	seed = 42
//
//	[filters]
//	infrequent_limit = 100
//	stopwords = "some-common-words.txt"
//
//	[render]
//	formats = ["svg"]
//	type = "cloud"
//	legend = true
//	cache_dir = ""
//
//	[server]
//	addr = "127.0.0.1:8080"
//
//	[logging]
//	level = "info"
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/session"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "wordcloud.toml"

// Config holds all configuration for wordcloud.
type Config struct {
	Layout  LayoutConfig  `toml:"layout"`
	Filters FilterConfig  `toml:"filters"`
	Render  RenderConfig  `toml:"render"`
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
}

// LayoutConfig holds layout configuration.
type LayoutConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Seed   uint64  `toml:"seed"` // 0 = random per session
}

// FilterConfig holds the settings of the user actions.
type FilterConfig struct {
	InfrequentLimit int    `toml:"infrequent_limit"`
	Stopwords       string `toml:"stopwords"` // "" = built-in list
}

// RenderConfig holds output configuration.
type RenderConfig struct {
	Formats  []string `toml:"formats"`
	Type     string   `toml:"type"` // "cloud" or "dot"
	Legend   bool     `toml:"legend"`
	CacheDir string   `toml:"cache_dir"` // "" = no artifact cache
}

// ServerConfig holds HTTP UI configuration.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			Width:  pipeline.DefaultWidth,
			Height: pipeline.DefaultHeight,
		},
		Filters: FilterConfig{
			InfrequentLimit: session.DefaultInfrequentLimit,
			Stopwords:       session.DefaultStopwordsPath,
		},
		Render: RenderConfig{
			Formats: []string{pipeline.FormatSVG},
			Type:    pipeline.DefaultVizType,
			Legend:  true,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration at path on top of the defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %q", path)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %q", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find returns the configuration file to use: explicit if set, then
// ./wordcloud.toml, then $XDG_CONFIG_HOME/wordcloud/config.toml (or the
// platform equivalent). It returns "" when none exists.
func Find(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "wordcloud", "config.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Resolve finds and loads the configuration. An explicit path that does
// not exist is an error; implicit locations are optional.
func Resolve(explicit string) (*Config, string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %q", explicit)
		}
	}
	path := Find(explicit)
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate checks every value.
func (c *Config) Validate() error {
	if c.Layout.Width < 0 || c.Layout.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout size must not be negative")
	}
	if c.Filters.InfrequentLimit < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "infrequent_limit must not be negative")
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.formats")
	}
	if c.Render.Type != "" {
		if err := pipeline.ValidateVizType(c.Render.Type); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.type")
		}
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown log level %q", c.Logging.Level)
	}
	return nil
}

// Encode returns the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// PipelineOptions returns pipeline options seeded from the configuration.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Stopwords:       c.Filters.Stopwords,
		InfrequentLimit: c.Filters.InfrequentLimit,
		Width:           c.Layout.Width,
		Height:          c.Layout.Height,
		Seed:            c.Layout.Seed,
		VizType:         c.Render.Type,
		Formats:         append([]string(nil), c.Render.Formats...),
		Legend:          c.Render.Legend,
	}
}
