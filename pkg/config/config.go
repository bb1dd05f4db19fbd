// Package config loads the optional adroutes.toml file.
//
// Every field is optional. Values left out keep the pipeline defaults, and
// command-line flags override whatever the file sets.
//
//	[selection]
//	range = "23-36"
//	region = "29,-1690,60,-1660"
//
//	[render]
//	type = "diagram"
//	formats = ["svg", "png"]
//	width = 1200
//	height = 900
//	title = "Yard"
//	labels = true
//	legend = true
//	markers = true
//
//	[palette]
//	priority = "#d32f2f"
//
//	[cache]
//	dir = "/tmp/adroutes"
//	ttl = "72h"
//	redis_url = "redis://localhost:6379/0"
//	key_prefix = "adroutes:"
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/adroutes/pkg/errors"
	"github.com/matzehuels/adroutes/pkg/render"
	"github.com/matzehuels/adroutes/pkg/render/diagram"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "adroutes.toml"

// Config is the decoded configuration file.
type Config struct {
	Selection Selection      `toml:"selection"`
	Render    Render         `toml:"render"`
	Palette   render.Palette `toml:"palette"`
	Cache     Cache          `toml:"cache"`

	// Path is the file the config was read from, empty when none was found.
	Path string `toml:"-"`
}

// Selection chooses the waypoints to classify.
type Selection struct {
	Range  string `toml:"range"`
	Region string `toml:"region"`
}

// Render holds output settings. Pointer fields distinguish "unset" from false.
type Render struct {
	Type    string   `toml:"type"`
	Formats []string `toml:"formats"`
	Width   float64  `toml:"width"`
	Height  float64  `toml:"height"`
	Title   string   `toml:"title"`
	Labels  *bool    `toml:"labels"`
	Legend  *bool    `toml:"legend"`
	Markers *bool    `toml:"markers"`
}

// Cache configures artifact caching.
type Cache struct {
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisURL  string   `toml:"redis_url"`
	KeyPrefix string   `toml:"key_prefix"`
	Disabled  bool     `toml:"disabled"`
}

// Duration decodes TOML strings such as "72h" into a time.Duration.
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Load reads the config at path. An empty path looks for [DefaultFile] in the
// working directory and returns an empty Config when it does not exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown key %q", path, undecoded[0].String())
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	return &cfg, nil
}

// Parse decodes config text. It is Load without the file lookup.
func Parse(text string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "config: unknown key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that can be checked without input data.
func (c *Config) Validate() error {
	if c.Render.Type != "" {
		if err := render.ValidateType(c.Render.Type); err != nil {
			return err
		}
	}
	if len(c.Render.Formats) > 0 {
		if err := render.ValidateFormats(c.Render.Formats); err != nil {
			return err
		}
	}
	if c.Render.Width < 0 || c.Render.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render size must not be negative")
	}
	if w, h := c.Render.Width, c.Render.Height; (w > 0 && w < diagram.MinWidth) || (h > 0 && h < diagram.MinHeight) {
		return errors.New(errors.ErrCodeInvalidInput,
			"render size %.0fx%.0f is below the minimum %.0fx%.0f", w, h, diagram.MinWidth, diagram.MinHeight)
	}
	for _, color := range []string{c.Palette.Bidirectional, c.Palette.Priority, c.Palette.SubPriority,
		c.Palette.Backwards, c.Palette.Marker, c.Palette.Text} {
		if color == "" {
			continue
		}
		if err := errors.ValidateColor(color); err != nil {
			return err
		}
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	return nil
}
