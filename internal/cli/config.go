package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/popover/pkg/popover"
)

// Config is the CLI configuration file format (TOML). A missing file means
// built-in defaults; a present file overrides only the fields it sets.
//
// Example (~/.config/popover/config.toml):
//
//	exclusive = true
//
//	[options]
//	template = "<div class=\"popover\">__content__</div>"
//	hide_selector = ".popover-hide"
//	hover = true
//	hover_delay_ms = 150
//	fade_duration_ms = 100
//
//	[cache]
//	enabled = true
//	ttl_minutes = 60
type Config struct {
	// Exclusive makes showing one popover hide all others.
	Exclusive bool `toml:"exclusive"`

	Options OptionsConfig `toml:"options"`
	Cache   CacheConfig   `toml:"cache"`
}

// OptionsConfig overrides default widget options. Pointer fields
// distinguish "not set" from an explicit false or zero.
type OptionsConfig struct {
	Template       string `toml:"template"`
	TemplateFrom   string `toml:"template_from"`
	HideSelector   string `toml:"hide_selector"`
	Escape         *bool  `toml:"escape"`
	Click          *bool  `toml:"click"`
	Hover          *bool  `toml:"hover"`
	HoverDelayMS   *int   `toml:"hover_delay_ms"`
	FadeDurationMS *int   `toml:"fade_duration_ms"`
}

// CacheConfig configures the remote content cache.
type CacheConfig struct {
	Enabled    bool `toml:"enabled"`
	TTLMinutes int  `toml:"ttl_minutes"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Exclusive: true,
		Cache:     CacheConfig{Enabled: true, TTLMinutes: 60},
	}
}

// LoadConfig reads a TOML config file. A missing file is not an error and
// yields the defaults. An empty path uses the standard location
// (~/.config/popover/config.toml).
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// WidgetOptions resolves the configured widget options on top of the
// engine defaults.
func (c Config) WidgetOptions() popover.Options {
	o := popover.Defaults()
	if c.Options.Template != "" {
		o.Template = c.Options.Template
	}
	if c.Options.TemplateFrom != "" {
		o.TemplateFrom = c.Options.TemplateFrom
	}
	if c.Options.HideSelector != "" {
		o.HideSelector = c.Options.HideSelector
	}
	if c.Options.Escape != nil {
		o.Escape = *c.Options.Escape
	}
	if c.Options.Click != nil {
		o.Click = *c.Options.Click
	}
	if c.Options.Hover != nil {
		o.Hover = *c.Options.Hover
	}
	if c.Options.HoverDelayMS != nil {
		o.HoverDelay = time.Duration(*c.Options.HoverDelayMS) * time.Millisecond
	}
	if c.Options.FadeDurationMS != nil {
		o.FadeDuration = time.Duration(*c.Options.FadeDurationMS) * time.Millisecond
	}
	return o
}
