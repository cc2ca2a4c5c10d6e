package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/goliatone/go-config/cfgx"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config captures module-level configuration knobs. The links service,
// template engine and storage providers pull from these nested structs.
type Config struct {
	Links        LinksConfig        `mapstructure:"links" json:"links"`
	Localization LocalizationConfig `mapstructure:"localization" json:"localization"`
	Templates    TemplateConfig     `mapstructure:"templates" json:"templates"`
	Storage      StorageConfig      `mapstructure:"storage" json:"storage"`
}

// LinksConfig holds site-wide tag defaults. Tags overrides individual
// attributes per tag name, e.g. tags.link_date.format.
type LinksConfig struct {
	DefaultForm string                       `mapstructure:"default_form" json:"default_form"`
	Sort        string                       `mapstructure:"sort" json:"sort"`
	AutoDetect  string                       `mapstructure:"auto_detect" json:"auto_detect"`
	Class       string                       `mapstructure:"class" json:"class"`
	Break       string                       `mapstructure:"break" json:"break"`
	DateFormat  string                       `mapstructure:"date_format" json:"date_format"`
	Timezone    string                       `mapstructure:"timezone" json:"timezone"`
	Tags        map[string]map[string]string `mapstructure:"tags" json:"tags"`
}

// LocalizationConfig controls the default locale.
type LocalizationConfig struct {
	DefaultLocale string `mapstructure:"default_locale" json:"default_locale"`
}

// TemplateConfig scopes caching of directory lookups made while rendering.
type TemplateConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl" json:"cache_ttl"`
}

// StorageConfig selects the repository backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver" json:"driver"`
	DSN    string `mapstructure:"dsn" json:"dsn"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Links: LinksConfig{
			DefaultForm: "plainlinks",
			Sort:        "linksort asc",
			AutoDetect:  "category, author",
			Class:       "linklist",
			DateFormat:  "2006-01-02",
			Timezone:    "UTC",
		},
		Localization: LocalizationConfig{DefaultLocale: "en"},
		Templates: TemplateConfig{
			CacheTTL: time.Minute,
		},
		Storage: StorageConfig{
			Driver: DriverMemory,
		},
	}
}

// Validate ensures required fields are present and sane.
func (c *Config) Validate() error {
	if c.Localization.DefaultLocale == "" {
		return errors.New("localization.default_locale is required")
	}
	if c.Templates.CacheTTL < 0 {
		return fmt.Errorf("templates.cache_ttl must be >= 0")
	}
	if _, err := c.Links.Location(); err != nil {
		return fmt.Errorf("links.timezone: %w", err)
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return errors.New("storage.dsn is required for sqlite")
		}
	default:
		return fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver)
	}
	return nil
}

// Location resolves the configured timezone.
func (l LinksConfig) Location() (*time.Location, error) {
	if strings.TrimSpace(l.Timezone) == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(l.Timezone)
}

// Load decodes arbitrary input (struct, map, cfg struct) using cfgx helpers.
// While cfgx.Build still returns zero values, we fallback to a lightweight
// decoder so callers get a populated config.
func Load(input any, opts ...LoadOption) (Config, error) {
	settings := loadOptions{}
	for _, opt := range opts {
		opt(&settings)
	}

	cfg, err := cfgx.Build(input, settings.buildOpts...)
	if err != nil {
		return Config{}, err
	}

	if isZero(cfg) {
		if err := decodeFallback(input, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadOption lets callers amend cfgx build options.
type LoadOption func(*loadOptions)

type loadOptions struct {
	buildOpts []cfgx.Option[Config]
}

// WithBuildOptions forwards cfgx options (duration hooks, preprocessors, etc.).
func WithBuildOptions(opts ...cfgx.Option[Config]) LoadOption {
	return func(lo *loadOptions) {
		lo.buildOpts = append(lo.buildOpts, opts...)
	}
}

func (c Config) withDefaults() Config {
	defaults := Defaults()

	if c.Links.DefaultForm == "" {
		c.Links.DefaultForm = defaults.Links.DefaultForm
	}
	if c.Links.Sort == "" {
		c.Links.Sort = defaults.Links.Sort
	}
	if c.Links.AutoDetect == "" {
		c.Links.AutoDetect = defaults.Links.AutoDetect
	}
	if c.Links.Class == "" {
		c.Links.Class = defaults.Links.Class
	}
	if c.Links.DateFormat == "" {
		c.Links.DateFormat = defaults.Links.DateFormat
	}
	if c.Links.Timezone == "" {
		c.Links.Timezone = defaults.Links.Timezone
	}
	if c.Localization.DefaultLocale == "" {
		c.Localization.DefaultLocale = defaults.Localization.DefaultLocale
	}
	if c.Templates.CacheTTL == 0 {
		c.Templates.CacheTTL = defaults.Templates.CacheTTL
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = defaults.Storage.Driver
	}
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	return c
}

// SiteDefaults flattens the links section into per-tag attribute defaults.
func (c Config) SiteDefaults() map[string]map[string]string {
	out := map[string]map[string]string{
		"linklist": {
			"form":        c.Links.DefaultForm,
			"sort":        c.Links.Sort,
			"auto_detect": c.Links.AutoDetect,
			"class":       c.Links.Class,
			"break":       c.Links.Break,
		},
		"link_date": {
			"format": c.Links.DateFormat,
		},
	}
	for tag, attrs := range c.Links.Tags {
		if out[tag] == nil {
			out[tag] = make(map[string]string, len(attrs))
		}
		for key, value := range attrs {
			out[tag][key] = value
		}
	}
	return out
}

func isZero(cfg Config) bool {
	return reflect.DeepEqual(cfg, Config{})
}

func decodeFallback(input any, cfg *Config) error {
	switch v := input.(type) {
	case nil:
		return nil
	case Config:
		*cfg = v
		return nil
	case *Config:
		if v != nil {
			*cfg = *v
		}
		return nil
	case map[string]any:
		return decodeMap(v, cfg)
	default:
		return fmt.Errorf("unsupported config input type: %T", input)
	}
}

func decodeMap(input map[string]any, cfg *Config) error {
	if input == nil {
		return nil
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, cfg)
}
