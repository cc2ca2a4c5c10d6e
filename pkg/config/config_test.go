package config

import (
	"testing"
	"time"
)

func TestLoadFromMap(t *testing.T) {
	input := map[string]any{
		"localization": map[string]any{
			"default_locale": "es",
		},
		"links": map[string]any{
			"sort":     "date desc",
			"timezone": "Europe/Madrid",
			"tags": map[string]any{
				"link_description": map[string]any{"escape": "text"},
			},
		},
		"storage": map[string]any{
			"driver": "SQLite",
			"dsn":    "file:links.db",
		},
	}

	cfg, err := Load(input)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.Localization.DefaultLocale != "es" {
		t.Fatalf("expected locale es, got %s", cfg.Localization.DefaultLocale)
	}
	if cfg.Links.Sort != "date desc" || cfg.Links.DefaultForm != "plainlinks" {
		t.Fatalf("unexpected links config %+v", cfg.Links)
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Fatalf("expected normalized sqlite driver, got %q", cfg.Storage.Driver)
	}
	site := cfg.SiteDefaults()
	if site["linklist"]["sort"] != "date desc" || site["link_description"]["escape"] != "text" {
		t.Fatalf("unexpected site defaults %v", site)
	}
}

func TestLoadFromStructAppliesDefaults(t *testing.T) {
	cfg, err := Load(Config{Localization: LocalizationConfig{DefaultLocale: "fr"}})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.Localization.DefaultLocale != "fr" {
		t.Fatalf("expected locale fr, got %s", cfg.Localization.DefaultLocale)
	}
	if cfg.Templates.CacheTTL != time.Minute {
		t.Fatalf("expected default cache ttl, got %s", cfg.Templates.CacheTTL)
	}
	if cfg.Storage.Driver != DriverMemory || cfg.Links.AutoDetect != "category, author" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	loc, err := cfg.Links.Location()
	if err != nil || loc != time.UTC {
		t.Fatalf("expected UTC location, got %v err=%v", loc, err)
	}
}

func TestValidateRejectsBadInput(t *testing.T) {
	cases := map[string]Config{
		"sqlite without dsn": {Storage: StorageConfig{Driver: DriverSQLite}},
		"unknown driver":     {Storage: StorageConfig{Driver: "mongo"}},
		"bad timezone":       {Links: LinksConfig{Timezone: "Mars/Olympus"}},
		"negative ttl":       {Templates: TemplateConfig{CacheTTL: -time.Second}},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(input); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
