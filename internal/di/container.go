package di

import (
	"context"
	"fmt"

	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-linklist/internal/links"
	"github.com/goliatone/go-linklist/internal/templates"
	"github.com/goliatone/go-linklist/pkg/commands"
	"github.com/goliatone/go-linklist/pkg/config"
	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/cache"
	"github.com/goliatone/go-linklist/pkg/interfaces/logger"
	"github.com/goliatone/go-linklist/pkg/options"
	"github.com/goliatone/go-linklist/pkg/storage"
	"github.com/uptrace/bun"
)

// DefaultFormBody is the body of the built-in plainlinks form.
const DefaultFormBody = "{{ link() }}"

// Options configure the DI container.
type Options struct {
	Config     config.Config
	Storage    storage.Providers
	Logger     logger.Logger
	Cache      cache.Cache
	Translator i18n.Translator
	// Forms are registered after the stored forms load.
	Forms []domain.Form
}

// Container wires repositories, the template engine, the links service
// and commands.
type Container struct {
	Config     config.Config
	Storage    storage.Providers
	Templates  *templates.Service
	Links      *links.Service
	Defaults   *options.TagDefaults
	Translator i18n.Translator
	Commands   *commands.Registry
	Logger     logger.Logger

	db *bun.DB
}

// New constructs the container using the supplied options.
func New(ctx context.Context, opts Options) (*Container, error) {
	// Load fills unset fields with defaults and validates.
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, err
	}

	lgr := opts.Logger
	if lgr == nil {
		lgr = &logger.Nop{}
	}

	c := opts.Cache
	if c == nil {
		c = cache.NewMemory()
	}

	translator := opts.Translator
	if translator == nil {
		translator, err = links.NewTranslator()
		if err != nil {
			return nil, fmt.Errorf("di: translator: %w", err)
		}
	}

	container := &Container{Config: cfg, Translator: translator, Logger: lgr}

	providers := opts.Storage
	if providers.Links == nil {
		providers, err = container.openStorage(ctx)
		if err != nil {
			return nil, err
		}
	}
	container.Storage = providers

	location, err := cfg.Links.Location()
	if err != nil {
		return nil, err
	}

	defaults, err := options.NewTagDefaults(links.BuiltinDefaults(), cfg.SiteDefaults())
	if err != nil {
		return nil, fmt.Errorf("di: tag defaults: %w", err)
	}
	container.Defaults = defaults

	tplSvc, err := templates.NewService(translator,
		templates.WithDefaultLocale(cfg.Localization.DefaultLocale),
		templates.WithFormSource(providers.Forms),
		templates.WithLogger(lgr),
	)
	if err != nil {
		return nil, err
	}
	container.Templates = tplSvc

	linkSvc, err := links.NewService(links.Dependencies{
		Links:      providers.Links,
		Authors:    providers.Authors,
		Categories: providers.Categories,
		Evaluator:  tplSvc,
		Defaults:   defaults,
		Cache:      c,
		CacheTTL:   cfg.Templates.CacheTTL,
		Translator: translator,
		Location:   location,
		Logger:     lgr,
	})
	if err != nil {
		return nil, err
	}
	tplSvc.BindTags(linkSvc)
	container.Links = linkSvc

	builtin := domain.Form{Name: links.DefaultForm, Type: domain.FormTypeLink, Body: DefaultFormBody}
	if err := tplSvc.RegisterForms(ctx, builtin); err != nil {
		return nil, err
	}
	if err := tplSvc.LoadForms(ctx, providers.Forms); err != nil {
		return nil, err
	}
	if err := tplSvc.RegisterForms(ctx, opts.Forms...); err != nil {
		return nil, err
	}

	cmdRegistry, err := commands.New(commands.Dependencies{
		Links:        providers.Links,
		Forms:        providers.Forms,
		Authors:      providers.Authors,
		Categories:   providers.Categories,
		Registrar:    tplSvc,
		Transactions: providers.Transaction,
		Cache:        c,
		Logger:       lgr,
	})
	if err != nil {
		return nil, err
	}
	container.Commands = cmdRegistry

	return container, nil
}

func (c *Container) openStorage(ctx context.Context) (storage.Providers, error) {
	switch c.Config.Storage.Driver {
	case config.DriverSQLite:
		db, err := storage.OpenSQLite(ctx, c.Config.Storage.DSN)
		if err != nil {
			return storage.Providers{}, err
		}
		c.db = db
		c.Logger.Debug("di: sqlite storage opened")
		return storage.NewBunProviders(db), nil
	case config.DriverMemory, "":
		return storage.NewMemoryProviders(), nil
	}
	return storage.Providers{}, fmt.Errorf("di: unsupported storage driver %q", c.Config.Storage.Driver)
}

// Close releases storage the container opened itself.
func (c *Container) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
