package linklist

import (
	"context"
	"errors"

	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-linklist/internal/di"
	"github.com/goliatone/go-linklist/internal/links"
	"github.com/goliatone/go-linklist/internal/render"
	"github.com/goliatone/go-linklist/pkg/commands"
	"github.com/goliatone/go-linklist/pkg/config"
	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/cache"
	"github.com/goliatone/go-linklist/pkg/interfaces/logger"
	"github.com/goliatone/go-linklist/pkg/storage"
	"github.com/goliatone/go-linklist/pkg/templates"
)

// Scope is one render pass. Create one per request with NewScope and do
// not share it between goroutines.
type Scope = render.Scope

// Attributes are the attributes of a single tag invocation.
type Attributes = links.Attributes

// ErrNilModule is returned by Render on a nil module.
var ErrNilModule = errors.New("linklist: module is not initialised")

// ModuleOptions configure the linklist module facade.
type ModuleOptions struct {
	Config     config.Config
	Storage    storage.Providers
	Logger     logger.Logger
	Cache      cache.Cache
	Translator i18n.Translator
	Forms      []domain.Form
}

// Module bundles the container and exposes high-level accessors.
type Module struct {
	container *di.Container
}

// NewModule assembles repositories, the template engine, the links service
// and commands.
func NewModule(ctx context.Context, opts ModuleOptions) (*Module, error) {
	container, err := di.New(ctx, di.Options{
		Config:     opts.Config,
		Storage:    opts.Storage,
		Logger:     opts.Logger,
		Cache:      opts.Cache,
		Translator: opts.Translator,
		Forms:      opts.Forms,
	})
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// NewScope starts a render pass for req.
func (m *Module) NewScope(req domain.Request) *Scope {
	return render.NewScope(req)
}

// Render evaluates a template fragment. Link tags inside it are available
// as functions, e.g. {{ linklist("category", "tools") }}.
func (m *Module) Render(ctx context.Context, scope *Scope, fragment string) (string, error) {
	if m == nil || m.container == nil {
		return "", ErrNilModule
	}
	return m.container.Templates.Evaluate(ctx, scope, fragment)
}

// List renders a link list directly.
func (m *Module) List(ctx context.Context, scope *Scope, attrs Attributes) string {
	if m == nil || m.container == nil {
		return ""
	}
	return m.container.Links.List(ctx, scope, attrs)
}

// Link renders a single link anchor.
func (m *Module) Link(ctx context.Context, scope *Scope, attrs Attributes) string {
	if m == nil || m.container == nil {
		return ""
	}
	return m.container.Links.Link(ctx, scope, attrs)
}

// Templates returns the template service, e.g. to register helpers.
func (m *Module) Templates() *templates.Service {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Templates
}

// Commands returns the go-command registry.
func (m *Module) Commands() *commands.Registry {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Commands
}

// Config returns the effective module configuration.
func (m *Module) Config() config.Config {
	if m == nil || m.container == nil {
		return config.Config{}
	}
	return m.container.Config
}

// Container returns the internal DI container.
// This is exposed for advanced use cases like direct storage access.
func (m *Module) Container() *di.Container {
	if m == nil {
		return nil
	}
	return m.container
}

// Close releases storage opened by the module.
func (m *Module) Close() error {
	if m == nil {
		return nil
	}
	return m.container.Close()
}

// Translations returns the built-in English catalog of warning messages.
func Translations() i18n.Translations {
	return links.Translations()
}
