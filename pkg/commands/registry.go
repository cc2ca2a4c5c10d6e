package commands

import (
	command "github.com/goliatone/go-command"
	internalcommands "github.com/goliatone/go-linklist/internal/commands"
	"github.com/goliatone/go-linklist/pkg/interfaces/cache"
	"github.com/goliatone/go-linklist/pkg/interfaces/logger"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
)

// Re-export request types so consumers need not import internal packages.
type (
	SaveLink      = internalcommands.SaveLink
	SaveForm      = internalcommands.SaveForm
	SaveAuthor    = internalcommands.SaveAuthor
	SaveCategory  = internalcommands.SaveCategory
	FormRegistrar = internalcommands.FormRegistrar
)

// Registry exposes go-command compatible handlers backed by the module services.
type Registry struct {
	Catalog      *internalcommands.Catalog
	SaveLink     command.Commander[SaveLink]
	SaveForm     command.Commander[SaveForm]
	SaveAuthor   command.Commander[SaveAuthor]
	SaveCategory command.Commander[SaveCategory]
}

// Dependencies mirror the internal command dependencies but keep them public.
type Dependencies struct {
	Links        store.LinkRepository
	Forms        store.FormRepository
	Authors      store.AuthorDirectory
	Categories   store.CategoryDirectory
	Registrar    FormRegistrar
	Transactions store.TransactionManager
	Cache        cache.Cache
	Logger       logger.Logger
}

// New builds the registry using the provided dependencies.
func New(deps Dependencies) (*Registry, error) {
	catalog, err := internalcommands.NewCatalog(internalcommands.Dependencies{
		Links:        deps.Links,
		Forms:        deps.Forms,
		Authors:      deps.Authors,
		Categories:   deps.Categories,
		Registrar:    deps.Registrar,
		Transactions: deps.Transactions,
		Cache:        deps.Cache,
		Logger:       deps.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Registry{
		Catalog:      catalog,
		SaveLink:     catalog.SaveLink,
		SaveForm:     catalog.SaveForm,
		SaveAuthor:   catalog.SaveAuthor,
		SaveCategory: catalog.SaveCategory,
	}, nil
}

// Commanders returns every handler so callers can register them with go-command registries.
func (r *Registry) Commanders() []any {
	if r == nil {
		return nil
	}
	return []any{
		r.SaveLink,
		r.SaveForm,
		r.SaveAuthor,
		r.SaveCategory,
	}
}
