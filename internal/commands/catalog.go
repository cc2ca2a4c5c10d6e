package commands

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-linklist/internal/links"
	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/cache"
	"github.com/goliatone/go-linklist/pkg/interfaces/logger"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
)

// Catalog exposes go-command compatible handlers for host transports.
type Catalog struct {
	SaveLink     command.Commander[SaveLink]
	SaveForm     command.Commander[SaveForm]
	SaveAuthor   command.Commander[SaveAuthor]
	SaveCategory command.Commander[SaveCategory]
}

// FormRegistrar receives forms after they are persisted so renders pick
// them up without a reload.
type FormRegistrar interface {
	RegisterForms(ctx context.Context, forms ...domain.Form) error
}

// Dependencies wires repositories and services into the command catalog.
// Each save runs its read and write inside Transactions when set.
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

// NewCatalog builds the command catalog using the supplied dependencies.
func NewCatalog(deps Dependencies) (*Catalog, error) {
	if deps.Links == nil {
		return nil, errors.New("commands: link repository is required")
	}
	if deps.Forms == nil {
		return nil, errors.New("commands: form repository is required")
	}
	if deps.Authors == nil {
		return nil, errors.New("commands: author directory is required")
	}
	if deps.Categories == nil {
		return nil, errors.New("commands: category directory is required")
	}
	if deps.Transactions == nil {
		deps.Transactions = &store.NopTransactionManager{}
	}
	if deps.Cache == nil {
		deps.Cache = &cache.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}

	return &Catalog{
		SaveLink:     linkSaveCommand{repo: deps.Links, tx: deps.Transactions, logger: deps.Logger},
		SaveForm:     formSaveCommand{repo: deps.Forms, tx: deps.Transactions, registrar: deps.Registrar, logger: deps.Logger},
		SaveAuthor:   authorSaveCommand{repo: deps.Authors, tx: deps.Transactions, cache: deps.Cache},
		SaveCategory: categorySaveCommand{repo: deps.Categories, tx: deps.Transactions, cache: deps.Cache},
	}, nil
}

// SaveLink represents the payload for creating or updating a link.
type SaveLink struct {
	Name        string    `json:"linkname"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Author      string    `json:"author"`
	SortKey     string    `json:"linksort"`
	Date        time.Time `json:"date"`
	AllowUpdate bool      `json:"allow_update"`
}

type linkSaveCommand struct {
	repo   store.LinkRepository
	tx     store.TransactionManager
	logger logger.Logger
}

func (c linkSaveCommand) Execute(ctx context.Context, msg SaveLink) error {
	msg.Name = strings.TrimSpace(msg.Name)
	if msg.Name == "" {
		return errors.New("commands: link name is required")
	}
	if err := validateURL(msg.URL); err != nil {
		return err
	}
	if msg.SortKey == "" {
		msg.SortKey = msg.Name
	}
	return c.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return c.save(ctx, msg)
	})
}

func (c linkSaveCommand) save(ctx context.Context, msg SaveLink) error {
	existing, err := c.repo.GetByName(ctx, msg.Name)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if err == nil {
		if !msg.AllowUpdate {
			return errors.New("commands: link already exists")
		}
		existing.URL = msg.URL
		existing.Description = msg.Description
		existing.Category = msg.Category
		existing.Author = msg.Author
		existing.SortKey = msg.SortKey
		if !msg.Date.IsZero() {
			existing.Date = msg.Date.UTC()
		}
		c.logger.Debug("commands: updating link", logger.F("linkname", msg.Name), logger.F("id", existing.ID))
		return c.repo.Update(ctx, existing)
	}

	link := &domain.Link{
		Name:        msg.Name,
		URL:         msg.URL,
		Description: msg.Description,
		Category:    msg.Category,
		Author:      msg.Author,
		SortKey:     msg.SortKey,
		Date:        msg.Date.UTC(),
	}
	if link.Date.IsZero() {
		link.Date = time.Now().UTC()
	}
	return c.repo.Create(ctx, link)
}

func validateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errors.New("commands: link url is required")
	}
	if _, err := url.Parse(raw); err != nil {
		return fmt.Errorf("commands: invalid link url: %w", err)
	}
	return nil
}

// SaveForm stores a named form and makes it available to renders.
type SaveForm struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Body        string `json:"body"`
	AllowUpdate bool   `json:"allow_update"`
}

type formSaveCommand struct {
	repo      store.FormRepository
	tx        store.TransactionManager
	registrar FormRegistrar
	logger    logger.Logger
}

func (c formSaveCommand) Execute(ctx context.Context, msg SaveForm) error {
	msg.Name = strings.TrimSpace(msg.Name)
	if msg.Name == "" {
		return errors.New("commands: form name is required")
	}
	if msg.Type == "" {
		msg.Type = domain.FormTypeLink
	}

	var form *domain.Form
	err := c.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		form, err = c.save(ctx, msg)
		return err
	})
	if err != nil {
		return err
	}

	if c.registrar == nil {
		return nil
	}
	if err := c.registrar.RegisterForms(ctx, *form); err != nil {
		c.logger.Warn("commands: form saved but not registered", logger.F("form", form.Name), logger.F("error", err))
		return err
	}
	return nil
}

func (c formSaveCommand) save(ctx context.Context, msg SaveForm) (*domain.Form, error) {
	form, err := c.repo.GetByName(ctx, msg.Name)
	switch {
	case err == nil:
		if !msg.AllowUpdate {
			return nil, errors.New("commands: form already exists")
		}
		form.Type = msg.Type
		form.Body = msg.Body
		form.Revision++
		return form, c.repo.Update(ctx, form)
	case errors.Is(err, store.ErrNotFound):
		form = &domain.Form{Name: msg.Name, Type: msg.Type, Body: msg.Body, Revision: 1}
		return form, c.repo.Create(ctx, form)
	}
	return nil, err
}

// SaveAuthor creates an author, or updates it when ID is set.
type SaveAuthor struct {
	ID       int64  `json:"id"`
	Login    string `json:"name"`
	RealName string `json:"real_name"`
}

type authorSaveCommand struct {
	repo  store.AuthorDirectory
	tx    store.TransactionManager
	cache cache.Cache
}

func (c authorSaveCommand) Execute(ctx context.Context, msg SaveAuthor) error {
	msg.Login = strings.TrimSpace(msg.Login)
	if msg.Login == "" {
		return errors.New("commands: author login is required")
	}
	author := &domain.Author{Login: msg.Login, RealName: strings.TrimSpace(msg.RealName)}
	previous := ""
	err := c.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if msg.ID == 0 {
			return c.repo.Create(ctx, author)
		}
		current, err := c.repo.GetByID(ctx, msg.ID)
		if err != nil {
			return err
		}
		previous = current.Login
		current.Login = author.Login
		current.RealName = author.RealName
		author = current
		return c.repo.Update(ctx, author)
	})
	if err != nil {
		return err
	}
	if previous != "" && previous != author.Login {
		_ = c.cache.Delete(ctx, links.AuthorCacheKey(previous))
	}
	return c.cache.Delete(ctx, links.AuthorCacheKey(author.Login))
}

// SaveCategory creates a link category, or updates it when ID is set.
type SaveCategory struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

type categorySaveCommand struct {
	repo  store.CategoryDirectory
	tx    store.TransactionManager
	cache cache.Cache
}

func (c categorySaveCommand) Execute(ctx context.Context, msg SaveCategory) error {
	msg.Name = strings.TrimSpace(msg.Name)
	if msg.Name == "" {
		return errors.New("commands: category name is required")
	}
	category := &domain.Category{Name: msg.Name, Type: domain.ContextLink, Title: strings.TrimSpace(msg.Title)}
	previous := ""
	err := c.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if msg.ID == 0 {
			return c.repo.Create(ctx, category)
		}
		current, err := c.repo.GetByID(ctx, msg.ID)
		if err != nil {
			return err
		}
		previous = current.Name
		current.Name = category.Name
		current.Type = category.Type
		current.Title = category.Title
		category = current
		return c.repo.Update(ctx, category)
	})
	if err != nil {
		return err
	}
	if previous != "" && previous != category.Name {
		_ = c.cache.Delete(ctx, links.CategoryCacheKey(previous))
	}
	return c.cache.Delete(ctx, links.CategoryCacheKey(category.Name))
}
