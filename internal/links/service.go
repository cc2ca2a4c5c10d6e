package links

import (
	"context"
	"strings"
	"time"

	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-linklist/internal/filter"
	"github.com/goliatone/go-linklist/internal/paging"
	"github.com/goliatone/go-linklist/internal/render"
	"github.com/goliatone/go-linklist/pkg/interfaces/cache"
	"github.com/goliatone/go-linklist/pkg/interfaces/logger"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
)

// Tag names handled by the service.
const (
	TagLinklist        = "linklist"
	TagLink            = "link"
	TagLinkName        = "link_name"
	TagLinkURL         = "link_url"
	TagLinkID          = "link_id"
	TagLinkDate        = "link_date"
	TagLinkDescription = "link_description"
	TagLinkCategory    = "link_category"
	TagLinkAuthor      = "link_author"
	TagLinkDescTitle   = "linkdesctitle"
	TagIfFirstLink     = "if_first_link"
	TagIfLastLink      = "if_last_link"
)

// DefaultForm is the named form used when a list has no inline fragment.
const DefaultForm = "plainlinks"

// Evaluator renders template text against the current scope. Evaluation may
// call back into the service.
type Evaluator interface {
	Evaluate(ctx context.Context, scope *render.Scope, fragment string) (string, error)
	EvaluateForm(ctx context.Context, scope *render.Scope, form string) (string, error)
}

// Defaults supplies attribute defaults per tag.
type Defaults interface {
	For(tag string) map[string]string
}

// Dependencies wires repositories, the evaluator and ambient services.
type Dependencies struct {
	Links      store.LinkRepository
	Authors    store.AuthorDirectory
	Categories store.CategoryDirectory
	Evaluator  Evaluator
	Defaults   Defaults
	Cache      cache.Cache
	CacheTTL   time.Duration
	Translator i18n.Translator
	Location   *time.Location
	Logger     logger.Logger
}

// Service renders link lists, single links and record accessors.
type Service struct {
	links      store.LinkRepository
	authors    store.AuthorDirectory
	categories store.CategoryDirectory
	evaluator  Evaluator
	defaults   Defaults
	cache      cache.Cache
	cacheTTL   time.Duration
	translator i18n.Translator
	location   *time.Location
	logger     logger.Logger
	filter     *filter.Resolver
	paginator  *paging.Paginator
}

// NewService constructs the link service.
func NewService(deps Dependencies) (*Service, error) {
	if deps.Links == nil {
		return nil, ErrRepositoryRequired
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	if deps.Cache == nil {
		deps.Cache = &cache.Nop{}
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Defaults == nil {
		deps.Defaults = builtinDefaults{}
	}
	var authors filter.AuthorLookup
	if deps.Authors != nil {
		authors = deps.Authors
	}
	return &Service{
		links:      deps.Links,
		authors:    deps.Authors,
		categories: deps.Categories,
		evaluator:  deps.Evaluator,
		defaults:   deps.Defaults,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		translator: deps.Translator,
		location:   deps.Location,
		logger:     deps.Logger,
		filter:     filter.NewResolver(authors, deps.Logger),
		paginator:  paging.New(deps.Links),
	}, nil
}

// TagFunc renders one tag for scope.
type TagFunc func(ctx context.Context, scope *render.Scope, attrs Attributes) string

// Tags returns the string producing tags keyed by name.
func (s *Service) Tags() map[string]TagFunc {
	return map[string]TagFunc{
		TagLinklist:        s.List,
		TagLink:            s.Link,
		TagLinkName:        s.Name,
		TagLinkURL:         s.URL,
		TagLinkID:          s.ID,
		TagLinkDate:        s.Date,
		TagLinkDescription: s.Description,
		TagLinkCategory:    s.Category,
		TagLinkAuthor:      s.Author,
		TagLinkDescTitle:   s.DescTitle,
	}
}

// Conditions returns the boolean tags keyed by name.
func (s *Service) Conditions() map[string]func(scope *render.Scope) bool {
	return map[string]func(scope *render.Scope) bool{
		TagIfFirstLink: s.IsFirst,
		TagIfLastLink:  s.IsLast,
	}
}

// selectionKeys never take defaults; supplying them changes which records
// a tag selects.
var selectionKeys = map[string][]string{
	TagLinklist: {"category", "id", "author", "realname", AttrThing},
	TagLink:     {"id", "name"},
}

func (s *Service) withDefaults(tag string, attrs Attributes) Attributes {
	defaults := s.defaults.For(tag)
	if keys := selectionKeys[tag]; len(keys) > 0 && len(defaults) > 0 {
		trimmed := make(map[string]string, len(defaults))
		for key, value := range defaults {
			trimmed[key] = value
		}
		for _, key := range keys {
			delete(trimmed, key)
		}
		defaults = trimmed
	}
	return attrs.WithDefaults(defaults)
}

func (s *Service) scoped(scope *render.Scope, tag string) logger.Logger {
	return s.logger.With(logger.F("scope", scope.ID()), logger.F("tag", tag))
}

func (s *Service) message(scope *render.Scope, key string) string {
	if s.translator != nil {
		if msg, err := s.translator.Translate(scope.Request().Locale, key); err == nil && strings.TrimSpace(msg) != "" && msg != key {
			return msg
		}
	}
	if msg, ok := fallbackMessages[key]; ok {
		return msg
	}
	return key
}

type builtinDefaults struct{}

func (builtinDefaults) For(tag string) map[string]string {
	return BuiltinDefaults()[tag]
}

// BuiltinDefaults returns the attribute defaults of every tag. Filter
// attributes are absent on purpose: supplying them changes selection.
func BuiltinDefaults() map[string]map[string]string {
	return map[string]map[string]string{
		TagLinklist: {
			"auto_detect": filter.DefaultAutoDetect,
			"break":       "",
			"class":       TagLinklist,
			"form":        DefaultForm,
			"label":       "",
			"labeltag":    "",
			"limit":       "0",
			"offset":      "0",
			"pageby":      "",
			"sort":        "linksort asc",
			"wraptag":     "",
		},
		TagLink: {
			"rel": "",
		},
		TagLinkName: {
			"escape": "html",
		},
		TagLinkDate: {
			"format": "2006-01-02",
			"gmt":    "",
		},
		TagLinkDescription: {
			"class":    "",
			"escape":   "html",
			"label":    "",
			"labeltag": "",
			"wraptag":  "",
		},
		TagLinkCategory: {
			"class":    "",
			"label":    "",
			"labeltag": "",
			"title":    "0",
			"wraptag":  "",
		},
		TagLinkAuthor: {
			"class":   "",
			"title":   "1",
			"wraptag": "",
		},
		TagLinkDescTitle: {
			"rel": "",
		},
	}
}
