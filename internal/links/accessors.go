package links

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-linklist/internal/markup"
	"github.com/goliatone/go-linklist/internal/render"
	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/logger"
	"github.com/jaytaylor/html2text"
	"github.com/microcosm-cc/bluemonday"
)

// Description escape modes.
const (
	EscapeHTML = "html"
	EscapeRaw  = ""
	EscapeText = "text"
	EscapeSafe = "safe"
)

var ugcPolicy = bluemonday.UGCPolicy()

func (s *Service) current(scope *render.Scope, tag string) (render.Frame, bool) {
	frame, ok := scope.Current()
	if !ok {
		s.scoped(scope, tag).Warn(s.message(scope, MessageMissingLinkContext), logger.F("error", ErrNoCurrentLink))
	}
	return frame, ok
}

// Name renders the current link name, escaped unless escape is not "html".
func (s *Service) Name(_ context.Context, scope *render.Scope, attrs Attributes) string {
	frame, ok := s.current(scope, TagLinkName)
	if !ok {
		return ""
	}
	attrs = s.withDefaults(TagLinkName, attrs)
	if attrs.String("escape") == EscapeHTML {
		return markup.Escape(frame.Link.Name)
	}
	return frame.Link.Name
}

// URL renders the escaped URL of the current link.
func (s *Service) URL(_ context.Context, scope *render.Scope, _ Attributes) string {
	frame, ok := s.current(scope, TagLinkURL)
	if !ok {
		return ""
	}
	return markup.Escape(frame.Link.URL)
}

// ID renders the numeric identifier of the current link.
func (s *Service) ID(_ context.Context, scope *render.Scope, _ Attributes) string {
	frame, ok := s.current(scope, TagLinkID)
	if !ok || frame.Link.ID == 0 {
		return ""
	}
	return strconv.FormatInt(frame.Link.ID, 10)
}

// Date renders the link date. format is a Go layout or one of unix,
// rfc3339 and iso8601; gmt forces UTC.
func (s *Service) Date(_ context.Context, scope *render.Scope, attrs Attributes) string {
	frame, ok := s.current(scope, TagLinkDate)
	if !ok || frame.Link.Date.IsZero() {
		return ""
	}
	attrs = s.withDefaults(TagLinkDate, attrs)
	when := frame.Link.Date.In(s.location)
	if attrs.Bool("gmt") {
		when = when.UTC()
	}
	return markup.Escape(formatDate(when, attrs.Raw("format")))
}

func formatDate(when time.Time, format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "":
		return when.Format(time.DateOnly)
	case "unix":
		return strconv.FormatInt(when.Unix(), 10)
	case "rfc3339", "iso8601":
		return when.Format(time.RFC3339)
	}
	return when.Format(format)
}

// Description renders the current link description with optional label
// and wrapper.
func (s *Service) Description(_ context.Context, scope *render.Scope, attrs Attributes) string {
	frame, ok := s.current(scope, TagLinkDescription)
	if !ok || frame.Link.Description == "" {
		return ""
	}
	attrs = s.withDefaults(TagLinkDescription, attrs)
	description := s.escapeDescription(scope, frame.Link.Description, attrs.String("escape"))
	if description == "" {
		return ""
	}
	return markup.Label(attrs.Raw("label"), attrs.String("labeltag")) +
		markup.WrapTag(description, attrs.String("wraptag"), attrs.String("class"))
}

func (s *Service) escapeDescription(scope *render.Scope, value, mode string) string {
	switch strings.ToLower(mode) {
	case EscapeRaw:
		return value
	case EscapeText:
		text, err := html2text.FromString(value, html2text.Options{OmitLinks: true})
		if err != nil {
			s.scoped(scope, TagLinkDescription).Warn("links: description to text failed", logger.F("error", err))
			return markup.Escape(value)
		}
		return markup.Escape(text)
	case EscapeSafe:
		return ugcPolicy.Sanitize(value)
	}
	return markup.Escape(value)
}

// Category renders the category of the current link, or its title when
// title is set.
func (s *Service) Category(ctx context.Context, scope *render.Scope, attrs Attributes) string {
	frame, ok := s.current(scope, TagLinkCategory)
	if !ok || frame.Link.Category == "" {
		return ""
	}
	attrs = s.withDefaults(TagLinkCategory, attrs)
	category := frame.Link.Category
	if attrs.Bool("title") {
		category = s.categoryTitle(ctx, scope, category)
	}
	return markup.Label(attrs.Raw("label"), attrs.String("labeltag")) +
		markup.WrapTag(markup.Escape(category), attrs.String("wraptag"), attrs.String("class"))
}

// Author renders the author of the current link, by real name unless
// title is off.
func (s *Service) Author(ctx context.Context, scope *render.Scope, attrs Attributes) string {
	frame, ok := s.current(scope, TagLinkAuthor)
	if !ok || frame.Link.Author == "" {
		return ""
	}
	attrs = s.withDefaults(TagLinkAuthor, attrs)
	name := frame.Link.Author
	if attrs.Bool("title") {
		name = s.authorName(ctx, scope, name)
	}
	return markup.WrapTag(markup.Escape(name), attrs.String("wraptag"), attrs.String("class"))
}

// DescTitle renders the current link as an anchor titled with its
// description.
func (s *Service) DescTitle(_ context.Context, scope *render.Scope, attrs Attributes) string {
	frame, ok := s.current(scope, TagLinkDescTitle)
	if !ok {
		return ""
	}
	attrs = s.withDefaults(TagLinkDescTitle, attrs)
	return markup.Anchor(frame.Link.Name, frame.Link.URL, attrs.Raw("rel"), frame.Link.Description)
}

// IsFirst reports whether the current link is the first fetched record.
func (s *Service) IsFirst(scope *render.Scope) bool {
	frame, ok := s.current(scope, TagIfFirstLink)
	return ok && frame.IsFirst
}

// IsLast reports whether the current link is the last fetched record.
func (s *Service) IsLast(scope *render.Scope) bool {
	frame, ok := s.current(scope, TagIfLastLink)
	return ok && frame.IsLast
}

func (s *Service) categoryTitle(ctx context.Context, scope *render.Scope, name string) string {
	if s.categories == nil {
		return name
	}
	return s.lookup(ctx, scope, CategoryCacheKey(name), name, func() (string, error) {
		return s.categories.Title(ctx, name, domain.ContextLink)
	})
}

func (s *Service) authorName(ctx context.Context, scope *render.Scope, login string) string {
	if s.authors == nil {
		return login
	}
	return s.lookup(ctx, scope, AuthorCacheKey(login), login, func() (string, error) {
		return s.authors.RealName(ctx, login)
	})
}

// AuthorCacheKey is the cache key of an author display name.
func AuthorCacheKey(login string) string {
	return "author:" + login
}

// CategoryCacheKey is the cache key of a link category title.
func CategoryCacheKey(name string) string {
	return "category:" + domain.ContextLink + ":" + name
}

// lookup memoizes directory reads; misses and errors fall back to the raw
// value without being cached.
func (s *Service) lookup(ctx context.Context, scope *render.Scope, key, fallback string, load func() (string, error)) string {
	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		if value, ok := cached.(string); ok {
			return value
		}
	}
	value, err := load()
	if err != nil {
		s.scoped(scope, "lookup").Debug("links: directory lookup failed", logger.F("key", key), logger.F("error", err))
		return fallback
	}
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.scoped(scope, "lookup").Debug("links: cache write failed", logger.F("key", key), logger.F("error", err))
	}
	return value
}
