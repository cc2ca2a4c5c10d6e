package filter

import (
	"context"
	"net/url"

	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/logger"
	"github.com/goliatone/go-linklist/pkg/query"
)

// DefaultAutoDetect is the ambient context order tried when no filter is given.
const DefaultAutoDetect = "category, author"

// Auto-detect kinds.
const (
	KindCategory = "category"
	KindAuthor   = "author"
)

// Criteria are the filter attributes of a list tag. Presence matters: a
// criterion supplied as an empty value still makes the filter explicit.
type Criteria struct {
	Category   query.Optional
	ID         query.Optional
	Author     query.Optional
	RealName   query.Optional
	AutoDetect query.Optional
}

// Explicit reports whether any selection criterion was supplied.
func (c Criteria) Explicit() bool {
	return c.Category.IsSet() || c.ID.IsSet() || c.Author.IsSet() || c.RealName.IsSet()
}

// AuthorLookup resolves author display names to logins.
type AuthorLookup interface {
	LoginsByRealName(ctx context.Context, names []string) ([]string, error)
}

// Resolver turns criteria and ambient context into a predicate.
type Resolver struct {
	authors AuthorLookup
	logger  logger.Logger
}

// NewResolver builds a resolver; authors may be nil when display name
// filtering is not needed.
func NewResolver(authors AuthorLookup, lgr logger.Logger) *Resolver {
	if lgr == nil {
		lgr = &logger.Nop{}
	}
	return &Resolver{authors: authors, logger: lgr}
}

// Resolve applies explicit criteria first, then at most one ambient clause,
// and finally the universal predicate. An explicit filter that produces no
// clause resolves to query.EmptyResult.
func (r *Resolver) Resolve(ctx context.Context, c Criteria, req domain.Request) query.Predicate {
	explicit := c.Explicit()
	pred := query.Universal()
	added := 0

	add := func(field query.Field, values ...string) {
		clause, ok, err := query.In(field, values...)
		if err != nil {
			r.logger.Error("filter: invalid clause", logger.F("field", string(field)), logger.F("error", err))
			return
		}
		if ok {
			pred = pred.And(clause)
			added++
		}
	}

	if c.Category.HasValue() {
		add(query.FieldCategory, query.SplitList(c.Category.Value())...)
	}
	if c.ID.HasValue() {
		add(query.FieldID, query.SplitList(c.ID.Value())...)
	}
	if c.Author.HasValue() {
		add(query.FieldAuthor, query.SplitList(c.Author.Value())...)
	}
	if c.RealName.HasValue() {
		add(query.FieldAuthor, r.loginsFor(ctx, c.RealName.Value())...)
	}

	if added == 0 && !explicit {
		for _, kind := range query.SplitList(c.AutoDetect.Or(DefaultAutoDetect)) {
			if value, ok := ambientValue(kind, req); ok {
				add(fieldFor(kind), value)
			}
			if added > 0 {
				break
			}
		}
	}

	if added == 0 && explicit {
		return query.EmptyResult()
	}
	return pred
}

func (r *Resolver) loginsFor(ctx context.Context, raw string) []string {
	names := query.SplitList(raw)
	decoded := make([]string, 0, len(names))
	for _, name := range names {
		if unescaped, err := url.QueryUnescape(name); err == nil {
			name = unescaped
		}
		decoded = append(decoded, name)
	}
	decoded = query.Unique(decoded)
	if len(decoded) == 0 {
		return nil
	}
	if r.authors == nil {
		r.logger.Warn("filter: author lookup unavailable", logger.F("realname", raw))
		return nil
	}
	logins, err := r.authors.LoginsByRealName(ctx, decoded)
	if err != nil {
		r.logger.Warn("filter: author lookup failed", logger.F("realname", raw), logger.F("error", err))
		return nil
	}
	return logins
}

func ambientValue(kind string, req domain.Request) (string, bool) {
	if !req.ScopedToLinks() {
		return "", false
	}
	switch kind {
	case KindCategory:
		return req.Category, req.Category != ""
	case KindAuthor:
		return req.Author, req.Author != ""
	}
	return "", false
}

func fieldFor(kind string) query.Field {
	if kind == KindAuthor {
		return query.FieldAuthor
	}
	return query.FieldCategory
}
