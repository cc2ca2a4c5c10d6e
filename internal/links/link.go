package links

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-linklist/internal/markup"
	"github.com/goliatone/go-linklist/internal/render"
	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/logger"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
)

// Link renders a single link as an anchor. An explicit id wins over an
// explicit name; without either the current record is used. A miss is
// logged as a warning and renders nothing.
func (s *Service) Link(ctx context.Context, scope *render.Scope, attrs Attributes) string {
	attrs = s.withDefaults(TagLink, attrs)
	record, err := s.Resolve(ctx, scope, attrs)
	if err != nil {
		lgr := s.scoped(scope, TagLink)
		fields := []logger.Field{
			logger.F("id", attrs.String("id")),
			logger.F("name", attrs.Raw("name")),
			logger.F("error", err),
		}
		if errors.Is(err, ErrRecordNotFound) {
			lgr.Warn(s.message(scope, MessageUnknownLink), fields...)
		} else {
			lgr.Error("links: lookup failed", fields...)
		}
		return ""
	}
	return markup.Anchor(record.Name, record.URL, attrs.Raw("rel"), "")
}

// explicitID reports whether id selects a record. "0" reads as unset.
func explicitID(id string) bool {
	return id != "" && id != "0"
}

// Resolve finds the record a single link tag refers to. Only the name and
// URL are populated when the current record is used.
func (s *Service) Resolve(ctx context.Context, scope *render.Scope, attrs Attributes) (domain.Link, error) {
	var (
		record *domain.Link
		err    error
	)
	switch {
	case explicitID(attrs.Raw("id")):
		record, err = s.links.GetByID(ctx, int64(attrs.Int("id")))
	case attrs.Raw("name") != "":
		record, err = s.links.GetByName(ctx, attrs.Raw("name"))
	default:
		frame, ok := scope.Current()
		if !ok {
			return domain.Link{}, ErrRecordNotFound
		}
		return frame.Link.Projection(), nil
	}
	if errors.Is(err, store.ErrNotFound) || (err == nil && record == nil) {
		return domain.Link{}, ErrRecordNotFound
	}
	if err != nil {
		return domain.Link{}, fmt.Errorf("links: resolve: %w", err)
	}
	return record.Projection(), nil
}
