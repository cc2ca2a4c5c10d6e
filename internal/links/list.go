package links

import (
	"context"
	"fmt"

	"github.com/goliatone/go-linklist/internal/filter"
	"github.com/goliatone/go-linklist/internal/markup"
	"github.com/goliatone/go-linklist/internal/paging"
	"github.com/goliatone/go-linklist/internal/render"
	"github.com/goliatone/go-linklist/pkg/interfaces/logger"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
	"github.com/goliatone/go-linklist/pkg/query"
)

// List selects links and renders each one through the inline fragment
// (the thing attribute) or the named form. Failures are logged and render
// as empty output.
func (s *Service) List(ctx context.Context, scope *render.Scope, attrs Attributes) string {
	lgr := s.scoped(scope, TagLinklist)
	attrs = s.withDefaults(TagLinklist, attrs)

	predicate := s.filter.Resolve(ctx, criteriaFrom(attrs), scope.Request())
	if predicate.IsEmptyResult() {
		lgr.Debug("links: explicit filter matched nothing")
		return ""
	}

	page, err := s.paginator.Paginate(ctx, paging.Params{
		Limit:  attrs.Int("limit"),
		Offset: attrs.Int("offset"),
		PageBy: attrs.String("pageby"),
	}, predicate, scope.Request(), scope.Paging())
	if err != nil {
		lgr.Error("links: paginate failed", logger.F("where", predicate.SQL()), logger.F("error", err))
		return ""
	}

	records, err := s.links.Find(ctx, store.LinkQuery{
		Predicate: predicate,
		Sort:      query.ParseSort(attrs.String("sort")),
		Offset:    page.Window.Offset,
		Limit:     page.Window.Limit,
		Bounded:   page.Window.Bounded,
	})
	if err != nil {
		lgr.Error("links: query failed", logger.F("where", predicate.SQL()), logger.F("error", err))
		return ""
	}
	if len(records) == 0 {
		return ""
	}

	thing := attrs.Raw(AttrThing)
	form := attrs.String("form")
	out := make([]string, 0, len(records))
	for i, record := range records {
		frame := render.Frame{
			Link:    record,
			IsFirst: i == 0,
			IsLast:  i == len(records)-1,
		}
		fragment, err := s.renderRecord(ctx, scope, frame, thing, form)
		if err != nil {
			lgr.Error("links: render failed", logger.F("id", record.ID), logger.F("form", form), logger.F("error", err))
			continue
		}
		if fragment != "" {
			out = append(out, fragment)
		}
	}
	if len(out) == 0 {
		return ""
	}
	return markup.Label(attrs.Raw("label"), attrs.String("labeltag")) +
		markup.Wrap(out, attrs.String("wraptag"), attrs.Raw("break"), attrs.String("class"))
}

func (s *Service) renderRecord(ctx context.Context, scope *render.Scope, frame render.Frame, thing, form string) (string, error) {
	if s.evaluator == nil {
		return "", fmt.Errorf("links: evaluator is not configured")
	}
	pop := scope.Push(frame)
	defer pop()
	if thing != "" {
		return s.evaluator.Evaluate(ctx, scope, thing)
	}
	return s.evaluator.EvaluateForm(ctx, scope, form)
}

func criteriaFrom(attrs Attributes) filter.Criteria {
	return filter.Criteria{
		Category:   attrs.Optional("category"),
		ID:         attrs.Optional("id"),
		Author:     attrs.Optional("author"),
		RealName:   attrs.Optional("realname"),
		AutoDetect: attrs.Optional("auto_detect"),
	}
}
