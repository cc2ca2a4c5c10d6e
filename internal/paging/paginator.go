package paging

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/query"
)

// PageByLimit aliases the page size to the limit attribute.
const PageByLimit = "limit"

// Counter counts records matching a predicate, ignoring any window.
type Counter interface {
	Count(ctx context.Context, predicate query.Predicate) (int, error)
}

// Params are the list attributes that drive pagination.
type Params struct {
	Limit  int
	Offset int
	// PageBy is the raw page size attribute; empty disables pagination.
	PageBy string
}

// Window is the slice of the result set to fetch.
type Window struct {
	Offset int
	Limit  int
	// Bounded is false only when no limit was requested at all.
	Bounded bool
}

// Result bundles the fetch window with the paging metadata it was derived
// from. Meta is nil when pagination is disabled.
type Result struct {
	Window Window
	Meta   *Meta
}

// Paginator computes fetch windows and publishes paging metadata.
type Paginator struct {
	counter Counter
}

// New returns a paginator counting through counter.
func New(counter Counter) *Paginator {
	return &Paginator{counter: counter}
}

// Paginate resolves the fetch window for predicate. When both a limit and a
// page size are set the grand total is counted and metadata is offered to
// slot; an earlier publication in the same request wins and its page is
// reused. A non-positive page size yields a single page that starts at the
// offset and keeps the requested limit. Without a limit the offset is
// ignored and every match is fetched.
func (p *Paginator) Paginate(ctx context.Context, params Params, predicate query.Predicate, req domain.Request, slot *Slot) (Result, error) {
	pageBy, enabled := resolvePageBy(params)
	if params.Limit == 0 {
		return Result{Window: Window{}}, nil
	}
	if !enabled {
		return Result{Window: Window{
			Offset:  params.Offset,
			Limit:   params.Limit,
			Bounded: true,
		}}, nil
	}
	if p == nil || p.counter == nil {
		return Result{}, fmt.Errorf("paging: counter is required")
	}

	grandTotal, err := p.counter.Count(ctx, predicate)
	if err != nil {
		return Result{}, fmt.Errorf("paging: count: %w", err)
	}
	total := grandTotal - params.Offset

	meta := Meta{
		Page:       req.CurrentPage(),
		NumPages:   NumPages(total, pageBy),
		GrandTotal: grandTotal,
		Total:      total,
		Section:    req.Section,
		Category:   req.Category,
		Context:    domain.ContextLink,
	}
	published := slot.SetIfAbsent(meta)

	window := Window{Offset: params.Offset, Limit: params.Limit, Bounded: true}
	if pageBy > 0 {
		window.Offset = params.Offset + (published.Page-1)*pageBy
		window.Limit = pageBy
	}
	return Result{Window: window, Meta: &published}, nil
}

// NumPages is ceil(total/pageBy) for a positive page size and 1 otherwise.
// Negative totals count as zero.
func NumPages(total, pageBy int) int {
	if pageBy <= 0 {
		return 1
	}
	if total <= 0 {
		return 0
	}
	return (total + pageBy - 1) / pageBy
}

func resolvePageBy(params Params) (int, bool) {
	raw := strings.TrimSpace(params.PageBy)
	if raw == "" {
		return 0, false
	}
	if strings.EqualFold(raw, PageByLimit) {
		return params.Limit, params.Limit != 0
	}
	return query.Int(raw), true
}
