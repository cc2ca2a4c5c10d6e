package paging

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/query"
	"github.com/google/go-cmp/cmp"
)

type fixedCounter struct {
	total int
	calls int
	err   error
}

func (c *fixedCounter) Count(context.Context, query.Predicate) (int, error) {
	c.calls++
	return c.total, c.err
}

func TestPaginateTenRecordsPageTwo(t *testing.T) {
	counter := &fixedCounter{total: 10}
	slot := NewSlot()
	req := domain.Request{Page: 2, Section: "links", Category: "tools"}

	res, err := New(counter).Paginate(context.Background(), Params{Limit: 3, PageBy: "3"}, query.Universal(), req, slot)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if diff := cmp.Diff(Window{Offset: 3, Limit: 3, Bounded: true}, res.Window); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
	want := Meta{Page: 2, NumPages: 4, GrandTotal: 10, Total: 10, Section: "links", Category: "tools", Context: domain.ContextLink}
	if diff := cmp.Diff(&want, res.Meta); diff != "" {
		t.Fatalf("meta mismatch (-want +got):\n%s", diff)
	}
	if got, ok := slot.Get(); !ok || got != want {
		t.Fatalf("expected meta to be published, got %+v ok=%v", got, ok)
	}
}

func TestPaginateDisabledWithoutLimitOrPageBy(t *testing.T) {
	counter := &fixedCounter{total: 10}
	slot := NewSlot()
	p := New(counter)

	res, err := p.Paginate(context.Background(), Params{Limit: 5, Offset: 2}, query.Universal(), domain.Request{Page: 3}, slot)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if res.Meta != nil || res.Window != (Window{Offset: 2, Limit: 5, Bounded: true}) {
		t.Fatalf("unexpected result %+v", res)
	}

	res, _ = p.Paginate(context.Background(), Params{Offset: 1, PageBy: "4"}, query.Universal(), domain.Request{}, slot)
	if res.Meta != nil || res.Window != (Window{}) {
		t.Fatalf("expected unlimited window from the start without metadata, got %+v", res)
	}
	if counter.calls != 0 {
		t.Fatalf("expected no count query, got %d", counter.calls)
	}
	if _, ok := slot.Get(); ok {
		t.Fatalf("expected slot to stay empty")
	}
}

func TestPaginatePageByLimitAlias(t *testing.T) {
	res, err := New(&fixedCounter{total: 7}).Paginate(context.Background(), Params{Limit: 2, Offset: 1, PageBy: "limit"}, query.Universal(), domain.Request{Page: 3}, NewSlot())
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if res.Window != (Window{Offset: 5, Limit: 2, Bounded: true}) {
		t.Fatalf("unexpected window %+v", res.Window)
	}
	if res.Meta.Total != 6 || res.Meta.NumPages != 3 {
		t.Fatalf("unexpected meta %+v", res.Meta)
	}
}

func TestPaginateNonPositivePageBySinglePage(t *testing.T) {
	res, err := New(&fixedCounter{total: 9}).Paginate(context.Background(), Params{Limit: 4, Offset: 2, PageBy: "0"}, query.Universal(), domain.Request{Page: 5}, NewSlot())
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if res.Meta.NumPages != 1 {
		t.Fatalf("expected single page, got %d", res.Meta.NumPages)
	}
	if res.Window != (Window{Offset: 2, Limit: 4, Bounded: true}) {
		t.Fatalf("unexpected window %+v", res.Window)
	}
}

func TestPaginateNegativeLimitStaysBounded(t *testing.T) {
	res, err := New(&fixedCounter{total: 9}).Paginate(context.Background(), Params{Limit: -2, PageBy: "limit"}, query.Universal(), domain.Request{}, NewSlot())
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if !res.Window.Bounded || res.Window.Limit > 0 {
		t.Fatalf("expected bounded non-positive window, got %+v", res.Window)
	}
}

func TestPaginatePublishesOncePerRequest(t *testing.T) {
	slot := NewSlot()
	p := New(&fixedCounter{total: 10})

	first, _ := p.Paginate(context.Background(), Params{Limit: 3, PageBy: "3"}, query.Universal(), domain.Request{Page: 2}, slot)
	second, _ := p.Paginate(context.Background(), Params{Limit: 5, PageBy: "5"}, query.Universal(), domain.Request{Page: 4, Category: "other"}, slot)

	if second.Meta.Page != first.Meta.Page || second.Meta.NumPages != 4 || second.Meta.Category != "" {
		t.Fatalf("expected second list to inherit first metadata, got %+v", second.Meta)
	}
	if second.Window.Offset != 5 || second.Window.Limit != 5 {
		t.Fatalf("expected second window to reuse page 2, got %+v", second.Window)
	}
}

func TestPaginateOffsetBeyondTotal(t *testing.T) {
	res, err := New(&fixedCounter{total: 2}).Paginate(context.Background(), Params{Limit: 3, Offset: 5, PageBy: "3"}, query.Universal(), domain.Request{}, NewSlot())
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if res.Meta.Total != -3 || res.Meta.NumPages != 0 {
		t.Fatalf("unexpected meta %+v", res.Meta)
	}
}

func TestPaginateCountError(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(&fixedCounter{err: boom}).Paginate(context.Background(), Params{Limit: 3, PageBy: "3"}, query.Universal(), domain.Request{}, NewSlot())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped count error, got %v", err)
	}
}

func TestMetaNavigation(t *testing.T) {
	meta := Meta{Page: 2, NumPages: 3}
	if meta.PrevPage() != 1 || meta.NextPage() != 3 {
		t.Fatalf("unexpected navigation %d/%d", meta.PrevPage(), meta.NextPage())
	}
	last := Meta{Page: 3, NumPages: 3}
	if last.HasNext() || last.NextPage() != 0 {
		t.Fatalf("expected no next page on last page")
	}
	if (Meta{Page: 1, NumPages: 3}).HasPrev() {
		t.Fatalf("expected no previous page on first page")
	}
}
