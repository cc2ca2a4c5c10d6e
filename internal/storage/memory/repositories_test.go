package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
	"github.com/goliatone/go-linklist/pkg/query"
)

func seedLinks(t *testing.T, repo *LinkRepository, links ...domain.Link) {
	t.Helper()
	for i := range links {
		if err := repo.Create(context.Background(), &links[i]); err != nil {
			t.Fatalf("create link: %v", err)
		}
	}
}

func TestLinkRepositoryFindFiltersSortsAndWindows(t *testing.T) {
	ctx := context.Background()
	repo := NewLinkRepository()
	seedLinks(t, repo,
		domain.Link{Name: "c", URL: "https://c.test", Category: "news", SortKey: "3"},
		domain.Link{Name: "a", URL: "https://a.test", Category: "news", SortKey: "1"},
		domain.Link{Name: "x", URL: "https://x.test", Category: "misc", SortKey: "0"},
		domain.Link{Name: "b", URL: "https://b.test", Category: "news", SortKey: "2"},
	)

	clause, _, _ := query.In(query.FieldCategory, "news")
	pred := query.Universal().And(clause)

	total, err := repo.Count(ctx, pred)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 news links, got %d", total)
	}

	rows, err := repo.Find(ctx, store.LinkQuery{
		Predicate: pred,
		Sort:      query.ParseSort("linksort asc"),
		Offset:    1,
		Limit:     5,
		Bounded:   true,
	})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(rows) != 2 || rows[0].Name != "b" || rows[1].Name != "c" {
		t.Fatalf("unexpected window %+v", rows)
	}

	rows, err = repo.Find(ctx, store.LinkQuery{Predicate: pred, Sort: query.ParseSort("linkname desc")})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(rows) != 3 || rows[0].Name != "c" || rows[2].Name != "a" {
		t.Fatalf("unexpected order %+v", rows)
	}
}

func TestLinkRepositoryBoundedZeroLimitFetchesNothing(t *testing.T) {
	repo := NewLinkRepository()
	seedLinks(t, repo, domain.Link{Name: "a", URL: "https://a.test"})

	rows, err := repo.Find(context.Background(), store.LinkQuery{Predicate: query.Universal(), Limit: 0, Bounded: true})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected bounded zero window to be empty, got %d rows", len(rows))
	}

	rows, _ = repo.Find(context.Background(), store.LinkQuery{Predicate: query.EmptyResult()})
	if len(rows) != 0 {
		t.Fatalf("expected empty result predicate to match nothing")
	}
}

func TestLinkRepositoryLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewLinkRepository()
	seedLinks(t, repo, domain.Link{Name: "Go", URL: "https://go.dev"})

	got, err := repo.GetByName(ctx, "Go")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if got.ID == 0 || got.Date.IsZero() {
		t.Fatalf("expected id and date to be assigned, got %+v", got)
	}
	if _, err := repo.GetByID(ctx, 99); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDirectories(t *testing.T) {
	ctx := context.Background()
	authors := NewAuthorRepository()
	_ = authors.Create(ctx, &domain.Author{Login: "ada", RealName: "Ada Lovelace"})
	_ = authors.Create(ctx, &domain.Author{Login: "bob", RealName: "Bob Smith"})

	logins, err := authors.LoginsByRealName(ctx, []string{"Ada Lovelace", "Nobody"})
	if err != nil {
		t.Fatalf("logins: %v", err)
	}
	if len(logins) != 1 || logins[0] != "ada" {
		t.Fatalf("unexpected logins %v", logins)
	}
	name, err := authors.RealName(ctx, "bob")
	if err != nil || name != "Bob Smith" {
		t.Fatalf("unexpected real name %q err=%v", name, err)
	}

	categories := NewCategoryRepository()
	_ = categories.Create(ctx, &domain.Category{Name: "news", Type: "link", Title: "News"})
	title, err := categories.Title(ctx, "news", "link")
	if err != nil || title != "News" {
		t.Fatalf("unexpected title %q err=%v", title, err)
	}
	if _, err := categories.Title(ctx, "news", "article"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other kind, got %v", err)
	}

	forms := NewFormRepository()
	if err := forms.Create(ctx, &domain.Form{Name: "plainlinks", Body: "x"}); err != nil {
		t.Fatalf("create form: %v", err)
	}
	if err := forms.Create(ctx, &domain.Form{Name: "PlainLinks"}); err == nil {
		t.Fatalf("expected duplicate form error")
	}
	if _, err := forms.GetByName(ctx, "PLAINLINKS"); err != nil {
		t.Fatalf("get form: %v", err)
	}
}
