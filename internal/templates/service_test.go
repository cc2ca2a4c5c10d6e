package templates

import (
	"context"
	"errors"
	"testing"

	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-linklist/internal/links"
	"github.com/goliatone/go-linklist/internal/render"
	"github.com/goliatone/go-linklist/internal/storage/memory"
	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/google/go-cmp/cmp"
)

func newTestTranslator(t *testing.T) i18n.Translator {
	t.Helper()
	catalog := &i18n.TranslationCatalog{
		Locale:   i18n.Locale{Code: "en"},
		Messages: make(map[string]i18n.Message),
	}
	msg := i18n.Message{}
	msg.SetContent("Links")
	catalog.Messages["links.title"] = msg

	store := i18n.NewStaticStore(i18n.Translations{"en": catalog})
	translator, err := i18n.NewSimpleTranslator(store, i18n.WithTranslatorDefaultLocale("en"))
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	return translator
}

type stack struct {
	templates *Service
	links     *links.Service
	repo      *memory.LinkRepository
	forms     *memory.FormRepository
}

func newStack(t *testing.T, records ...domain.Link) *stack {
	t.Helper()
	ctx := context.Background()
	st := &stack{
		repo:  memory.NewLinkRepository(),
		forms: memory.NewFormRepository(),
	}
	for i := range records {
		if err := st.repo.Create(ctx, &records[i]); err != nil {
			t.Fatalf("seed link: %v", err)
		}
	}

	tpl, err := NewService(newTestTranslator(t), WithFormSource(st.forms))
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	svc, err := links.NewService(links.Dependencies{Links: st.repo, Evaluator: tpl})
	if err != nil {
		t.Fatalf("links: %v", err)
	}
	tpl.BindTags(svc)
	st.templates = tpl
	st.links = svc

	if err := tpl.RegisterForms(ctx, domain.Form{Name: links.DefaultForm, Type: domain.FormTypeLink, Body: "{{ link() }}"}); err != nil {
		t.Fatalf("register form: %v", err)
	}
	return st
}

func TestEvaluateExposesCurrentRecord(t *testing.T) {
	st := newStack(t)
	scope := render.NewScope(domain.Request{})
	pop := scope.Push(render.Frame{Link: domain.Link{Name: "Go", URL: "https://go.test"}, IsFirst: true})
	defer pop()

	got, err := st.templates.Evaluate(context.Background(), scope, "{{ record.name }}|{% if is_first %}first{% endif %}|{% if is_last %}last{% endif %}")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got != "Go|first|" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEvaluateListThroughTemplates(t *testing.T) {
	st := newStack(t,
		domain.Link{Name: "alpha", URL: "https://a.test", Category: "tools", SortKey: "1"},
		domain.Link{Name: "beta", URL: "https://b.test", Category: "tools", SortKey: "2"},
		domain.Link{Name: "gamma", URL: "https://g.test", Category: "news", SortKey: "3"},
	)
	scope := render.NewScope(domain.Request{})

	got, err := st.templates.Evaluate(context.Background(), scope, `{{ linklist("category", "tools", "break", ", ") }}`)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	want := `<a href="https://a.test">alpha</a>, <a href="https://b.test">beta</a>`
	if got != want {
		t.Fatalf("unexpected output\nwant: %s\n got: %s", want, got)
	}

	got, err = st.templates.Evaluate(context.Background(), scope, `{{ linklist("category", "news", "thing", "*") }}`)
	if err != nil {
		t.Fatalf("evaluate inline: %v", err)
	}
	if got != "*" {
		t.Fatalf("unexpected inline output %q", got)
	}
}

func TestEvaluateNestedFormsRestoreOuterRecord(t *testing.T) {
	st := newStack(t,
		domain.Link{Name: "o1", URL: "https://o1.test", Category: "outer", SortKey: "1"},
		domain.Link{Name: "o2", URL: "https://o2.test", Category: "outer", SortKey: "2"},
		domain.Link{Name: "i1", URL: "https://i1.test", Category: "inner", SortKey: "3"},
		domain.Link{Name: "i2", URL: "https://i2.test", Category: "inner", SortKey: "4"},
	)
	ctx := context.Background()
	err := st.templates.RegisterForms(ctx,
		domain.Form{Name: "outer", Body: `{{ link_name() }}[{{ linklist("category", "inner", "form", "inner", "break", "+") }}]{{ link_name() }}`},
		domain.Form{Name: "inner", Body: `{{ link_name() }}{% if if_last_link() %}!{% endif %}`},
	)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	scope := render.NewScope(domain.Request{})
	got, err := st.templates.Evaluate(ctx, scope, `{{ linklist("category", "outer", "form", "outer", "break", "|") }}`)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	want := "o1[i1+i2!]o1|o2[i1+i2!]o2"
	if got != want {
		t.Fatalf("unexpected output\nwant: %s\n got: %s", want, got)
	}
	if scope.Depth() != 0 {
		t.Fatalf("expected empty register, depth %d", scope.Depth())
	}
}

func TestEvaluateFormLoadsFromSource(t *testing.T) {
	st := newStack(t)
	ctx := context.Background()
	if err := st.forms.Create(ctx, &domain.Form{Name: "Stored", Type: domain.FormTypeMisc, Body: "stored:{{ locale }}", Revision: 1}); err != nil {
		t.Fatalf("seed form: %v", err)
	}

	got, err := st.templates.EvaluateForm(ctx, render.NewScope(domain.Request{Locale: "es"}), "stored")
	if err != nil {
		t.Fatalf("evaluate form: %v", err)
	}
	if got != "stored:es" {
		t.Fatalf("unexpected output %q", got)
	}

	_, err = st.templates.EvaluateForm(ctx, render.NewScope(domain.Request{}), "absent")
	var formErr FormError
	if !errors.As(err, &formErr) || !errors.Is(err, ErrFormNotFound) || formErr.Form != "absent" {
		t.Fatalf("expected form not found error, got %v", err)
	}
}

func TestRegisterFormsKeepsNewestRevision(t *testing.T) {
	st := newStack(t)
	ctx := context.Background()
	_ = st.templates.RegisterForms(ctx, domain.Form{Name: "card", Body: "v2", Revision: 2})
	_ = st.templates.RegisterForms(ctx, domain.Form{Name: "card", Body: "v1", Revision: 1})

	got, err := st.templates.EvaluateForm(ctx, render.NewScope(domain.Request{}), "CARD")
	if err != nil || got != "v2" {
		t.Fatalf("expected newest revision, got %q err=%v", got, err)
	}

	err = st.templates.RegisterForms(ctx, domain.Form{Name: "bad", Type: "article"}, domain.Form{})
	if !errors.Is(err, ErrInvalidForm) {
		t.Fatalf("expected invalid form error, got %v", err)
	}
}

func TestTagArgs(t *testing.T) {
	attrs := tagArgs("category", "news", "limit", 5, "realname")
	if attrs["category"] != "news" || attrs["limit"] != "5" {
		t.Fatalf("unexpected attrs %v", attrs)
	}
	if v, ok := attrs["realname"]; !ok || v != "" {
		t.Fatalf("expected trailing key to be present, got %v", attrs)
	}
}

func TestEvaluateFirstAndLastConditions(t *testing.T) {
	st := newStack(t,
		domain.Link{Name: "a", URL: "https://a.test", Category: "tools", SortKey: "1"},
		domain.Link{Name: "b", URL: "https://b.test", Category: "tools", SortKey: "2"},
		domain.Link{Name: "c", URL: "https://c.test", Category: "tools", SortKey: "3"},
	)
	ctx := context.Background()
	if err := st.templates.RegisterForms(ctx, domain.Form{Name: "marks", Body: "{% if if_first_link() %}<{% endif %}{{ link_name() }}{% if if_last_link() %}>{% endif %}"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := st.templates.Evaluate(ctx, render.NewScope(domain.Request{}), `{{ linklist("category", "tools", "break", ",", "form", "marks") }}`)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got != "<a,b,c>" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEvaluateReleasesScopeAfterRender(t *testing.T) {
	st := newStack(t, domain.Link{Name: "a", URL: "https://a.test", Category: "tools"})
	scope := render.NewScope(domain.Request{})

	if _, err := st.templates.Evaluate(context.Background(), scope, `{{ linklist("category", "tools") }}`); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	open := 0
	st.templates.evaluations.live.Range(func(_, _ any) bool {
		open++
		return true
	})
	if open != 0 {
		t.Fatalf("expected no open evaluations, got %d", open)
	}

	got, err := st.templates.Evaluate(context.Background(), scope, "{{ link_name() }}|{% if if_first_link() %}x{% endif %}")
	if err != nil {
		t.Fatalf("evaluate outside list: %v", err)
	}
	if got != "|" {
		t.Fatalf("expected empty tags outside a link context, got %q", got)
	}
}

func TestEvaluateFormatsPagingAsIntegers(t *testing.T) {
	st := newStack(t,
		domain.Link{Name: "a", URL: "https://a.test", Category: "tools", SortKey: "1"},
		domain.Link{Name: "b", URL: "https://b.test", Category: "tools", SortKey: "2"},
		domain.Link{Name: "c", URL: "https://c.test", Category: "tools", SortKey: "3"},
	)
	ctx := context.Background()
	if err := st.templates.RegisterForms(ctx, domain.Form{Name: "paged", Body: "{{ record.name }}@{{ paging.page }}/{{ paging.num_pages }}"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := st.templates.Evaluate(ctx, render.NewScope(domain.Request{Page: 2}), `{{ linklist("category", "tools", "limit", 2, "pageby", 2, "form", "paged") }}`)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got != "c@2/2" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFormNamesAreSorted(t *testing.T) {
	st := newStack(t)
	ctx := context.Background()
	if err := st.templates.RegisterForms(ctx, domain.Form{Name: "zeta", Body: "z"}, domain.Form{Name: "alpha", Body: "a"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	want := []string{"alpha", links.DefaultForm, "zeta"}
	if diff := cmp.Diff(want, st.templates.FormNames()); diff != "" {
		t.Fatalf("form names mismatch (-want +got):\n%s", diff)
	}
}
