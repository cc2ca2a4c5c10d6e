package linklist

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-linklist/pkg/commands"
	"github.com/goliatone/go-linklist/pkg/config"
	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/logger"
)

func newModule(t *testing.T, cfg config.Config, buf *bytes.Buffer) *Module {
	t.Helper()
	ctx := context.Background()
	opts := ModuleOptions{Config: cfg}
	if buf != nil {
		opts.Logger = logger.NewWithWriter(buf)
	}
	module, err := NewModule(ctx, opts)
	if err != nil {
		t.Fatalf("module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })

	cmds := module.Commands()
	seed := []commands.SaveLink{
		{Name: "Go", URL: "https://go.dev", Category: "tools", Author: "rob", SortKey: "1", Description: "The Go site"},
		{Name: "Bun", URL: "https://bun.uptrace.dev", Category: "tools", Author: "vlad", SortKey: "2"},
		{Name: "News", URL: "https://news.test", Category: "news", Author: "rob", SortKey: "3"},
	}
	for _, msg := range seed {
		if err := cmds.SaveLink.Execute(ctx, msg); err != nil {
			t.Fatalf("seed %s: %v", msg.Name, err)
		}
	}
	if err := cmds.SaveAuthor.Execute(ctx, commands.SaveAuthor{Login: "rob", RealName: "Rob Pike"}); err != nil {
		t.Fatalf("seed author: %v", err)
	}
	if err := cmds.SaveCategory.Execute(ctx, commands.SaveCategory{Name: "tools", Title: "Developer Tools"}); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return module
}

func TestModuleRendersAmbientCategory(t *testing.T) {
	module := newModule(t, config.Config{}, nil)
	ctx := context.Background()
	scope := module.NewScope(domain.Request{Context: domain.ContextLink, Category: "tools"})

	got := module.List(ctx, scope, Attributes{"wraptag": "ul", "break": "li"})
	want := "<ul class=\"linklist\"><li><a href=\"https://go.dev\">Go</a></li>\n<li><a href=\"https://bun.uptrace.dev\">Bun</a></li></ul>"
	if got != want {
		t.Fatalf("unexpected list\nwant: %s\n got: %s", want, got)
	}
}

func TestModuleRenderUsesStoredForm(t *testing.T) {
	module := newModule(t, config.Config{}, nil)
	ctx := context.Background()

	err := module.Commands().SaveForm.Execute(ctx, commands.SaveForm{
		Name: "card",
		Body: `{{ link_name() }} ({{ link_category("title", "1") }}, {{ link_author() }})`,
	})
	if err != nil {
		t.Fatalf("save form: %v", err)
	}

	got, err := module.Render(ctx, module.NewScope(domain.Request{}), `{{ linklist("author", "rob", "form", "card", "break", "; ") }}`)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "Go (Developer Tools, Rob Pike); News (news, Rob Pike)"
	if got != want {
		t.Fatalf("unexpected output\nwant: %s\n got: %s", want, got)
	}
}

func TestModuleLinkWarnsOnUnknownName(t *testing.T) {
	var buf bytes.Buffer
	module := newModule(t, config.Config{}, &buf)
	ctx := context.Background()
	scope := module.NewScope(domain.Request{})

	if got := module.Link(ctx, scope, Attributes{"name": "Go"}); got != `<a href="https://go.dev">Go</a>` {
		t.Fatalf("unexpected link %q", got)
	}
	if got := module.Link(ctx, scope, Attributes{"name": "Missing"}); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if !strings.Contains(buf.String(), "Unknown link") {
		t.Fatalf("expected unknown link warning, got %q", buf.String())
	}
}

func TestNilModule(t *testing.T) {
	var module *Module
	if _, err := module.Render(context.Background(), nil, "x"); err != ErrNilModule {
		t.Fatalf("expected ErrNilModule, got %v", err)
	}
	if module.Commands() != nil || module.List(context.Background(), nil, nil) != "" {
		t.Fatalf("expected nil-safe accessors")
	}
}

func TestModuleTemplatesAcceptHelpers(t *testing.T) {
	module := newModule(t, config.Config{}, nil)
	ctx := context.Background()
	module.Templates().RegisterHelpers(map[string]any{
		"upper": func(value string) string { return strings.ToUpper(value) },
	})

	if err := module.Commands().SaveForm.Execute(ctx, commands.SaveForm{Name: "loud", Body: "{{ upper(record.name) }}"}); err != nil {
		t.Fatalf("save form: %v", err)
	}

	got, err := module.Render(ctx, module.NewScope(domain.Request{}), `{{ linklist("category", "news", "form", "loud") }}`)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "NEWS" {
		t.Fatalf("unexpected output %q", got)
	}
}
