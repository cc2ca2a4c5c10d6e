package di

import (
	"context"
	"testing"

	"github.com/goliatone/go-linklist/internal/render"
	"github.com/goliatone/go-linklist/pkg/commands"
	"github.com/goliatone/go-linklist/pkg/config"
	"github.com/goliatone/go-linklist/pkg/domain"
)

func TestNewWiresDefaults(t *testing.T) {
	ctx := context.Background()
	container, err := New(ctx, Options{})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	defer container.Close()

	if container.Storage.Links == nil || container.Commands == nil || container.Links == nil {
		t.Fatalf("expected container to be fully wired: %+v", container)
	}
	if got := container.Defaults.For("linklist")["form"]; got != "plainlinks" {
		t.Fatalf("expected default form plainlinks, got %q", got)
	}

	if err := container.Commands.SaveLink.Execute(ctx, commands.SaveLink{Name: "Go", URL: "https://go.dev"}); err != nil {
		t.Fatalf("save link: %v", err)
	}
	out, err := container.Templates.Evaluate(ctx, render.NewScope(domain.Request{}), "{{ linklist() }}")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	want := `<a href="https://go.dev">Go</a>`
	if out != want {
		t.Fatalf("unexpected output\nwant: %s\n got: %s", want, out)
	}
}

func TestNewOpensSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.Defaults()
	cfg.Storage = config.StorageConfig{Driver: config.DriverSQLite, DSN: "file:di_container_test?mode=memory&cache=shared"}
	cfg.Links.Sort = "linkname desc"

	container, err := New(ctx, Options{
		Config: cfg,
		Forms:  []domain.Form{{Name: "names", Body: "{{ link_name() }}"}},
	})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	defer container.Close()

	for _, name := range []string{"alpha", "beta"} {
		if err := container.Commands.SaveLink.Execute(ctx, linkFixture(name)); err != nil {
			t.Fatalf("save link: %v", err)
		}
	}
	out, err := container.Templates.Evaluate(ctx, render.NewScope(domain.Request{}), `{{ linklist("form", "names", "break", ",") }}`)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if out != "beta,alpha" {
		t.Fatalf("expected site sort to apply, got %q", out)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Storage.Driver = "mongo"
	if _, err := New(context.Background(), Options{Config: cfg}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func linkFixture(name string) commands.SaveLink {
	return commands.SaveLink{Name: name, URL: "https://" + name + ".test"}
}

func TestNewRendersStoredFormsOnSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.Defaults()
	cfg.Storage = config.StorageConfig{Driver: config.DriverSQLite, DSN: "file:di_offset_test?mode=memory&cache=shared"}

	container, err := New(ctx, Options{Config: cfg})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	defer container.Close()

	for _, name := range []string{"alpha", "beta", "gamma"} {
		if err := container.Commands.SaveLink.Execute(ctx, linkFixture(name)); err != nil {
			t.Fatalf("save link: %v", err)
		}
	}
	body := "{{ link_name() }}{% if if_first_link() %}*{% endif %}"
	if err := container.Commands.SaveForm.Execute(ctx, commands.SaveForm{Name: "row", Body: body}); err != nil {
		t.Fatalf("save form: %v", err)
	}

	cases := map[string]string{
		`{{ linklist("form", "row", "offset", 1, "break", ",") }}`:             "alpha*,beta,gamma",
		`{{ linklist("form", "row", "offset", 1, "limit", 5, "break", ",") }}`: "beta*,gamma",
	}
	for fragment, want := range cases {
		got, err := container.Templates.Evaluate(ctx, render.NewScope(domain.Request{}), fragment)
		if err != nil {
			t.Fatalf("evaluate %s: %v", fragment, err)
		}
		if got != want {
			t.Fatalf("%s: want %q, got %q", fragment, want, got)
		}
	}
}

func TestNewFillsPartialConfig(t *testing.T) {
	ctx := context.Background()
	container, err := New(ctx, Options{Config: config.Config{Links: config.LinksConfig{Class: "blogroll"}}})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	defer container.Close()

	if container.Config.Localization.DefaultLocale != "en" || container.Config.Storage.Driver != config.DriverMemory {
		t.Fatalf("expected defaults for unset fields, got %+v", container.Config)
	}
	if got := container.Defaults.For("linklist")["class"]; got != "blogroll" {
		t.Fatalf("expected site class, got %q", got)
	}
}
