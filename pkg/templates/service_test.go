package templates

import (
	"context"
	"errors"
	"testing"

	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-linklist/internal/render"
	"github.com/goliatone/go-linklist/pkg/domain"
)

func newTestTranslator(t *testing.T) i18n.Translator {
	t.Helper()
	translations := i18n.Translations{
		"en": &i18n.TranslationCatalog{Locale: i18n.Locale{Code: "en"}, Messages: map[string]i18n.Message{}},
	}
	translator, err := i18n.NewSimpleTranslator(i18n.NewStaticStore(translations), i18n.WithTranslatorDefaultLocale("en"))
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	return translator
}

func TestNewStandaloneService(t *testing.T) {
	svc, err := New(newTestTranslator(t), WithHelperFuncs(map[string]any{
		"shout": func(value string) string { return value + "!" },
	}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()
	if err := svc.RegisterForms(ctx, domain.Form{Name: "hello", Type: domain.FormTypeMisc, Body: `{{ shout("hi") }} {{ locale }}`}); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := svc.EvaluateForm(ctx, render.NewScope(domain.Request{Locale: "fr"}), "hello")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got != "hi! fr" {
		t.Fatalf("unexpected output %q", got)
	}

	_, err = svc.EvaluateForm(ctx, render.NewScope(domain.Request{}), "missing")
	var formErr FormError
	if !errors.As(err, &formErr) || !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("expected FormError wrapping ErrFormNotFound, got %v", err)
	}
}

func TestNewRequiresTranslator(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrTranslatorRequired) {
		t.Fatalf("expected ErrTranslatorRequired, got %v", err)
	}
}
