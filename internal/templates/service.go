package templates

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-linklist/internal/render"
	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/logger"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
	gotemplate "github.com/goliatone/go-template"
)

// FormSource loads forms that were not registered up front.
type FormSource interface {
	GetByName(ctx context.Context, name string) (*domain.Form, error)
}

// Service evaluates inline fragments and named forms against a render
// scope. It is safe to share across scopes.
type Service struct {
	renderer      *gotemplate.Engine
	registry      *registry
	evaluations   *evaluations
	translator    i18n.Translator
	defaultLocale string
	localeKey     string
	forms         FormSource
	logger        logger.Logger
}

type serviceOptions struct {
	defaultLocale  string
	helperFuncs    []map[string]any
	rendererOpts   []gotemplate.Option
	missingHandler i18n.MissingTranslationHandler
	localeKey      string
	forms          FormSource
	logger         logger.Logger
}

// Option configures the template service.
type Option func(*serviceOptions)

// WithDefaultLocale overrides the locale used when requests do not provide one.
func WithDefaultLocale(locale string) Option {
	return func(so *serviceOptions) {
		so.defaultLocale = locale
	}
}

// WithHelperFuncs registers additional helper functions with the renderer.
func WithHelperFuncs(funcs map[string]any) Option {
	return func(so *serviceOptions) {
		if len(funcs) == 0 {
			return
		}
		so.helperFuncs = append(so.helperFuncs, funcs)
	}
}

// WithRendererOptions forwards options directly to go-template's renderer.
func WithRendererOptions(opts ...gotemplate.Option) Option {
	return func(so *serviceOptions) {
		so.rendererOpts = append(so.rendererOpts, opts...)
	}
}

// WithLocaleKey customizes the key injected into the data map to expose the locale.
func WithLocaleKey(key string) Option {
	return func(so *serviceOptions) {
		if key == "" {
			return
		}
		so.localeKey = key
	}
}

// WithMissingTranslationHandler customizes how go-i18n helpers surface missing keys.
func WithMissingTranslationHandler(handler i18n.MissingTranslationHandler) Option {
	return func(so *serviceOptions) {
		so.missingHandler = handler
	}
}

// WithFormSource loads unregistered forms on demand.
func WithFormSource(source FormSource) Option {
	return func(so *serviceOptions) {
		so.forms = source
	}
}

// WithLogger sets the service logger.
func WithLogger(lgr logger.Logger) Option {
	return func(so *serviceOptions) {
		so.logger = lgr
	}
}

// NewService builds the template service wiring the helper registry,
// renderer and localization translator together.
func NewService(translator i18n.Translator, opts ...Option) (*Service, error) {
	if translator == nil {
		return nil, ErrTranslatorRequired
	}

	settings := serviceOptions{
		localeKey: "locale",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&settings)
		}
	}
	if settings.logger == nil {
		settings.logger = &logger.Nop{}
	}

	defaultLocale := strings.TrimSpace(settings.defaultLocale)
	if defaultLocale == "" {
		if provider, ok := translator.(interface{ DefaultLocale() string }); ok {
			defaultLocale = provider.DefaultLocale()
		}
	}
	if defaultLocale == "" {
		defaultLocale = "en"
	}

	rendererOpts := []gotemplate.Option{
		gotemplate.WithBaseDir("."),
	}
	rendererOpts = append(rendererOpts, settings.rendererOpts...)

	renderer, err := gotemplate.NewRenderer(rendererOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRendererConfig, err)
	}

	service := &Service{
		renderer:      renderer,
		registry:      newRegistry(),
		evaluations:   &evaluations{},
		translator:    translator,
		defaultLocale: defaultLocale,
		localeKey:     settings.localeKey,
		forms:         settings.forms,
		logger:        settings.logger,
	}

	helperCfg := i18n.HelperConfig{
		LocaleKey:         service.localeKey,
		TemplateHelperKey: "t",
		OnMissing:         settings.missingHandler,
	}
	registerHelpers(renderer, i18n.TemplateHelpers(translator, helperCfg))
	registerHelpers(renderer, defaultHelperFuncs())

	for _, funcs := range settings.helperFuncs {
		registerHelpers(renderer, funcs)
	}

	return service, nil
}

// BindTags exposes source's tags to every evaluation.
func (s *Service) BindTags(source TagSource) {
	if s == nil || source == nil {
		return
	}
	registerHelpers(s.renderer, tagHelpers(source, s.evaluations))
}

// RegisterForms loads forms into the registry, keeping the newest revision.
func (s *Service) RegisterForms(_ context.Context, forms ...domain.Form) error {
	if s == nil {
		return ErrRendererConfig
	}
	var errs []error
	for _, form := range forms {
		if err := s.registry.Upsert(form); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadForms registers every form held by repo.
func (s *Service) LoadForms(ctx context.Context, repo store.FormRepository) error {
	if repo == nil {
		return nil
	}
	forms, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("templates: load forms: %w", err)
	}
	return s.RegisterForms(ctx, forms...)
}

// RegisterHelpers adds helper functions to the underlying renderer.
func (s *Service) RegisterHelpers(funcs map[string]any) {
	if s == nil {
		return
	}
	registerHelpers(s.renderer, funcs)
}

// FormNames lists the registered forms sorted by name.
func (s *Service) FormNames() []string {
	if s == nil {
		return nil
	}
	names := s.registry.Names()
	sort.Strings(names)
	return names
}

// Evaluate renders an inline fragment for the current record of scope.
func (s *Service) Evaluate(ctx context.Context, scope *render.Scope, fragment string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s == nil {
		return "", ErrRendererConfig
	}
	if fragment == "" {
		return "", nil
	}
	token, release := s.evaluations.open(ctx, scope)
	defer release()
	out, err := s.renderer.RenderString(fragment, s.data(scope, token))
	if err != nil {
		return "", fmt.Errorf("templates: render fragment: %w", err)
	}
	return out, nil
}

// EvaluateForm renders the named form for the current record of scope.
func (s *Service) EvaluateForm(ctx context.Context, scope *render.Scope, name string) (string, error) {
	if s == nil {
		return "", ErrRendererConfig
	}
	form, err := s.resolveForm(ctx, name)
	if err != nil {
		return "", FormError{Form: name, Err: err}
	}
	out, err := s.Evaluate(ctx, scope, form.Body())
	if err != nil {
		return "", FormError{Form: name, Err: err}
	}
	return out, nil
}

func (s *Service) resolveForm(ctx context.Context, name string) (*formEntry, error) {
	entry, err := s.registry.Resolve(name)
	if err == nil || s.forms == nil || !errors.Is(err, ErrFormNotFound) {
		return entry, err
	}
	form, loadErr := s.forms.GetByName(ctx, name)
	if errors.Is(loadErr, store.ErrNotFound) || (loadErr == nil && form == nil) {
		return nil, ErrFormNotFound
	}
	if loadErr != nil {
		return nil, loadErr
	}
	if err := s.registry.Upsert(*form); err != nil {
		return nil, err
	}
	s.logger.Debug("templates: form loaded", logger.F("form", form.Name), logger.F("revision", form.Revision))
	return s.registry.Resolve(name)
}

func (s *Service) data(scope *render.Scope, token string) map[string]any {
	req := scope.Request()
	locale := strings.TrimSpace(req.Locale)
	if locale == "" {
		locale = s.defaultLocale
	}

	data := cloneData(nil)
	data[evaluationKey] = token
	data[s.localeKey] = locale
	data["request"] = requestData(req)
	if frame, ok := scope.Current(); ok {
		data["record"] = linkData(frame.Link)
		data["is_first"] = frame.IsFirst
		data["is_last"] = frame.IsLast
	}
	if meta, ok := scope.Paging().Get(); ok {
		data["paging"] = map[string]any{
			"page":        strconv.Itoa(meta.Page),
			"num_pages":   strconv.Itoa(meta.NumPages),
			"grand_total": strconv.Itoa(meta.GrandTotal),
			"total":       strconv.Itoa(meta.Total),
			"prev_page":   strconv.Itoa(meta.PrevPage()),
			"next_page":   strconv.Itoa(meta.NextPage()),
		}
	}
	return data
}
