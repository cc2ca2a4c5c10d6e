package templates

import (
	i18n "github.com/goliatone/go-i18n"
	internaltemplates "github.com/goliatone/go-linklist/internal/templates"
)

// Service renders fragments and named forms with link tags bound as
// template functions.
type Service = internaltemplates.Service

// FormError reports the form that failed to resolve or render.
type FormError = internaltemplates.FormError

// FormSource lazily supplies forms missing from the registry.
type FormSource = internaltemplates.FormSource

// Option configures the service.
type Option = internaltemplates.Option

var (
	ErrTranslatorRequired = internaltemplates.ErrTranslatorRequired
	ErrRendererConfig     = internaltemplates.ErrRendererConfig
	ErrFormNotFound       = internaltemplates.ErrFormNotFound
	ErrInvalidForm        = internaltemplates.ErrInvalidForm
)

var (
	WithDefaultLocale             = internaltemplates.WithDefaultLocale
	WithHelperFuncs               = internaltemplates.WithHelperFuncs
	WithRendererOptions           = internaltemplates.WithRendererOptions
	WithLocaleKey                 = internaltemplates.WithLocaleKey
	WithMissingTranslationHandler = internaltemplates.WithMissingTranslationHandler
	WithFormSource                = internaltemplates.WithFormSource
	WithLogger                    = internaltemplates.WithLogger
)

// New builds a standalone template service. Call BindTags with a links
// service before rendering link tags.
func New(translator i18n.Translator, opts ...Option) (*Service, error) {
	return internaltemplates.NewService(translator, opts...)
}
