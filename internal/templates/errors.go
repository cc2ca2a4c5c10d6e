package templates

import (
	"errors"
	"fmt"
)

var (
	// ErrTranslatorRequired indicates the service cannot operate without a translator.
	ErrTranslatorRequired = errors.New("templates: translator is required")
	// ErrRendererConfig indicates the template renderer was misconfigured.
	ErrRendererConfig = errors.New("templates: renderer configuration is incomplete")
	// ErrFormNotFound is returned when no form is registered under a name.
	ErrFormNotFound = errors.New("templates: form not found")
	// ErrInvalidForm is returned when a form cannot be registered.
	ErrInvalidForm = errors.New("templates: invalid form")
)

// FormError identifies the form that failed to render.
type FormError struct {
	Form string
	Err  error
}

func (e FormError) Error() string {
	return fmt.Sprintf("templates: form %q: %v", e.Form, e.Err)
}

func (e FormError) Unwrap() error {
	return e.Err
}
