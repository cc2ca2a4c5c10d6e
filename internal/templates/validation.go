package templates

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-linklist/pkg/domain"
)

func validateForm(form domain.Form) error {
	if strings.TrimSpace(form.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidForm)
	}
	switch strings.ToLower(strings.TrimSpace(form.Type)) {
	case "", domain.FormTypeLink, domain.FormTypeMisc:
	default:
		return fmt.Errorf("%w: %s has unsupported type %q", ErrInvalidForm, form.Name, form.Type)
	}
	return nil
}

func cloneData(input map[string]any) map[string]any {
	if len(input) == 0 {
		return make(map[string]any)
	}
	out := make(map[string]any, len(input))
	for k, v := range input {
		out[k] = v
	}
	return out
}
