package templates

import (
	"strings"
	"sync"

	"github.com/goliatone/go-linklist/pkg/domain"
)

type formEntry struct {
	form domain.Form
}

func (e *formEntry) Body() string {
	if e == nil {
		return ""
	}
	return e.form.Body
}

func (e *formEntry) Revision() int {
	if e == nil {
		return 0
	}
	return e.form.Revision
}

// registry keeps the latest revision of every form keyed by name.
type registry struct {
	mu    sync.RWMutex
	forms map[string]*formEntry
}

func newRegistry() *registry {
	return &registry{
		forms: make(map[string]*formEntry),
	}
}

// Upsert stores form unless a newer revision is already registered.
func (r *registry) Upsert(form domain.Form) error {
	if err := validateForm(form); err != nil {
		return err
	}
	key := normalizeKey(form.Name)

	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.forms[key]
	if current != nil && current.Revision() > form.Revision {
		return nil
	}
	r.forms[key] = &formEntry{form: form}
	return nil
}

func (r *registry) Resolve(name string) (*formEntry, error) {
	key := normalizeKey(name)
	if key == "" {
		return nil, ErrFormNotFound
	}
	r.mu.RLock()
	entry := r.forms[key]
	r.mu.RUnlock()
	if entry == nil {
		return nil, ErrFormNotFound
	}
	return entry, nil
}

func (r *registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.forms))
	for _, entry := range r.forms {
		out = append(out, entry.form.Name)
	}
	return out
}

func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
