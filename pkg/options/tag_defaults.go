package options

import (
	"sort"

	opts "github.com/goliatone/go-options"
)

// Scope names used for tag defaults.
const (
	ScopeBuiltin = "builtin"
	ScopeSite    = "site"
)

// TagDefaults layers site overrides above built-in tag attribute defaults.
type TagDefaults struct {
	resolver *Resolver
	keys     map[string][]string
}

// NewTagDefaults merges builtin and site defaults, both keyed by tag name
// then attribute.
func NewTagDefaults(builtin, site map[string]map[string]string) (*TagDefaults, error) {
	snapshots := []Snapshot{{
		Scope:      opts.NewScope(ScopeBuiltin, opts.ScopePrioritySystem, opts.WithScopeLabel("Built-in")),
		Data:       payload(builtin),
		SnapshotID: ScopeBuiltin,
	}}
	if len(site) > 0 {
		snapshots = append(snapshots, Snapshot{
			Scope:      opts.NewScope(ScopeSite, opts.ScopePriorityUser, opts.WithScopeLabel("Site")),
			Data:       payload(site),
			SnapshotID: ScopeSite,
		})
	}
	resolver, err := NewResolver(snapshots...)
	if err != nil {
		return nil, err
	}
	return &TagDefaults{resolver: resolver, keys: attributeKeys(builtin, site)}, nil
}

// For returns the effective defaults of tag.
func (d *TagDefaults) For(tag string) map[string]string {
	if d == nil {
		return nil
	}
	keys := d.keys[tag]
	if len(keys) == 0 {
		return nil
	}
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		value, _, err := d.resolver.ResolveAttr(tag + "." + key)
		if err != nil {
			continue
		}
		out[key] = value
	}
	return out
}

// Trace reports which scope supplied an attribute default.
func (d *TagDefaults) Trace(tag, key string) (opts.Trace, error) {
	_, trace, err := d.resolver.Resolve(tag + "." + key)
	return trace, err
}

// Source names the scope whose value wins for an attribute, or "" when no
// scope sets it.
func (d *TagDefaults) Source(tag, key string) string {
	if d == nil {
		return ""
	}
	trace, err := d.Trace(tag, key)
	if err != nil {
		return ""
	}
	for _, layer := range trace.Layers {
		if layer.Found {
			return layer.Scope.Name
		}
	}
	return ""
}

func payload(defaults map[string]map[string]string) map[string]any {
	out := make(map[string]any, len(defaults))
	for tag, attrs := range defaults {
		values := make(map[string]any, len(attrs))
		for key, value := range attrs {
			values[key] = value
		}
		out[tag] = values
	}
	return out
}

func attributeKeys(layers ...map[string]map[string]string) map[string][]string {
	seen := make(map[string]map[string]struct{})
	for _, layer := range layers {
		for tag, attrs := range layer {
			if seen[tag] == nil {
				seen[tag] = make(map[string]struct{})
			}
			for key := range attrs {
				seen[tag][key] = struct{}{}
			}
		}
	}
	out := make(map[string][]string, len(seen))
	for tag, keys := range seen {
		list := make([]string, 0, len(keys))
		for key := range keys {
			list = append(list, key)
		}
		sort.Strings(list)
		out[tag] = list
	}
	return out
}
