package options

import (
	"errors"
	"fmt"
	"strconv"

	opts "github.com/goliatone/go-options"
	layering "github.com/goliatone/go-options/layering"
)

// Snapshot captures the immutable payload associated with a scope layer.
type Snapshot struct {
	Scope      opts.Scope
	Data       map[string]any
	SnapshotID string
}

// Resolver wraps a merged go-options value and reads attribute defaults
// from it.
type Resolver struct {
	options *opts.Options[map[string]any]
}

var (
	// ErrNoSnapshots signals that at least one scope snapshot must be provided.
	ErrNoSnapshots = errors.New("options: at least one snapshot is required")
	// ErrNotScalar is returned when a path holds a map or list.
	ErrNotScalar = errors.New("options: value is not a scalar")
)

// NewResolver merges the provided scope snapshots ordered by their scope
// priority.
func NewResolver(snapshots ...Snapshot) (*Resolver, error) {
	if len(snapshots) == 0 {
		return nil, ErrNoSnapshots
	}

	layers := make([]opts.Layer[map[string]any], 0, len(snapshots))
	for _, snap := range snapshots {
		if snap.Scope.Name == "" {
			return nil, fmt.Errorf("options: snapshot scope name is required")
		}
		layerOpts := []opts.LayerOption[map[string]any]{}
		if snap.SnapshotID != "" {
			layerOpts = append(layerOpts, opts.WithSnapshotID[map[string]any](snap.SnapshotID))
		}
		layers = append(layers, opts.NewLayer(snap.Scope, cloneMap(snap.Data), layerOpts...))
	}

	stack, err := opts.NewStack(layers...)
	if err != nil {
		return nil, err
	}
	merged, err := stack.Merge()
	if err != nil {
		return nil, err
	}
	return &Resolver{options: merged}, nil
}

// Resolve fetches the value stored at path and returns the accompanying trace.
func (r *Resolver) Resolve(path string) (any, opts.Trace, error) {
	if r == nil || r.options == nil {
		return nil, opts.Trace{Path: path}, fmt.Errorf("options: resolver not initialised")
	}
	return r.options.ResolveWithTrace(path)
}

// ResolveAttr resolves path as a tag attribute string. Numbers and
// booleans are formatted the way templates would write them.
func (r *Resolver) ResolveAttr(path string) (string, opts.Trace, error) {
	value, trace, err := r.Resolve(path)
	if err != nil {
		return "", trace, err
	}
	switch v := value.(type) {
	case nil:
		return "", trace, nil
	case string:
		return v, trace, nil
	case bool:
		if v {
			return "1", trace, nil
		}
		return "0", trace, nil
	case int:
		return strconv.Itoa(v), trace, nil
	case int64:
		return strconv.FormatInt(v, 10), trace, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), trace, nil
	}
	return "", trace, fmt.Errorf("%w: %s", ErrNotScalar, path)
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	return layering.Clone(src)
}
