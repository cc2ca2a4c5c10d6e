package templates

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/flosch/pongo2/v6"
	"github.com/goliatone/go-linklist/internal/links"
	"github.com/goliatone/go-linklist/internal/markup"
	"github.com/goliatone/go-linklist/internal/render"
	"github.com/goliatone/go-linklist/pkg/domain"
	gotemplate "github.com/goliatone/go-template"
)

// TagSource provides the tags exposed to templates.
type TagSource interface {
	Tags() map[string]links.TagFunc
	Conditions() map[string]func(scope *render.Scope) bool
}

func defaultHelperFuncs() map[string]any {
	return map[string]any{
		"escape_attr": escapeAttr,
	}
}

func escapeAttr(value any) *pongo2.Value {
	return pongo2.AsSafeValue(markup.Escape(stringFromTemplateValue(value)))
}

// tagArgs reads alternating key/value call arguments, e.g.
// linklist("category", "news", "limit", 5).
func tagArgs(args ...any) links.Attributes {
	pairs := make([]string, len(args))
	for i, arg := range args {
		pairs[i] = stringFromTemplateValue(arg)
	}
	return links.Pairs(pairs...)
}

func stringFromTemplateValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *pongo2.Value:
		return v.String()
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(v)
	}
}

// evaluationKey carries the token of the running evaluation in the data
// map. Tag helpers read it back from the pongo2 execution context.
const evaluationKey = "linklist_evaluation"

type evaluation struct {
	ctx   context.Context
	scope *render.Scope
}

// evaluations tracks in-flight renders by token. Nested renders get their
// own token, so a tag always reads the scope of the fragment it sits in.
type evaluations struct {
	seq  atomic.Uint64
	live sync.Map
}

func (e *evaluations) open(ctx context.Context, scope *render.Scope) (string, func()) {
	token := strconv.FormatUint(e.seq.Add(1), 36)
	e.live.Store(token, evaluation{ctx: ctx, scope: scope})
	return token, func() { e.live.Delete(token) }
}

func (e *evaluations) lookup(ec *pongo2.ExecutionContext) (evaluation, bool) {
	if ec == nil {
		return evaluation{}, false
	}
	token, ok := ec.Public[evaluationKey].(string)
	if !ok {
		return evaluation{}, false
	}
	value, ok := e.live.Load(token)
	if !ok {
		return evaluation{}, false
	}
	return value.(evaluation), true
}

// tagHelpers adapts source's tags into template functions.
func tagHelpers(source TagSource, evals *evaluations) map[string]any {
	funcs := make(map[string]any)
	for name, tag := range source.Tags() {
		tag := tag
		funcs[name] = func(ec *pongo2.ExecutionContext, args ...any) *pongo2.Value {
			eval, ok := evals.lookup(ec)
			if !ok {
				return pongo2.AsSafeValue("")
			}
			return pongo2.AsSafeValue(tag(eval.ctx, eval.scope, tagArgs(args...)))
		}
	}
	for name, cond := range source.Conditions() {
		cond := cond
		funcs[name] = func(ec *pongo2.ExecutionContext) bool {
			eval, ok := evals.lookup(ec)
			return ok && cond(eval.scope)
		}
	}
	return funcs
}

// Numbers are passed as strings: the renderer round-trips data through
// JSON, which would print them as floats.
func requestData(req domain.Request) map[string]any {
	return map[string]any{
		"page":     strconv.Itoa(req.CurrentPage()),
		"section":  req.Section,
		"category": req.Category,
		"author":   req.Author,
		"context":  strings.ToLower(req.Context),
	}
}

func linkData(link domain.Link) map[string]any {
	return map[string]any{
		"id":          strconv.FormatInt(link.ID, 10),
		"name":        link.Name,
		"url":         link.URL,
		"description": link.Description,
		"category":    link.Category,
		"author":      link.Author,
		"linksort":    link.SortKey,
		"date":        link.Date,
	}
}

// registerHelpers pushes funcs into the renderer globals, skipping nil
// entries.
func registerHelpers(renderer *gotemplate.Engine, funcs map[string]any) {
	if renderer == nil || len(funcs) == 0 {
		return
	}
	live := make(map[string]any, len(funcs))
	for name, fn := range funcs {
		if fn != nil {
			live[name] = fn
		}
	}
	if len(live) > 0 {
		gotemplate.WithTemplateFunc(live)(renderer)
	}
}
