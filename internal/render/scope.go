package render

import (
	"github.com/goliatone/go-linklist/internal/paging"
	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/google/uuid"
)

// Frame is the record currently exposed to nested template evaluation.
type Frame struct {
	Link    domain.Link
	IsFirst bool
	IsLast  bool
	// Projection is set when only the name and URL are known.
	Projection bool
}

// Scope is the request-scoped execution context for one render pass. It is
// not safe for concurrent use; a render pass is evaluated depth-first on a
// single goroutine.
type Scope struct {
	id      string
	request domain.Request
	paging  *paging.Slot
	frames  []Frame
}

// NewScope starts a render pass for req.
func NewScope(req domain.Request) *Scope {
	return &Scope{
		id:      uuid.NewString(),
		request: req,
		paging:  paging.NewSlot(),
	}
}

// ID identifies the render pass in logs.
func (s *Scope) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Request returns the ambient request context.
func (s *Scope) Request() domain.Request {
	if s == nil {
		return domain.Request{}
	}
	return s.request
}

// Paging returns the request paging slot.
func (s *Scope) Paging() *paging.Slot {
	if s == nil {
		return nil
	}
	return s.paging
}

// Push makes frame the current record and returns the function restoring
// the previous one. Pops must happen in reverse push order.
func (s *Scope) Push(frame Frame) (pop func()) {
	depth := len(s.frames)
	s.frames = append(s.frames, frame)
	return func() {
		s.frames = s.frames[:depth]
	}
}

// Current returns the top frame.
func (s *Scope) Current() (Frame, bool) {
	if s == nil || len(s.frames) == 0 {
		return Frame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

// Depth reports how many frames are active.
func (s *Scope) Depth() int {
	if s == nil {
		return 0
	}
	return len(s.frames)
}
