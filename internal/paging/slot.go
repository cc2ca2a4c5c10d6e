package paging

// Meta is the paging state shared with sibling newer/older components.
type Meta struct {
	Page       int
	NumPages   int
	GrandTotal int
	Total      int
	Section    string
	Category   string
	Context    string
}

// HasPrev reports whether a previous page exists.
func (m Meta) HasPrev() bool {
	return m.Page > 1
}

// HasNext reports whether a following page exists.
func (m Meta) HasNext() bool {
	return m.Page < m.NumPages
}

// PrevPage returns the previous page number, or 0 when on the first page.
func (m Meta) PrevPage() int {
	if !m.HasPrev() {
		return 0
	}
	return m.Page - 1
}

// NextPage returns the following page number, or 0 when on the last page.
func (m Meta) NextPage() int {
	if !m.HasNext() {
		return 0
	}
	return m.Page + 1
}

// Slot holds the paging metadata for one request. It is written at most
// once; evaluation is single threaded per request so no locking is needed.
type Slot struct {
	meta *Meta
}

// NewSlot returns an empty slot.
func NewSlot() *Slot {
	return &Slot{}
}

// SetIfAbsent stores meta when nothing was published yet and returns the
// metadata now held by the slot. A nil slot keeps nothing.
func (s *Slot) SetIfAbsent(meta Meta) Meta {
	if s == nil {
		return meta
	}
	if s.meta == nil {
		stored := meta
		s.meta = &stored
	}
	return *s.meta
}

// Get returns the published metadata.
func (s *Slot) Get() (Meta, bool) {
	if s == nil || s.meta == nil {
		return Meta{}, false
	}
	return *s.meta, true
}
