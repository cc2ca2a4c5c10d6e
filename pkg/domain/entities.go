package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ContextLink identifies link listings in the ambient request context.
const ContextLink = "link"

// RecordMeta captures identifiers and audit fields shared across entities.
// ID is the public numeric identifier; UUID is the stable repository key.
type RecordMeta struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	UUID      uuid.UUID `bun:"uuid,type:uuid,unique" json:"uuid"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// EnsureUUID assigns a UUID when the struct is about to be persisted.
func (m *RecordMeta) EnsureUUID() {
	if m.UUID == uuid.Nil {
		m.UUID = uuid.New()
	}
}

// Link is a single entry in the link collection.
type Link struct {
	bun.BaseModel `bun:"table:links"`
	RecordMeta

	Name        string    `bun:"linkname,nullzero,notnull" json:"linkname"`
	URL         string    `bun:"url,nullzero,notnull" json:"url"`
	Description string    `bun:"description,nullzero" json:"description,omitempty"`
	Category    string    `bun:"category,nullzero" json:"category,omitempty"`
	Author      string    `bun:"author,nullzero" json:"author,omitempty"`
	SortKey     string    `bun:"linksort,nullzero" json:"linksort,omitempty"`
	Date        time.Time `bun:"date,nullzero,notnull,default:current_timestamp" json:"date"`
}

// Projection reduces the link to the fields used by single link output.
func (l Link) Projection() Link {
	return Link{Name: l.Name, URL: l.URL}
}

// Field returns the string value of a filterable column.
func (l Link) Field(name string) string {
	switch strings.ToLower(name) {
	case "id":
		if l.ID == 0 {
			return ""
		}
		return strconv.FormatInt(l.ID, 10)
	case "linkname":
		return l.Name
	case "url":
		return l.URL
	case "description":
		return l.Description
	case "category":
		return l.Category
	case "author":
		return l.Author
	case "linksort":
		return l.SortKey
	}
	return ""
}

// Author maps a login to the display name shown in link listings.
type Author struct {
	bun.BaseModel `bun:"table:link_authors"`
	RecordMeta

	Login    string `bun:"name,unique,nullzero,notnull" json:"name"`
	RealName string `bun:"real_name,nullzero" json:"real_name"`
}

// Category is a named grouping of links with a human readable title.
type Category struct {
	bun.BaseModel `bun:"table:link_categories"`
	RecordMeta

	Name  string `bun:"name,nullzero,notnull" json:"name"`
	Type  string `bun:"type,nullzero,notnull" json:"type"`
	Title string `bun:"title,nullzero" json:"title"`
}

// Form stores a named template fragment evaluated once per link.
type Form struct {
	bun.BaseModel `bun:"table:link_forms"`
	RecordMeta

	Name     string `bun:"name,unique,nullzero,notnull" json:"name"`
	Type     string `bun:"type,nullzero" json:"type"`
	Body     string `bun:"body,nullzero" json:"body"`
	Revision int    `bun:"revision,nullzero" json:"revision"`
}

// Request carries the ambient context established by the routing layer
// before any link tag runs.
type Request struct {
	Page     int
	Section  string
	Category string
	Author   string
	Context  string
	Locale   string
}

// ScopedToLinks reports whether the request already targets link records.
func (r Request) ScopedToLinks() bool {
	return strings.EqualFold(strings.TrimSpace(r.Context), ContextLink)
}

// CurrentPage returns the 1-based page, treating unset or non-positive as 1.
func (r Request) CurrentPage() int {
	if r.Page <= 0 {
		return 1
	}
	return r.Page
}

// Form types.
const (
	FormTypeLink = "link"
	FormTypeMisc = "misc"
)
