package markup

import (
	"html"
	"regexp"
	"sort"
	"strings"
)

var tagName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)

var selfClosing = map[string]bool{
	"br": true,
	"hr": true,
}

// Escape escapes text for use in element content and attribute values.
func Escape(value string) string {
	return html.EscapeString(value)
}

// IsTag reports whether name can be rendered as an element name.
func IsTag(name string) bool {
	return tagName.MatchString(name)
}

// Tag wraps content in the named element. Attribute values are escaped and
// written in key order; empty values are skipped. An invalid or empty name
// returns content unchanged.
func Tag(content, name string, attrs map[string]string) string {
	name = strings.TrimSpace(name)
	if !IsTag(name) {
		return content
	}
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(Attrs(attrs))
	b.WriteString(">")
	b.WriteString(content)
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
	return b.String()
}

// Attrs renders attributes in key order with a leading space.
func Attrs(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for key, value := range attrs {
		if value == "" || !IsTag(strings.ReplaceAll(key, "-", "")) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, key := range keys {
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString(`="`)
		b.WriteString(Escape(attrs[key]))
		b.WriteString(`"`)
	}
	return b.String()
}

// Anchor renders <a> with an escaped label and target.
func Anchor(label, href, rel, title string) string {
	var b strings.Builder
	b.WriteString("<a")
	if rel != "" {
		b.WriteString(` rel="` + Escape(rel) + `"`)
	}
	b.WriteString(` href="` + Escape(href) + `"`)
	if title != "" {
		b.WriteString(` title="` + Escape(title) + `"`)
	}
	b.WriteString(">")
	b.WriteString(Escape(label))
	b.WriteString("</a>")
	return b.String()
}

// WrapTag wraps content in wraptag with an optional class. Empty content
// stays empty.
func WrapTag(content, wraptag, class string) string {
	if content == "" {
		return ""
	}
	if wraptag == "" {
		return content
	}
	return Tag(content, wraptag, map[string]string{"class": class})
}

// Wrap joins items and wraps the result. When brk names br or hr the items
// are joined by that element; any other element name wraps each item; every
// other value is used as a literal separator.
func Wrap(items []string, wraptag, brk, class string) string {
	if len(items) == 0 {
		return ""
	}
	name := strings.TrimSpace(brk)
	var joined string
	switch {
	case selfClosing[strings.ToLower(name)]:
		joined = strings.Join(items, "<"+strings.ToLower(name)+" />\n")
	case IsTag(name):
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = Tag(item, name, nil)
		}
		joined = strings.Join(parts, "\n")
	default:
		joined = strings.Join(items, brk)
	}
	if wraptag == "" {
		return joined
	}
	return Tag(joined, wraptag, map[string]string{"class": class})
}

// Label renders label wrapped in labeltag, or followed by a line break when
// no labeltag is set.
func Label(label, labeltag string) string {
	if label == "" {
		return ""
	}
	if labeltag == "" {
		return label + "<br />"
	}
	return Tag(label, labeltag, nil)
}
