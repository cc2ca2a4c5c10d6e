package links

import (
	"strings"

	"github.com/goliatone/go-linklist/pkg/query"
)

// AttrThing carries an inline fragment evaluated once per record.
const AttrThing = "thing"

// Attributes are tag attributes as supplied by the caller. Key presence is
// significant: an empty value still counts as supplied.
type Attributes map[string]string

// Optional returns key as a presence-aware value.
func (a Attributes) Optional(key string) query.Optional {
	return query.FromMap(a, key)
}

// String returns the trimmed value of key.
func (a Attributes) String(key string) string {
	return strings.TrimSpace(a[key])
}

// Raw returns the value of key untouched.
func (a Attributes) Raw(key string) string {
	return a[key]
}

// Int coerces key leniently; missing or malformed values are 0.
func (a Attributes) Int(key string) int {
	return query.Int(a[key])
}

// Bool treats "1", "true", "yes" and "on" as true.
func (a Attributes) Bool(key string) bool {
	switch strings.ToLower(a.String(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// WithDefaults returns a copy where keys missing from a are filled from
// defaults. Supplied keys, empty or not, are never overridden.
func (a Attributes) WithDefaults(defaults map[string]string) Attributes {
	out := make(Attributes, len(a)+len(defaults))
	for key, value := range defaults {
		out[key] = value
	}
	for key, value := range a {
		out[key] = value
	}
	return out
}

// Pairs builds attributes from alternating key/value arguments. A trailing
// key without a value is recorded as present and empty.
func Pairs(args ...string) Attributes {
	out := make(Attributes, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key := strings.TrimSpace(args[i])
		if key == "" {
			continue
		}
		if i+1 < len(args) {
			out[key] = args[i+1]
		} else {
			out[key] = ""
		}
	}
	return out
}
