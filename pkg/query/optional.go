package query

// Optional is a tag attribute value that remembers whether it was supplied.
// The zero value is unset; Some("") is present but empty, which is distinct
// from unset for filter precedence.
type Optional struct {
	value string
	set   bool
}

// Some returns a present Optional holding value.
func Some(value string) Optional {
	return Optional{value: value, set: true}
}

// FromMap reads key from attrs, keeping presence.
func FromMap(attrs map[string]string, key string) Optional {
	if attrs == nil {
		return Optional{}
	}
	value, ok := attrs[key]
	if !ok {
		return Optional{}
	}
	return Some(value)
}

// IsSet reports whether the attribute was supplied, even as an empty value.
func (o Optional) IsSet() bool {
	return o.set
}

// HasValue reports whether the attribute was supplied with a non-blank value.
func (o Optional) HasValue() bool {
	return o.set && trim(o.value) != ""
}

// Value returns the raw value; empty when unset.
func (o Optional) Value() string {
	return o.value
}

// Or returns the value when set, otherwise fallback.
func (o Optional) Or(fallback string) string {
	if o.set {
		return o.value
	}
	return fallback
}
