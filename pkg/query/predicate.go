package query

import (
	"errors"
	"strconv"
	"strings"
)

// Field names a filterable link column.
type Field string

const (
	FieldID       Field = "id"
	FieldName     Field = "linkname"
	FieldCategory Field = "category"
	FieldAuthor   Field = "author"
)

// ErrInvalidField is returned when a clause targets a column outside the allow list.
var ErrInvalidField = errors.New("query: invalid field")

// Valid reports whether the field may appear in a predicate.
func (f Field) Valid() bool {
	switch f {
	case FieldID, FieldName, FieldCategory, FieldAuthor:
		return true
	}
	return false
}

// Numeric reports whether values are compared as integers.
func (f Field) Numeric() bool {
	return f == FieldID
}

// Clause is a membership test of a column against one or more values.
type Clause struct {
	Field  Field
	Values []string
}

// In builds a membership clause. Values are trimmed and de-duplicated; id
// values are coerced to integers. ok is false when nothing remains.
func In(field Field, values ...string) (Clause, bool, error) {
	if !field.Valid() {
		return Clause{}, false, ErrInvalidField
	}
	values = Unique(values)
	if field.Numeric() {
		ids := make([]string, len(values))
		for i, value := range values {
			ids[i] = strconv.Itoa(Int(value))
		}
		values = Unique(ids)
	}
	if len(values) == 0 {
		return Clause{}, false, nil
	}
	return Clause{Field: field, Values: values}, true, nil
}

// Matches evaluates the clause against a value lookup.
func (c Clause) Matches(lookup func(field string) string) bool {
	actual := lookup(string(c.Field))
	if c.Field.Numeric() {
		actual = strconv.Itoa(Int(actual))
	}
	for _, value := range c.Values {
		if actual == value {
			return true
		}
	}
	return false
}

// SQL renders the clause with every value escaped.
func (c Clause) SQL() string {
	if len(c.Values) == 1 {
		return string(c.Field) + " = " + c.literal(c.Values[0])
	}
	parts := make([]string, len(c.Values))
	for i, value := range c.Values {
		parts[i] = c.literal(value)
	}
	return string(c.Field) + " IN (" + strings.Join(parts, ", ") + ")"
}

func (c Clause) literal(value string) string {
	if c.Field.Numeric() {
		return strconv.Itoa(Int(value))
	}
	return Quote(value)
}

// Quote escapes value as a single quoted SQL string literal.
func Quote(value string) string {
	value = strings.ReplaceAll(value, "\x00", "")
	value = strings.ReplaceAll(value, `\`, `\\`)
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// Predicate is an ordered list of clauses joined with AND. The zero value
// matches every record.
type Predicate struct {
	clauses []Clause
	empty   bool
}

// Universal matches all records.
func Universal() Predicate {
	return Predicate{}
}

// EmptyResult marks a selection that must render nothing.
func EmptyResult() Predicate {
	return Predicate{empty: true}
}

// And returns a copy of the predicate with c appended.
func (p Predicate) And(c Clause) Predicate {
	out := Predicate{empty: p.empty, clauses: make([]Clause, 0, len(p.clauses)+1)}
	out.clauses = append(out.clauses, p.clauses...)
	out.clauses = append(out.clauses, c)
	return out
}

// Clauses returns the clauses in insertion order.
func (p Predicate) Clauses() []Clause {
	return append([]Clause(nil), p.clauses...)
}

// IsEmptyResult reports whether the selection must short-circuit.
func (p Predicate) IsEmptyResult() bool {
	return p.empty
}

// IsUniversal reports whether the predicate matches every record.
func (p Predicate) IsUniversal() bool {
	return !p.empty && len(p.clauses) == 0
}

// Matches evaluates every clause against lookup.
func (p Predicate) Matches(lookup func(field string) string) bool {
	if p.empty {
		return false
	}
	for _, clause := range p.clauses {
		if !clause.Matches(lookup) {
			return false
		}
	}
	return true
}

// SQL renders the WHERE expression.
func (p Predicate) SQL() string {
	if p.empty {
		return "1 = 0"
	}
	if len(p.clauses) == 0 {
		return "1 = 1"
	}
	parts := make([]string, len(p.clauses))
	for i, clause := range p.clauses {
		parts[i] = clause.SQL()
	}
	return strings.Join(parts, " AND ")
}

func (p Predicate) String() string {
	return p.SQL()
}
