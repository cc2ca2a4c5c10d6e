package query

import (
	"strings"
)

// DefaultSort is applied when a sort expression yields no usable order.
const DefaultSort = "linksort asc"

var sortColumns = map[string]struct{}{
	"id":          {},
	"linkname":    {},
	"url":         {},
	"description": {},
	"category":    {},
	"author":      {},
	"linksort":    {},
	"date":        {},
}

// Order is a single ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

// Sort is a parsed ORDER BY expression.
type Sort struct {
	Orders []Order
	Random bool
}

// ParseSort parses "col [asc|desc], ..." keeping only allowed columns.
// Terms with unknown columns or directions are dropped. "rand()" and
// "random" request random order.
func ParseSort(expr string) Sort {
	var out Sort
	for _, term := range SplitList(strings.ToLower(expr)) {
		if term == "rand()" || term == "random" {
			return Sort{Random: true}
		}
		fields := strings.Fields(term)
		if len(fields) == 0 || len(fields) > 2 {
			continue
		}
		column := fields[0]
		if _, ok := sortColumns[column]; !ok {
			continue
		}
		order := Order{Column: column}
		if len(fields) == 2 {
			switch fields[1] {
			case "asc":
			case "desc":
				order.Desc = true
			default:
				continue
			}
		}
		out.Orders = append(out.Orders, order)
	}
	if len(out.Orders) == 0 {
		return ParseSort(DefaultSort)
	}
	return out
}

// SQL renders the ORDER BY expression without the keyword.
func (s Sort) SQL() string {
	if s.Random {
		return "RANDOM()"
	}
	parts := make([]string, len(s.Orders))
	for i, order := range s.Orders {
		parts[i] = order.SQL()
	}
	return strings.Join(parts, ", ")
}

// SQL renders one ORDER BY term.
func (o Order) SQL() string {
	if o.Desc {
		return o.Column + " DESC"
	}
	return o.Column + " ASC"
}
