package query

import (
	"strconv"
	"strings"
)

// SplitList splits a comma separated list, trimming entries and dropping
// blanks and duplicates while keeping first-seen order.
func SplitList(input string) []string {
	if trim(input) == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return Unique(parts)
}

// Unique trims values and removes blanks and duplicates.
func Unique(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = trim(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

// Int coerces a loosely formatted number. Leading digits are honoured
// ("12abc" is 12) and anything non-numeric is 0.
func Int(input string) int {
	input = trim(input)
	if input == "" {
		return 0
	}
	if n, err := strconv.Atoi(input); err == nil {
		return n
	}
	end := 0
	if input[0] == '-' || input[0] == '+' {
		end = 1
	}
	for end < len(input) && input[end] >= '0' && input[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(input[:end])
	if err != nil {
		return 0
	}
	return n
}

func trim(value string) string {
	return strings.TrimSpace(value)
}
