// Package filter narrows classified device rows by user criteria. All
// criteria are optional and conjunctive; a malformed criterion is
// skipped with a warning rather than failing the search.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"nethunter/core-go/internal/device"
)

// Criteria holds the raw filter inputs exactly as the caller supplied
// them. Ports and Category stay text until Apply so their validation
// warnings surface alongside the result instead of failing it.
type Criteria struct {
	Country  string
	Ports    string
	Product  string
	Category string
}

// Empty reports whether no criterion is set.
func (c Criteria) Empty() bool {
	return strings.TrimSpace(c.Country) == "" &&
		strings.TrimSpace(c.Ports) == "" &&
		strings.TrimSpace(c.Product) == "" &&
		strings.TrimSpace(c.Category) == ""
}

// Warning reports a criterion that could not be applied. The filter it
// names was skipped; all other filters still ran.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParsePorts parses comma-separated port text into a port set. Any
// non-integer entry invalidates the whole list.
func ParsePorts(text string) ([]int, error) {
	parts := strings.Split(text, ",")
	ports := make([]int, 0, len(parts))
	for _, part := range parts {
		p, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid port %q", strings.TrimSpace(part))
		}
		ports = append(ports, p)
	}
	return ports, nil
}

// Apply runs every set criterion over rows and returns the surviving
// subset plus warnings for criteria that were skipped. Filters AND
// together; an intermediate empty set is a valid outcome and later
// filters still run. Rows are never mutated, only selected.
func Apply(rows []device.Row, c Criteria) ([]device.Row, []Warning) {
	out := rows
	var warnings []Warning

	if country := strings.TrimSpace(c.Country); country != "" {
		out = keep(out, func(r device.Row) bool {
			return strings.EqualFold(r.Country, country)
		})
	}

	if portText := strings.TrimSpace(c.Ports); portText != "" {
		ports, err := ParsePorts(portText)
		if err != nil {
			warnings = append(warnings, Warning{
				Field:   "ports",
				Message: fmt.Sprintf("%v, port filter skipped", err),
			})
		} else {
			set := make(map[int]struct{}, len(ports))
			for _, p := range ports {
				set[p] = struct{}{}
			}
			out = keep(out, func(r device.Row) bool {
				_, ok := set[r.Port]
				return ok
			})
		}
	}

	if product := strings.TrimSpace(c.Product); product != "" {
		needle := strings.ToLower(product)
		out = keep(out, func(r device.Row) bool {
			return strings.Contains(strings.ToLower(r.Product), needle)
		})
	}

	if categoryText := strings.TrimSpace(c.Category); categoryText != "" {
		category, ok := device.ParseCategory(categoryText)
		if !ok {
			warnings = append(warnings, Warning{
				Field:   "category",
				Message: fmt.Sprintf("unknown category %q, category filter skipped", categoryText),
			})
		} else {
			out = keep(out, func(r device.Row) bool {
				return r.Category == category
			})
		}
	}

	return out, warnings
}

func keep(rows []device.Row, pred func(device.Row) bool) []device.Row {
	out := make([]device.Row, 0, len(rows))
	for _, r := range rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
