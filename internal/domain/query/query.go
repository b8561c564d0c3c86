// Package query implements the filter, sort and paginate contract shared by
// every list-oriented feature.
//
// The engine is stateless. A Schema describes which parts of a record type
// can be searched, filtered and sorted; a Spec carries the caller's
// predicates. Fields a Schema does not declare impose no constraint, and an
// unknown sort key falls back to the Schema's default.
package query

import (
	"slices"
	"strings"
)

// StatusAll is the status value that imposes no constraint.
const StatusAll = "all"

// Field extracts a categorical value from a record.
type Field[T any] struct {
	Get func(T) string
	// FoldCase makes equality case-insensitive.
	FoldCase bool
}

// Schema describes the queryable surface of a record type.
type Schema[T any] struct {
	// Text returns the fields searched by Spec.Search.
	Text func(T) []string
	// Fields are categorical equality filters, keyed by name.
	Fields map[string]Field[T]
	// Numbers are threshold filters, keyed by name.
	Numbers map[string]func(T) float64
	// Statuses are named membership predicates.
	Statuses map[string]func(T) bool
	// Sorts are three-way comparators, keyed by sort name.
	Sorts map[string]func(a, b T) int
	// DefaultSort is used when Spec.Sort is empty or unknown.
	DefaultSort string
}

// Spec is the set of optional predicates and the sort key applied to a
// collection. The zero Spec matches everything in default order.
type Spec struct {
	Search  string
	Equals  map[string]string
	AtLeast map[string]float64
	Status  string
	Sort    string
}

// Apply returns a new slice holding the records that satisfy spec, sorted by
// the requested key. Ties keep their input order. records is not modified.
func Apply[T any](records []T, schema Schema[T], spec Spec) []T {
	needle := strings.ToLower(strings.TrimSpace(spec.Search))

	out := make([]T, 0, len(records))
	for _, rec := range records {
		if matches(rec, schema, spec, needle) {
			out = append(out, rec)
		}
	}

	if cmp := SortFunc(schema, spec.Sort); cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

// SortFunc resolves a sort key against the schema, falling back to the
// default key. It returns nil when neither is declared.
func SortFunc[T any](schema Schema[T], key string) func(a, b T) int {
	if cmp, ok := schema.Sorts[key]; ok {
		return cmp
	}
	return schema.Sorts[schema.DefaultSort]
}

func matches[T any](rec T, schema Schema[T], spec Spec, needle string) bool {
	if needle != "" && schema.Text != nil && !containsAny(schema.Text(rec), needle) {
		return false
	}

	for name, want := range spec.Equals {
		want = strings.TrimSpace(want)
		field, ok := schema.Fields[name]
		if want == "" || !ok {
			continue
		}
		got := field.Get(rec)
		if field.FoldCase {
			if !strings.EqualFold(got, want) {
				return false
			}
		} else if got != want {
			return false
		}
	}

	for name, threshold := range spec.AtLeast {
		get, ok := schema.Numbers[name]
		if threshold <= 0 || !ok {
			continue
		}
		if get(rec) < threshold {
			return false
		}
	}

	if spec.Status != "" && spec.Status != StatusAll {
		if pred, ok := schema.Statuses[spec.Status]; ok && !pred(rec) {
			return false
		}
	}
	return true
}

func containsAny(fields []string, needle string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Page is one window of a filtered result.
type Page[T any] struct {
	Items    []T  `json:"items"`
	Total    int  `json:"total"`
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasMore  bool `json:"has_more"`
}

// Paginate returns the page-th window (1-based) of pageSize items.
// A pageSize <= 0 returns all items on page 1; page < 1 is treated as 1.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	total := len(items)
	if pageSize <= 0 {
		return Page[T]{Items: items, Total: total, Page: 1, PageSize: total}
	}
	if page < 1 {
		page = 1
	}
	// Compare before multiplying so a huge page cannot overflow.
	start := total
	if page-1 <= total/pageSize {
		start = min((page-1)*pageSize, total)
	}
	end := total
	if pageSize < total-start {
		end = start + pageSize
	}
	return Page[T]{
		Items:    items[start:end],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  end < total,
	}
}
