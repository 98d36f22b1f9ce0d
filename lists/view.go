// Package lists implements the client-side part of the admin tables:
// search, exact-match filters, sorting, grouping, pagination and row
// selection.
package lists

import (
	"slices"
	"strings"
)

// DefaultPageSize is used when a View has no page size set.
const DefaultPageSize = 25

// View filters, sorts and pages an in-memory list. The zero value is not
// usable; create one with NewView.
type View[T any] struct {
	searchFields func(T) []string
	fields       map[string]func(T) string
	sorters      map[string]func(a, b T) int

	search   string
	filters  map[string]string
	sortKey  string
	desc     bool
	page     int
	pageSize int
}

// NewView creates a view whose search matches any of the strings returned
// by searchFields.
func NewView[T any](searchFields func(T) []string) *View[T] {
	return &View[T]{
		searchFields: searchFields,
		fields:       make(map[string]func(T) string),
		sorters:      make(map[string]func(a, b T) int),
		filters:      make(map[string]string),
		page:         1,
		pageSize:     DefaultPageSize,
	}
}

// Field registers a filterable field. Filters compare the returned string
// for equality.
func (v *View[T]) Field(key string, value func(T) string) *View[T] {
	v.fields[key] = value
	return v
}

// Sorter registers a sort order under key.
func (v *View[T]) Sorter(key string, cmp func(a, b T) int) *View[T] {
	v.sorters[key] = cmp
	return v
}

// SetSearch changes the search text and goes back to the first page.
func (v *View[T]) SetSearch(s string) {
	v.search = strings.TrimSpace(s)
	v.page = 1
}

func (v *View[T]) Search() string { return v.search }

// SetFilter sets an exact-match filter. An empty value removes it.
func (v *View[T]) SetFilter(key, value string) {
	if value == "" {
		delete(v.filters, key)
	} else {
		v.filters[key] = value
	}
	v.page = 1
}

// Filter returns the current value of a filter ("" when unset).
func (v *View[T]) Filter(key string) string { return v.filters[key] }

// ClearFilters drops the search text and every filter.
func (v *View[T]) ClearFilters() {
	v.search = ""
	clear(v.filters)
	v.page = 1
}

// SortBy selects a registered sort order. Unknown keys keep input order.
func (v *View[T]) SortBy(key string, desc bool) {
	v.sortKey = key
	v.desc = desc
}

// SetPage selects a 1-based page. Out-of-range pages are clamped by Apply.
func (v *View[T]) SetPage(page int) {
	v.page = max(page, 1)
}

// SetPageSize changes the page size. Zero or negative disables paging.
func (v *View[T]) SetPageSize(size int) {
	v.pageSize = size
	v.page = 1
}

// Result is one rendered page of a View.
type Result[T any] struct {
	Items []T
	// Filtered counts every item that passed search and filters.
	Filtered int
	// Total is the length of the unfiltered input.
	Total int
	Page  int
	Pages int
}

// Matches reports whether item passes the current search and filters.
func (v *View[T]) Matches(item T) bool {
	if v.search != "" && v.searchFields != nil {
		found := false
		for _, s := range v.searchFields(item) {
			if ContainsFold(s, v.search) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for key, want := range v.filters {
		field, ok := v.fields[key]
		if !ok {
			continue
		}
		if field(item) != want {
			return false
		}
	}
	return true
}

// Apply runs the view over items. The input slice is never modified.
func (v *View[T]) Apply(items []T) Result[T] {
	filtered := make([]T, 0, len(items))
	for _, it := range items {
		if v.Matches(it) {
			filtered = append(filtered, it)
		}
	}

	if cmp, ok := v.sorters[v.sortKey]; ok {
		slices.SortStableFunc(filtered, func(a, b T) int {
			if v.desc {
				return cmp(b, a)
			}
			return cmp(a, b)
		})
	}

	pageItems, page, pages := Paginate(filtered, v.page, v.pageSize)
	return Result[T]{
		Items:    pageItems,
		Filtered: len(filtered),
		Total:    len(items),
		Page:     page,
		Pages:    pages,
	}
}

// ContainsFold is a case-insensitive substring match.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Paginate returns the requested 1-based page, clamped to the valid range,
// along with the page number used and the page count. A size of zero or
// less returns everything as a single page.
func Paginate[T any](items []T, page, size int) ([]T, int, int) {
	if size <= 0 {
		return items, 1, 1
	}
	pages := (len(items) + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	page = min(max(page, 1), pages)

	start := (page - 1) * size
	end := min(start+size, len(items))
	if start >= len(items) {
		return []T{}, page, pages
	}
	return items[start:end], page, pages
}
