package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Page is one normalized list response.
type Page[T any] struct {
	Items   []T
	Total   int
	HasNext bool
}

// envelope is the paginated shape some list endpoints answer with.
type envelope[T any] struct {
	Results  []T     `json:"results"`
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// decodePage accepts either a bare JSON array or a page envelope.
func decodePage[T any](raw json.RawMessage) (Page[T], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Page[T]{Items: []T{}}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Page[T]{}, fmt.Errorf("decode list: %w", err)
		}
		if items == nil {
			items = []T{}
		}
		return Page[T]{Items: items, Total: len(items)}, nil
	}

	var env envelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Page[T]{}, fmt.Errorf("decode page: %w", err)
	}
	if env.Results == nil {
		env.Results = []T{}
	}
	total := env.Count
	if total < len(env.Results) {
		total = len(env.Results)
	}
	return Page[T]{
		Items:   env.Results,
		Total:   total,
		HasNext: env.Next != nil && *env.Next != "",
	}, nil
}

// ListParams are the filters and pagination of a list request.
// Filters are sent verbatim as query parameters; empty values are dropped.
type ListParams struct {
	Search   string
	Filters  map[string]string
	Page     int
	PageSize int
}

// Query renders the params as url.Values.
func (p ListParams) Query() url.Values {
	q := url.Values{}
	for k, v := range p.Filters {
		if v != "" {
			q.Set(k, v)
		}
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	return q
}

// With returns a copy of p with one more filter set.
func (p ListParams) With(key, value string) ListParams {
	filters := make(map[string]string, len(p.Filters)+1)
	for k, v := range p.Filters {
		filters[k] = v
	}
	filters[key] = value
	p.Filters = filters
	return p
}
