// Package testhelpers provides an in-memory stand-in for the pricing backend.
package testhelpers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// RecordedRequest is one call the fake backend received.
type RecordedRequest struct {
	Method    string
	Path      string
	Query     url.Values
	Body      []byte
	RequestID string
}

type failure struct {
	status int
	body   string
}

type collection struct {
	nextID  int
	records []map[string]any
}

// Backend is a fake REST backend with generic list/create/read/update/delete
// behaviour for every seeded collection. Detail actions (compute, duplicate,
// ...) must be registered with Handle.
type Backend struct {
	Server *httptest.Server

	mu          sync.Mutex
	collections map[string]*collection
	handlers    map[string]http.HandlerFunc
	failures    map[string][]failure
	requests    []RecordedRequest
	paginated   bool
	pageSize    int
}

// NewBackend starts a fake backend that is closed when the test finishes.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		collections: make(map[string]*collection),
		handlers:    make(map[string]http.HandlerFunc),
		failures:    make(map[string][]failure),
		pageSize:    2,
	}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Server.Close)
	return b
}

// URL is the base URL to hand to api.NewClient.
func (b *Backend) URL() string {
	return b.Server.URL
}

// SetPaginated switches list responses between a bare array and the
// {results, count, next, previous} envelope.
func (b *Backend) SetPaginated(on bool, pageSize int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paginated = on
	if pageSize > 0 {
		b.pageSize = pageSize
	}
}

func normalizePath(p string) string {
	return "/" + strings.Trim(p, "/") + "/"
}

// Seed stores records (any JSON-encodable values) under a collection path
// and returns them as decoded maps. Records without an id get the next one.
func (b *Backend) Seed(t *testing.T, path string, records ...any) []map[string]any {
	t.Helper()

	b.mu.Lock()
	defer b.mu.Unlock()

	col := b.collectionLocked(normalizePath(path))
	var out []map[string]any
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("seed %s: marshal: %v", path, err)
		}
		var rec map[string]any
		if err := json.Unmarshal(data, &rec); err != nil {
			t.Fatalf("seed %s: unmarshal: %v", path, err)
		}
		col.insert(rec)
		out = append(out, rec)
	}
	return out
}

func (b *Backend) collectionLocked(path string) *collection {
	col, ok := b.collections[path]
	if !ok {
		col = &collection{nextID: 1}
		b.collections[path] = col
	}
	return col
}

func (c *collection) insert(rec map[string]any) {
	id := intOf(rec["id"])
	if id == 0 {
		id = c.nextID
		rec["id"] = float64(id)
	}
	if id >= c.nextID {
		c.nextID = id + 1
	}
	c.records = append(c.records, rec)
}

func (c *collection) find(id int) (int, map[string]any) {
	for i, rec := range c.records {
		if intOf(rec["id"]) == id {
			return i, rec
		}
	}
	return -1, nil
}

// Records returns a copy of what is currently stored under path.
func (b *Backend) Records(path string) []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()

	col, ok := b.collections[normalizePath(path)]
	if !ok {
		return nil
	}
	out := make([]map[string]any, len(col.records))
	copy(out, col.records)
	return out
}

// Handle registers a custom handler for an exact method and path, e.g.
// ("POST", "/api/pricing/project-line-items/4/compute/").
func (b *Backend) Handle(method, path string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[method+" "+normalizePath(path)] = h
}

// Fail makes the next request matching method and path answer with status
// and body instead of the normal behaviour.
func (b *Backend) Fail(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := method + " " + normalizePath(path)
	b.failures[key] = append(b.failures[key], failure{status: status, body: body})
}

// Requests returns every request received so far.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

// RequestCount counts requests with the given method whose path starts with prefix.
// An empty method matches any method.
func (b *Backend) RequestCount(method, prefix string) int {
	n := 0
	for _, r := range b.Requests() {
		if (method == "" || r.Method == method) && strings.HasPrefix(r.Path, prefix) {
			n++
		}
	}
	return n
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := normalizePath(r.URL.Path)
	key := r.Method + " " + path

	b.mu.Lock()
	b.requests = append(b.requests, RecordedRequest{
		Method:    r.Method,
		Path:      path,
		Query:     r.URL.Query(),
		Body:      body,
		RequestID: r.Header.Get("X-Request-ID"),
	})
	if queued := b.failures[key]; len(queued) > 0 {
		f := queued[0]
		b.failures[key] = queued[1:]
		b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, f.body)
		return
	}
	h, custom := b.handlers[key]
	b.mu.Unlock()

	if custom {
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		h(w, r)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// collection route
	if col, ok := b.collections[path]; ok {
		switch r.Method {
		case http.MethodGet:
			b.list(w, r, col)
		case http.MethodPost:
			var rec map[string]any
			if err := json.Unmarshal(body, &rec); err != nil {
				WriteJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid JSON"})
				return
			}
			delete(rec, "id")
			col.insert(rec)
			WriteJSON(w, http.StatusCreated, rec)
		default:
			WriteJSON(w, http.StatusMethodNotAllowed, map[string]any{"detail": "method not allowed"})
		}
		return
	}

	// detail route: <collection>/<id>/
	trimmed := strings.TrimSuffix(path, "/")
	slash := strings.LastIndex(trimmed, "/")
	parent, idStr := trimmed[:slash+1], trimmed[slash+1:]
	id, err := strconv.Atoi(idStr)
	col, ok := b.collections[parent]
	if err != nil || !ok {
		WriteJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found."})
		return
	}
	idx, rec := col.find(id)
	if rec == nil {
		WriteJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found."})
		return
	}

	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, rec)
	case http.MethodPut, http.MethodPatch:
		var patch map[string]any
		if err := json.Unmarshal(body, &patch); err != nil {
			WriteJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid JSON"})
			return
		}
		updated := make(map[string]any, len(rec))
		if r.Method == http.MethodPatch {
			for k, v := range rec {
				updated[k] = v
			}
		}
		for k, v := range patch {
			updated[k] = v
		}
		updated["id"] = float64(id)
		col.records[idx] = updated
		WriteJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		col.records = append(col.records[:idx], col.records[idx+1:]...)
		w.WriteHeader(http.StatusNoContent)
	default:
		WriteJSON(w, http.StatusMethodNotAllowed, map[string]any{"detail": "method not allowed"})
	}
}

func (b *Backend) list(w http.ResponseWriter, r *http.Request, col *collection) {
	q := r.URL.Query()
	var matched []map[string]any
	for _, rec := range col.records {
		if matches(rec, q) {
			matched = append(matched, rec)
		}
	}
	if matched == nil {
		matched = []map[string]any{}
	}

	if !b.paginated {
		WriteJSON(w, http.StatusOK, matched)
		return
	}

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(q.Get("page_size"))
	if size < 1 {
		size = b.pageSize
	}
	start := (page - 1) * size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}

	var next, previous any
	if end < len(matched) {
		nq := url.Values{}
		for k, v := range q {
			nq[k] = v
		}
		nq.Set("page", strconv.Itoa(page+1))
		next = b.Server.URL + r.URL.Path + "?" + nq.Encode()
	}
	if page > 1 {
		previous = fmt.Sprintf("%s%s?page=%d", b.Server.URL, r.URL.Path, page-1)
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"count":    len(matched),
		"next":     next,
		"previous": previous,
		"results":  matched[start:end],
	})
}

var reservedParams = map[string]bool{"page": true, "page_size": true, "search": true, "ordering": true}

// matches applies the query filters the fake understands: exact match on a
// field, "<field>__lte" string comparison, and "search" over name/description.
func matches(rec map[string]any, q url.Values) bool {
	if s := strings.ToLower(q.Get("search")); s != "" {
		name := strings.ToLower(fmt.Sprint(rec["name"]))
		desc := strings.ToLower(fmt.Sprint(rec["description"]))
		if !strings.Contains(name, s) && !strings.Contains(desc, s) {
			return false
		}
	}
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if reservedParams[k] {
			continue
		}
		want := q.Get(k)
		if field, ok := strings.CutSuffix(k, "__lte"); ok {
			if stringOf(rec[field]) > want {
				return false
			}
			continue
		}
		if stringOf(rec[k]) != want {
			return false
		}
	}
	return true
}

func stringOf(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

func intOf(v any) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	default:
		return 0
	}
}

// DecodeBody decodes a recorded request body into v or fails the test.
func DecodeBody(t *testing.T, req RecordedRequest, v any) {
	t.Helper()
	if err := json.Unmarshal(req.Body, v); err != nil {
		t.Fatalf("decode %s %s body: %v (body: %s)", req.Method, req.Path, err, truncate(string(req.Body), 200))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
