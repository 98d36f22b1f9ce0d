// Package stores holds the in-memory state of each admin screen: the
// fetched list, its load state and last error, plus the resource-specific
// actions and derived views built on top of it.
//
// Every store guards its state with a mutex and tags each request with a
// generation number. A list response is applied only if no newer fetch was
// started in the meantime, and an update response only if no newer update
// of the same record was started. The last request started wins.
package stores

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/pocketbase/pocketbase/tools/hook"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

// State is the load state of a store.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
)

// Entity is a backend record addressed by an integer id.
type Entity interface {
	GetID() int
}

// Backend is the CRUD surface a Store drives. *api.Resource and the typed
// api clients embedding it satisfy it.
type Backend[T Entity] interface {
	List(ctx context.Context, params api.ListParams) (api.Page[T], error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id int, item T) (T, error)
	Delete(ctx context.Context, id int) error
	SetActive(ctx context.Context, id int, active bool) (T, error)
}

// ChangeKind says what happened to the list.
type ChangeKind string

const (
	ChangeLoaded  ChangeKind = "loaded"
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// ChangeEvent is triggered after the local list changed. ID and Item are
// zero for ChangeLoaded. Handlers must call e.Next() to continue the chain.
type ChangeEvent[T Entity] struct {
	hook.Event

	Kind ChangeKind
	ID   int
	Item T
}

type options struct {
	logger *slog.Logger
	today  func() models.Date
}

// Option configures a store.
type Option func(*options)

// WithLogger sets the logger used for discarded responses and failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithToday overrides the clock used for date-based derived views.
func WithToday(fn func() models.Date) Option {
	return func(o *options) {
		if fn != nil {
			o.today = fn
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default(), today: models.Today}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Store is the generic list state of one backend resource.
type Store[T Entity] struct {
	backend  Backend[T]
	logger   *slog.Logger
	onChange *hook.Hook[*ChangeEvent[T]]

	mu        sync.RWMutex
	items     []T
	total     int
	hasNext   bool
	loaded    bool
	params    api.ListParams
	inflight  int
	err       error
	fetchGen  uint64
	updateGen map[int]uint64
}

// NewStore creates an empty store over backend.
func NewStore[T Entity](backend Backend[T], opts ...Option) *Store[T] {
	o := buildOptions(opts)
	return &Store[T]{
		backend:   backend,
		logger:    o.logger,
		onChange:  &hook.Hook[*ChangeEvent[T]]{},
		items:     []T{},
		updateGen: make(map[int]uint64),
	}
}

// OnChange is triggered after every local list mutation.
func (s *Store[T]) OnChange() *hook.Hook[*ChangeEvent[T]] {
	return s.onChange
}

// Items returns a copy of the current list.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Find returns the record with the given id.
func (s *Store[T]) Find(id int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Total is the server-side count of the last fetch, adjusted by local
// creates and deletes.
func (s *Store[T]) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// HasNext reports whether the last fetched page has a successor.
func (s *Store[T]) HasNext() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasNext
}

// Loaded reports whether at least one fetch succeeded.
func (s *Store[T]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Params returns the parameters of the last fetch started.
func (s *Store[T]) Params() api.ListParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

func (s *Store[T]) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.inflight > 0 {
		return StateLoading
	}
	return StateIdle
}

// Err is the error of the last failed request, cleared when a new fetch starts.
func (s *Store[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// ErrMessage is Err as display text ("" when there is no error).
func (s *Store[T]) ErrMessage() string {
	if err := s.Err(); err != nil {
		return err.Error()
	}
	return ""
}

// ClearErr forgets the last error.
func (s *Store[T]) ClearErr() {
	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()
}

func (s *Store[T]) indexLocked(id int) int {
	return slices.IndexFunc(s.items, func(it T) bool { return it.GetID() == id })
}

func (s *Store[T]) begin() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

// finishLocked ends a request. Cancelled requests are not recorded as errors.
func (s *Store[T]) finishLocked(err error) {
	s.inflight--
	if err != nil && !errors.Is(err, context.Canceled) {
		s.err = err
	}
}

func (s *Store[T]) trigger(kind ChangeKind, id int, item T) {
	e := &ChangeEvent[T]{Kind: kind, ID: id, Item: item}
	if err := s.onChange.Trigger(e); err != nil {
		s.logger.Warn("store change handler failed", "kind", kind, "id", id, "error", err)
	}
}

// Fetch replaces the list with the result of a list request.
func (s *Store[T]) Fetch(ctx context.Context, params api.ListParams) error {
	return s.load(ctx, params, s.backend.List)
}

// Refresh repeats the last fetch.
func (s *Store[T]) Refresh(ctx context.Context) error {
	return s.Fetch(ctx, s.Params())
}

// load runs list and applies its page unless a newer load started meanwhile.
func (s *Store[T]) load(ctx context.Context, params api.ListParams, list func(context.Context, api.ListParams) (api.Page[T], error)) error {
	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.params = params
	s.inflight++
	s.err = nil
	s.mu.Unlock()

	page, err := list(ctx, params)

	s.mu.Lock()
	if gen != s.fetchGen {
		s.inflight--
		s.mu.Unlock()
		s.logger.Debug("discarding stale list response", "generation", gen)
		return nil
	}
	s.finishLocked(err)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.items = page.Items
	if s.items == nil {
		s.items = []T{}
	}
	s.total = page.Total
	s.hasNext = page.HasNext
	s.loaded = true
	s.mu.Unlock()

	var zero T
	s.trigger(ChangeLoaded, 0, zero)
	return nil
}

// Create saves a new record and prepends the server's copy.
func (s *Store[T]) Create(ctx context.Context, item T) (T, error) {
	return s.insert(ctx, func(ctx context.Context) (T, error) {
		return s.backend.Create(ctx, item)
	})
}

// insert runs a request that yields a new record and prepends it.
func (s *Store[T]) insert(ctx context.Context, call func(context.Context) (T, error)) (T, error) {
	s.begin()
	created, err := call(ctx)

	s.mu.Lock()
	s.finishLocked(err)
	if err != nil {
		s.mu.Unlock()
		return created, err
	}
	s.items = slices.Insert(s.items, 0, created)
	s.total++
	s.mu.Unlock()

	s.trigger(ChangeCreated, created.GetID(), created)
	return created, nil
}

// Update replaces the record with the given id, keeping its position.
func (s *Store[T]) Update(ctx context.Context, id int, item T) (T, error) {
	return s.mutate(ctx, id, func(ctx context.Context) (T, error) {
		return s.backend.Update(ctx, id, item)
	})
}

// ToggleStatus sends only the is_active flag.
func (s *Store[T]) ToggleStatus(ctx context.Context, id int, active bool) (T, error) {
	return s.mutate(ctx, id, func(ctx context.Context) (T, error) {
		return s.backend.SetActive(ctx, id, active)
	})
}

// mutate runs a request that returns the new version of record id and
// swaps it in, unless a newer mutation of the same record was started.
func (s *Store[T]) mutate(ctx context.Context, id int, call func(context.Context) (T, error)) (T, error) {
	s.mu.Lock()
	s.updateGen[id]++
	gen := s.updateGen[id]
	s.inflight++
	s.mu.Unlock()

	updated, err := call(ctx)

	s.mu.Lock()
	if gen != s.updateGen[id] {
		s.inflight--
		s.mu.Unlock()
		s.logger.Debug("discarding stale update response", "id", id, "generation", gen)
		return updated, err
	}
	s.finishLocked(err)
	if err != nil {
		s.mu.Unlock()
		return updated, err
	}
	if i := s.indexLocked(id); i >= 0 {
		s.items[i] = updated
	}
	s.mu.Unlock()

	s.trigger(ChangeUpdated, id, updated)
	return updated, nil
}

// replaceAll swaps in several server copies at once without touching the
// per-record generations; used for batch endpoints.
func (s *Store[T]) replaceAll(items []T) {
	if len(items) == 0 {
		return
	}
	s.mu.Lock()
	for _, it := range items {
		if i := s.indexLocked(it.GetID()); i >= 0 {
			s.items[i] = it
		}
	}
	s.mu.Unlock()

	for _, it := range items {
		s.trigger(ChangeUpdated, it.GetID(), it)
	}
}

// Delete removes the record with the given id after the server confirms.
func (s *Store[T]) Delete(ctx context.Context, id int) error {
	s.begin()
	err := s.backend.Delete(ctx, id)

	s.mu.Lock()
	s.finishLocked(err)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	var removed T
	if i := s.indexLocked(id); i >= 0 {
		removed = s.items[i]
		s.items = slices.Delete(s.items, i, i+1)
		s.total = max(s.total-1, 0)
	}
	delete(s.updateGen, id)
	s.mu.Unlock()

	s.trigger(ChangeDeleted, id, removed)
	return nil
}
