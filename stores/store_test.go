package stores

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

// gatedBackend answers from memory. A call whose key has a gate blocks
// until the gate is closed. List is keyed by the search text and updates
// by the new name.
type gatedBackend struct {
	mu      sync.Mutex
	pages   map[string][]models.CabinetType
	items   []models.CabinetType
	gates   map[string]chan struct{}
	started chan string
	fail    error
}

func newGatedBackend(items ...models.CabinetType) *gatedBackend {
	return &gatedBackend{
		pages:   map[string][]models.CabinetType{"": items},
		items:   items,
		gates:   make(map[string]chan struct{}),
		started: make(chan string, 16),
	}
}

func (f *gatedBackend) gate(key string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[key] = ch
	return ch
}

func (f *gatedBackend) wait(ctx context.Context, key string) error {
	f.mu.Lock()
	gate := f.gates[key]
	err := f.fail
	f.mu.Unlock()

	f.started <- key
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *gatedBackend) List(ctx context.Context, params api.ListParams) (api.Page[models.CabinetType], error) {
	if err := f.wait(ctx, params.Search); err != nil {
		return api.Page[models.CabinetType]{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	items := append([]models.CabinetType(nil), f.pages[params.Search]...)
	return api.Page[models.CabinetType]{Items: items, Total: len(items)}, nil
}

func (f *gatedBackend) Create(ctx context.Context, item models.CabinetType) (models.CabinetType, error) {
	if err := f.wait(ctx, "create"); err != nil {
		return models.CabinetType{}, err
	}
	item.ID = 100
	return item, nil
}

func (f *gatedBackend) Update(ctx context.Context, id int, item models.CabinetType) (models.CabinetType, error) {
	if err := f.wait(ctx, item.Name); err != nil {
		return models.CabinetType{}, err
	}
	item.ID = id
	return item, nil
}

func (f *gatedBackend) Delete(ctx context.Context, id int) error {
	return f.wait(ctx, "delete")
}

func (f *gatedBackend) SetActive(ctx context.Context, id int, active bool) (models.CabinetType, error) {
	if err := f.wait(ctx, "toggle"); err != nil {
		return models.CabinetType{}, err
	}
	for _, it := range f.items {
		if it.ID == id {
			it.IsActive = active
			return it, nil
		}
	}
	return models.CabinetType{}, &api.Error{Status: 404, Message: "Cabinet type not found"}
}

func awaitStart(t *testing.T, f *gatedBackend, key string) {
	t.Helper()
	select {
	case got := <-f.started:
		require.Equal(t, key, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("call %q never started", key)
	}
}

func fourTypes() []models.CabinetType {
	return []models.CabinetType{
		{ID: 1, Name: "Base", Category: 1, IsActive: true},
		{ID: 2, Name: "Wall", Category: 2, IsActive: true},
		{ID: 3, Name: "Tall", Category: 3, IsActive: true},
		{ID: 4, Name: "Corner", Category: 1, IsActive: false},
	}
}

func typeIDs(items []models.CabinetType) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func loadedStore(t *testing.T) (*Store[models.CabinetType], *gatedBackend) {
	t.Helper()
	f := newGatedBackend(fourTypes()...)
	s := NewStore[models.CabinetType](f)
	require.NoError(t, s.Fetch(context.Background(), api.ListParams{}))
	<-f.started
	return s, f
}

func TestStoreFetch(t *testing.T) {
	s, _ := loadedStore(t)

	assert.Equal(t, []int{1, 2, 3, 4}, typeIDs(s.Items()))
	assert.Equal(t, 4, s.Total())
	assert.True(t, s.Loaded())
	assert.Equal(t, StateIdle, s.State())
	assert.NoError(t, s.Err())
}

func TestStoreStaleFetchDiscarded(t *testing.T) {
	f := newGatedBackend()
	f.pages["old"] = []models.CabinetType{{ID: 1, Name: "Old"}}
	f.pages["new"] = []models.CabinetType{{ID: 2, Name: "New"}}
	s := NewStore[models.CabinetType](f)
	release := f.gate("old")

	done := make(chan error, 1)
	go func() { done <- s.Fetch(context.Background(), api.ListParams{Search: "old"}) }()
	awaitStart(t, f, "old")
	assert.Equal(t, StateLoading, s.State())

	require.NoError(t, s.Fetch(context.Background(), api.ListParams{Search: "new"}))
	awaitStart(t, f, "new")
	assert.Equal(t, StateLoading, s.State(), "older fetch still in flight")

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, []int{2}, typeIDs(s.Items()), "the last fetch started wins")
	assert.Equal(t, "new", s.Params().Search)
	assert.Equal(t, StateIdle, s.State())
}

func TestStoreStaleUpdateDiscarded(t *testing.T) {
	s, f := loadedStore(t)
	release := f.gate("First")

	done := make(chan error, 1)
	go func() {
		_, err := s.Update(context.Background(), 2, models.CabinetType{Name: "First"})
		done <- err
	}()
	awaitStart(t, f, "First")

	_, err := s.Update(context.Background(), 2, models.CabinetType{Name: "Second"})
	require.NoError(t, err)
	awaitStart(t, f, "Second")

	close(release)
	require.NoError(t, <-done)

	got, ok := s.Find(2)
	require.True(t, ok)
	assert.Equal(t, "Second", got.Name)
	assert.Equal(t, []int{1, 2, 3, 4}, typeIDs(s.Items()), "order preserved")
}

func TestStoreStaleUpdateFailureStillReported(t *testing.T) {
	s, f := loadedStore(t)
	release := f.gate("First")
	f.mu.Lock()
	f.fail = &api.Error{Status: 500, Message: "timeout writing record"}
	f.mu.Unlock()

	type outcome struct {
		item models.CabinetType
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		item, err := s.Update(context.Background(), 2, models.CabinetType{Name: "First"})
		done <- outcome{item, err}
	}()
	awaitStart(t, f, "First")

	f.mu.Lock()
	f.fail = nil
	f.mu.Unlock()
	_, err := s.Update(context.Background(), 2, models.CabinetType{Name: "Second"})
	require.NoError(t, err)
	awaitStart(t, f, "Second")

	close(release)
	got := <-done
	require.Error(t, got.err, "a failed call is never reported as a success")
	assert.Zero(t, got.item.ID)

	current, ok := s.Find(2)
	require.True(t, ok)
	assert.Equal(t, "Second", current.Name)
	assert.NoError(t, s.Err(), "the superseded failure is not recorded")
}

func TestStoreUpdatesOfDifferentRecordsDoNotConflict(t *testing.T) {
	s, f := loadedStore(t)
	release := f.gate("Slow")

	done := make(chan error, 1)
	go func() {
		_, err := s.Update(context.Background(), 1, models.CabinetType{Name: "Slow"})
		done <- err
	}()
	awaitStart(t, f, "Slow")

	_, err := s.Update(context.Background(), 3, models.CabinetType{Name: "Fast"})
	require.NoError(t, err)
	<-f.started

	close(release)
	require.NoError(t, <-done)

	first, _ := s.Find(1)
	third, _ := s.Find(3)
	assert.Equal(t, "Slow", first.Name)
	assert.Equal(t, "Fast", third.Name)
}

func TestStoreCreatePrepends(t *testing.T) {
	s, _ := loadedStore(t)

	created, err := s.Create(context.Background(), models.CabinetType{Name: "Island"})
	require.NoError(t, err)

	assert.Equal(t, 100, created.ID)
	assert.Equal(t, []int{100, 1, 2, 3, 4}, typeIDs(s.Items()))
	assert.Equal(t, 5, s.Total())
}

func TestStoreCreateFailureKeepsList(t *testing.T) {
	s, f := loadedStore(t)
	f.fail = &api.Error{Status: 400, Message: "name: This field is required."}

	_, err := s.Create(context.Background(), models.CabinetType{})
	require.Error(t, err)
	<-f.started

	assert.Equal(t, []int{1, 2, 3, 4}, typeIDs(s.Items()))
	assert.Equal(t, "name: This field is required.", s.ErrMessage())

	s.ClearErr()
	assert.Empty(t, s.ErrMessage())
}

func TestStoreDeleteRemovesExactlyOne(t *testing.T) {
	s, _ := loadedStore(t)

	require.NoError(t, s.Delete(context.Background(), 2))

	assert.Equal(t, []int{1, 3, 4}, typeIDs(s.Items()))
	assert.Equal(t, 3, s.Total())
	_, ok := s.Find(2)
	assert.False(t, ok)
}

func TestStoreToggleOnlyTouchesTarget(t *testing.T) {
	s, _ := loadedStore(t)
	before, _ := s.Find(3)

	updated, err := s.ToggleStatus(context.Background(), 1, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	first, _ := s.Find(1)
	third, _ := s.Find(3)
	assert.False(t, first.IsActive)
	assert.Equal(t, before, third)
}

func TestStoreFetchErrorAndCancel(t *testing.T) {
	f := newGatedBackend(fourTypes()...)
	s := NewStore[models.CabinetType](f)

	f.fail = errors.New("boom")
	assert.Error(t, s.Fetch(context.Background(), api.ListParams{}))
	<-f.started
	assert.EqualError(t, s.Err(), "boom")
	assert.False(t, s.Loaded())

	// a new fetch clears the previous error; a cancelled one records nothing
	f.fail = nil
	f.gate("")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Fetch(ctx, api.ListParams{}) }()
	awaitStart(t, f, "")
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
	assert.NoError(t, s.Err())
	assert.Equal(t, StateIdle, s.State())
}

func TestStoreOnChange(t *testing.T) {
	f := newGatedBackend(fourTypes()...)
	s := NewStore[models.CabinetType](f)

	var kinds []ChangeKind
	var ids []int
	s.OnChange().BindFunc(func(e *ChangeEvent[models.CabinetType]) error {
		kinds = append(kinds, e.Kind)
		ids = append(ids, e.ID)
		return e.Next()
	})

	ctx := context.Background()
	require.NoError(t, s.Fetch(ctx, api.ListParams{}))
	_, err := s.Create(ctx, models.CabinetType{Name: "Island"})
	require.NoError(t, err)
	_, err = s.Update(ctx, 1, models.CabinetType{Name: "Base 2"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, 4))

	assert.Equal(t, []ChangeKind{ChangeLoaded, ChangeCreated, ChangeUpdated, ChangeDeleted}, kinds)
	assert.Equal(t, []int{0, 100, 1, 4}, ids)
}
