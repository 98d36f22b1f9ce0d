// Package pages wires a store, a form and a list view into one admin
// screen. Pages own the form state machine and report outcomes as
// notifications. A page is driven from one goroutine; the stores behind it
// are safe to share.
package pages

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/forms"
	"github.com/Thaquidheen/hoch-frontend-sub002/lists"
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/stores"
)

var (
	// ErrFormClosed is returned by Submit when no form is open.
	ErrFormClosed = errors.New("form is not open")
	// ErrNotFound is returned when an id is not in the loaded list.
	ErrNotFound = errors.New("record not found")
	// ErrNoStatus is returned by ToggleStatus for records without is_active.
	ErrNoStatus = errors.New("record has no active flag")
)

const msgFixErrors = "Please fix the errors below"

// Store is the part of a resource store a CRUD screen drives.
type Store[T stores.Entity] interface {
	Items() []T
	Find(id int) (T, bool)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id int, item T) (T, error)
	Delete(ctx context.Context, id int) error
	ToggleStatus(ctx context.Context, id int, active bool) (T, error)
	State() stores.State
}

// Form is the part of a form draft a CRUD screen drives.
type Form[T any] interface {
	Reset()
	Edit(item T)
	Submit(ctx context.Context, save forms.SaveFunc[T]) (T, error)
	Errors() forms.Errors
}

// SaveFunc persists a submitted draft. st tells create from edit.
type SaveFunc[T any] func(ctx context.Context, st FormState, item T) (T, error)

// Options are shared by every page constructor.
type Options struct {
	Logger *slog.Logger
	Notify *Notifications
	// Today overrides the clock of date-based views.
	Today func() models.Date
	// PageSize is the client-side page size of list views.
	PageSize int
	// CompanyName heads quotations whose template has none.
	CompanyName string
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Notify == nil {
		o.Notify = NewNotifications(o.Logger)
	}
	if o.Today == nil {
		o.Today = models.Today
	}
	if o.PageSize <= 0 {
		o.PageSize = lists.DefaultPageSize
	}
	return o
}

func (o Options) storeOptions() []stores.Option {
	return []stores.Option{stores.WithLogger(o.Logger), stores.WithToday(o.Today)}
}

// Config assembles a CRUDPage.
type Config[T stores.Entity] struct {
	// Noun names one record in messages ("Cabinet type").
	Noun string
	// Plural names the list in load failures ("cabinet types").
	Plural string
	Store  Store[T]
	Form   Form[T]
	View   *lists.View[T]
	// Load fetches the screen's data. Required.
	Load func(ctx context.Context) error
	// Save overrides the default create/update through Store.
	Save SaveFunc[T]
	Options
}

// CRUDPage is the list + form screen shared by every editable resource.
type CRUDPage[T stores.Entity] struct {
	noun   string
	plural string
	store  Store[T]
	form   Form[T]
	view   *lists.View[T]
	load   func(ctx context.Context) error
	save   SaveFunc[T]
	logger *slog.Logger
	notify *Notifications

	state     FormState
	selection lists.Selection
	loadErr   error
}

func NewCRUDPage[T stores.Entity](cfg Config[T]) *CRUDPage[T] {
	opts := cfg.Options.withDefaults()
	view := cfg.View
	if view == nil {
		view = lists.NewView[T](nil)
	}
	view.SetPageSize(opts.PageSize)
	plural := cfg.Plural
	if plural == "" {
		plural = strings.ToLower(cfg.Noun) + "s"
	}
	return &CRUDPage[T]{
		noun:   cfg.Noun,
		plural: plural,
		store:  cfg.Store,
		form:   cfg.Form,
		view:   view,
		load:   cfg.Load,
		save:   cfg.Save,
		logger: opts.Logger,
		notify: opts.Notify,
	}
}

func (p *CRUDPage[T]) Notifications() *Notifications { return p.notify }

func (p *CRUDPage[T]) View() *lists.View[T] { return p.view }

func (p *CRUDPage[T]) Selection() *lists.Selection { return &p.selection }

func (p *CRUDPage[T]) FormState() FormState { return p.state }

// FormErrors are the errors of the open form.
func (p *CRUDPage[T]) FormErrors() forms.Errors { return p.form.Errors() }

func (p *CRUDPage[T]) Loading() bool {
	return p.store.State() == stores.StateLoading
}

// Load fetches the screen's data. A failure is kept for Retry and shown
// as an error notification.
func (p *CRUDPage[T]) Load(ctx context.Context) error {
	err := p.load(ctx)
	p.loadErr = err
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			p.notify.Error(fmt.Sprintf("Failed to load %s: %s", p.plural, errorMessage(err)))
		}
		return err
	}

	items := p.store.Items()
	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.GetID()
	}
	p.selection.Retain(ids)
	return nil
}

// LoadErr is the error of the last load, nil after a successful one.
func (p *CRUDPage[T]) LoadErr() error { return p.loadErr }

// Retry repeats the last load if it failed.
func (p *CRUDPage[T]) Retry(ctx context.Context) error {
	if p.loadErr == nil {
		return nil
	}
	return p.Load(ctx)
}

// Visible is the filtered, sorted and paginated list.
func (p *CRUDPage[T]) Visible() lists.Result[T] {
	return p.view.Apply(p.store.Items())
}

// OpenCreate opens an empty form. Calling it again keeps the draft.
func (p *CRUDPage[T]) OpenCreate() error {
	wasOpen := p.state.IsOpen()
	if err := p.state.OpenCreate(); err != nil {
		return err
	}
	if !wasOpen {
		p.form.Reset()
	}
	return nil
}

// OpenEdit opens the form seeded from record id.
func (p *CRUDPage[T]) OpenEdit(id int) error {
	item, ok := p.store.Find(id)
	if !ok {
		return fmt.Errorf("%s %d: %w", p.noun, id, ErrNotFound)
	}
	wasOpen := p.state.IsOpen()
	if err := p.state.OpenEdit(id); err != nil {
		return err
	}
	if !wasOpen {
		p.form.Edit(item)
	}
	return nil
}

// Close closes the form without saving.
func (p *CRUDPage[T]) Close() {
	p.state.Close()
}

// Submit saves the open form. Validation and server field errors stay on
// the form; other failures also raise an error notification. A successful
// save closes the form.
func (p *CRUDPage[T]) Submit(ctx context.Context) (T, error) {
	var zero T
	st := p.state
	if !st.IsOpen() {
		return zero, ErrFormClosed
	}

	saved, err := p.form.Submit(ctx, func(ctx context.Context, item T) (T, error) {
		if p.save != nil {
			return p.save(ctx, st, item)
		}
		if st.Status() == FormCreating {
			return p.store.Create(ctx, item)
		}
		return p.store.Update(ctx, st.ID(), item)
	})

	switch {
	case errors.Is(err, forms.ErrInvalid), api.IsValidation(err):
		p.notify.Warning(msgFixErrors)
	case errors.Is(err, forms.ErrBusy), errors.Is(err, context.Canceled):
	case err != nil:
		p.notify.Error(errorMessage(err))
	default:
		verb := "updated"
		if st.Status() == FormCreating {
			verb = "created"
		}
		p.notify.Success(fmt.Sprintf("%s %s successfully", p.noun, verb))
		p.state.Close()
	}
	return saved, err
}

// Delete removes record id. An open edit of that record is closed.
func (p *CRUDPage[T]) Delete(ctx context.Context, id int) error {
	if err := p.store.Delete(ctx, id); err != nil {
		if !errors.Is(err, context.Canceled) {
			p.notify.Error(errorMessage(err))
		}
		return err
	}
	if p.state.Status() == FormEditing && p.state.ID() == id {
		p.state.Close()
	}
	p.selection.Deselect(id)
	p.notify.Success(fmt.Sprintf("%s deleted successfully", p.noun))
	return nil
}

// ToggleStatus flips is_active on record id.
func (p *CRUDPage[T]) ToggleStatus(ctx context.Context, id int) (T, error) {
	item, ok := p.store.Find(id)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %d: %w", p.noun, id, ErrNotFound)
	}
	flag, ok := any(item).(interface{ Active() bool })
	if !ok {
		return item, ErrNoStatus
	}

	active := !flag.Active()
	updated, err := p.store.ToggleStatus(ctx, id, active)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			p.notify.Error(errorMessage(err))
		}
		return updated, err
	}
	verb := "deactivated"
	if active {
		verb = "activated"
	}
	p.notify.Success(fmt.Sprintf("%s %s", p.noun, verb))
	return updated, nil
}

// SelectAllVisible toggles the selection of every row on the current page.
func (p *CRUDPage[T]) SelectAllVisible() {
	res := p.Visible()
	ids := make([]int, len(res.Items))
	for i, it := range res.Items {
		ids[i] = it.GetID()
	}
	p.selection.SelectAll(ids)
}

// BulkAction runs action over the selected ids and clears the selection
// when it succeeds.
func (p *CRUDPage[T]) BulkAction(action func(ids []int) error) error {
	err := p.selection.Apply(action)
	switch {
	case errors.Is(err, lists.ErrNothingSelected):
		p.notify.Info("Select at least one row first")
	case err != nil:
		p.notify.Error(errorMessage(err))
	}
	return err
}

func errorMessage(err error) string {
	if apiErr, ok := api.AsError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
