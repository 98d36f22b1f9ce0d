// Package forms holds the editable drafts behind the admin forms. Inputs
// are kept as the strings the user typed and are only parsed and validated
// on submit; editing a field clears the error shown under it.
package forms

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
)

// SubmitKey holds errors that belong to the save as a whole rather than to
// one field.
const SubmitKey = "submit"

var (
	// ErrInvalid is returned by Submit when client-side validation failed.
	ErrInvalid = errors.New("form has validation errors")
	// ErrBusy is returned by Submit while a previous submit is running.
	ErrBusy = errors.New("form is already submitting")
	// ErrUnknownField is returned by Set for a field the form does not have.
	ErrUnknownField = errors.New("unknown field")
)

// Errors maps a field name to the message shown under it.
type Errors map[string]string

// Mode says whether a form creates a new record or edits an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// SaveFunc persists the entity built from a form.
type SaveFunc[T any] func(ctx context.Context, item T) (T, error)

// state is the part every form shares: errors, the submitting flag and
// the record being edited.
type state struct {
	errs       Errors
	submitting bool
	mode       Mode
	editingID  int
}

func (s *state) Mode() Mode { return s.mode }

// EditingID is the id of the record being edited, 0 when creating.
func (s *state) EditingID() int { return s.editingID }

func (s *state) Submitting() bool { return s.submitting }

// Errors returns a copy of the current errors.
func (s *state) Errors() Errors {
	return maps.Clone(s.errs)
}

// Error returns the message for one field ("" if none).
func (s *state) Error(field string) string {
	return s.errs[field]
}

func (s *state) HasErrors() bool {
	return len(s.errs) > 0
}

func (s *state) clearErrors() {
	s.errs = Errors{}
}

func (s *state) clearField(field string) {
	delete(s.errs, field)
}

func (s *state) startCreate() {
	s.mode = ModeCreate
	s.editingID = 0
	s.clearErrors()
}

func (s *state) startEdit(id int) {
	s.mode = ModeEdit
	s.editingID = id
	s.clearErrors()
}

// setField assigns one of the form's string inputs.
func (s *state) setField(fields map[string]*string, field, value string) error {
	p, ok := fields[field]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	*p = strings.TrimSpace(value)
	s.clearField(field)
	return nil
}

// setBool assigns a checkbox input.
func (s *state) setBool(p *bool, field, value string) error {
	b, err := cast.ToBoolE(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s: %q is not a boolean", field, value)
	}
	*p = b
	s.clearField(field)
	return nil
}

// ApplyError records a failed save: server field errors land under their
// fields and the overall message under SubmitKey.
func (s *state) ApplyError(err error) {
	if s.errs == nil {
		s.errs = Errors{}
	}
	if apiErr, ok := api.AsError(err); ok {
		for field, msg := range apiErr.FieldMap() {
			s.errs[field] = msg
		}
		s.errs[SubmitKey] = apiErr.Message
		return
	}
	s.errs[SubmitKey] = err.Error()
}

// setValidation replaces the errors with the result of a validation run.
func (s *state) setValidation(err error) error {
	s.clearErrors()
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}
	for field, ferr := range verrs {
		s.errs[field] = ferr.Error()
	}
	return ErrInvalid
}

// submit runs validation, then save, and updates the shared state.
// onCreated runs after a successful create so the form can reset itself.
func submit[T any](ctx context.Context, s *state, validate func() error, build func() T, save SaveFunc[T], onCreated func()) (T, error) {
	var zero T
	if s.submitting {
		return zero, ErrBusy
	}
	if err := s.setValidation(validate()); err != nil {
		return zero, err
	}

	s.submitting = true
	saved, err := save(ctx, build())
	s.submitting = false
	if err != nil {
		s.ApplyError(err)
		return saved, err
	}

	if s.mode == ModeCreate && onCreated != nil {
		onCreated()
	}
	return saved, nil
}
