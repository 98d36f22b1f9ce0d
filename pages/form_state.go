package pages

import (
	"errors"
	"fmt"
)

// FormStatus is what the page's form is currently doing.
type FormStatus int

const (
	FormClosed FormStatus = iota
	FormCreating
	FormEditing
)

func (s FormStatus) String() string {
	switch s {
	case FormCreating:
		return "creating"
	case FormEditing:
		return "editing"
	default:
		return "closed"
	}
}

// ErrInvalidTransition is returned when the form is asked to open while
// it is already open for something else.
var ErrInvalidTransition = errors.New("invalid form transition")

// FormState is the closed / creating / editing(id) machine of a screen.
// The zero value is closed.
type FormState struct {
	status FormStatus
	id     int
}

func (s FormState) Status() FormStatus { return s.status }

// ID is the record being edited, 0 unless editing.
func (s FormState) ID() int { return s.id }

func (s FormState) IsOpen() bool { return s.status != FormClosed }

func (s FormState) String() string {
	if s.status == FormEditing {
		return fmt.Sprintf("editing(%d)", s.id)
	}
	return s.status.String()
}

// OpenCreate moves closed -> creating. Opening create twice is a no-op.
func (s *FormState) OpenCreate() error {
	switch s.status {
	case FormClosed:
		s.status = FormCreating
		return nil
	case FormCreating:
		return nil
	default:
		return fmt.Errorf("%w: create while %s", ErrInvalidTransition, s)
	}
}

// OpenEdit moves closed -> editing(id). Re-opening the same record is a
// no-op; anything else must close first.
func (s *FormState) OpenEdit(id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: edit needs a record id", ErrInvalidTransition)
	}
	switch {
	case s.status == FormClosed:
		s.status, s.id = FormEditing, id
		return nil
	case s.status == FormEditing && s.id == id:
		return nil
	default:
		return fmt.Errorf("%w: edit %d while %s", ErrInvalidTransition, id, s)
	}
}

func (s *FormState) Close() {
	s.status, s.id = FormClosed, 0
}
