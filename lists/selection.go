package lists

import (
	"errors"
	"slices"

	"github.com/pocketbase/pocketbase/tools/list"
)

// ErrNothingSelected is returned by Selection.Apply when no row is checked.
var ErrNothingSelected = errors.New("no rows selected")

// Selection tracks the checked rows of a table by id.
type Selection struct {
	ids []int
}

// Toggle checks id if unchecked and unchecks it otherwise.
func (s *Selection) Toggle(id int) {
	if s.IsSelected(id) {
		s.ids = list.SubtractSlice(s.ids, []int{id})
		return
	}
	s.Select(id)
}

// Select checks the given ids. Zero ids are ignored.
func (s *Selection) Select(ids ...int) {
	s.ids = list.NonzeroUniques(append(s.ids, ids...))
}

// Deselect unchecks the given ids.
func (s *Selection) Deselect(ids ...int) {
	s.ids = list.SubtractSlice(s.ids, ids)
}

// SelectAll replaces the selection with ids, or clears it when every one of
// ids is already checked (the header checkbox behaviour).
func (s *Selection) SelectAll(ids []int) {
	ids = list.NonzeroUniques(ids)
	if len(ids) > 0 && len(list.SubtractSlice(ids, s.ids)) == 0 {
		s.Clear()
		return
	}
	s.ids = ids
}

func (s *Selection) Clear() { s.ids = nil }

func (s *Selection) IsSelected(id int) bool {
	return list.ExistInSlice(id, s.ids)
}

func (s *Selection) Count() int { return len(s.ids) }

// IDs returns the checked ids in ascending order.
func (s *Selection) IDs() []int {
	out := slices.Clone(s.ids)
	slices.Sort(out)
	return out
}

// Retain drops checked ids that are no longer present, e.g. after a delete
// or a refetch.
func (s *Selection) Retain(present []int) {
	s.ids = list.SubtractSlice(s.ids, list.SubtractSlice(s.ids, present))
}

// Apply hands the checked ids to a bulk action and clears the selection when
// it succeeds.
func (s *Selection) Apply(action func(ids []int) error) error {
	if len(s.ids) == 0 {
		return ErrNothingSelected
	}
	if err := action(s.IDs()); err != nil {
		return err
	}
	s.Clear()
	return nil
}
