package lists

import (
	"cmp"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

func sampleCabinetTypes() []models.CabinetType {
	return []models.CabinetType{
		{ID: 1, Name: "Base Unit 600", Category: 1, Description: "Standard base", IsActive: true},
		{ID: 2, Name: "Wall Unit", Category: 2, Description: "Hung above worktop", IsActive: true},
		{ID: 3, Name: "Tall Pantry", Category: 3, Description: "Floor to ceiling", IsActive: false},
		{ID: 4, Name: "Corner Base", Category: 1, Description: "Blind corner", IsActive: true},
		{ID: 5, Name: "Sink Unit", Category: 1, Description: "Base with sink cut-out", IsActive: false},
	}
}

func cabinetTypeView() *View[models.CabinetType] {
	return NewView(func(c models.CabinetType) []string {
		return []string{c.Name, c.Description}
	}).
		Field("category", func(c models.CabinetType) string { return strconv.Itoa(c.Category) }).
		Field("active", func(c models.CabinetType) string { return strconv.FormatBool(c.IsActive) }).
		Sorter("name", func(a, b models.CabinetType) int { return cmp.Compare(a.Name, b.Name) })
}

func ids(items []models.CabinetType) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestViewNoFilterKeepsEverything(t *testing.T) {
	items := sampleCabinetTypes()
	res := cabinetTypeView().Apply(items)

	assert.Equal(t, len(items), res.Filtered)
	assert.Equal(t, len(items), res.Total)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(res.Items))
}

func TestViewSearch(t *testing.T) {
	tests := []struct {
		search string
		want   []int
	}{
		{"base", []int{1, 4, 5}},
		{"BASE", []int{1, 4, 5}},
		{"worktop", []int{2}},
		{"  pantry ", []int{3}},
		{"drawer", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			v := cabinetTypeView()
			v.SetSearch(tt.search)
			res := v.Apply(sampleCabinetTypes())
			assert.Equal(t, tt.want, ids(res.Items))
			assert.Equal(t, len(tt.want), res.Filtered)
		})
	}
}

func TestViewFilters(t *testing.T) {
	v := cabinetTypeView()
	v.SetFilter("category", "1")
	assert.Equal(t, []int{1, 4, 5}, ids(v.Apply(sampleCabinetTypes()).Items))

	v.SetFilter("active", "true")
	assert.Equal(t, []int{1, 4}, ids(v.Apply(sampleCabinetTypes()).Items))

	v.SetSearch("corner")
	assert.Equal(t, []int{4}, ids(v.Apply(sampleCabinetTypes()).Items))

	v.SetFilter("category", "")
	assert.Empty(t, v.Filter("category"))
	assert.Equal(t, []int{4}, ids(v.Apply(sampleCabinetTypes()).Items))

	v.ClearFilters()
	assert.Equal(t, 5, v.Apply(sampleCabinetTypes()).Filtered)

	// unknown filter keys are ignored
	v.SetFilter("colour", "red")
	assert.Equal(t, 5, v.Apply(sampleCabinetTypes()).Filtered)
}

func TestViewSortDoesNotMutateInput(t *testing.T) {
	items := sampleCabinetTypes()
	v := cabinetTypeView()

	v.SortBy("name", false)
	assert.Equal(t, []int{1, 4, 5, 3, 2}, ids(v.Apply(items).Items))

	v.SortBy("name", true)
	assert.Equal(t, []int{2, 3, 5, 4, 1}, ids(v.Apply(items).Items))

	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(items))
}

func TestViewPaging(t *testing.T) {
	v := cabinetTypeView()
	v.SetPageSize(2)

	res := v.Apply(sampleCabinetTypes())
	assert.Equal(t, []int{1, 2}, ids(res.Items))
	assert.Equal(t, 3, res.Pages)

	v.SetPage(3)
	res = v.Apply(sampleCabinetTypes())
	assert.Equal(t, []int{5}, ids(res.Items))

	v.SetPage(9)
	res = v.Apply(sampleCabinetTypes())
	assert.Equal(t, 3, res.Page)
	assert.Equal(t, []int{5}, ids(res.Items))

	// filtering resets to the first page
	v.SetSearch("unit")
	res = v.Apply(sampleCabinetTypes())
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 3, res.Filtered)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	got, page, pages := Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, got)
	assert.Equal(t, 2, page)
	assert.Equal(t, 3, pages)

	got, page, pages = Paginate(items, 0, 0)
	assert.Equal(t, items, got)
	assert.Equal(t, 1, page)
	assert.Equal(t, 1, pages)

	got, page, pages = Paginate([]int{}, 3, 10)
	assert.Empty(t, got)
	assert.Equal(t, 1, page)
	assert.Equal(t, 1, pages)
}

func TestGroupBy(t *testing.T) {
	groups := GroupBy(sampleCabinetTypes(), func(c models.CabinetType) int { return c.Category })

	require.Len(t, groups, 3)
	assert.Equal(t, 1, groups[0].Key)
	assert.Equal(t, []int{1, 4, 5}, ids(groups[0].Items))
	assert.Equal(t, 3, groups[0].Count())
	assert.Equal(t, 2, groups[1].Key)
	assert.Equal(t, 3, groups[2].Key)

	total := 0
	for _, g := range groups {
		total += g.Count()
	}
	assert.Equal(t, 5, total)

	counts := Counts(sampleCabinetTypes(), func(c models.CabinetType) bool { return c.IsActive })
	assert.Equal(t, map[bool]int{true: 3, false: 2}, counts)
}

func TestSelection(t *testing.T) {
	var s Selection

	s.Toggle(3)
	s.Toggle(1)
	s.Select(1, 0, 7)
	assert.Equal(t, []int{1, 3, 7}, s.IDs())
	assert.True(t, s.IsSelected(7))

	s.Toggle(3)
	assert.False(t, s.IsSelected(3))
	assert.Equal(t, 2, s.Count())

	s.Retain([]int{1, 2})
	assert.Equal(t, []int{1}, s.IDs())

	s.SelectAll([]int{1, 2, 4})
	assert.Equal(t, []int{1, 2, 4}, s.IDs())
	s.SelectAll([]int{4, 2, 1})
	assert.Zero(t, s.Count(), "second select-all clears")

	s.Deselect(9)
	assert.Zero(t, s.Count())
}

func TestSelectionApply(t *testing.T) {
	var s Selection
	assert.ErrorIs(t, s.Apply(func([]int) error { return nil }), ErrNothingSelected)

	s.Select(5, 2)
	boom := errors.New("boom")
	assert.ErrorIs(t, s.Apply(func([]int) error { return boom }), boom)
	assert.Equal(t, 2, s.Count(), "selection kept after a failed action")

	var got []int
	require.NoError(t, s.Apply(func(ids []int) error {
		got = ids
		return nil
	}))
	assert.Equal(t, []int{2, 5}, got)
	assert.Zero(t, s.Count())
}
