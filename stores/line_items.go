package stores

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

// LineItemStore holds the line items of one project.
type LineItemStore struct {
	*Store[models.LineItem]

	client  *api.LineItems
	project int
}

func NewLineItemStore(c *api.Client, project int, opts ...Option) *LineItemStore {
	client := api.NewLineItems(c)
	return &LineItemStore{
		Store:   NewStore[models.LineItem](client, opts...),
		client:  client,
		project: project,
	}
}

// Project is the project id the store is scoped to.
func (s *LineItemStore) Project() int { return s.project }

// Load fetches every line item of the project.
func (s *LineItemStore) Load(ctx context.Context) error {
	return s.Fetch(ctx, api.ListParams{}.With("project", strconv.Itoa(s.project)))
}

// Save creates or updates the item, then asks the backend to price it.
// If pricing fails the saved item is returned along with the error.
func (s *LineItemStore) Save(ctx context.Context, item models.LineItem) (models.LineItem, error) {
	if item.Project == 0 {
		item.Project = s.project
	}

	var saved models.LineItem
	var err error
	if item.ID == 0 {
		saved, err = s.Create(ctx, item)
	} else {
		saved, err = s.Update(ctx, item.ID, item)
	}
	if err != nil {
		return saved, err
	}

	computed, err := s.Compute(ctx, saved.ID)
	if err != nil {
		return saved, fmt.Errorf("compute line item %d: %w", saved.ID, err)
	}
	return computed, nil
}

// Compute reprices one item.
func (s *LineItemStore) Compute(ctx context.Context, id int) (models.LineItem, error) {
	return s.mutate(ctx, id, func(ctx context.Context) (models.LineItem, error) {
		return s.client.Compute(ctx, id)
	})
}

func (s *LineItemStore) UpdateDimensions(ctx context.Context, id int, dims models.Dimensions) (models.LineItem, error) {
	return s.mutate(ctx, id, func(ctx context.Context) (models.LineItem, error) {
		return s.client.UpdateDimensions(ctx, id, dims)
	})
}

func (s *LineItemStore) UpdateMaterials(ctx context.Context, id int, choice models.MaterialChoice) (models.LineItem, error) {
	return s.mutate(ctx, id, func(ctx context.Context) (models.LineItem, error) {
		return s.client.UpdateMaterials(ctx, id, choice)
	})
}

// BatchCompute reprices the given items, or every loaded item when ids is
// empty.
func (s *LineItemStore) BatchCompute(ctx context.Context, ids []int) ([]models.LineItem, error) {
	if len(ids) == 0 {
		for _, it := range s.Items() {
			ids = append(ids, it.ID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	s.begin()
	items, err := s.client.BatchCompute(ctx, ids)
	s.mu.Lock()
	s.finishLocked(err)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s.replaceAll(items)
	return items, nil
}

// LineItemTotals sums the computed fields of the loaded items.
type LineItemTotals struct {
	Count       int
	Qty         int
	CabinetSqft float64
	DoorSqft    float64
	BeforeTax   float64
	// Uncomputed counts items the backend has not priced yet.
	Uncomputed int
}

func (s *LineItemStore) Totals() LineItemTotals {
	var t LineItemTotals
	cab, door, before := decimal.Zero, decimal.Zero, decimal.Zero
	for _, it := range s.Items() {
		t.Count++
		t.Qty += it.Qty
		if it.LineTotalBeforeTax == 0 {
			t.Uncomputed++
		}
		cab = cab.Add(decimal.NewFromFloat(it.ComputedCabinetSqft))
		door = door.Add(decimal.NewFromFloat(it.ComputedDoorSqft))
		before = before.Add(decimal.NewFromFloat(it.LineTotalBeforeTax))
	}
	t.CabinetSqft = cab.Round(2).InexactFloat64()
	t.DoorSqft = door.Round(2).InexactFloat64()
	t.BeforeTax = before.Round(2).InexactFloat64()
	return t
}
