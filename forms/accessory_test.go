package forms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

var (
	tandemBox = models.ProductVariant{ID: 11, ProductName: "Tandem Box", Name: "500mm", CompanyPrice: 285}
	softHinge = models.ProductVariant{ID: 12, ProductName: "Soft Close Hinge", CompanyPrice: 120.5}
)

func TestAccessoryForm_VariantDefaultsPrice(t *testing.T) {
	f := NewAccessoryForm(4)
	assert.Equal(t, "1", f.Draft.Qty)

	f.SelectVariant(tandemBox)
	assert.Equal(t, "11", f.Draft.ProductVariant)
	assert.Equal(t, "285", f.Draft.UnitPrice)

	f.SelectVariant(softHinge)
	assert.Equal(t, "120.5", f.Draft.UnitPrice)
}

func TestAccessoryForm_OverrideSurvivesVariantChange(t *testing.T) {
	f := NewAccessoryForm(4)
	f.SelectVariant(tandemBox)
	require.NoError(t, f.Set("unit_price", "300"))
	assert.True(t, f.PriceOverridden())

	f.SelectVariant(softHinge)
	assert.Equal(t, "300", f.Draft.UnitPrice)

	require.NoError(t, f.Set("unit_price", ""))
	assert.False(t, f.PriceOverridden())
	f.SelectVariant(tandemBox)
	assert.Equal(t, "285", f.Draft.UnitPrice)
}

func TestAccessoryForm_Preview(t *testing.T) {
	f := NewAccessoryForm(4)
	f.SelectVariant(tandemBox)
	require.NoError(t, f.Set("qty", "2"))

	p := f.Preview()

	assert.Equal(t, 2, p.Qty)
	assert.InDelta(t, 570.00, p.Subtotal, 1e-9)
	assert.InDelta(t, 102.60, p.TaxAmount, 1e-9)
	assert.InDelta(t, 672.60, p.Total, 1e-9)

	require.NoError(t, f.Set("qty", "abc"))
	assert.Zero(t, f.Preview().Total)
}

func TestAccessoryForm_Validation(t *testing.T) {
	tests := []struct {
		name  string
		price string
		qty   string
		want  Errors
	}{
		{"zero qty", "285", "0", Errors{"qty": "Quantity must be at least 1"}},
		{"fractional qty", "285", "1.5", Errors{"qty": "Quantity must be at least 1"}},
		{"zero price", "0", "1", Errors{"unit_price": "Unit price must be greater than 0"}},
		{"missing price", "", "1", Errors{"unit_price": "Unit price is required"}},
		{"NaN price", "NaN", "1", Errors{"unit_price": "Unit price must be greater than 0"}},
		{"infinite price", "Inf", "1", Errors{"unit_price": "Unit price must be greater than 0"}},
		{"valid", "285", "3", Errors{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewAccessoryForm(4)
			f.SelectVariant(tandemBox)
			require.NoError(t, f.Set("unit_price", tt.price))
			require.NoError(t, f.Set("qty", tt.qty))

			f.Validate()

			assert.Equal(t, tt.want, f.Errors())
		})
	}
}

func TestAccessoryForm_RequiresProduct(t *testing.T) {
	f := NewAccessoryForm(4)
	rec := &recorder[models.ProjectAccessory]{}

	_, err := f.Submit(context.Background(), rec.save)

	require.ErrorIs(t, err, ErrInvalid)
	assert.Empty(t, rec.calls)
	assert.Equal(t, "Select a product", f.Error("product_variant"))
}

func TestAccessoryForm_InfinitePriceNeverSaved(t *testing.T) {
	f := NewAccessoryForm(4)
	f.SelectVariant(tandemBox)
	require.NoError(t, f.Set("unit_price", "Inf"))
	rec := &recorder[models.ProjectAccessory]{}

	_, err := f.Submit(context.Background(), rec.save)

	require.ErrorIs(t, err, ErrInvalid)
	assert.Empty(t, rec.calls)
	assert.Zero(t, f.Preview().Total)
}

func TestAccessoryForm_SubmitBuildsAccessory(t *testing.T) {
	f := NewAccessoryForm(4)
	f.SelectVariant(tandemBox)
	require.NoError(t, f.Set("qty", "02"))
	require.NoError(t, f.Set("installation_notes", "left drawer stack"))
	rec := &recorder[models.ProjectAccessory]{}

	_, err := f.Submit(context.Background(), rec.save)

	require.NoError(t, err)
	assert.Equal(t, models.ProjectAccessory{
		LineItem:          4,
		ProductVariant:    11,
		Qty:               2,
		UnitPrice:         285,
		InstallationNotes: "left drawer stack",
	}, rec.calls[0])
	assert.Empty(t, f.Draft.ProductVariant)
	assert.False(t, f.PriceOverridden())
}

func TestAccessoryForm_EditKeepsStoredPrice(t *testing.T) {
	f := NewAccessoryForm(4)
	f.Edit(models.ProjectAccessory{ID: 8, LineItem: 4, ProductVariant: 11, Qty: 2, UnitPrice: 250})

	f.SelectVariant(softHinge)

	assert.Equal(t, "250", f.Draft.UnitPrice)
	assert.Equal(t, 8, f.Entity().ID)
}
