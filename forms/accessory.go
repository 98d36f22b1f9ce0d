package forms

import (
	"context"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
)

// AccessoryDraft is the raw input of the accessory form.
type AccessoryDraft struct {
	ProductVariant    string `json:"product_variant"`
	Qty               string `json:"qty"`
	UnitPrice         string `json:"unit_price"`
	InstallationNotes string `json:"installation_notes"`
}

// AccessoryForm edits one accessory of a line item. The unit price follows
// the chosen variant's company price until the user types their own.
type AccessoryForm struct {
	state
	Draft AccessoryDraft

	lineItem        int
	priceOverridden bool
}

func NewAccessoryForm(lineItem int) *AccessoryForm {
	f := &AccessoryForm{lineItem: lineItem}
	f.Reset()
	return f
}

func (f *AccessoryForm) Reset() {
	f.startCreate()
	f.Draft = AccessoryDraft{Qty: "1"}
	f.priceOverridden = false
}

// Edit seeds the form from a saved accessory. Its stored price counts as
// an override so picking another variant does not replace it.
func (f *AccessoryForm) Edit(acc models.ProjectAccessory) {
	f.startEdit(acc.ID)
	f.Draft = AccessoryDraft{
		ProductVariant:    strconv.Itoa(acc.ProductVariant),
		Qty:               strconv.Itoa(acc.Qty),
		UnitPrice:         strconv.FormatFloat(acc.UnitPrice, 'f', -1, 64),
		InstallationNotes: acc.InstallationNotes,
	}
	f.priceOverridden = true
}

// SelectVariant picks the product variant and, unless the price was typed
// by hand, defaults the unit price to the variant's company price.
func (f *AccessoryForm) SelectVariant(v models.ProductVariant) {
	f.Draft.ProductVariant = strconv.Itoa(v.ID)
	f.clearField("product_variant")
	if !f.priceOverridden {
		f.Draft.UnitPrice = strconv.FormatFloat(v.CompanyPrice, 'f', -1, 64)
		f.clearField("unit_price")
	}
}

// PriceOverridden reports whether the unit price was entered by hand.
func (f *AccessoryForm) PriceOverridden() bool { return f.priceOverridden }

func (f *AccessoryForm) Set(field, value string) error {
	err := f.setField(map[string]*string{
		"product_variant":    &f.Draft.ProductVariant,
		"qty":                &f.Draft.Qty,
		"unit_price":         &f.Draft.UnitPrice,
		"installation_notes": &f.Draft.InstallationNotes,
	}, field, value)
	if err == nil && field == "unit_price" {
		f.priceOverridden = f.Draft.UnitPrice != ""
	}
	return err
}

// Preview prices the current input without validating it.
func (f *AccessoryForm) Preview() services.PricePreview {
	return services.AccessoryPreview(f.Draft.UnitPrice, f.Draft.Qty)
}

func (f *AccessoryForm) validate() error {
	d := &f.Draft
	return validation.ValidateStruct(d,
		validation.Field(&d.ProductVariant,
			validation.Required.Error("Select a product"),
			intAtLeast(1, "Select a product"),
		),
		validation.Field(&d.Qty,
			validation.Required.Error("Quantity is required"),
			intAtLeast(1, "Quantity must be at least 1"),
		),
		validation.Field(&d.UnitPrice,
			validation.Required.Error("Unit price is required"),
			numberAbove(0, false, "Unit price must be greater than 0"),
		),
	)
}

func (f *AccessoryForm) Validate() error {
	return f.setValidation(f.validate())
}

// Entity builds the accessory the draft describes. TotalPrice is left to
// the backend.
func (f *AccessoryForm) Entity() models.ProjectAccessory {
	variant, _ := toInt(f.Draft.ProductVariant)
	qty, _ := toInt(f.Draft.Qty)
	price, _ := toFloat(f.Draft.UnitPrice)
	return models.ProjectAccessory{
		ID:                f.editingID,
		LineItem:          f.lineItem,
		ProductVariant:    variant,
		Qty:               qty,
		UnitPrice:         price,
		InstallationNotes: f.Draft.InstallationNotes,
	}
}

func (f *AccessoryForm) Submit(ctx context.Context, save SaveFunc[models.ProjectAccessory]) (models.ProjectAccessory, error) {
	return submit(ctx, &f.state, f.validate, f.Entity, save, f.Reset)
}
