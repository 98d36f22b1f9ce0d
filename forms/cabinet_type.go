package forms

import (
	"context"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

// CabinetTypeDraft is the raw input of the cabinet type form.
type CabinetTypeDraft struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	IsActive    bool   `json:"is_active"`
}

type CabinetTypeForm struct {
	state
	Draft CabinetTypeDraft

	categories []int
}

// NewCabinetTypeForm returns a form in create mode. categories, when
// given, restricts the category field to those ids.
func NewCabinetTypeForm(categories ...int) *CabinetTypeForm {
	f := &CabinetTypeForm{categories: categories}
	f.Reset()
	return f
}

// Reset goes back to an empty create form.
func (f *CabinetTypeForm) Reset() {
	f.startCreate()
	f.Draft = CabinetTypeDraft{IsActive: true}
}

// Edit seeds the form from an existing cabinet type.
func (f *CabinetTypeForm) Edit(ct models.CabinetType) {
	f.startEdit(ct.ID)
	f.Draft = CabinetTypeDraft{
		Name:        ct.Name,
		Category:    strconv.Itoa(ct.Category),
		Description: ct.Description,
		Notes:       ct.Notes,
		IsActive:    ct.IsActive,
	}
}

// SetCategories restricts the category field to the given ids.
func (f *CabinetTypeForm) SetCategories(ids []int) {
	f.categories = ids
}

func (f *CabinetTypeForm) Set(field, value string) error {
	if field == "is_active" {
		return f.setBool(&f.Draft.IsActive, field, value)
	}
	return f.setField(map[string]*string{
		"name":        &f.Draft.Name,
		"category":    &f.Draft.Category,
		"description": &f.Draft.Description,
		"notes":       &f.Draft.Notes,
	}, field, value)
}

func (f *CabinetTypeForm) validate() error {
	d := &f.Draft
	return validation.ValidateStruct(d,
		validation.Field(&d.Name,
			validation.Required.Error("Name is required"),
			validation.RuneLength(0, 100).Error("Name must be at most 100 characters"),
		),
		validation.Field(&d.Category,
			validation.Required.Error("Category is required"),
			check(f.knownCategory, "Select a valid category"),
		),
	)
}

func (f *CabinetTypeForm) knownCategory(s string) bool {
	id, err := toInt(s)
	if err != nil || id <= 0 {
		return false
	}
	if len(f.categories) == 0 {
		return true
	}
	for _, c := range f.categories {
		if c == id {
			return true
		}
	}
	return false
}

// Validate runs the client-side checks and records their errors.
func (f *CabinetTypeForm) Validate() error {
	return f.setValidation(f.validate())
}

// Entity builds the cabinet type the draft describes.
func (f *CabinetTypeForm) Entity() models.CabinetType {
	category, _ := toInt(f.Draft.Category)
	return models.CabinetType{
		ID:          f.editingID,
		Name:        f.Draft.Name,
		Category:    category,
		Description: f.Draft.Description,
		Notes:       f.Draft.Notes,
		IsActive:    f.Draft.IsActive,
	}
}

func (f *CabinetTypeForm) Submit(ctx context.Context, save SaveFunc[models.CabinetType]) (models.CabinetType, error) {
	return submit(ctx, &f.state, f.validate, f.Entity, save, f.Reset)
}
