package forms

import (
	"context"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
)

// FinishRateDraft is the raw input of the finish rate form.
type FinishRateDraft struct {
	Material      string `json:"material"`
	BudgetTier    string `json:"budget_tier"`
	UnitRate      string `json:"unit_rate"`
	EffectiveFrom string `json:"effective_from"`
	EffectiveTo   string `json:"effective_to"`
	IsActive      bool   `json:"is_active"`
	Notes         string `json:"notes"`
}

type FinishRateForm struct {
	state
	Draft FinishRateDraft

	materials []models.Material
	today     func() models.Date
}

// NewFinishRateForm returns a form in create mode. today supplies the
// reference day for the start-date rule; nil means the real clock.
func NewFinishRateForm(materials []models.Material, today func() models.Date) *FinishRateForm {
	if today == nil {
		today = models.Today
	}
	f := &FinishRateForm{materials: materials, today: today}
	f.Reset()
	return f
}

// Reset goes back to an empty create form starting today.
func (f *FinishRateForm) Reset() {
	f.startCreate()
	f.Draft = FinishRateDraft{
		BudgetTier:    string(models.TierLuxury),
		EffectiveFrom: f.today().String(),
		IsActive:      true,
	}
}

func (f *FinishRateForm) Edit(r models.FinishRate) {
	f.startEdit(r.ID)
	f.Draft = FinishRateDraft{
		Material:      strconv.Itoa(r.Material),
		BudgetTier:    string(r.BudgetTier),
		UnitRate:      strconv.FormatFloat(r.UnitRate, 'f', -1, 64),
		EffectiveFrom: r.EffectiveFrom.String(),
		IsActive:      r.IsActive,
		Notes:         r.Notes,
	}
	if r.EffectiveTo != nil {
		f.Draft.EffectiveTo = r.EffectiveTo.String()
	}
}

// SetMaterials replaces the materials the material field accepts.
func (f *FinishRateForm) SetMaterials(materials []models.Material) {
	f.materials = materials
}

func (f *FinishRateForm) Set(field, value string) error {
	if field == "is_active" {
		return f.setBool(&f.Draft.IsActive, field, value)
	}
	if field == "budget_tier" {
		value = strings.ToUpper(value)
	}
	return f.setField(map[string]*string{
		"material":       &f.Draft.Material,
		"budget_tier":    &f.Draft.BudgetTier,
		"unit_rate":      &f.Draft.UnitRate,
		"effective_from": &f.Draft.EffectiveFrom,
		"effective_to":   &f.Draft.EffectiveTo,
		"notes":          &f.Draft.Notes,
	}, field, value)
}

func (f *FinishRateForm) knownMaterial(s string) bool {
	id, err := toInt(s)
	if err != nil || id <= 0 {
		return false
	}
	if len(f.materials) == 0 {
		return true
	}
	for _, m := range f.materials {
		if m.ID == id {
			return true
		}
	}
	return false
}

func (f *FinishRateForm) validate() error {
	d := &f.Draft
	err := validation.ValidateStruct(d,
		validation.Field(&d.Material,
			validation.Required.Error("Material is required"),
			check(f.knownMaterial, "Select a valid material"),
		),
		validation.Field(&d.BudgetTier,
			validation.Required.Error("Budget tier is required"),
			check(services.IsBudgetTier, "Budget tier must be LUXURY or ECONOMY"),
		),
		validation.Field(&d.UnitRate,
			validation.Required.Error("Unit rate is required"),
			numberAbove(0, true, "Unit rate must be a number of at least 0"),
		),
		validation.Field(&d.EffectiveFrom,
			validation.Required.Error("Effective from is required"),
			dateRule("Effective from must be a date (YYYY-MM-DD)"),
		),
		validation.Field(&d.EffectiveTo,
			dateRule("Effective to must be a date (YYYY-MM-DD)"),
		),
	)

	errs, _ := err.(validation.Errors)
	if err != nil && errs == nil {
		return err
	}
	if errs == nil {
		errs = validation.Errors{}
	}
	f.validateWindow(errs)
	return errs.Filter()
}

// validateWindow adds the cross-field date rules once both dates parse.
func (f *FinishRateForm) validateWindow(errs validation.Errors) {
	if errs["effective_from"] != nil || errs["effective_to"] != nil {
		return
	}
	from, err := toDate(f.Draft.EffectiveFrom)
	if err != nil {
		return
	}
	var to *models.Date
	if f.Draft.EffectiveTo != "" {
		d, err := toDate(f.Draft.EffectiveTo)
		if err != nil {
			return
		}
		to = &d
	}

	switch services.ValidateRateWindow(from, to, f.today(), f.mode == ModeCreate) {
	case services.ErrRateStartInPast:
		errs["effective_from"] = validation.NewError("rate_start_in_past", "Effective from cannot be earlier than yesterday")
	case services.ErrRateWindowOrder:
		errs["effective_to"] = validation.NewError("rate_window_order", "Effective to must be after effective from")
	}
}

func (f *FinishRateForm) Validate() error {
	return f.setValidation(f.validate())
}

// Entity builds the finish rate the draft describes. Currency is always INR.
func (f *FinishRateForm) Entity() models.FinishRate {
	material, _ := toInt(f.Draft.Material)
	rate, _ := toFloat(f.Draft.UnitRate)
	from, _ := toDate(f.Draft.EffectiveFrom)
	r := models.FinishRate{
		ID:            f.editingID,
		Material:      material,
		BudgetTier:    models.BudgetTier(f.Draft.BudgetTier),
		UnitRate:      rate,
		Currency:      models.CurrencyINR,
		EffectiveFrom: from,
		IsActive:      f.Draft.IsActive,
		Notes:         f.Draft.Notes,
	}
	if to, err := toDate(f.Draft.EffectiveTo); err == nil {
		r.EffectiveTo = &to
	}
	return r
}

func (f *FinishRateForm) Submit(ctx context.Context, save SaveFunc[models.FinishRate]) (models.FinishRate, error) {
	return submit(ctx, &f.state, f.validate, f.Entity, save, f.Reset)
}
