package forms

import (
	"context"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
)

// LineItemDraft is the raw input of the line item form.
type LineItemDraft struct {
	CabinetType     string `json:"cabinet_type"`
	CabinetMaterial string `json:"cabinet_material"`
	DoorMaterial    string `json:"door_material"`
	WidthMM         string `json:"width_mm"`
	DepthMM         string `json:"depth_mm"`
	HeightMM        string `json:"height_mm"`
	Qty             string `json:"qty"`
	Scope           string `json:"scope"`
	Remarks         string `json:"remarks"`
}

type LineItemForm struct {
	state
	Draft LineItemDraft

	project   int
	materials map[int]models.Material
}

func NewLineItemForm(project int, materials []models.Material) *LineItemForm {
	f := &LineItemForm{project: project}
	f.SetMaterials(materials)
	f.Reset()
	return f
}

func (f *LineItemForm) Reset() {
	f.startCreate()
	f.Draft = LineItemDraft{Qty: "1", Scope: string(models.ScopeOpen)}
}

func (f *LineItemForm) Edit(it models.LineItem) {
	f.startEdit(it.ID)
	f.Draft = LineItemDraft{
		CabinetType:     strconv.Itoa(it.CabinetType),
		CabinetMaterial: strconv.Itoa(it.CabinetMaterial),
		DoorMaterial:    strconv.Itoa(it.DoorMaterial),
		WidthMM:         strconv.Itoa(it.WidthMM),
		DepthMM:         strconv.Itoa(it.DepthMM),
		HeightMM:        strconv.Itoa(it.HeightMM),
		Qty:             strconv.Itoa(it.Qty),
		Scope:           string(it.Scope),
		Remarks:         it.Remarks,
	}
}

// SetMaterials replaces the materials the two material fields are checked
// against. With none loaded any id is accepted.
func (f *LineItemForm) SetMaterials(materials []models.Material) {
	f.materials = make(map[int]models.Material, len(materials))
	for _, m := range materials {
		f.materials[m.ID] = m
	}
}

// CabinetMaterialOptions lists the materials the cabinet field accepts.
func (f *LineItemForm) CabinetMaterialOptions() []models.Material {
	return services.CabinetMaterials(f.materialList())
}

// DoorMaterialOptions lists the materials the door field accepts.
func (f *LineItemForm) DoorMaterialOptions() []models.Material {
	return services.DoorMaterials(f.materialList())
}

func (f *LineItemForm) materialList() []models.Material {
	out := make([]models.Material, 0, len(f.materials))
	for _, m := range f.materials {
		out = append(out, m)
	}
	sortByName(out)
	return out
}

func (f *LineItemForm) Set(field, value string) error {
	if field == "scope" {
		value = strings.ToUpper(value)
	}
	return f.setField(map[string]*string{
		"cabinet_type":     &f.Draft.CabinetType,
		"cabinet_material": &f.Draft.CabinetMaterial,
		"door_material":    &f.Draft.DoorMaterial,
		"width_mm":         &f.Draft.WidthMM,
		"depth_mm":         &f.Draft.DepthMM,
		"height_mm":        &f.Draft.HeightMM,
		"qty":              &f.Draft.Qty,
		"scope":            &f.Draft.Scope,
		"remarks":          &f.Draft.Remarks,
	}, field, value)
}

// usable returns a predicate accepting ids of active materials allowed in
// a role.
func (f *LineItemForm) usable(allowed func(models.Material) bool) func(string) bool {
	return func(s string) bool {
		id, err := toInt(s)
		if err != nil || id <= 0 {
			return false
		}
		if len(f.materials) == 0 {
			return true
		}
		m, ok := f.materials[id]
		return ok && m.IsActive && allowed(m)
	}
}

func (f *LineItemForm) validate() error {
	d := &f.Draft
	return validation.ValidateStruct(d,
		validation.Field(&d.CabinetType,
			validation.Required.Error("Cabinet type is required"),
			intAtLeast(1, "Select a cabinet type"),
		),
		validation.Field(&d.CabinetMaterial,
			validation.Required.Error("Cabinet material is required"),
			check(f.usable(models.Material.UsableForCabinet), "Material cannot be used for cabinets"),
		),
		validation.Field(&d.DoorMaterial,
			validation.Required.Error("Door material is required"),
			check(f.usable(models.Material.UsableForDoor), "Material cannot be used for doors"),
		),
		validation.Field(&d.WidthMM,
			validation.Required.Error("Width is required"),
			intAtLeast(1, "Width must be greater than 0"),
		),
		validation.Field(&d.DepthMM,
			validation.Required.Error("Depth is required"),
			intAtLeast(1, "Depth must be greater than 0"),
		),
		validation.Field(&d.HeightMM,
			validation.Required.Error("Height is required"),
			intAtLeast(1, "Height must be greater than 0"),
		),
		validation.Field(&d.Qty,
			validation.Required.Error("Quantity is required"),
			intAtLeast(1, "Quantity must be at least 1"),
		),
		validation.Field(&d.Scope,
			validation.Required.Error("Scope is required"),
			check(services.IsScope, "Scope must be OPEN or WORKING"),
		),
	)
}

func (f *LineItemForm) Validate() error {
	return f.setValidation(f.validate())
}

// Entity builds the line item the draft describes. Computed fields stay
// empty; the backend fills them on compute.
func (f *LineItemForm) Entity() models.LineItem {
	num := func(s string) int {
		n, _ := toInt(s)
		return n
	}
	return models.LineItem{
		ID:              f.editingID,
		Project:         f.project,
		CabinetType:     num(f.Draft.CabinetType),
		CabinetMaterial: num(f.Draft.CabinetMaterial),
		DoorMaterial:    num(f.Draft.DoorMaterial),
		WidthMM:         num(f.Draft.WidthMM),
		DepthMM:         num(f.Draft.DepthMM),
		HeightMM:        num(f.Draft.HeightMM),
		Qty:             num(f.Draft.Qty),
		Scope:           models.Scope(f.Draft.Scope),
		Remarks:         f.Draft.Remarks,
	}
}

func (f *LineItemForm) Submit(ctx context.Context, save SaveFunc[models.LineItem]) (models.LineItem, error) {
	return submit(ctx, &f.state, f.validate, f.Entity, save, f.Reset)
}
