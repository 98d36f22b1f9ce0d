package services

import (
	"strconv"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

// Option is one entry of a select box.
type Option struct {
	Value string
	Label string
}

// BudgetTierOptions are the tiers a finish rate or project can be priced in.
var BudgetTierOptions = []Option{
	{Value: string(models.TierLuxury), Label: "Luxury"},
	{Value: string(models.TierEconomy), Label: "Economy"},
}

// ScopeOptions are the line-item scopes.
var ScopeOptions = []Option{
	{Value: string(models.ScopeOpen), Label: "Open"},
	{Value: string(models.ScopeWorking), Label: "Working"},
}

// MaterialRoleOptions are the roles a material can be used in.
var MaterialRoleOptions = []Option{
	{Value: string(models.RoleBoth), Label: "Cabinet & Door"},
	{Value: string(models.RoleCabinet), Label: "Cabinet"},
	{Value: string(models.RoleDoor), Label: "Door"},
	{Value: string(models.RoleTop), Label: "Worktop"},
}

// IsBudgetTier reports whether v is a known budget tier.
func IsBudgetTier(v string) bool {
	return hasOption(BudgetTierOptions, v)
}

// IsScope reports whether v is a known line-item scope.
func IsScope(v string) bool {
	return hasOption(ScopeOptions, v)
}

func hasOption(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

// CabinetMaterials keeps active materials usable for the carcass.
func CabinetMaterials(materials []models.Material) []models.Material {
	return filterMaterials(materials, models.Material.UsableForCabinet)
}

// DoorMaterials keeps active materials usable for shutters.
func DoorMaterials(materials []models.Material) []models.Material {
	return filterMaterials(materials, models.Material.UsableForDoor)
}

// TopMaterials keeps active materials usable for worktops.
func TopMaterials(materials []models.Material) []models.Material {
	return filterMaterials(materials, models.Material.UsableForTop)
}

func filterMaterials(materials []models.Material, usable func(models.Material) bool) []models.Material {
	out := make([]models.Material, 0, len(materials))
	for _, m := range materials {
		if m.IsActive && usable(m) {
			out = append(out, m)
		}
	}
	return out
}

// MaterialOptions turns materials into select options.
func MaterialOptions(materials []models.Material) []Option {
	out := make([]Option, len(materials))
	for i, m := range materials {
		out[i] = Option{Value: strconv.Itoa(m.ID), Label: m.Name}
	}
	return out
}
