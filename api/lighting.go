package api

import (
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

const (
	lightingRulesPath = "api/pricing/lighting-rules"
	lightingItemsPath = "api/pricing/project-lighting-items"
)

func NewLightingRules(c *Client) *Resource[models.LightingRule] {
	return NewResource[models.LightingRule](c, lightingRulesPath, "Lighting rule")
}

func NewLightingItems(c *Client) *Resource[models.LightingItem] {
	return NewResource[models.LightingItem](c, lightingItemsPath, "Lighting item")
}
