package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

const (
	accessoriesPath       = "api/pricing/project-line-item-accessories"
	brandsPath            = "api/catalog/brands"
	productCategoriesPath = "api/catalog/categories"
)

// Accessories is the client for /api/pricing/project-line-item-accessories/.
type Accessories struct {
	*Resource[models.ProjectAccessory]
}

func NewAccessories(c *Client) *Accessories {
	return &Accessories{NewResource[models.ProjectAccessory](c, accessoriesPath, "Accessory")}
}

// AvailableProducts lists the variants that can be attached to a line item.
// Supported filters: category, brand, search.
func (r *Accessories) AvailableProducts(ctx context.Context, params ListParams) (Page[models.ProductVariant], error) {
	var raw json.RawMessage
	if err := r.CollectionAction(ctx, http.MethodGet, "available_products", params.Query(), nil, &raw); err != nil {
		return Page[models.ProductVariant]{}, err
	}
	return decodePage[models.ProductVariant](raw)
}

func NewBrands(c *Client) *Resource[models.Brand] {
	return NewResource[models.Brand](c, brandsPath, "Brand")
}

func NewProductCategories(c *Client) *Resource[models.ProductCategory] {
	return NewResource[models.ProductCategory](c, productCategoriesPath, "Product category")
}
