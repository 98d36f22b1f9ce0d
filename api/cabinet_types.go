package api

import (
	"context"
	"net/http"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

const (
	cabinetTypesPath = "api/pricing/cabinet-types"
	categoriesPath   = "api/pricing/cabinet-categories"
)

// CabinetTypes is the client for /api/pricing/cabinet-types/.
type CabinetTypes struct {
	*Resource[models.CabinetType]
}

func NewCabinetTypes(c *Client) *CabinetTypes {
	return &CabinetTypes{NewResource[models.CabinetType](c, cabinetTypesPath, "Cabinet type")}
}

// Duplicate asks the backend to copy a cabinet type under a new name.
// An empty name lets the backend pick one ("<name> (copy)").
func (r *CabinetTypes) Duplicate(ctx context.Context, id int, name string) (models.CabinetType, error) {
	var body any
	if name != "" {
		body = map[string]string{"name": name}
	}
	var out models.CabinetType
	err := r.ItemAction(ctx, http.MethodPost, id, "duplicate", body, &out)
	return out, err
}

// NewCategories is the read-only client for cabinet categories.
func NewCategories(c *Client) *Resource[models.Category] {
	return NewResource[models.Category](c, categoriesPath, "Category")
}
