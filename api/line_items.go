package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

const (
	lineItemsPath = "api/pricing/project-line-items"
	projectsPath  = "api/pricing/projects"
)

// LineItems is the client for /api/pricing/project-line-items/.
type LineItems struct {
	*Resource[models.LineItem]
}

func NewLineItems(c *Client) *LineItems {
	return &LineItems{NewResource[models.LineItem](c, lineItemsPath, "Line item")}
}

// Compute asks the backend to (re)price one line item and returns it with
// the computed fields filled in.
func (r *LineItems) Compute(ctx context.Context, id int) (models.LineItem, error) {
	var out models.LineItem
	err := r.ItemAction(ctx, http.MethodPost, id, "compute", nil, &out)
	return out, err
}

func (r *LineItems) UpdateDimensions(ctx context.Context, id int, dims models.Dimensions) (models.LineItem, error) {
	var out models.LineItem
	err := r.ItemAction(ctx, http.MethodPatch, id, "update-dimensions", dims, &out)
	return out, err
}

func (r *LineItems) UpdateMaterials(ctx context.Context, id int, choice models.MaterialChoice) (models.LineItem, error) {
	var out models.LineItem
	err := r.ItemAction(ctx, http.MethodPatch, id, "update-materials", choice, &out)
	return out, err
}

// BatchCompute reprices several line items in one call and returns them.
func (r *LineItems) BatchCompute(ctx context.Context, ids []int) ([]models.LineItem, error) {
	body := map[string]any{"line_item_ids": ids}
	var raw json.RawMessage
	if err := r.CollectionAction(ctx, http.MethodPost, "batch-compute", nil, body, &raw); err != nil {
		return nil, err
	}
	page, err := decodePage[models.LineItem](raw)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// NewProjects is the read-only client for projects.
func NewProjects(c *Client) *Resource[models.Project] {
	return NewResource[models.Project](c, projectsPath, "Project")
}
