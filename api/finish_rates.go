package api

import (
	"context"
	"net/http"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

const (
	finishRatesPath = "api/pricing/finish-rates"
	materialsPath   = "api/pricing/materials"
)

// FinishRates is the client for /api/pricing/finish-rates/.
type FinishRates struct {
	*Resource[models.FinishRate]
}

func NewFinishRates(c *Client) *FinishRates {
	return &FinishRates{NewResource[models.FinishRate](c, finishRatesPath, "Finish rate")}
}

// Current lists active rates that have already started on the given day.
// Rates that ended before day are still returned by the backend; callers
// filter them with services.IsRateValidOn.
func (r *FinishRates) Current(ctx context.Context, day models.Date, params ListParams) (Page[models.FinishRate], error) {
	params = params.
		With("effective_from__lte", day.String()).
		With("is_active", "true")
	return r.List(ctx, params)
}

// BulkUpdateResult is the backend's answer to a bulk update.
type BulkUpdateResult struct {
	Updated int                 `json:"updated"`
	Rates   []models.FinishRate `json:"rates"`
}

// BulkUpdate applies the same field changes to several rates at once.
func (r *FinishRates) BulkUpdate(ctx context.Context, ids []int, fields map[string]any) (BulkUpdateResult, error) {
	body := map[string]any{
		"ids":     ids,
		"updates": fields,
	}
	var out BulkUpdateResult
	err := r.CollectionAction(ctx, http.MethodPost, "bulk-update", nil, body, &out)
	return out, err
}

// NewMaterials is the read-only client for materials.
func NewMaterials(c *Client) *Resource[models.Material] {
	return NewResource[models.Material](c, materialsPath, "Material")
}
