package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// maxPages bounds ListAll so a misbehaving "next" link cannot loop forever.
const maxPages = 200

// Resource is the CRUD surface of one REST collection, e.g.
// /api/pricing/cabinet-types/.
type Resource[T any] struct {
	client *Client
	path   string
	label  string
}

// NewResource binds a collection path to the client. label names one record
// in user-facing messages ("Cabinet type").
func NewResource[T any](c *Client, path, label string) *Resource[T] {
	return &Resource[T]{
		client: c,
		path:   "/" + strings.Trim(path, "/") + "/",
		label:  label,
	}
}

// Label is the human-readable name of one record of this resource.
func (r *Resource[T]) Label() string {
	return r.label
}

func (r *Resource[T]) itemPath(id int) string {
	return r.path + strconv.Itoa(id) + "/"
}

func (r *Resource[T]) query(params ListParams) url.Values {
	if params.PageSize == 0 && params.Page > 0 {
		params.PageSize = r.client.pageSize
	}
	return params.Query()
}

// List fetches one page (or the whole flat list) of records.
func (r *Resource[T]) List(ctx context.Context, params ListParams) (Page[T], error) {
	return r.listAt(ctx, r.path, r.query(params))
}

func (r *Resource[T]) listAt(ctx context.Context, path string, query url.Values) (Page[T], error) {
	var raw json.RawMessage
	if err := r.client.Get(ctx, path, query, &raw); err != nil {
		return Page[T]{}, describe(err, r.label, http.MethodGet)
	}
	page, err := decodePage[T](raw)
	if err != nil {
		return Page[T]{}, fmt.Errorf("list %s: %w", r.path, err)
	}
	return page, nil
}

// ListAll follows pagination until the backend reports no next page.
func (r *Resource[T]) ListAll(ctx context.Context, params ListParams) ([]T, error) {
	if params.Page == 0 {
		params.Page = 1
	}
	var all []T
	for i := 0; i < maxPages; i++ {
		page, err := r.List(ctx, params)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if !page.HasNext {
			break
		}
		params.Page++
	}
	if all == nil {
		all = []T{}
	}
	return all, nil
}

func (r *Resource[T]) Get(ctx context.Context, id int) (T, error) {
	var out T
	if err := r.client.Get(ctx, r.itemPath(id), nil, &out); err != nil {
		return out, describe(err, r.label, http.MethodGet)
	}
	return out, nil
}

func (r *Resource[T]) Create(ctx context.Context, item T) (T, error) {
	var out T
	if err := r.client.Post(ctx, r.path, item, &out); err != nil {
		return out, describe(err, r.label, http.MethodPost)
	}
	return out, nil
}

func (r *Resource[T]) Update(ctx context.Context, id int, item T) (T, error) {
	var out T
	if err := r.client.Put(ctx, r.itemPath(id), item, &out); err != nil {
		return out, describe(err, r.label, http.MethodPut)
	}
	return out, nil
}

// Patch sends a partial update with only the given fields.
func (r *Resource[T]) Patch(ctx context.Context, id int, fields map[string]any) (T, error) {
	var out T
	if err := r.client.Patch(ctx, r.itemPath(id), fields, &out); err != nil {
		return out, describe(err, r.label, http.MethodPatch)
	}
	return out, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id int) error {
	if err := r.client.Delete(ctx, r.itemPath(id)); err != nil {
		return describe(err, r.label, http.MethodDelete)
	}
	return nil
}

// SetActive toggles the is_active flag with a PATCH.
func (r *Resource[T]) SetActive(ctx context.Context, id int, active bool) (T, error) {
	return r.Patch(ctx, id, map[string]any{"is_active": active})
}

// ItemAction calls a detail route such as /{id}/compute/.
func (r *Resource[T]) ItemAction(ctx context.Context, method string, id int, action string, body, out any) error {
	path := r.itemPath(id) + strings.Trim(action, "/") + "/"
	if err := r.client.do(ctx, method, path, nil, body, out); err != nil {
		return describe(err, r.label, method)
	}
	return nil
}

// CollectionAction calls a list route such as /batch-compute/.
func (r *Resource[T]) CollectionAction(ctx context.Context, method, action string, query url.Values, body, out any) error {
	path := r.path + strings.Trim(action, "/") + "/"
	if err := r.client.do(ctx, method, path, query, body, out); err != nil {
		return describe(err, r.label, method)
	}
	return nil
}
