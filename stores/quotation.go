package stores

import (
	"context"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

// QuotationTemplateStore backs the PDF customization screen.
type QuotationTemplateStore struct {
	*Store[models.QuotationTemplate]

	client *api.QuotationTemplates
}

func NewQuotationTemplateStore(c *api.Client, opts ...Option) *QuotationTemplateStore {
	client := api.NewQuotationTemplates(c)
	return &QuotationTemplateStore{
		Store:  NewStore[models.QuotationTemplate](client, opts...),
		client: client,
	}
}

// Default returns the active template flagged as default, or the first
// active one.
func (s *QuotationTemplateStore) Default() (models.QuotationTemplate, bool) {
	var first *models.QuotationTemplate
	items := s.Items()
	for i := range items {
		if !items[i].IsActive {
			continue
		}
		if items[i].IsDefault {
			return items[i], true
		}
		if first == nil {
			first = &items[i]
		}
	}
	if first == nil {
		return models.QuotationTemplate{}, false
	}
	return *first, true
}

// SetDefault flags one template as the default. The backend clears the flag
// on the others, so the local copies are cleared too.
func (s *QuotationTemplateStore) SetDefault(ctx context.Context, id int) (models.QuotationTemplate, error) {
	updated, err := s.mutate(ctx, id, func(ctx context.Context) (models.QuotationTemplate, error) {
		return s.client.Patch(ctx, id, map[string]any{"is_default": true})
	})
	if err != nil {
		return updated, err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID != id {
			s.items[i].IsDefault = false
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// UploadLogo sends a logo image and swaps in the template with its new
// logo_url.
func (s *QuotationTemplateStore) UploadLogo(ctx context.Context, id int, filename string, data []byte) (models.QuotationTemplate, error) {
	return s.mutate(ctx, id, func(ctx context.Context) (models.QuotationTemplate, error) {
		return s.client.UploadLogo(ctx, id, filename, data)
	})
}
