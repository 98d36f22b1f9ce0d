package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

const quotationTemplatesPath = "api/pricing/quotation-templates"

// QuotationTemplates is the client for the PDF customization screen.
type QuotationTemplates struct {
	*Resource[models.QuotationTemplate]
}

func NewQuotationTemplates(c *Client) *QuotationTemplates {
	return &QuotationTemplates{NewResource[models.QuotationTemplate](c, quotationTemplatesPath, "Quotation template")}
}

// UploadLogo sends the logo image as multipart form data. The content type
// is sniffed from the bytes rather than trusted from the file name.
func (r *QuotationTemplates) UploadLogo(ctx context.Context, id int, filename string, data []byte) (models.QuotationTemplate, error) {
	var out models.QuotationTemplate

	mime := mimetype.Detect(data)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="logo"; filename=%q`, filename))
	header.Set("Content-Type", mime.String())
	part, err := w.CreatePart(header)
	if err != nil {
		return out, fmt.Errorf("create logo part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return out, fmt.Errorf("write logo part: %w", err)
	}
	if err := w.Close(); err != nil {
		return out, fmt.Errorf("close multipart body: %w", err)
	}

	path := r.path + strconv.Itoa(id) + "/upload-logo/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.client.endpoint(path, nil), &body)
	if err != nil {
		return out, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	if err := r.client.send(req, &out); err != nil {
		return out, describe(err, r.label, http.MethodPost)
	}
	return out, nil
}
