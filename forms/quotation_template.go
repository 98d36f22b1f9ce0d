package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
)

// MaxLogoSize is the largest logo image accepted.
const MaxLogoSize = 2 << 20

var logoTypes = []string{"image/png", "image/jpeg", "image/svg+xml"}

// QuotationTemplateDraft is the raw input of the quotation template form.
type QuotationTemplateDraft struct {
	Name             string `json:"name"`
	CompanyName      string `json:"company_name"`
	CompanyAddress   string `json:"company_address"`
	CompanyEmail     string `json:"company_email"`
	CompanyPhone     string `json:"company_phone"`
	GSTIN            string `json:"gstin"`
	HeaderNote       string `json:"header_note"`
	FooterNote       string `json:"footer_note"`
	Terms            string `json:"terms"`
	AccentColor      string `json:"accent_color"`
	ShowUnitPrices   bool   `json:"show_unit_prices"`
	ShowTaxBreakdown bool   `json:"show_tax_breakdown"`
	ShowAccessories  bool   `json:"show_accessories"`
	IsDefault        bool   `json:"is_default"`
	IsActive         bool   `json:"is_active"`
}

// Logo is an image waiting to be uploaded with the template.
type Logo struct {
	Filename string
	Data     []byte
	MIME     string
}

// LogoUploadFunc sends a logo for a saved template.
type LogoUploadFunc func(ctx context.Context, id int, filename string, data []byte) (models.QuotationTemplate, error)

type QuotationTemplateForm struct {
	state
	Draft QuotationTemplateDraft

	logo    *Logo
	logoURL string
}

func NewQuotationTemplateForm() *QuotationTemplateForm {
	f := &QuotationTemplateForm{}
	f.Reset()
	return f
}

func (f *QuotationTemplateForm) Reset() {
	f.startCreate()
	f.Draft = QuotationTemplateDraft{
		AccentColor:     "#212529",
		ShowUnitPrices:  true,
		ShowAccessories: true,
		IsActive:        true,
	}
	f.logo = nil
	f.logoURL = ""
}

func (f *QuotationTemplateForm) Edit(t models.QuotationTemplate) {
	f.startEdit(t.ID)
	f.Draft = QuotationTemplateDraft{
		Name:             t.Name,
		CompanyName:      t.CompanyName,
		CompanyAddress:   t.CompanyAddress,
		CompanyEmail:     t.CompanyEmail,
		CompanyPhone:     t.CompanyPhone,
		GSTIN:            t.GSTIN,
		HeaderNote:       t.HeaderNote,
		FooterNote:       t.FooterNote,
		Terms:            t.Terms,
		AccentColor:      t.AccentColor,
		ShowUnitPrices:   t.ShowUnitPrices,
		ShowTaxBreakdown: t.ShowTaxBreakdown,
		ShowAccessories:  t.ShowAccessories,
		IsDefault:        t.IsDefault,
		IsActive:         t.IsActive,
	}
	f.logo = nil
	f.logoURL = t.LogoURL
}

func (f *QuotationTemplateForm) Set(field, value string) error {
	bools := map[string]*bool{
		"show_unit_prices":   &f.Draft.ShowUnitPrices,
		"show_tax_breakdown": &f.Draft.ShowTaxBreakdown,
		"show_accessories":   &f.Draft.ShowAccessories,
		"is_default":         &f.Draft.IsDefault,
		"is_active":          &f.Draft.IsActive,
	}
	if p, ok := bools[field]; ok {
		return f.setBool(p, field, value)
	}
	if field == "gstin" {
		value = strings.ToUpper(value)
	}
	return f.setField(map[string]*string{
		"name":            &f.Draft.Name,
		"company_name":    &f.Draft.CompanyName,
		"company_address": &f.Draft.CompanyAddress,
		"company_email":   &f.Draft.CompanyEmail,
		"company_phone":   &f.Draft.CompanyPhone,
		"gstin":           &f.Draft.GSTIN,
		"header_note":     &f.Draft.HeaderNote,
		"footer_note":     &f.Draft.FooterNote,
		"terms":           &f.Draft.Terms,
		"accent_color":    &f.Draft.AccentColor,
	}, field, value)
}

// CheckLogo sniffs an image and returns its content type, or an error
// message fit for the user. The file name is not trusted.
func CheckLogo(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("Logo file is empty")
	}
	if len(data) > MaxLogoSize {
		return "", fmt.Errorf("Logo must be at most %s", humanize.IBytes(MaxLogoSize))
	}
	mime := mimetype.Detect(data)
	if !mimetype.EqualsAny(mime.String(), logoTypes...) {
		return "", errors.New("Logo must be a PNG, JPEG or SVG image")
	}
	return mime.String(), nil
}

// SetLogo stages a logo for upload after the template is saved.
func (f *QuotationTemplateForm) SetLogo(filename string, data []byte) error {
	f.clearField("logo")
	mime, err := CheckLogo(data)
	if err != nil {
		if f.errs == nil {
			f.errs = Errors{}
		}
		f.errs["logo"] = err.Error()
		return err
	}
	f.logo = &Logo{Filename: filename, Data: data, MIME: mime}
	return nil
}

// PendingLogo is the staged logo, nil when none.
func (f *QuotationTemplateForm) PendingLogo() *Logo { return f.logo }

// LogoURL is the logo the edited template already has.
func (f *QuotationTemplateForm) LogoURL() string { return f.logoURL }

func (f *QuotationTemplateForm) validate() error {
	d := &f.Draft
	return validation.ValidateStruct(d,
		validation.Field(&d.Name,
			validation.Required.Error("Template name is required"),
			validation.RuneLength(0, 100).Error("Template name must be at most 100 characters"),
		),
		validation.Field(&d.CompanyName, validation.Required.Error("Company name is required")),
		validation.Field(&d.CompanyEmail, check(services.ValidateEmail, "Enter a valid email address")),
		validation.Field(&d.CompanyPhone, check(services.ValidatePhone, "Enter a valid 10-digit mobile number")),
		validation.Field(&d.GSTIN, check(services.ValidateGSTIN, "Enter a valid 15-character GSTIN")),
		validation.Field(&d.AccentColor, check(services.ValidateHexColor, "Accent colour must look like #RRGGBB")),
	)
}

func (f *QuotationTemplateForm) Validate() error {
	return f.setValidation(f.validate())
}

func (f *QuotationTemplateForm) Entity() models.QuotationTemplate {
	d := f.Draft
	return models.QuotationTemplate{
		ID:               f.editingID,
		Name:             d.Name,
		CompanyName:      d.CompanyName,
		CompanyAddress:   d.CompanyAddress,
		CompanyEmail:     d.CompanyEmail,
		CompanyPhone:     d.CompanyPhone,
		GSTIN:            d.GSTIN,
		HeaderNote:       d.HeaderNote,
		FooterNote:       d.FooterNote,
		Terms:            d.Terms,
		AccentColor:      d.AccentColor,
		ShowUnitPrices:   d.ShowUnitPrices,
		ShowTaxBreakdown: d.ShowTaxBreakdown,
		ShowAccessories:  d.ShowAccessories,
		LogoURL:          f.logoURL,
		IsDefault:        d.IsDefault,
		IsActive:         d.IsActive,
	}
}

// Submit saves the template and then uploads the staged logo, if any,
// through upload. A failed upload leaves the saved template in place and
// is reported under the logo field.
func (f *QuotationTemplateForm) Submit(ctx context.Context, save SaveFunc[models.QuotationTemplate], upload LogoUploadFunc) (models.QuotationTemplate, error) {
	logo := f.logo
	saved, err := submit(ctx, &f.state, f.validate, f.Entity, save, f.Reset)
	if err != nil || logo == nil || upload == nil {
		return saved, err
	}

	withLogo, err := upload(ctx, saved.ID, logo.Filename, logo.Data)
	if err != nil {
		if f.errs == nil {
			f.errs = Errors{}
		}
		f.errs["logo"] = "Template saved but the logo upload failed: " + err.Error()
		return saved, fmt.Errorf("upload logo: %w", err)
	}
	if f.mode == ModeEdit {
		f.logo = nil
		f.logoURL = withLogo.LogoURL
	}
	return withLogo, nil
}
