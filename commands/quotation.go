package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/pages"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
)

var templateFields = []fieldFlag{
	{field: "name", usage: "template name"},
	{field: "company_name", usage: "company name in the header"},
	{field: "company_address", usage: "company address"},
	{field: "company_email", usage: "contact email"},
	{field: "company_phone", usage: "10-digit mobile number"},
	{field: "gstin", usage: "15-character GSTIN"},
	{field: "header_note", usage: "note under the header"},
	{field: "footer_note", usage: "note at the bottom"},
	{field: "terms", usage: "terms and conditions, one per line"},
	{field: "accent_color", usage: "accent colour as #RRGGBB"},
	{field: "show_unit_prices", usage: "print unit prices", boolean: true},
	{field: "show_tax_breakdown", usage: "print GST per row", boolean: true},
	{field: "show_accessories", usage: "include accessories", boolean: true},
	{field: "is_default", usage: "use for exports by default", boolean: true},
	{field: "is_active", usage: "whether the template can be used", boolean: true},
}

func newQuotationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quotation",
		Aliases: []string{"qt"},
		Short:   "Quotation templates and exports",
	}
	cmd.AddCommand(
		quotationTemplatesCmd(app),
		quotationCreateCmd(app),
		quotationUpdateCmd(app),
		quotationDeleteCmd(app),
		quotationSetDefaultCmd(app),
		quotationLogoCmd(app),
		quotationExportCmd(app),
	)
	return cmd
}

func quotationTemplatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List quotation templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pages.NewQuotationPage(app.Client, app.Options())
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			p.View().SetPageSize(maxRows)
			p.View().SortBy("name", false)

			t := newTable(app.out, "id", "name", "company", "default", "active", "logo")
			for _, tpl := range p.Visible().Items {
				t.row(tpl.ID, tpl.Name, tpl.CompanyName, yesNo(tpl.IsDefault), yesNo(tpl.IsActive), yesNo(tpl.LogoURL != ""))
			}
			return t.flush()
		},
	}
}

// fillTemplate applies the field flags and stages --logo for upload.
func fillTemplate(cmd *cobra.Command, p *pages.QuotationPage, logo string) error {
	if err := applyFieldFlags(cmd, templateFields, p.Form.Set); err != nil {
		return err
	}
	if logo == "" {
		return nil
	}
	data, err := os.ReadFile(logo)
	if err != nil {
		return err
	}
	return p.Form.SetLogo(filepath.Base(logo), data)
}

func quotationCreateCmd(app *App) *cobra.Command {
	var logo string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a quotation template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pages.NewQuotationPage(app.Client, app.Options())
			_, err := runCreate[models.QuotationTemplate](cmd.Context(), app, p, func() error {
				return fillTemplate(cmd, p, logo)
			})
			return err
		},
	}
	addFieldFlags(cmd, templateFields)
	cmd.Flags().StringVar(&logo, "logo", "", "PNG, JPEG or SVG logo file")
	return cmd
}

func quotationUpdateCmd(app *App) *cobra.Command {
	var logo string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a quotation template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := pages.NewQuotationPage(app.Client, app.Options())
			_, err = runUpdate[models.QuotationTemplate](cmd.Context(), app, p, id, func() error {
				return fillTemplate(cmd, p, logo)
			})
			return err
		},
	}
	addFieldFlags(cmd, templateFields)
	cmd.Flags().StringVar(&logo, "logo", "", "PNG, JPEG or SVG logo file")
	return cmd
}

func quotationDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a quotation template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return pages.NewQuotationPage(app.Client, app.Options()).Delete(cmd.Context(), id)
		},
	}
}

func quotationSetDefaultCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-default <id>",
		Short: "Make a template the default for exports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := pages.NewQuotationPage(app.Client, app.Options())
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			return p.SetDefault(cmd.Context(), id)
		},
	}
}

func quotationLogoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "upload-logo <id> <file>",
		Short: "Replace the logo of a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			p := pages.NewQuotationPage(app.Client, app.Options())
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			return p.UploadLogo(cmd.Context(), id, filepath.Base(args[1]), data)
		},
	}
}

func quotationExportCmd(app *App) *cobra.Command {
	var (
		req    pages.ExportRequest
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a project as a quotation PDF or line item workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch pages.ExportFormat(format) {
			case pages.ExportPDF, pages.ExportExcel:
				req.Format = pages.ExportFormat(format)
			default:
				return fmt.Errorf("--format must be pdf or xlsx, got %q", format)
			}

			p := pages.NewQuotationPage(app.Client, app.Options())
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			file, err := p.Export(cmd.Context(), req)
			if err != nil {
				return err
			}

			name := file.Name
			if out != "" {
				name = out
			}
			if err := writeFile(app, name, file.Data); err != nil {
				return err
			}
			tot := file.Quote.Totals
			footer(app.out, "Before tax %s, GST %s, grand total %s", services.FormatINR(tot.TotalBeforeTax),
				services.FormatINR(tot.GSTAmount), services.FormatINR(tot.GrandTotal))
			footer(app.out, "%s", tot.AmountInWords)
			return nil
		},
	}
	cmd.Flags().IntVarP(&req.Project, "project", "p", 0, "project id")
	cmd.Flags().IntVar(&req.Template, "template", 0, "template id, defaults to the default template")
	cmd.Flags().IntVar(&req.Sequence, "sequence", 1, "quotation sequence number within the fiscal year")
	cmd.Flags().StringVar(&format, "format", string(pages.ExportPDF), "pdf or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "file name, relative to the output directory")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
