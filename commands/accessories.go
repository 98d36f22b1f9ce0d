package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/pages"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
)

var accessoryFields = []fieldFlag{
	{field: "product_variant", usage: "product variant id"},
	{field: "qty", usage: "quantity"},
	{field: "unit_price", usage: "unit price, defaults to the company price"},
	{field: "installation_notes", usage: "installation notes"},
}

func newAccessoriesCmd(app *App) *cobra.Command {
	var lineItem int
	cmd := &cobra.Command{
		Use:     "accessories",
		Aliases: []string{"acc"},
		Short:   "Manage the accessories of a line item",
	}
	cmd.PersistentFlags().IntVarP(&lineItem, "line-item", "l", 0, "line item id")
	_ = cmd.MarkPersistentFlagRequired("line-item")

	page := func() *pages.AccessoriesPage {
		return pages.NewAccessoriesPage(app.Client, lineItem, app.Options())
	}
	cmd.AddCommand(
		accessoriesListCmd(app, page),
		accessoriesProductsCmd(app, page),
		accessoriesAddCmd(app, page),
		accessoriesUpdateCmd(app, page),
		accessoriesDeleteCmd(page),
	)
	return cmd
}

func accessoriesListCmd(app *App, page func() *pages.AccessoriesPage) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the accessories of the line item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := page()
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			p.View().SetPageSize(maxRows)

			t := newTable(app.out, "id", "product", "qty", "unit price", "total", "notes")
			for _, a := range p.Visible().Items {
				total := a.TotalPrice
				if total == 0 {
					total = services.AccessoryLineTotal(a.UnitPrice, a.Qty)
				}
				t.row(a.ID, accessoryName(a), a.Qty, services.FormatINR(a.UnitPrice), services.FormatINR(total), a.InstallationNotes)
			}
			if err := t.flush(); err != nil {
				return err
			}

			tot := p.Totals()
			footer(app.out, "%s, subtotal %s, GST %s, total %s", services.FormatCount(tot.Count, "accessory"),
				services.FormatINR(tot.Subtotal), services.FormatINR(tot.TaxAmount), services.FormatINR(tot.Total))
			return nil
		},
	}
}

func accessoryName(a models.ProjectAccessory) string {
	switch {
	case a.ProductName == "":
		return "#" + strconv.Itoa(a.ProductVariant)
	case a.VariantName == "":
		return a.ProductName
	default:
		return a.ProductName + " - " + a.VariantName
	}
}

func accessoriesProductsCmd(app *App, page func() *pages.AccessoriesPage) *cobra.Command {
	var (
		search          string
		category, brand int
	)
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Search the products that can be attached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := page().SearchProducts(cmd.Context(), search, category, brand)
			if err != nil {
				return err
			}
			t := newTable(app.out, "id", "product", "brand", "sku", "price")
			for _, v := range products {
				t.row(v.ID, v.DisplayName(), v.BrandName, v.SKU, services.FormatINR(v.CompanyPrice))
			}
			if err := t.flush(); err != nil {
				return err
			}
			footer(app.out, "%s", services.FormatCount(len(products), "product"))
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "search term")
	cmd.Flags().IntVar(&category, "category", 0, "product category id")
	cmd.Flags().IntVar(&brand, "brand", 0, "brand id")
	return cmd
}

// fillAccessory picks the variant first so a --unit-price given on the
// command line overrides the company price.
func fillAccessory(cmd *cobra.Command, p *pages.AccessoriesPage) error {
	if fl := cmd.Flags().Lookup("product-variant"); fl != nil && fl.Changed {
		id, err := parseID(fl.Value.String())
		if err != nil {
			return err
		}
		if _, err := p.SearchProducts(cmd.Context(), "", 0, 0); err != nil {
			return err
		}
		if err := p.SelectVariant(id); err != nil {
			return err
		}
	}
	return applyFieldFlags(cmd, accessoryFields, p.Form.Set)
}

func accessoriesAddCmd(app *App, page func() *pages.AccessoriesPage) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Attach a product to the line item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := page()
			_, err := runCreate[models.ProjectAccessory](cmd.Context(), app, p, func() error {
				if err := fillAccessory(cmd, p); err != nil {
					return err
				}
				pv := p.Preview()
				footer(app.out, "%d x %s = %s + GST %s = %s", pv.Qty, services.FormatINR(pv.UnitPrice),
					services.FormatINR(pv.Subtotal), services.FormatINR(pv.TaxAmount), services.FormatINR(pv.Total))
				return nil
			})
			return err
		},
	}
	addFieldFlags(cmd, accessoryFields)
	return cmd
}

func accessoriesUpdateCmd(app *App, page func() *pages.AccessoriesPage) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an accessory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := page()
			_, err = runUpdate[models.ProjectAccessory](cmd.Context(), app, p, id, func() error {
				return fillAccessory(cmd, p)
			})
			return err
		},
	}
	addFieldFlags(cmd, accessoryFields)
	return cmd
}

func accessoriesDeleteCmd(page func() *pages.AccessoriesPage) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an accessory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return page().Delete(cmd.Context(), id)
		},
	}
}
