package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/pages"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
)

var lineItemFields = []fieldFlag{
	{field: "cabinet_type", usage: "cabinet type id"},
	{field: "cabinet_material", usage: "carcass material id"},
	{field: "door_material", usage: "door material id"},
	{field: "width_mm", usage: "width in mm"},
	{field: "depth_mm", usage: "depth in mm"},
	{field: "height_mm", usage: "height in mm"},
	{field: "qty", usage: "quantity"},
	{field: "scope", usage: "OPEN or WORKING"},
	{field: "remarks", usage: "remarks"},
}

func newLineItemsCmd(app *App) *cobra.Command {
	var project int
	cmd := &cobra.Command{
		Use:     "line-items",
		Aliases: []string{"li"},
		Short:   "Manage the cabinets of a project",
	}
	cmd.PersistentFlags().IntVarP(&project, "project", "p", 0, "project id")
	_ = cmd.MarkPersistentFlagRequired("project")

	page := func() *pages.LineItemsPage {
		return pages.NewLineItemsPage(app.Client, project, app.Options())
	}
	cmd.AddCommand(
		lineItemsListCmd(app, page),
		lineItemsAddCmd(app, page),
		lineItemsUpdateCmd(app, page),
		lineItemsDeleteCmd(page),
		lineItemsComputeCmd(page),
		lineItemsResizeCmd(page),
		lineItemsMaterialsCmd(page),
	)
	return cmd
}

func lineItemsListCmd(app *App, page func() *pages.LineItemsPage) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the line items with their computed prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := page()
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			p.View().SetPageSize(maxRows)

			t := newTable(app.out, "id", "cabinet type", "carcass", "door", "size (mm)", "qty", "scope", "sqft", "amount")
			for _, it := range p.Visible().Items {
				amount := "-"
				if it.LineTotalBeforeTax > 0 {
					amount = services.FormatINR(it.LineTotalBeforeTax)
				}
				t.row(it.ID, it.CabinetTypeName, it.CabinetMaterialName, it.DoorMaterialName,
					fmt.Sprintf("%dx%dx%d", it.WidthMM, it.DepthMM, it.HeightMM), it.Qty,
					services.Label(string(it.Scope)),
					fmt.Sprintf("%.2f + %.2f", it.ComputedCabinetSqft, it.ComputedDoorSqft), amount)
			}
			if err := t.flush(); err != nil {
				return err
			}

			tot := p.Totals()
			footer(app.out, "%s, %d units, %.2f sqft carcass, %.2f sqft doors, %s before tax",
				services.FormatCount(tot.Count, "item"), tot.Qty, tot.CabinetSqft, tot.DoorSqft,
				services.FormatINR(tot.BeforeTax))
			if tot.Uncomputed > 0 {
				footer(app.out, "%s not priced yet", services.FormatCount(tot.Uncomputed, "item"))
			}
			return nil
		},
	}
}

func lineItemsAddCmd(app *App, page func() *pages.LineItemsPage) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a line item and price it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := page()
			_, err := runCreate[models.LineItem](cmd.Context(), app, p, func() error {
				return applyFieldFlags(cmd, lineItemFields, p.Form.Set)
			})
			return err
		},
	}
	addFieldFlags(cmd, lineItemFields)
	return cmd
}

func lineItemsUpdateCmd(app *App, page func() *pages.LineItemsPage) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a line item and reprice it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := page()
			_, err = runUpdate[models.LineItem](cmd.Context(), app, p, id, func() error {
				return applyFieldFlags(cmd, lineItemFields, p.Form.Set)
			})
			return err
		},
	}
	addFieldFlags(cmd, lineItemFields)
	return cmd
}

func lineItemsDeleteCmd(page func() *pages.LineItemsPage) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a line item",
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

func lineItemsComputeCmd(page func() *pages.LineItemsPage) *cobra.Command {
	return &cobra.Command{
		Use:   "compute [id...]",
		Short: "Reprice some or all line items",
		Long:  "Reprices the given line items, or every line item of the project when no id is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			p := page()
			ctx := cmd.Context()
			switch len(ids) {
			case 0:
				_, err = p.ComputeAll(ctx)
			case 1:
				_, err = p.Compute(ctx, ids[0])
			default:
				if err := p.Load(ctx); err != nil {
					return err
				}
				p.Selection().Select(ids...)
				_, err = p.ComputeSelected(ctx)
			}
			return err
		},
	}
}

func lineItemsResizeCmd(page func() *pages.LineItemsPage) *cobra.Command {
	var dims models.Dimensions
	cmd := &cobra.Command{
		Use:   "resize <id>",
		Short: "Change the size or quantity of a line item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := page()
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			it, ok := p.Store.Find(id)
			if !ok {
				return fmt.Errorf("line item %d: %w", id, pages.ErrNotFound)
			}
			next := models.Dimensions{WidthMM: it.WidthMM, DepthMM: it.DepthMM, HeightMM: it.HeightMM, Qty: it.Qty}
			flags := cmd.Flags()
			if flags.Changed("width") {
				next.WidthMM = dims.WidthMM
			}
			if flags.Changed("depth") {
				next.DepthMM = dims.DepthMM
			}
			if flags.Changed("height") {
				next.HeightMM = dims.HeightMM
			}
			if flags.Changed("qty") {
				next.Qty = dims.Qty
			}
			_, err = p.UpdateDimensions(cmd.Context(), id, next)
			return err
		},
	}
	cmd.Flags().IntVar(&dims.WidthMM, "width", 0, "width in mm")
	cmd.Flags().IntVar(&dims.DepthMM, "depth", 0, "depth in mm")
	cmd.Flags().IntVar(&dims.HeightMM, "height", 0, "height in mm")
	cmd.Flags().IntVar(&dims.Qty, "qty", 0, "quantity")
	return cmd
}

func lineItemsMaterialsCmd(page func() *pages.LineItemsPage) *cobra.Command {
	var choice models.MaterialChoice
	cmd := &cobra.Command{
		Use:   "materials <id>",
		Short: "Swap the materials of a line item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = page().UpdateMaterials(cmd.Context(), id, choice)
			return err
		},
	}
	cmd.Flags().IntVar(&choice.CabinetMaterial, "cabinet-material", 0, "carcass material id")
	cmd.Flags().IntVar(&choice.DoorMaterial, "door-material", 0, "door material id")
	_ = cmd.MarkFlagRequired("cabinet-material")
	_ = cmd.MarkFlagRequired("door-material")
	return cmd
}
