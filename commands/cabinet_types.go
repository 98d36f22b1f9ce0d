package commands

import (
	"github.com/spf13/cobra"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/pages"
)

var cabinetTypeFields = []fieldFlag{
	{field: "name", usage: "cabinet type name"},
	{field: "category", usage: "category id"},
	{field: "description", usage: "description"},
	{field: "notes", usage: "internal notes"},
	{field: "is_active", usage: "whether the type can be used", boolean: true},
}

func newCabinetTypesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cabinet-types",
		Aliases: []string{"ct"},
		Short:   "Manage cabinet types",
	}
	cmd.AddCommand(
		cabinetTypesListCmd(app),
		cabinetTypesCreateCmd(app),
		cabinetTypesUpdateCmd(app),
		cabinetTypesDeleteCmd(app),
		cabinetTypesToggleCmd(app),
		cabinetTypesDuplicateCmd(app),
	)
	return cmd
}

func cabinetTypesListCmd(app *App) *cobra.Command {
	var (
		category int
		search   string
		grouped  bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cabinet types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pages.NewCabinetTypesPage(app.Client, app.Options())
			p.FilterServer(category, search)
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			p.View().SetPageSize(maxRows)

			if grouped {
				for _, g := range p.Groups() {
					footer(app.out, "%s (%d)", g.Name, len(g.Types))
					if err := printCabinetTypes(app, p, g.Types); err != nil {
						return err
					}
				}
			} else if err := printCabinetTypes(app, p, p.Visible().Items); err != nil {
				return err
			}

			st := p.Stats()
			footer(app.out, "%d cabinet types, %d active, %d inactive, %d categories",
				st.Total, st.Active, st.Inactive, st.Categories)
			return nil
		},
	}
	cmd.Flags().IntVar(&category, "category", 0, "only this category id")
	cmd.Flags().StringVar(&search, "search", "", "search name and description")
	cmd.Flags().BoolVar(&grouped, "group", false, "group by category")
	return cmd
}

func printCabinetTypes(app *App, p *pages.CabinetTypesPage, types []models.CabinetType) error {
	t := newTable(app.out, "id", "name", "category", "active", "description")
	for _, ct := range types {
		category := p.Store.CategoryName(ct.Category)
		if category == "" {
			category = ct.CategoryName
		}
		t.row(ct.ID, ct.Name, category, yesNo(ct.IsActive), ct.Description)
	}
	return t.flush()
}

func cabinetTypesCreateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a cabinet type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pages.NewCabinetTypesPage(app.Client, app.Options())
			_, err := runCreate[models.CabinetType](cmd.Context(), app, p, func() error {
				return applyFieldFlags(cmd, cabinetTypeFields, p.Form.Set)
			})
			return err
		},
	}
	addFieldFlags(cmd, cabinetTypeFields)
	return cmd
}

func cabinetTypesUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a cabinet type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := pages.NewCabinetTypesPage(app.Client, app.Options())
			_, err = runUpdate[models.CabinetType](cmd.Context(), app, p, id, func() error {
				return applyFieldFlags(cmd, cabinetTypeFields, p.Form.Set)
			})
			return err
		},
	}
	addFieldFlags(cmd, cabinetTypeFields)
	return cmd
}

func cabinetTypesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a cabinet type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := pages.NewCabinetTypesPage(app.Client, app.Options())
			return p.Delete(cmd.Context(), id)
		},
	}
}

func cabinetTypesToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Activate or deactivate a cabinet type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := pages.NewCabinetTypesPage(app.Client, app.Options())
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			_, err = p.ToggleStatus(cmd.Context(), id)
			return err
		},
	}
}

func cabinetTypesDuplicateCmd(app *App) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Copy a cabinet type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := pages.NewCabinetTypesPage(app.Client, app.Options())
			_, err = p.Duplicate(cmd.Context(), id, name)
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "name of the copy (the backend picks one when empty)")
	return cmd
}
