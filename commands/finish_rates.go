package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/pages"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
)

var finishRateFields = []fieldFlag{
	{field: "material", usage: "material id"},
	{field: "budget_tier", usage: "LUXURY or ECONOMY"},
	{field: "unit_rate", usage: "rate per sqft in INR"},
	{field: "effective_from", usage: "first day the rate applies (YYYY-MM-DD)"},
	{field: "effective_to", usage: "last day the rate applies, empty for open-ended"},
	{field: "notes", usage: "notes"},
	{field: "is_active", usage: "whether the rate can be used", boolean: true},
}

func newFinishRatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "finish-rates",
		Aliases: []string{"fr"},
		Short:   "Manage finish rates per material and budget tier",
	}
	cmd.AddCommand(
		finishRatesListCmd(app),
		finishRatesCreateCmd(app),
		finishRatesUpdateCmd(app),
		finishRatesDeleteCmd(app),
		finishRatesToggleCmd(app),
		finishRatesBulkUpdateCmd(app),
		finishRatesImportCmd(app),
		finishRatesTemplateCmd(app),
	)
	return cmd
}

func finishRatesListCmd(app *App) *cobra.Command {
	var (
		material int
		tier     string
		current  bool
		status   string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List finish rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tier = strings.ToUpper(strings.TrimSpace(tier))
			if tier != "" && !services.IsBudgetTier(tier) {
				return fmt.Errorf("--tier must be LUXURY or ECONOMY, got %q", tier)
			}
			p := pages.NewFinishRatesPage(app.Client, app.Options())
			p.FilterServer(material, models.BudgetTier(tier))
			p.ShowCurrentOnly(current)
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			p.View().SetPageSize(maxRows)
			p.View().SortBy("material", false)
			p.View().SetFilter("status", status)

			t := newTable(app.out, "id", "material", "tier", "rate", "window", "status", "active")
			for _, r := range p.Visible().Items {
				name := r.MaterialName
				if m, ok := p.Store.Material(r.Material); ok {
					name = m.Name
				}
				t.row(r.ID, name, services.Label(string(r.BudgetTier)), services.FormatINR(r.UnitRate),
					services.FormatDateRange(r.EffectiveFrom, r.EffectiveTo), p.Store.Status(r), yesNo(r.IsActive))
			}
			if err := t.flush(); err != nil {
				return err
			}

			st := p.Stats()
			footer(app.out, "%s: %d current, %d future, %d expired",
				services.FormatCount(st.Total, "rate"), st.Current, st.Future, st.Expired)
			return nil
		},
	}
	cmd.Flags().IntVar(&material, "material", 0, "only this material id")
	cmd.Flags().StringVar(&tier, "tier", "", "only this budget tier")
	cmd.Flags().BoolVar(&current, "current", false, "only rates that apply today")
	cmd.Flags().StringVar(&status, "status", "", "current, future or expired")
	return cmd
}

func finishRatesCreateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a finish rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pages.NewFinishRatesPage(app.Client, app.Options())
			_, err := runCreate[models.FinishRate](cmd.Context(), app, p, func() error {
				return applyFieldFlags(cmd, finishRateFields, p.Form.Set)
			})
			return err
		},
	}
	addFieldFlags(cmd, finishRateFields)
	return cmd
}

func finishRatesUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a finish rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := pages.NewFinishRatesPage(app.Client, app.Options())
			_, err = runUpdate[models.FinishRate](cmd.Context(), app, p, id, func() error {
				return applyFieldFlags(cmd, finishRateFields, p.Form.Set)
			})
			return err
		},
	}
	addFieldFlags(cmd, finishRateFields)
	return cmd
}

func finishRatesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a finish rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := pages.NewFinishRatesPage(app.Client, app.Options())
			return p.Delete(cmd.Context(), id)
		},
	}
}

func finishRatesToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Activate or deactivate a finish rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := pages.NewFinishRatesPage(app.Client, app.Options())
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			_, err = p.ToggleStatus(cmd.Context(), id)
			return err
		},
	}
}

func finishRatesBulkUpdateCmd(app *App) *cobra.Command {
	var (
		ids    []string
		active bool
		notes  string
		rate   float64
	)
	cmd := &cobra.Command{
		Use:   "bulk-update",
		Short: "Apply the same change to several finish rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := parseIDs(ids)
			if err != nil {
				return err
			}
			fields := map[string]any{}
			if cmd.Flags().Changed("active") {
				fields["is_active"] = active
			}
			if cmd.Flags().Changed("notes") {
				fields["notes"] = notes
			}
			if cmd.Flags().Changed("unit-rate") {
				if rate < 0 {
					return errors.New("--unit-rate cannot be negative")
				}
				fields["unit_rate"] = rate
			}
			if len(fields) == 0 {
				return errors.New("nothing to change: pass --active, --notes or --unit-rate")
			}

			p := pages.NewFinishRatesPage(app.Client, app.Options())
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			p.Selection().Select(selected...)
			_, err = p.BulkUpdate(cmd.Context(), fields)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&ids, "ids", nil, "comma separated rate ids")
	cmd.Flags().BoolVar(&active, "active", true, "set is_active")
	cmd.Flags().StringVar(&notes, "notes", "", "set notes")
	cmd.Flags().Float64Var(&rate, "unit-rate", 0, "set the unit rate")
	_ = cmd.MarkFlagRequired("ids")
	return cmd
}

func finishRatesImportCmd(app *App) *cobra.Command {
	var errorsOut string
	cmd := &cobra.Command{
		Use:   "import <file.csv|file.xlsx>",
		Short: "Create finish rates from a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			p := pages.NewFinishRatesPage(app.Client, app.Options())
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			report, err := p.Import(cmd.Context(), f, filepath.Base(args[0]))
			if err != nil {
				return err
			}
			if len(report.Failed) == 0 {
				return nil
			}

			t := newTable(app.out, "row", "field", "problem")
			for _, e := range report.Failed {
				t.row(e.Row, e.Field, e.Message)
			}
			if err := t.flush(); err != nil {
				return err
			}
			if errorsOut == "" {
				return nil
			}
			data, err := p.ErrorReport(report)
			if err != nil {
				return err
			}
			return writeFile(app, errorsOut, data)
		},
	}
	cmd.Flags().StringVar(&errorsOut, "errors", "", "also write the failed rows to this .xlsx file")
	return cmd
}

func finishRatesTemplateCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the finish rate import template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pages.NewFinishRatesPage(app.Client, app.Options())
			data, err := p.ImportTemplate()
			if err != nil {
				return err
			}
			return writeFile(app, out, data)
		},
	}
	cmd.Flags().StringVar(&out, "out", "finish-rates-template.xlsx", "file name, relative to the output directory")
	return cmd
}

// writeFile saves data under the configured output directory unless name
// is absolute.
func writeFile(app *App, name string, data []byte) error {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(app.Config.OutputDir, name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	successColor.Fprint(app.out, "✓")
	fmt.Fprintf(app.out, " Wrote %s (%s)\n", path, size(len(data)))
	return nil
}
