package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Thaquidheen/hoch-frontend-sub002/pages"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
)

func newLightingCmd(app *App) *cobra.Command {
	var (
		project     int
		material    int
		cabinetType int
	)
	cmd := &cobra.Command{
		Use:   "lighting",
		Short: "Show the lighting costs of a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pages.NewLightingPage(app.Client, project, app.Options())
			defer p.Close()
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			p.View().SetPageSize(maxRows)

			proj := p.Project()
			footer(app.out, "%s (%s, %s)", proj.Name, proj.CustomerName, services.Label(string(proj.BudgetTier)))

			t := newTable(app.out, "id", "material", "cabinet type", "led", "spots", "spot cost", "total", "active")
			for _, it := range p.Visible().Items {
				led := it.LEDUnderWallCost + it.LEDWorkTopCost + it.LEDSkirtingCost
				t.row(it.ID, it.CabinetMaterial, it.CabinetType, services.FormatINR(led), it.SpotLightCount,
					services.FormatINR(it.SpotLightsCost), services.FormatINR(it.TotalCost), yesNo(it.IsActive))
			}
			if err := t.flush(); err != nil {
				return err
			}

			sum := p.Summary()
			footer(app.out, "%s: LED %s, spot lights %s (%d), total %s",
				services.FormatCount(sum.ItemCount, "active item"), services.FormatINR(sum.TotalLEDCost),
				services.FormatINR(sum.TotalSpotCost), sum.SpotLightCount, services.FormatINR(sum.GrandTotal))

			if material > 0 {
				m := p.Rule(material, cabinetType)
				if !m.Found {
					footer(app.out, "No lighting rule applies to material %d", material)
					return nil
				}
				r := m.Rule
				scope := "global"
				if !r.IsGlobal {
					scope = "customer"
				}
				fmt.Fprintf(app.out, "Rule #%d %s (%s): under wall %s/mm, work top %s/mm, skirting %s/mm, spot %s\n",
					r.ID, r.Name, scope, services.FormatINR(r.LEDUnderWallRatePerMM), services.FormatINR(r.LEDWorkTopRatePerMM),
					services.FormatINR(r.LEDSkirtingRatePerMM), services.FormatINR(r.SpotLightRate))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&project, "project", "p", 0, "project id")
	cmd.Flags().IntVar(&material, "material", 0, "also show the rule for this cabinet material")
	cmd.Flags().IntVar(&cabinetType, "cabinet-type", 0, "cabinet type for --material")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
