package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/epcrisk/internal/app"
	"github.com/alexanderramin/epcrisk/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// assessFlags are shared by risk and alerts.
type assessFlags struct {
	projectRef string
	asOf       time.Time
}

func (f *assessFlags) register(cmd *cobra.Command, a *App) {
	cmd.Flags().StringVar(&f.projectRef, "project", "", "Project short ID or UUID (default: the only project)")
	dateFlag(cmd.Flags(), a, &f.asOf, "as-of", "Assessment date (default today)")
}

func (f *assessFlags) assess(ctx context.Context, a *App) (*app.RiskResponse, error) {
	ref := f.projectRef
	if ref == "" {
		projects, err := a.Projects.List(ctx)
		if err != nil {
			return nil, err
		}
		switch len(projects) {
		case 0:
			return nil, fmt.Errorf("no projects yet; create one with: epcrisk project add")
		case 1:
			ref = projects[0].ID
		default:
			return nil, fmt.Errorf("%d projects exist; choose one with --project", len(projects))
		}
	}

	projectID, err := resolveProjectID(ctx, a, ref)
	if err != nil {
		return nil, err
	}
	return a.Risk.Assess(ctx, a.riskRequest(projectID, f.asOf))
}

func newRiskCmd(app *App) *cobra.Command {
	var flags assessFlags

	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Score every milestone of a project",
		Long: `Score every milestone of a project as of a date.

Each milestone gets PoD (probability of delay), CoD (cost of delay,
normalised across the project), CFTS (cash-flow timing sensitivity) and
the weighted composite score with its level. Milestones with invalid data
are listed with the reason instead of a score. Only spend logged on or
before --as-of counts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := flags.assess(context.Background(), app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRiskDashboard(resp))
			return nil
		},
	}
	flags.register(cmd, app)

	return cmd
}

func newAlertsCmd(app *App) *cobra.Command {
	var flags assessFlags

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Show optimisation alerts for a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := flags.assess(context.Background(), app)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(fmt.Sprintf("Alerts · %s as of %s",
				formatter.ProjectLabel(resp.Project), formatter.FormatDate(resp.AsOf))))
			fmt.Fprint(out, formatter.FormatAlerts(resp.Alerts))
			return nil
		},
	}
	flags.register(cmd, app)

	return cmd
}
