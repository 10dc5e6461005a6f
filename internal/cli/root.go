package cli

import (
	"time"

	"github.com/alexanderramin/epcrisk/internal/app"
	"github.com/alexanderramin/epcrisk/internal/config"
	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings CLI commands run against.
type App struct {
	Projects   service.ProjectService
	Milestones service.MilestoneService
	Spend      service.SpendService
	Risk       service.RiskService
	Export     service.ExportService
	Import     service.ImportService

	Config *config.Config
	// ConfigPath is where "config init" writes.
	ConfigPath string

	// IsInteractive reports whether stdin is a terminal. Prompts are only
	// offered when it returns true; nil means never.
	IsInteractive func() bool

	// Now is the clock used for default as-of dates. Nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) today() time.Time {
	if a.Now != nil {
		return domain.DateOnly(a.Now())
	}
	return domain.DateOnly(time.Now())
}

// riskRequest builds an assessment request. A zero asOf means today.
func (a *App) riskRequest(projectID string, asOf time.Time) app.RiskRequest {
	if asOf.IsZero() {
		asOf = a.today()
	}
	return app.NewRiskRequest(projectID, asOf)
}

// NewRootCmd creates the top-level "epcrisk" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "epcrisk",
		Short:         "Milestone risk scoring for EPC projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newMilestoneCmd(app),
		newSpendCmd(app),
		newRiskCmd(app),
		newAlertsCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newConfigCmd(app),
	)

	return root
}
