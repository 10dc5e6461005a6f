package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/epcrisk/internal/cli/formatter"
	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/scoring"
	"github.com/spf13/cobra"
)

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "milestone",
		Aliases: []string{"ms"},
		Short:   "Manage project milestones",
	}

	cmd.AddCommand(
		newMilestoneAddCmd(app),
		newMilestoneListCmd(app),
		newMilestoneInspectCmd(app),
		newMilestoneUpdateCmd(app),
		newMilestoneCloseCmd(app),
		newMilestoneReopenCmd(app),
		newMilestoneRemoveCmd(app),
	)

	return cmd
}

func addResourceFlags(cmd *cobra.Command, r *resourceFlags, verb string) {
	cmd.Flags().StringArrayVar(&r.labour, "labour", nil, verb+" labour line ROLE:COUNT:DAILY_RATE:DAYS (repeatable)")
	cmd.Flags().StringArrayVar(&r.material, "material", nil, verb+" material line NAME:QUANTITY:UNIT_COST (repeatable)")
	cmd.Flags().StringArrayVar(&r.machine, "machine", nil, verb+" machine line NAME:COUNT:DAILY_RATE:DAYS (repeatable)")
}

func newMilestoneAddCmd(app *App) *cobra.Command {
	var (
		projectRef    string
		name          string
		budget        float64
		start, due    time.Time
		trigger       time.Time
		phases        int
		penalty       float64
		resourceArgs resourceFlags
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a milestone to a project",
		Long: `Add a milestone with its budget, schedule and resource plan.

The payment trigger defaults to the due date. When run in a terminal
without --name, --budget, --start or --due, a form asks for them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, projectRef)
			if err != nil {
				return err
			}

			missing := name == "" || budget <= 0 || start.IsZero() || due.IsZero()
			if missing {
				if !app.interactive() {
					return fmt.Errorf("--name, --budget, --start and --due are required")
				}
				if err := promptMilestone(cmd, &name, &budget, &start, &due, &trigger, &phases); err != nil {
					return err
				}
			}

			plan, err := resourceArgs.plan()
			if err != nil {
				return err
			}
			if trigger.IsZero() {
				trigger = due
			}

			m := &domain.Milestone{
				ProjectID:          projectID,
				Name:               name,
				PlannedBudget:      budget,
				StartDate:          start,
				DueDate:            due,
				PaymentTriggerDate: trigger,
				Status:             domain.MilestoneOpen,
				Phases:             phases,
				DelayPenaltyPerDay: penalty,
				Resources:          plan,
			}
			if err := app.Milestones.Create(ctx, m); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created milestone %s %s\n", m.DisplayID(), m.Name)
			if planned := plan.PlannedTotal(); planned > budget {
				fmt.Fprintf(out, "%s resource plan totals %s, above the %s budget\n",
					formatter.StyleYellow.Render("!"), formatter.Money(planned), formatter.Money(budget))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID")
	cmd.Flags().StringVar(&name, "name", "", "Milestone name")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Planned budget")
	dateFlag(cmd.Flags(), app, &start, "start", "Start date (YYYY-MM-DD)")
	dateFlag(cmd.Flags(), app, &due, "due", "Due date (YYYY-MM-DD)")
	dateFlag(cmd.Flags(), app, &trigger, "trigger", "Payment trigger date (default: due date)")
	cmd.Flags().IntVar(&phases, "phases", 1, "Number of construction phases")
	cmd.Flags().Float64Var(&penalty, "penalty", 0, "Contractual delay penalty per day (overrides derived cost of delay)")
	addResourceFlags(cmd, &resourceArgs, "Planned")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// promptMilestone fills the missing core fields through the milestone form.
// Values already given by flags are offered as defaults.
func promptMilestone(cmd *cobra.Command, name *string, budget *float64, start, due, trigger *time.Time, phases *int) error {
	a := milestoneAnswers{Name: *name, Phases: strconv.Itoa(*phases)}
	if *budget > 0 {
		a.Budget = strconv.FormatFloat(*budget, 'f', -1, 64)
	}
	if !start.IsZero() {
		a.Start = start.Format(dateLayout)
	}
	if !due.IsZero() {
		a.Due = due.Format(dateLayout)
	}
	if !trigger.IsZero() {
		a.Trigger = trigger.Format(dateLayout)
	}

	if err := runForm(cmd, milestoneForm(&a)); err != nil {
		return err
	}

	*name = strings.TrimSpace(a.Name)
	var err error
	if *budget, err = parseAmount(a.Budget); err != nil {
		return err
	}
	if *start, err = parseDate(a.Start, nil); err != nil {
		return err
	}
	if *due, err = parseDate(a.Due, nil); err != nil {
		return err
	}
	if strings.TrimSpace(a.Trigger) != "" {
		if *trigger, err = parseDate(a.Trigger, nil); err != nil {
			return err
		}
	}
	if p, err := strconv.Atoi(strings.TrimSpace(a.Phases)); err == nil && p > 0 {
		*phases = p
	}
	return nil
}

func newMilestoneListCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's milestones",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, projectRef)
			if err != nil {
				return err
			}
			milestones, err := app.Milestones.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMilestoneList(milestones))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newMilestoneInspectCmd(app *App) *cobra.Command {
	var (
		projectRef string
		asOf       time.Time
	)

	cmd := &cobra.Command{
		Use:   "inspect ID",
		Short: "Show a milestone with its resource plan and risk breakdown",
		Long: `Show a milestone with its resource plan and risk breakdown.

ID is the milestone number within --project (e.g. 3 or #3) or its UUID.
The risk view is computed fresh as of --as-of (default today).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMilestone(ctx, app, args[0], projectRef)
			if err != nil {
				return err
			}

			resp, err := app.Risk.Assess(ctx, app.riskRequest(m.ProjectID, asOf))
			if err != nil {
				return err
			}

			var result *scoring.MilestoneResult
			for i := range resp.Results {
				if resp.Results[i].Milestone.ID == m.ID {
					result = &resp.Results[i]
					break
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatMilestoneInspect(m, result))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID (needed for numeric IDs)")
	dateFlag(cmd.Flags(), app, &asOf, "as-of", "Assessment date (default today)")

	return cmd
}

func newMilestoneUpdateCmd(app *App) *cobra.Command {
	var (
		projectRef    string
		name          string
		budget        float64
		start, due    time.Time
		trigger       time.Time
		phases        int
		penalty       float64
		resourceArgs resourceFlags
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a milestone's budget, schedule or resource plan",
		Long: `Change a milestone's budget, schedule or resource plan.

Only the flags given are changed. Any resource flag replaces the whole
resource plan.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMilestone(ctx, app, args[0], projectRef)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				m.Name = name
			}
			if flags.Changed("budget") {
				m.PlannedBudget = budget
			}
			if flags.Changed("start") {
				m.StartDate = start
			}
			if flags.Changed("due") {
				m.DueDate = due
			}
			if flags.Changed("trigger") {
				m.PaymentTriggerDate = trigger
			}
			if flags.Changed("phases") {
				m.Phases = phases
			}
			if flags.Changed("penalty") {
				m.DelayPenaltyPerDay = penalty
			}
			if !resourceArgs.empty() {
				plan, err := resourceArgs.plan()
				if err != nil {
					return err
				}
				m.Resources = plan
			}

			if err := app.Milestones.Update(ctx, m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated milestone %s %s\n", m.DisplayID(), m.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID (needed for numeric IDs)")
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().Float64Var(&budget, "budget", 0, "New planned budget")
	dateFlag(cmd.Flags(), app, &start, "start", "New start date")
	dateFlag(cmd.Flags(), app, &due, "due", "New due date")
	dateFlag(cmd.Flags(), app, &trigger, "trigger", "New payment trigger date")
	cmd.Flags().IntVar(&phases, "phases", 1, "New number of phases")
	cmd.Flags().Float64Var(&penalty, "penalty", 0, "New delay penalty per day (0 to derive from budget)")
	addResourceFlags(cmd, &resourceArgs, "Replacement")

	return cmd
}

func newMilestoneCloseCmd(app *App) *cobra.Command {
	return newMilestoneTransitionCmd(app, "close", "Mark the milestone's payment event as met", "Closed",
		func(ctx context.Context, id string) error { return app.Milestones.Close(ctx, id) })
}

func newMilestoneReopenCmd(app *App) *cobra.Command {
	return newMilestoneTransitionCmd(app, "reopen", "Reopen a closed milestone", "Reopened",
		func(ctx context.Context, id string) error { return app.Milestones.Reopen(ctx, id) })
}

func newMilestoneRemoveCmd(app *App) *cobra.Command {
	return newMilestoneTransitionCmd(app, "remove", "Remove a milestone and its spend logs", "Removed",
		func(ctx context.Context, id string) error { return app.Milestones.Delete(ctx, id) })
}

func newMilestoneTransitionCmd(app *App, use, short, past string, apply func(ctx context.Context, id string) error) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMilestone(ctx, app, args[0], projectRef)
			if err != nil {
				return err
			}
			if err := apply(ctx, m.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s milestone %s %s\n", past, m.DisplayID(), m.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID (needed for numeric IDs)")

	return cmd
}
