package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/epcrisk/internal/cli/formatter"
	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/repository"
	"github.com/spf13/cobra"
)

func newSpendCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spend",
		Short: "Record and review daily milestone spend",
	}

	cmd.AddCommand(
		newSpendLogCmd(app),
		newSpendListCmd(app),
		newSpendRemoveCmd(app),
	)

	return cmd
}

func newSpendLogCmd(app *App) *cobra.Command {
	var (
		projectRef string
		date       time.Time
		wages      float64
		materials  float64
		machinery  float64
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "log MILESTONE",
		Short: "Log one day of spend against a milestone",
		Long: `Log one day of spend against a milestone.

MILESTONE is the milestone number within --project or its UUID. There is
at most one entry per milestone and date. When run in a terminal without
any amount flag, a form asks for the amounts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMilestone(ctx, app, args[0], projectRef)
			if err != nil {
				return err
			}
			if date.IsZero() {
				date = app.today()
			}

			flags := cmd.Flags()
			noAmounts := !flags.Changed("wages") && !flags.Changed("materials") && !flags.Changed("machinery")
			if noAmounts && app.interactive() {
				a := spendAnswers{Notes: notes}
				if err := runForm(cmd, spendForm(&a, m.DisplayID()+" "+m.Name, date)); err != nil {
					return err
				}
				for _, f := range []struct {
					raw string
					dst *float64
				}{{a.Wages, &wages}, {a.Materials, &materials}, {a.Machinery, &machinery}} {
					if *f.dst, err = parseAmount(f.raw); err != nil {
						return err
					}
				}
				notes = strings.TrimSpace(a.Notes)
			}

			l := &domain.DailySpendLog{
				MilestoneID: m.ID,
				Date:        date,
				Wages:       wages,
				Materials:   materials,
				Machinery:   machinery,
				Notes:       notes,
			}
			if err := app.Spend.LogSpend(ctx, l); err != nil {
				if errors.Is(err, repository.ErrDuplicateLogDate) {
					return fmt.Errorf("%s already has spend logged on %s; remove it first with: epcrisk spend remove ID", m.DisplayID(), date.Format(dateLayout))
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on %s for %s %s\n",
				formatter.Money(l.Total()), date.Format(dateLayout), m.DisplayID(), m.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID (needed for numeric IDs)")
	dateFlag(cmd.Flags(), app, &date, "date", "Spend date (default today)")
	cmd.Flags().Float64Var(&wages, "wages", 0, "Wage cost")
	cmd.Flags().Float64Var(&materials, "materials", 0, "Material cost")
	cmd.Flags().Float64Var(&machinery, "machinery", 0, "Machinery cost")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")

	return cmd
}

func newSpendListCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "list MILESTONE",
		Short: "List a milestone's spend logs by date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMilestone(ctx, app, args[0], projectRef)
			if err != nil {
				return err
			}
			logs, err := app.Spend.ListByMilestone(ctx, m.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(m.DisplayID()+" "+m.Name))
			fmt.Fprint(out, formatter.FormatSpendLogs(logs))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID (needed for numeric IDs)")

	return cmd
}

func newSpendRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a spend log entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			l, err := app.Spend.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Spend.Delete(ctx, l.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed spend of %s on %s\n", formatter.Money(l.Total()), l.Date.Format(dateLayout))
			return nil
		},
	}
}
