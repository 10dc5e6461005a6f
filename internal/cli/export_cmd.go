package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export project data as CSV",
	}

	cmd.AddCommand(
		newExportMilestonesCmd(app),
		newExportSpendCmd(app),
	)

	return cmd
}

func newExportMilestonesCmd(app *App) *cobra.Command {
	var (
		projectRef string
		outPath    string
		asOf       time.Time
	)

	cmd := &cobra.Command{
		Use:   "milestones",
		Short: "Export scored milestones",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, projectRef)
			if err != nil {
				return err
			}
			return writeExport(cmd, outPath, func(w io.Writer) error {
				return app.Export.WriteMilestoneCSV(ctx, w, app.riskRequest(projectID, asOf))
			})
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	dateFlag(cmd.Flags(), app, &asOf, "as-of", "Assessment date (default today)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newExportSpendCmd(app *App) *cobra.Command {
	var projectRef, outPath string

	cmd := &cobra.Command{
		Use:   "spend",
		Short: "Export every daily spend log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, projectRef)
			if err != nil {
				return err
			}
			return writeExport(cmd, outPath, func(w io.Writer) error {
				return app.Export.WriteSpendCSV(ctx, w, projectID)
			})
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// writeExport sends CSV to stdout, or to path with a confirmation line.
func writeExport(cmd *cobra.Command, path string, write func(io.Writer) error) (err error) {
	if path == "" || path == "-" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := write(f); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
