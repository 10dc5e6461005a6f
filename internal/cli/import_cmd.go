package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/epcrisk/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var name, shortID string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a legacy JSON milestone store as a new project",
		Long: `Import a legacy JSON milestone store as a new project.

FILE holds {"milestones": [...], "daily_logs": [...]}. Each milestone's
due date and payment trigger are its created_at plus deadline_days. Logs
on the same day for the same milestone are merged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportLegacyFile(context.Background(), args[0], importer.Options{
				ProjectName: name,
				ShortID:     shortID,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported project %s [%s]: %d milestones, %d spend logs\n",
				result.Project.Name, result.Project.DisplayID(), result.MilestoneCount, result.LogCount)
			if result.Merged > 0 {
				fmt.Fprintf(out, "Merged %d same-day log entries\n", result.Merged)
			}
			for _, s := range result.Skipped {
				fmt.Fprintf(out, "Skipped %s\n", s)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "project-name", "", "Project name (default \"Imported project\")")
	cmd.Flags().StringVar(&shortID, "id", "", "Project short ID (default derived from the name)")

	return cmd
}
