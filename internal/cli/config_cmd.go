package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the configuration",
	}

	cmd.AddCommand(
		newConfigShowCmd(app),
		newConfigInitCmd(app),
	)

	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Long: `Print the effective configuration as YAML.

Values come from the config file, then EPCRISK_* environment variables
(including any .env file in the working directory).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config == nil {
				return fmt.Errorf("no configuration loaded")
			}
			data, err := app.Config.Marshal()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if app.Config.Path != "" {
				fmt.Fprintf(out, "# loaded from %s\n", app.Config.Path)
			}
			_, err = out.Write(data)
			return err
		},
	}
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config == nil || app.ConfigPath == "" {
				return fmt.Errorf("no config path configured")
			}
			if err := app.Config.WriteFile(app.ConfigPath, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", app.ConfigPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
