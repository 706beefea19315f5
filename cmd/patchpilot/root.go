package main

import (
	"encoding/json"
	"fmt"
	"io"

	"patchpilot/config"
	"patchpilot/internal/app"
	"patchpilot/internal/runner"
	"patchpilot/logging"

	"github.com/spf13/cobra"
)

// cli carries what every subcommand needs once configuration is loaded.
type cli struct {
	configPath string
	app        *app.App
	runner     runner.Runner
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithRunner(&runner.ExecRunner{})
}

func newRootCmdWithRunner(r runner.Runner) *cobra.Command {
	c := &cli{runner: r}

	rootCmd := &cobra.Command{
		Use:           "patchpilot",
		Short:         "Submit code to the PatchPilot analyzer and manage local models",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "init" {
				return nil
			}
			if err := config.LoadConfig(c.configPath); err != nil {
				return fmt.Errorf("error loading configuration: %w", err)
			}
			logging.InitLogger()
			c.app = app.New(config.AppConfig, c.runner)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "path to config file (default ./config.yaml)")

	rootCmd.AddCommand(
		c.newAnalyzeCmd(),
		c.newModelCmd(),
		c.newEnvCmd(),
		c.newServeCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// printJSON writes v as indented JSON, the output format of every command.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
