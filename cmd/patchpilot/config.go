package main

import (
	"fmt"

	"patchpilot/config"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var path string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&path, "output", "config.yaml", "where to write the file")

	configCmd.AddCommand(initCmd)
	return configCmd
}
