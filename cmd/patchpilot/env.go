package main

import (
	"fmt"

	"patchpilot/internal/files"

	"github.com/spf13/cobra"
)

func (c *cli) newEnvCmd() *cobra.Command {
	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Local checks that never start an external tool",
	}

	envCmd.AddCommand(
		&cobra.Command{
			Use:   "extensions",
			Short: "List the file extensions treated as code",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printJSON(cmd.OutOrStdout(), files.SupportedExtensions())
			},
		},
		&cobra.Command{
			Use:   "validate <dir>",
			Short: "Count the code files directly inside a directory",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				info, err := files.ValidateDirectory(args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), info)
			},
		},
		&cobra.Command{
			Use:   "system",
			Short: "Show host OS, architecture and supported languages",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printJSON(cmd.OutOrStdout(), files.SystemInfo())
			},
		},
		&cobra.Command{
			Use:   "desktop",
			Short: "Print the user's Desktop path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := files.DesktopPath()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
	)
	return envCmd
}
