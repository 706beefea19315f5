package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *cli) newModelCmd() *cobra.Command {
	modelCmd := &cobra.Command{
		Use:   "model",
		Short: "Inspect and install local models",
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Report whether the model CLI is available and which models are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), c.app.Models.Status(cmd.Context()))
		},
	}

	installCmd := &cobra.Command{
		Use:   "install <model>",
		Short: "Pull a model through the model CLI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := c.app.Models.InstallModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	askCmd := &cobra.Command{
		Use:   "ask <question>...",
		Short: "Ask the configured model a coding question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answer, err := c.app.Models.Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}

	modelCmd.AddCommand(statusCmd, installCmd, askCmd)
	return modelCmd
}
