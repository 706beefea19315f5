package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"patchpilot/internal/files"
	"patchpilot/internal/models"

	"github.com/spf13/cobra"
)

func (c *cli) newAnalyzeCmd() *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the external analyzer on code",
	}

	var code, filename string
	fileCmd := &cobra.Command{
		Use:   "file [path]",
		Short: "Analyze a single file, or inline code given with --code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.AnalysisRequest{Code: code, Filename: filename}
			switch {
			case len(args) == 1 && code != "":
				return errors.New("give either a file path or --code, not both")
			case len(args) == 1:
				content, err := files.ReadFileContent(args[0], c.app.MaxFileSize)
				if err != nil {
					return err
				}
				req.Code = content
				if req.Filename == "" {
					req.Filename = filepath.Base(args[0])
				}
			case code == "":
				return errors.New("either a file path or --code is required")
			case req.Filename == "":
				req.Filename = "script.py"
			}

			res, err := c.app.Analyzer.AnalyzeFile(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	fileCmd.Flags().StringVar(&code, "code", "", "code to analyze instead of reading a file")
	fileCmd.Flags().StringVar(&filename, "filename", "", "file name reported to the analyzer")

	dirCmd := &cobra.Command{
		Use:   "dir <path>",
		Short: "Analyze a whole directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Analyzer.AnalyzeDirectory(cmd.Context(), models.DirectoryAnalysisRequest{DirectoryPath: args[0]})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch <path>...",
		Short: "Analyze several files one after the other",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.BatchRequest{Files: make([]models.BatchFile, 0, len(args))}
			for _, path := range args {
				content, err := files.ReadFileContent(path, c.app.MaxFileSize)
				if err != nil {
					err = fmt.Errorf("cannot read '%s': %w", path, err)
				}
				req.Files = append(req.Files, models.BatchFile{Name: filepath.Base(path), Content: content, Path: path, ReadErr: err})
			}
			return printJSON(cmd.OutOrStdout(), c.app.Analyzer.AnalyzeBatch(cmd.Context(), req))
		},
	}

	runCmd := &cobra.Command{
		Use:   "run <path>",
		Short: "Execute a file in the analyzer's scratch sandbox",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Analyzer.RunFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	analyzeCmd.AddCommand(fileCmd, dirCmd, batchCmd, runCmd)
	return analyzeCmd
}
