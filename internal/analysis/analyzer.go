package analysis

import (
	"context"
	"errors"
	"fmt"

	"patchpilot/internal/decode"
	"patchpilot/internal/files"
	"patchpilot/internal/models"
	"patchpilot/internal/runner"

	"github.com/sirupsen/logrus"
)

// Config says how to launch the external analyzer.
type Config struct {
	Interpreter  string
	Script       string
	BatchWorkers int
}

// AnalysisError is the caller-visible failure of an analyzer operation.
// Err is the underlying runner, decode or validation error.
type AnalysisError struct {
	msg string
	Err error
}

func (e *AnalysisError) Error() string { return e.msg }

func (e *AnalysisError) Unwrap() error { return e.Err }

// Analyzer runs the external analyzer and decodes what it prints.
type Analyzer struct {
	runner   runner.Runner
	cfg      Config
	progress ProgressSink
}

// NewAnalyzer creates an Analyzer. A nil sink logs progress to the standard logrus logger.
func NewAnalyzer(r runner.Runner, cfg Config, sink ProgressSink) *Analyzer {
	if sink == nil {
		sink = LogSink{}
	}
	if cfg.BatchWorkers < 1 {
		cfg.BatchWorkers = 1
	}
	return &Analyzer{runner: r, cfg: cfg, progress: sink}
}

// AnalyzeFile sends one file's content to the analyzer.
func (a *Analyzer) AnalyzeFile(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	t := newTracker(a.progress, "analyze_file")
	t.update("reading", 10, fmt.Sprintf("Reading %s...", req.Filename), req.Filename)

	var result models.AnalysisResult
	t.update("analyzing", 30, "Running analyzer...", req.Filename)
	if err := a.invoke(ctx, &result, req.Code, req.Filename); err != nil {
		return nil, err
	}
	normalize(&result)

	t.update("complete", 100, "Analysis complete!", req.Filename)
	return &result, nil
}

// AnalyzeDirectory checks that the directory exists, then hands its path to the analyzer.
func (a *Analyzer) AnalyzeDirectory(ctx context.Context, req models.DirectoryAnalysisRequest) (*models.DirectoryAnalysisResult, error) {
	if err := files.CheckDirectory(req.DirectoryPath); err != nil {
		return nil, &AnalysisError{msg: fmt.Sprintf("invalid directory: %v", err), Err: err}
	}

	t := newTracker(a.progress, "analyze_directory")
	t.update("reading", 0, fmt.Sprintf("Scanning %s...", req.DirectoryPath), "")

	var result models.DirectoryAnalysisResult
	t.update("analyzing", 30, "Running analyzer on directory...", "")
	if err := a.invoke(ctx, &result, req.DirectoryPath); err != nil {
		return nil, err
	}
	for i := range result.Results {
		normalize(&result.Results[i])
	}

	t.update("complete", 100, fmt.Sprintf("Directory analysis complete: %d/%d files", result.AnalyzedFiles, result.TotalFiles), "")
	return &result, nil
}

// RunFile asks the analyzer to execute a file in a scratch directory and report its output.
func (a *Analyzer) RunFile(ctx context.Context, path string) (*models.SandboxResult, error) {
	if err := files.CheckFile(path); err != nil {
		return nil, &AnalysisError{msg: fmt.Sprintf("invalid file: %v", err), Err: err}
	}

	t := newTracker(a.progress, "run_file")
	t.update("running", 10, fmt.Sprintf("Running %s...", path), path)

	var result models.SandboxResult
	if err := a.invoke(ctx, &result, "--run", path); err != nil {
		return nil, err
	}

	t.update("complete", 100, "Run complete", path)
	return &result, nil
}

// invoke runs "<interpreter> <script> args..." and decodes stdout into v.
func (a *Analyzer) invoke(ctx context.Context, v decode.Shape, args ...string) error {
	argv := append([]string{a.cfg.Script}, args...)
	out, err := a.runner.Run(ctx, a.cfg.Interpreter, argv...)
	if err != nil {
		var launchErr *runner.LaunchError
		if errors.As(err, &launchErr) {
			err = launchErr.Err
		}
		return &AnalysisError{msg: fmt.Sprintf("failed to execute analyzer: %v", err), Err: err}
	}

	if exitErr := runner.ExitFailure(a.cfg.Interpreter, out); exitErr != nil {
		logrus.WithField("script", a.cfg.Script).Warnf("Analyzer exited with failure: %v", exitErr)
		return &AnalysisError{msg: fmt.Sprintf("analyzer failed: %v", exitErr), Err: exitErr}
	}

	if err := decode.Into(out.Stdout, v); err != nil {
		return &AnalysisError{msg: fmt.Sprintf("failed to parse analyzer response: %v", err), Err: err}
	}
	return nil
}

// normalize gives every failed result a narrative.
func normalize(r *models.AnalysisResult) {
	if r.Success || r.Response != "" {
		return
	}
	reason := r.Error
	if reason == "" {
		reason = "unknown error"
	}
	r.Response = "Analysis failed: " + reason
}
