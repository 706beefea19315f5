package analysis

import (
	"context"
	"fmt"
	"strings"

	"patchpilot/internal/models"

	"golang.org/x/sync/errgroup"
)

// issuesPhrase is matched literally against each narrative; the analyzer has
// no structured issue count in its batch contract.
const issuesPhrase = "issues found"

// AnalyzeBatch analyzes every file and never fails as a whole. A file that
// cannot be analyzed becomes a failed entry at its own index.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, req models.BatchRequest) models.BatchResult {
	total := len(req.Files)
	t := newTracker(a.progress, "analyze_batch")
	results := make([]models.AnalysisResult, total)

	analyzeAt := func(i int) {
		f := req.Files[i]
		t.update("analyzing", i*100/max(total, 1), fmt.Sprintf("Processing %s (%d/%d)", f.Name, i+1, total), f.Name)
		results[i] = a.batchEntry(ctx, f)
	}

	if a.cfg.BatchWorkers <= 1 {
		for i := range req.Files {
			analyzeAt(i)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(a.cfg.BatchWorkers)
		for i := range req.Files {
			i := i
			g.Go(func() error {
				analyzeAt(i)
				return nil
			})
		}
		_ = g.Wait()
	}

	successful := 0
	withIssues := 0
	for _, r := range results {
		if r.Success {
			successful++
		}
		if strings.Contains(r.Response, issuesPhrase) {
			withIssues++
		}
	}

	t.update("complete", 100, fmt.Sprintf("Batch analysis complete: %d files processed", total), "")
	return models.BatchResult{
		TotalFiles:         total,
		SuccessfulAnalyses: successful,
		Results:            results,
		Summary:            fmt.Sprintf("Analyzed %d/%d files successfully. %d file(s) with issues found.", successful, total, withIssues),
	}
}

func (a *Analyzer) batchEntry(ctx context.Context, f models.BatchFile) models.AnalysisResult {
	if f.ReadErr != nil {
		return failedEntry(f.Name, f.ReadErr)
	}
	res, err := a.AnalyzeFile(ctx, models.AnalysisRequest{Code: f.Content, Filename: f.Name})
	if err != nil {
		return failedEntry(f.Name, err)
	}
	if f.Path != "" {
		res.Filename = fmt.Sprintf("%s (%s)", f.Name, f.Path)
	} else {
		res.Filename = f.Name
	}
	return *res
}

func failedEntry(name string, err error) models.AnalysisResult {
	return models.AnalysisResult{
		Language: "unknown",
		Filename: name,
		Response: fmt.Sprintf("Analysis failed: %v", err),
		Success:  false,
		Error:    err.Error(),
	}
}
