package app

import (
	"context"
	"testing"

	"patchpilot/config"
	"patchpilot/internal/models"
	"patchpilot/internal/runner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_UsesConfiguredTools(t *testing.T) {
	cfg := config.Default()
	cfg.Analyzer.Interpreter = "python"
	cfg.Analyzer.Script = "/opt/patchpilot/processor.py"
	cfg.Ollama.CLI = "ollama-dev"

	fake := &runner.FakeRunner{Default: runner.Fail("nope")}
	a := New(&cfg, fake)

	_, err := a.Analyzer.AnalyzeFile(context.Background(), models.AnalysisRequest{Code: "x", Filename: "x.py"})
	require.Error(t, err)
	a.Models.Status(context.Background())

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "python", calls[0].Executable)
	assert.Equal(t, "/opt/patchpilot/processor.py", calls[0].Args[0])
	assert.Equal(t, "ollama-dev", calls[1].Executable)
	assert.Equal(t, cfg.Analyzer.MaxFileSize, a.MaxFileSize)
}

func TestNew_BadOllamaHostDisablesAsk(t *testing.T) {
	cfg := config.Default()
	cfg.Ollama.Host = "::bad"

	a := New(&cfg, &runner.FakeRunner{})

	_, err := a.Models.Ask(context.Background(), "hello")
	assert.ErrorContains(t, err, "no model client configured")
}
