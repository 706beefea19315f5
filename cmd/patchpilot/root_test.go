package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"patchpilot/internal/models"
	"patchpilot/internal/runner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
analyzer:
  interpreter: python3
  script: processor.py
  max_file_size: 1000
ollama:
  cli: ollama
logging:
  level: error
`

func execute(t *testing.T, fake *runner.FakeRunner, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfig), 0o644))

	cmd := newRootCmdWithRunner(fake)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeFile_InlineCode(t *testing.T) {
	fake := &runner.FakeRunner{Default: runner.Succeed(
		`{"language":"python","filename":"a.py","static_analysis":{},"ai_analysis":{},"response":"ok","lines":1,"size":8}`,
	)}

	out, err := execute(t, fake, "analyze", "file", "--code", "print(1)", "--filename", "a.py")
	require.NoError(t, err)

	var res models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "python", res.Language)
	assert.True(t, res.Success)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"processor.py", "print(1)", "a.py"}, calls[0].Args)
}

func TestAnalyzeFile_ReadsPath(t *testing.T) {
	fake := &runner.FakeRunner{Default: runner.Succeed(
		`{"language":"go","filename":"main.go","static_analysis":{},"ai_analysis":{},"response":"ok","lines":1,"size":12}`,
	)}
	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main"), 0o644))

	_, err := execute(t, fake, "analyze", "file", path)
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"processor.py", "package main", "main.go"}, calls[0].Args)
}

func TestAnalyzeFile_RequiresInput(t *testing.T) {
	fake := &runner.FakeRunner{}
	_, err := execute(t, fake, "analyze", "file")
	require.Error(t, err)
	assert.Empty(t, fake.Calls())
}

func TestAnalyzeBatch_Summary(t *testing.T) {
	fake := &runner.FakeRunner{Default: runner.Succeed(
		`{"language":"python","filename":"x.py","static_analysis":{},"ai_analysis":{},"response":"2 issues found","lines":1,"size":1}`,
	)}
	dir := t.TempDir()
	a := filepath.Join(dir, "a.py")
	b := filepath.Join(dir, "b.py")
	require.NoError(t, os.WriteFile(a, []byte("x = 1"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("y = 2"), 0o644))

	out, err := execute(t, fake, "analyze", "batch", a, b)
	require.NoError(t, err)

	var res models.BatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 2, res.TotalFiles)
	assert.Equal(t, 2, res.SuccessfulAnalyses)
	assert.Equal(t, "Analyzed 2/2 files successfully. 2 file(s) with issues found.", res.Summary)
}

func TestAnalyzeBatch_UnreadableFileKeepsGoing(t *testing.T) {
	fake := &runner.FakeRunner{Default: runner.Succeed(
		`{"language":"python","filename":"a.py","static_analysis":{},"ai_analysis":{},"response":"ok","lines":1,"size":1}`,
	)}
	dir := t.TempDir()
	a := filepath.Join(dir, "a.py")
	missing := filepath.Join(dir, "missing.py")
	require.NoError(t, os.WriteFile(a, []byte("x = 1"), 0o644))

	out, err := execute(t, fake, "analyze", "batch", a, missing)
	require.NoError(t, err)

	var res models.BatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 2, res.TotalFiles)
	assert.Equal(t, 1, res.SuccessfulAnalyses)
	require.Len(t, res.Results, 2)
	assert.True(t, res.Results[0].Success)
	assert.False(t, res.Results[1].Success)
	assert.Equal(t, "missing.py", res.Results[1].Filename)
	assert.Contains(t, res.Results[1].Response, "Analysis failed: cannot read")
	assert.Len(t, fake.Calls(), 1)
}

func TestAnalyzeFile_PathAndCodeConflict(t *testing.T) {
	fake := &runner.FakeRunner{}
	path := filepath.Join(t.TempDir(), "a.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))

	_, err := execute(t, fake, "analyze", "file", path, "--code", "print(1)")
	require.Error(t, err)
	assert.Empty(t, fake.Calls())
}

func TestModelStatus_NotInstalled(t *testing.T) {
	fake := &runner.FakeRunner{Default: runner.Missing(errors.New("executable file not found in $PATH"))}

	out, err := execute(t, fake, "model", "status")
	require.NoError(t, err)

	var status models.ModelServiceStatus
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.False(t, status.Available)
	assert.Equal(t, "Ollama not installed: executable file not found in $PATH", status.Error)
}

func TestModelInstall(t *testing.T) {
	fake := &runner.FakeRunner{Default: runner.Succeed("success\n")}

	out, err := execute(t, fake, "model", "install", "codellama:7b")
	require.NoError(t, err)
	assert.Equal(t, "Successfully installed model: codellama:7b\n", out)
	assert.Equal(t, "ollama pull codellama:7b", fake.Calls()[0].String())
}

func TestEnvExtensions(t *testing.T) {
	out, err := execute(t, &runner.FakeRunner{}, "env", "extensions")
	require.NoError(t, err)

	var exts []string
	require.NoError(t, json.Unmarshal([]byte(out), &exts))
	assert.Contains(t, exts, "py")
	assert.Contains(t, exts, "go")
}

func TestConfigInit_SkipsLoading(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")

	cmd := newRootCmdWithRunner(&runner.FakeRunner{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", "/does/not/exist.yaml", "config", "init", "--output", path})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, path)
	assert.Contains(t, out.String(), path)
}
