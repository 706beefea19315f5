// Package modelsvc fronts the local model-serving CLI.
package modelsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"patchpilot/internal/llm"
	"patchpilot/internal/models"
	"patchpilot/internal/runner"

	"github.com/sirupsen/logrus"
)

const askSystemPrompt = "You are PatchPilot, a helpful offline coding assistant. Answer concisely and include code when it helps."

// Gateway lists and installs models through the CLI and answers questions through an llm.Client.
type Gateway struct {
	runner runner.Runner
	tool   string
	llm    llm.Client
}

// NewGateway creates a Gateway for the CLI named tool (e.g. "ollama").
// client may be nil when Ask is not needed.
func NewGateway(r runner.Runner, tool string, client llm.Client) *Gateway {
	return &Gateway{runner: r, tool: tool, llm: client}
}

// displayName is the tool name as shown in status messages.
func (g *Gateway) displayName() string {
	if g.tool == "" {
		return ""
	}
	return strings.ToUpper(g.tool[:1]) + g.tool[1:]
}

// Status runs "<tool> list". It never fails; problems are reported in the status.
func (g *Gateway) Status(ctx context.Context) models.ModelServiceStatus {
	out, err := g.runner.Run(ctx, g.tool, "list")
	if err != nil {
		cause := err
		var launchErr *runner.LaunchError
		if errors.As(err, &launchErr) {
			cause = launchErr.Err
		}
		logrus.WithField("tool", g.tool).Warnf("Model CLI unavailable: %v", cause)
		return models.ModelServiceStatus{
			Available: false,
			Models:    []string{},
			Error:     fmt.Sprintf("%s not installed: %v", g.displayName(), cause),
		}
	}

	if !out.ExitSuccess {
		logrus.WithField("tool", g.tool).Warnf("Model CLI list failed: %s", out.StderrText())
		return models.ModelServiceStatus{
			Available: false,
			Models:    []string{},
			Error:     fmt.Sprintf("%s service not running", g.displayName()),
		}
	}

	return models.ModelServiceStatus{Available: true, Models: ParseModelList(out.Stdout)}
}

// ParseModelList takes the first whitespace-separated token of every line after the header.
func ParseModelList(stdout []byte) []string {
	names := []string{}
	lines := strings.Split(string(stdout), "\n")
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		names = append(names, fields[0])
	}
	return names
}

// InstallModel runs "<tool> pull <name>".
func (g *Gateway) InstallModel(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("model name is required")
	}

	logrus.WithFields(logrus.Fields{"tool": g.tool, "model": name}).Info("Pulling model")
	out, err := g.runner.Run(ctx, g.tool, "pull", name)
	if err != nil {
		var launchErr *runner.LaunchError
		if errors.As(err, &launchErr) {
			err = launchErr.Err
		}
		return "", fmt.Errorf("failed to pull model: %w", err)
	}
	if exitErr := runner.ExitFailure(g.tool, out); exitErr != nil {
		return "", fmt.Errorf("failed to install model %s: %w", name, exitErr)
	}

	return fmt.Sprintf("Successfully installed model: %s", name), nil
}

// Ask sends a free-form question to the configured model.
func (g *Gateway) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", errors.New("please provide a question or prompt")
	}
	if g.llm == nil {
		return "", errors.New("no model client configured")
	}

	answer, err := g.llm.Request(ctx, askSystemPrompt, question)
	if err != nil {
		return "", fmt.Errorf("chatbot failed: %w", err)
	}
	return answer, nil
}
