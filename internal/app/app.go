// Package app wires the operations exposed to callers.
package app

import (
	"patchpilot/config"
	"patchpilot/internal/analysis"
	"patchpilot/internal/llm"
	"patchpilot/internal/modelsvc"
	"patchpilot/internal/runner"

	"github.com/sirupsen/logrus"
)

// App holds one instance of each operation provider. It has no mutable state.
type App struct {
	Analyzer    *analysis.Analyzer
	Models      *modelsvc.Gateway
	MaxFileSize int64
}

// New builds an App from cfg, launching every external tool through r.
func New(cfg *config.Config, r runner.Runner) *App {
	analyzer := analysis.NewAnalyzer(r, analysis.Config{
		Interpreter:  cfg.Analyzer.Interpreter,
		Script:       cfg.Analyzer.Script,
		BatchWorkers: cfg.Analyzer.BatchWorkers,
	}, analysis.LogSink{Logger: logrus.StandardLogger()})

	var client llm.Client
	ollamaClient, err := llm.NewOllamaClient(cfg.Ollama.Host, cfg.Ollama.Model, cfg.Ollama.MaxPromptLength)
	if err != nil {
		logrus.Warnf("Questions are disabled: %v", err)
	} else {
		client = ollamaClient
	}

	return &App{
		Analyzer:    analyzer,
		Models:      modelsvc.NewGateway(r, cfg.Ollama.CLI, client),
		MaxFileSize: cfg.Analyzer.MaxFileSize,
	}
}
