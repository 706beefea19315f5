package llm

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/JexSrs/go-ollama"
	"github.com/sirupsen/logrus"
)

// OllamaClient talks to a local Ollama server over its HTTP API.
type OllamaClient struct {
	client          *ollama.Ollama
	model           string
	maxPromptLength int
}

var _ Client = &OllamaClient{}

// NewOllamaClient creates a client for the server at host using model.
func NewOllamaClient(host, model string, maxPromptLength int) (*OllamaClient, error) {
	ollamaURL, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}
	if ollamaURL.Scheme == "" || ollamaURL.Host == "" {
		return nil, fmt.Errorf("invalid Ollama URL: %q", host)
	}

	logrus.WithFields(logrus.Fields{"host": host, "model": model}).Debug("Using Ollama HTTP client")

	return &OllamaClient{
		client:          ollama.New(*ollamaURL),
		model:           model,
		maxPromptLength: maxPromptLength,
	}, nil
}

// Request sends one non-streaming Generate call.
func (oc *OllamaClient) Request(ctx context.Context, systemMessage, userPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	userPrompt = TruncatePrompt(userPrompt, oc.maxPromptLength)

	res, err := oc.client.Generate(
		oc.client.Generate.WithModel(oc.model),
		oc.client.Generate.WithSystem(systemMessage),
		oc.client.Generate.WithPrompt(userPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("error calling Ollama Generate API: %w", err)
	}

	if !res.Done {
		return "", errors.New("Ollama request did not complete (unexpected streaming behaviour)")
	}
	answer := CleanResponse(res.Response)
	if answer == "" {
		return "", errors.New("Ollama returned an empty response")
	}
	logrus.Debug("Response received from Ollama.")
	return answer, nil
}

// TruncatePrompt cuts prompt to at most maxLen bytes; maxLen <= 0 disables the limit.
func TruncatePrompt(prompt string, maxLen int) string {
	if maxLen <= 0 || len(prompt) <= maxLen {
		return prompt
	}
	logrus.Warnf("Prompt is being truncated from %d to %d characters.", len(prompt), maxLen)
	return prompt[:maxLen]
}

// CleanResponse strips the code fences models sometimes wrap answers in.
func CleanResponse(raw string) string {
	return strings.TrimSpace(strings.Trim(raw, "`"))
}
