package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncatePrompt(t *testing.T) {
	assert.Equal(t, "abc", TruncatePrompt("abcdef", 3))
	assert.Equal(t, "abc", TruncatePrompt("abc", 10))
	assert.Equal(t, "abcdef", TruncatePrompt("abcdef", 0))
}

func TestCleanResponse(t *testing.T) {
	assert.Equal(t, "go\nfunc main() {}", CleanResponse("```go\nfunc main() {}\n```"))
	assert.Equal(t, "plain", CleanResponse("  plain \n"))
}

func TestNewOllamaClient(t *testing.T) {
	c, err := NewOllamaClient("http://127.0.0.1:11434", "codellama:7b-instruct", 100)
	require.NoError(t, err)
	assert.Equal(t, "codellama:7b-instruct", c.model)

	_, err = NewOllamaClient("not a url", "m", 0)
	assert.Error(t, err)
}
