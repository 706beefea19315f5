package decode

import (
	"errors"
	"testing"

	"patchpilot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInto_AnalysisResult(t *testing.T) {
	data := []byte(`{"language":"python","filename":"a.py","static_analysis":{},"ai_analysis":{},"response":"3 issues found","lines":10,"size":200,"success":true}`)

	var res models.AnalysisResult
	require.NoError(t, Into(data, &res))

	assert.Equal(t, "python", res.Language)
	assert.Equal(t, 10, res.Lines)
	assert.Equal(t, 200, res.Size)
	assert.True(t, res.Success)
	assert.Equal(t, map[string]any{}, res.StaticAnalysis)
}

func TestInto_AbsentSuccessDefaultsTrue(t *testing.T) {
	data := []byte(`{"language":"go","filename":"m.go","static_analysis":null,"ai_analysis":{"status":"error"},"response":"ok","lines":1,"size":2}`)

	var res models.AnalysisResult
	require.NoError(t, Into(data, &res))
	assert.True(t, res.Success)
	assert.Equal(t, map[string]any{"status": "error"}, res.AIAnalysis)
}

func TestInto_MissingFields(t *testing.T) {
	var res models.AnalysisResult
	err := Into([]byte(`{"language":"python","filename":"a.py"}`), &res)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.ElementsMatch(t, []string{"static_analysis", "ai_analysis", "response", "lines", "size"}, decodeErr.Missing)
	assert.Contains(t, err.Error(), "missing required field(s)")
}

func TestInto_Malformed(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"not json", "Traceback (most recent call last):"},
		{"empty", ""},
		{"array", "[1,2]"},
		{"wrong type", `{"stdout":1,"stderr":"","timeout":false}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var res models.SandboxResult
			err := Into([]byte(tc.data), &res)
			var decodeErr *DecodeError
			assert.True(t, errors.As(err, &decodeErr), "got %v", err)
		})
	}
}
