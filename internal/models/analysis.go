package models

import "encoding/json"

// AnalysisRequest is the input to single-file analysis.
type AnalysisRequest struct {
	Code     string `json:"code"`
	Filename string `json:"filename"`
}

// DirectoryAnalysisRequest names a directory to hand to the analyzer.
type DirectoryAnalysisRequest struct {
	DirectoryPath string `json:"directory_path"`
}

// BatchFile is one entry of a batch. Path is only used for display.
// ReadErr marks a file whose content could not be loaded; it is reported as
// a failed entry without running the analyzer.
type BatchFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Path    string `json:"path,omitempty"`
	ReadErr error  `json:"-"`
}

// BatchRequest lists files in the order they should be analyzed and reported.
type BatchRequest struct {
	Files []BatchFile `json:"files"`
}

// AnalysisResult mirrors the analyzer's single-file JSON document.
// StaticAnalysis and AIAnalysis are passed through without interpretation.
type AnalysisResult struct {
	Language       string `json:"language"`
	Filename       string `json:"filename"`
	StaticAnalysis any    `json:"static_analysis"`
	AIAnalysis     any    `json:"ai_analysis"`
	Response       string `json:"response"`
	Lines          int    `json:"lines"`
	Size           int    `json:"size"`
	Success        bool   `json:"success"`
	Error          string `json:"error,omitempty"`
	RelativePath   string `json:"relative_path,omitempty"`
}

// UnmarshalJSON treats an absent "success" as true, as the analyzer does.
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	type plain AnalysisResult
	decoded := plain{Success: true}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*r = AnalysisResult(decoded)
	return nil
}

func (*AnalysisResult) RequiredFields() []string {
	return []string{"language", "filename", "static_analysis", "ai_analysis", "response", "lines", "size"}
}

// DirectoryAnalysisResult mirrors the analyzer's directory JSON document.
type DirectoryAnalysisResult struct {
	Type            string           `json:"type"`
	Path            string           `json:"path"`
	TotalFiles      int              `json:"total_files"`
	AnalyzedFiles   int              `json:"analyzed_files"`
	Results         []AnalysisResult `json:"results"`
	ProjectAnalysis any              `json:"project_analysis"`
}

func (*DirectoryAnalysisResult) RequiredFields() []string {
	return []string{"type", "path", "total_files", "analyzed_files", "results", "project_analysis"}
}

// BatchResult aggregates a batch. Summary is a sentence for display only.
type BatchResult struct {
	TotalFiles         int              `json:"total_files"`
	SuccessfulAnalyses int              `json:"successful_analyses"`
	Results            []AnalysisResult `json:"results"`
	Summary            string           `json:"summary"`
}

// SandboxResult is the analyzer's report of running a file in a scratch directory.
type SandboxResult struct {
	Stdout  string `json:"stdout"`
	Stderr  string `json:"stderr"`
	Timeout bool   `json:"timeout"`
}

func (*SandboxResult) RequiredFields() []string {
	return []string{"stdout", "stderr", "timeout"}
}

// ProgressUpdate is one step of an operation's progress. It is only logged.
type ProgressUpdate struct {
	Step        string `json:"step"`
	Progress    int    `json:"progress"`
	Message     string `json:"message"`
	CurrentFile string `json:"current_file,omitempty"`
}
