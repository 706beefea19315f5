package models

// ModelServiceStatus reports whether the model-serving CLI answered and what it lists.
type ModelServiceStatus struct {
	Available bool     `json:"available"`
	Models    []string `json:"models"`
	Error     string   `json:"error,omitempty"`
}

// DirectoryInfo is the result of a shallow scan of a directory.
type DirectoryInfo struct {
	Path                string   `json:"path"`
	TotalFiles          int      `json:"total_files"`
	CodeFiles           int      `json:"code_files"`
	SupportedExtensions []string `json:"supported_extensions"`
	IsValid             bool     `json:"is_valid"`
}

// SystemInfo describes the host.
type SystemInfo struct {
	OS                 string   `json:"os"`
	Arch               string   `json:"arch"`
	SupportedLanguages []string `json:"supported_languages"`
}
