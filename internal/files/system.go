package files

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"patchpilot/internal/models"
)

// supportedLanguages is shown to users. It is maintained by hand alongside
// supportedExtensions and can drift from it.
var supportedLanguages = []string{
	"Python", "JavaScript", "TypeScript", "Java", "C++", "C", "Rust", "Go",
	"PHP", "Ruby", "Swift", "Kotlin", "C#", "HTML", "CSS", "SCSS", "JSON",
	"XML", "YAML", "Markdown", "Lua", "Luau", "R", "SQL", "Shell",
	"PowerShell", "Vue", "Svelte",
}

// SystemInfo reports the host OS and architecture.
func SystemInfo() models.SystemInfo {
	return models.SystemInfo{
		OS:                 runtime.GOOS,
		Arch:               runtime.GOARCH,
		SupportedLanguages: append([]string(nil), supportedLanguages...),
	}
}

// DesktopPath returns the user's Desktop directory. It does not check that it exists.
func DesktopPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.New("could not find home directory")
	}
	return filepath.Join(home, "Desktop"), nil
}
