package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"patchpilot/internal/models"

	"github.com/sirupsen/logrus"
)

// supportedExtensions is the allow-list of code file extensions, without the dot.
var supportedExtensions = map[string]bool{
	"py": true, "js": true, "ts": true, "jsx": true, "tsx": true,
	"java": true, "cpp": true, "c": true, "h": true, "hpp": true,
	"rs": true, "go": true, "php": true, "rb": true, "swift": true,
	"kt": true, "cs": true, "html": true, "css": true, "scss": true,
	"sass": true, "json": true, "xml": true, "yaml": true, "yml": true,
	"md": true, "txt": true, "lua": true, "luau": true, "r": true,
	"sql": true, "sh": true, "bash": true, "ps1": true, "vue": true,
	"svelte": true,
}

// InvalidPathError means a path failed local validation before any tool ran.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Path)
}

// SupportedExtensions returns the allow-list, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsSupported reports whether fileName has an allow-listed extension.
func IsSupported(fileName string) bool {
	return supportedExtensions[extensionOf(fileName)]
}

func extensionOf(fileName string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
}

// CheckDirectory fails with *InvalidPathError unless path is an existing directory.
func CheckDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &InvalidPathError{Path: path, Reason: "directory does not exist"}
	}
	if !info.IsDir() {
		return &InvalidPathError{Path: path, Reason: "path is not a directory"}
	}
	return nil
}

// ValidateDirectory counts the immediate files of path and how many of them are code.
// Subdirectories are not entered; entries whose metadata cannot be read are skipped.
func ValidateDirectory(path string) (*models.DirectoryInfo, error) {
	if err := CheckDirectory(path); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		logrus.Debugf("Listing of '%s' incomplete: %v", path, err)
	}

	info := &models.DirectoryInfo{Path: path, SupportedExtensions: []string{}}
	seen := make(map[string]bool)
	for _, entry := range entries {
		fileInfo, err := entry.Info()
		if err != nil {
			logrus.Debugf("Skipping unreadable entry '%s': %v", entry.Name(), err)
			continue
		}
		if fileInfo.IsDir() {
			continue
		}

		info.TotalFiles++
		ext := extensionOf(entry.Name())
		if !supportedExtensions[ext] {
			continue
		}
		info.CodeFiles++
		if !seen[ext] {
			seen[ext] = true
			info.SupportedExtensions = append(info.SupportedExtensions, ext)
		}
	}
	sort.Strings(info.SupportedExtensions)
	info.IsValid = info.CodeFiles > 0

	logrus.WithFields(logrus.Fields{"path": path, "files": info.TotalFiles, "code_files": info.CodeFiles}).
		Info("Directory validated")
	return info, nil
}

// CheckFile fails with *InvalidPathError unless path is an existing regular file.
func CheckFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &InvalidPathError{Path: path, Reason: "file does not exist"}
	}
	if info.IsDir() {
		return &InvalidPathError{Path: path, Reason: "path is a directory"}
	}
	return nil
}
