package files

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const sniffLen = 1024

// ReadFileContent reads a text file for submission to the analyzer.
// Directories, binary files and files larger than maxSize (when maxSize > 0) are refused.
func ReadFileContent(path string, maxSize int64) (string, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("file not found or stat error: %w", err)
	}
	if fileInfo.IsDir() {
		return "", fmt.Errorf("path '%s' is a directory, not a file", path)
	}
	if maxSize > 0 && fileInfo.Size() > maxSize {
		return "", fmt.Errorf("file '%s' is too large (%d bytes, limit %d)", filepath.Base(path), fileInfo.Size(), maxSize)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("error reading file: %w", err)
	}

	head := content
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return "", fmt.Errorf("file '%s' appears to be binary", filepath.Base(path))
	}

	logrus.Debugf("Read file '%s' (%d bytes).", filepath.Base(path), len(content))
	return string(content), nil
}
