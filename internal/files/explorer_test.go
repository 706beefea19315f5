package files

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("test content"), 0644))
	}
}

func TestSupportedExtensions(t *testing.T) {
	exts := SupportedExtensions()

	assert.Len(t, exts, 36)
	assert.Contains(t, exts, "luau")
	assert.Contains(t, exts, "svelte")
	assert.True(t, IsSupported("Main.GO"))
	assert.False(t, IsSupported("image.png"))
	assert.False(t, IsSupported("Makefile"))
}

func TestValidateDirectory_CountsImmediateFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "main.go", "util.go", "README.md", "logo.png")
	sub := filepath.Join(dir, "pkg")
	require.NoError(t, os.Mkdir(sub, 0755))
	writeFiles(t, sub, "nested.py")

	info, err := ValidateDirectory(dir)
	require.NoError(t, err)

	assert.Equal(t, 4, info.TotalFiles)
	assert.Equal(t, 3, info.CodeFiles)
	assert.Equal(t, []string{"go", "md"}, info.SupportedExtensions)
	assert.True(t, info.IsValid)
	assert.LessOrEqual(t, info.CodeFiles, info.TotalFiles)
}

func TestValidateDirectory_Empty(t *testing.T) {
	info, err := ValidateDirectory(t.TempDir())
	require.NoError(t, err)

	assert.False(t, info.IsValid)
	assert.Equal(t, 0, info.CodeFiles)
	assert.Equal(t, 0, info.TotalFiles)
}

func TestValidateDirectory_InvalidPaths(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "file.txt")

	testCases := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "nope")},
		{"not a directory", filepath.Join(dir, "file.txt")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateDirectory(tc.path)
			var invalid *InvalidPathError
			assert.True(t, errors.As(err, &invalid), "got %v", err)
		})
	}
}

func TestValidateDirectory_UnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	dir := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(dir, 0o755))
	writeFiles(t, dir, "a.py")
	require.NoError(t, os.Chmod(dir, 0o311))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	info, err := ValidateDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, info.TotalFiles)
	assert.Equal(t, 0, info.CodeFiles)
	assert.False(t, info.IsValid)
}

func TestSystemInfo(t *testing.T) {
	info := SystemInfo()

	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Arch)
	assert.Contains(t, info.SupportedLanguages, "Python")
}

func TestDesktopPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	path, err := DesktopPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Desktop"), path)
}
