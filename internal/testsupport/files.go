package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to the target path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WritePageTexts writes a line-per-page text fixture, one entry per page.
// Empty strings become blank lines, modelling pages without extractable text.
func WritePageTexts(t testing.TB, path string, texts ...string) {
	t.Helper()
	WriteFile(t, path, strings.Join(texts, "\n")+"\n")
}
