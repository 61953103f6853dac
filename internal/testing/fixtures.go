package testing

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/teranos/iconforge/am"
)

// MinimalSVG is the content written for fixture icons; nothing parses it
const MinimalSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"/>` + "\n"

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// WriteIcons creates dir and one <name>.svg per name inside it.
func WriteIcons(t *testing.T, dir string, names ...string) {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create icon directory %s: %v", dir, err)
	}
	for _, name := range names {
		WriteFile(t, filepath.Join(dir, name+".svg"), MinimalSVG)
	}
}

// NewProject creates a project tree in a temp directory with the given icons
// in the default source directory and returns its default configuration.
// Automatically cleaned up with the test.
func NewProject(t *testing.T, names ...string) *am.Config {
	t.Helper()

	cfg := am.Defaults(t.TempDir())
	WriteIcons(t, cfg.SourceDir(), names...)
	return cfg
}

// ListFiles returns every regular file under root, slash-separated and
// relative to root, sorted. A missing root yields nil.
func ListFiles(t *testing.T, root string) []string {
	t.Helper()

	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipDir
			}
			return err
		}
		if d.Type().IsRegular() {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to list %s: %v", root, err)
	}
	sort.Strings(files)
	return files
}
