package codegen

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/teranos/iconforge/errors"
)

// CheckResult holds the result of comparing generated output with disk
type CheckResult struct {
	UpToDate bool
	Stale    []string // files whose content differs
	Missing  []string // files that do not exist yet
}

// Check compares freshly generated files with the ones in dir.
// Generation is deterministic, so any byte difference means stale output.
func Check(dir string, files map[string][]byte) (*CheckResult, error) {
	result := &CheckResult{}

	for _, name := range sortedNames(files) {
		path := filepath.Join(dir, name)
		existing, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				result.Missing = append(result.Missing, path)
				continue
			}
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
		if !bytes.Equal(existing, files[name]) {
			result.Stale = append(result.Stale, path)
		}
	}

	result.UpToDate = len(result.Stale) == 0 && len(result.Missing) == 0
	return result, nil
}

// Merge folds other into r, for callers checking several targets
func (r *CheckResult) Merge(other *CheckResult) {
	r.Stale = append(r.Stale, other.Stale...)
	r.Missing = append(r.Missing, other.Missing...)
	r.UpToDate = len(r.Stale) == 0 && len(r.Missing) == 0
}

// Write writes every file into dir, creating it as needed, and returns the
// written paths in name order
func Write(dir string, files map[string][]byte) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	var written []string
	for _, name := range sortedNames(files) {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, files[name], 0644); err != nil {
			return written, errors.Wrapf(err, "failed to write %s", path)
		}
		written = append(written, path)
	}
	return written, nil
}

func sortedNames(files map[string][]byte) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
