package pipeline

import (
	"os"
	"path/filepath"
	"time"

	"github.com/teranos/iconforge/am"
	"github.com/teranos/iconforge/errors"
)

// Touch creates the empty completion marker at path, or bumps its
// modification time when it already exists
func Touch(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), am.DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}

	now := time.Now()
	if err := os.Chtimes(path, now, now); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to touch %s", path)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, am.DefaultFilePermissions)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	return f.Close()
}
