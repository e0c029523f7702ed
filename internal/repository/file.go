package repository

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

const defaultFileMode fs.FileMode = 0o600

// writeFileAtomic replaces path with data by writing a sibling temp file and
// renaming it over the target. A failed write leaves the old file untouched.
// An existing file keeps its permission bits.
func writeFileAtomic(path string, data []byte) (err error) {
	mode := defaultFileMode
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(statErr, fs.ErrNotExist) {
		return statErr
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(mode); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
