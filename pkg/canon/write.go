package canon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chazu/twisty/pkg/mjcf"
)

// ErrResourceWrite is returned when the output cannot be stored.
var ErrResourceWrite = errors.New("resource write failure")

// WriteFile renders d and stores it at path. The document is rendered in
// full before the file system is touched, and the file is replaced
// atomically so a failed run leaves no partial output behind.
func WriteFile(path string, d *mjcf.Document, opts Options) error {
	data, err := Render(d, opts)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResourceWrite, err)
	}
	defer func() {
		if cerr := tmp.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) && err == nil {
			err = fmt.Errorf("%w: close: %v", ErrResourceWrite, cerr)
		}
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrResourceWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("%w: sync: %v", ErrResourceWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close: %v", ErrResourceWrite, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: chmod: %v", ErrResourceWrite, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: rename: %v", ErrResourceWrite, err)
	}
	return nil
}
