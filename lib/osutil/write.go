package osutil

import (
	"errors"
	"fmt"
	"os"
)

var ErrOutputExists = errors.New("output file already exists")

// WriteResult persists a fetched payload to path. An existing file is
// left untouched unless force is set, in which case it is removed first
// and recreated. The remove-then-create sequence is not atomic.
func WriteResult(path string, data []byte, force bool) error {
	_, err := os.Stat(path)
	if err == nil {
		if !force {
			return fmt.Errorf("%w: %s (use '--force' to overwrite it)", ErrOutputExists, path)
		}
		err = os.Remove(path)
		if err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
