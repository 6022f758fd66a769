package file

import (
	"errors"
	"os"

	"github.com/spf13/afero"
)

// Exists reports whether a regular file is present at the given path.
func Exists(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}
