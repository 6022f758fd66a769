package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/mvh/mvh-sync/internal/file"
)

func reportWriter(fs afero.Fs) (io.Writer, func() error, error) {
	path := strings.TrimSpace(appConfig.File)

	w, closer, err := file.GetWriter(fs, os.Stdout, path)
	if err != nil || path == "" {
		return w, closer, err
	}

	return w, func() error {
		if !appConfig.Quiet {
			fmt.Printf("Report written to %q\n", path)
		}
		return closer()
	}, nil
}
