package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"

	"github.com/mvh/mvh-sync/internal/file"
	"github.com/mvh/mvh-sync/internal/log"
	"github.com/mvh/mvh-sync/mvhsync/app"
	"github.com/mvh/mvh-sync/mvhsync/syncerr"
)

const (
	IndexFileName = "index.json"
	AppsDirName   = "apps"

	dirPermissions  os.FileMode = 0755
	filePermissions os.FileMode = 0644
)

// Store owns the output directory: the index document at its root and one detail document per app under apps/.
// Every write fully replaces the previous file.
type Store struct {
	fs   afero.Fs
	root string
}

func New(fs afero.Fs, root string) Store {
	return Store{
		fs:   fs,
		root: root,
	}
}

func (s Store) Root() string {
	return s.root
}

func (s Store) IndexPath() string {
	return filepath.Join(s.root, IndexFileName)
}

func (s Store) AppsDir() string {
	return filepath.Join(s.root, AppsDirName)
}

func (s Store) AppPath(id string) string {
	return filepath.Join(s.AppsDir(), id+".json")
}

// Prepare creates the output directory and the apps directory when they are missing.
func (s Store) Prepare() error {
	for _, dir := range []string{s.root, s.AppsDir()} {
		if err := s.fs.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("unable to create output directory %q: %w", dir, err)
		}
	}
	return nil
}

func (s Store) WriteIndex(idx app.Index) error {
	contents, err := Encode(&idx)
	if err != nil {
		return fmt.Errorf("failed to encode index file: %w", err)
	}

	if err := afero.WriteFile(s.fs, s.IndexPath(), contents, filePermissions); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}
	return nil
}

// WriteApp writes the detail document for the given app id and reports how the file changed along with the version
// recorded in the file it replaced (empty when there was none).
func (s Store) WriteApp(id string, d app.Detail) (app.Change, string, error) {
	if err := ValidateID(id); err != nil {
		return app.NoChange, "", err
	}

	contents, err := Encode(&d)
	if err != nil {
		return app.NoChange, "", fmt.Errorf("failed to encode app %s: %w", id, err)
	}

	path := s.AppPath(id)
	change, previousVersion := s.compare(path, contents)

	if err := afero.WriteFile(s.fs, path, contents, filePermissions); err != nil {
		return app.NoChange, "", fmt.Errorf("failed to write app %s: %w", id, err)
	}
	return change, previousVersion, nil
}

func (s Store) compare(path string, contents []byte) (app.Change, string) {
	exists, err := file.Exists(s.fs, path)
	if err != nil {
		log.Debugf("unable to check for previous file %q: %+v", path, err)
		return app.Created, ""
	}
	if !exists {
		return app.Created, ""
	}

	previous, err := afero.ReadFile(s.fs, path)
	if err != nil {
		log.Debugf("unable to read previous file %q: %+v", path, err)
		return app.Updated, ""
	}

	previousVersion := gjson.GetBytes(previous, "version").String()
	if bytes.Equal(previous, contents) {
		return app.Unchanged, previousVersion
	}
	return app.Updated, previousVersion
}

// ValidateID rejects app ids that cannot be used as a file name inside the apps directory.
func ValidateID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return fmt.Errorf("%w: empty", syncerr.ErrInvalidAppID)
	case id == "." || id == "..":
		return fmt.Errorf("%w: %q", syncerr.ErrInvalidAppID, id)
	case strings.ContainsAny(id, `/\`) || strings.ContainsRune(id, 0):
		return fmt.Errorf("%w: %q contains a path separator", syncerr.ErrInvalidAppID, id)
	}
	return nil
}
