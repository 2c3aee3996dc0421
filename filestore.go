package accounts

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// DiskFileStore persists blobs as files under a base directory. References
// are bare file names, prefixed with a UUID so repeated uploads of the same
// name never collide.
type DiskFileStore struct {
	dir string
}

// NewDiskFileStore creates the base directory if needed and returns a store
// rooted there.
func NewDiskFileStore(dir string) (*DiskFileStore, error) {
	if dir == "" {
		return nil, errors.New("file store directory must not be empty", errors.CategoryBadInput)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create file store directory")
	}

	return &DiskFileStore{dir: dir}, nil
}

var _ FileStore = (*DiskFileStore)(nil)

// Store writes the blob and returns its reference. The suggested name is
// reduced to its base name so callers cannot escape the store directory.
func (s *DiskFileStore) Store(data []byte, suggestedName string) (string, error) {
	name := filepath.Base(strings.TrimSpace(suggestedName))
	if name == "." || name == string(filepath.Separator) {
		name = "file"
	}

	ref := uuid.NewString() + "_" + name
	if err := os.WriteFile(filepath.Join(s.dir, ref), data, 0o644); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to write file")
	}

	return ref, nil
}

// Delete removes the referenced file. A reference that is already gone is
// not an error.
func (s *DiskFileStore) Delete(ref string) error {
	if ref == "" {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, filepath.Base(ref)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete file")
	}

	return nil
}

// Exists reports whether the reference resolves to a stored file.
func (s *DiskFileStore) Exists(ref string) bool {
	if ref == "" {
		return false
	}

	_, err := os.Stat(filepath.Join(s.dir, filepath.Base(ref)))
	return err == nil
}
