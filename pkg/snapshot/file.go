package snapshot

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/smallie-dev/smallie/internal/errors"
)

// FileStore writes snapshots below a directory.
type FileStore struct {
	dir    string
	prefix string
	logger *slog.Logger
}

// NewFileStore creates the directory if needed and returns a store writing
// into it.
func NewFileStore(dir, prefix string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("E141").Wrap(err)
	}
	return &FileStore{
		dir:    dir,
		prefix: prefix,
		logger: slog.Default().With("component", "snapshot", "driver", "file"),
	}, nil
}

// Path returns the file a key is written to.
func (s *FileStore) Path(key string) (string, error) {
	k, err := cleanKey(s.prefix, key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, filepath.FromSlash(k)), nil
}

// Put writes body to a temporary file next to the target and renames it
// into place.
func (s *FileStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.New("E141").Wrap(err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".snapshot-*")
	if err != nil {
		return errors.New("E141").Wrap(err)
	}
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.New("E141").Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.New("E141").Wrap(err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return errors.New("E141").Wrap(err)
	}

	s.logger.Debug("snapshot written", "path", target, "bytes", len(body), "content_type", contentType)
	return nil
}
