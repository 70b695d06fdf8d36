// Package local provides a local-filesystem implementation of
// filestore.Store. The bucket argument is ignored; keys are file paths,
// resolved against Root when they are relative.
package local

import (
	"context"
	"errors"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/koustreak/json2sqlite/internal/errs"
	"github.com/koustreak/json2sqlite/internal/filestore"
)

// Driver reads source files from disk.
type Driver struct {
	root string
}

// New returns a Driver. An empty root resolves relative keys against the
// working directory.
func New(root string) *Driver {
	return &Driver{root: root}
}

// Ping checks that the root directory exists.
func (d *Driver) Ping(ctx context.Context) error {
	if d.root == "" {
		return nil
	}
	st, err := os.Stat(d.root)
	if err != nil {
		return mapError(err, "root not accessible")
	}
	if !st.IsDir() {
		return errs.Newf(errs.ErrKindInvalidInput, "root %s is not a directory", d.root)
	}
	return nil
}

// Close is a no-op.
func (d *Driver) Close() error {
	return nil
}

// GetObject opens the file at key.
func (d *Driver) GetObject(ctx context.Context, _ string, key string) (filestore.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrKindTimeout, "open cancelled", err)
	}

	info, err := d.StatObject(ctx, "", key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(d.resolve(key))
	if err != nil {
		return nil, mapError(err, "failed to open "+key)
	}
	return &file{File: f, info: info}, nil
}

// StatObject returns file metadata. Directories are rejected.
func (d *Driver) StatObject(_ context.Context, _ string, key string) (*filestore.ObjectInfo, error) {
	st, err := os.Stat(d.resolve(key))
	if err != nil {
		return nil, mapError(err, "failed to stat "+key)
	}
	if st.IsDir() {
		return nil, errs.Newf(errs.ErrKindReadFailure, "%s is a directory", key)
	}
	return &filestore.ObjectInfo{
		Key:          key,
		Size:         st.Size(),
		ContentType:  mime.TypeByExtension(filepath.Ext(key)),
		LastModified: st.ModTime(),
	}, nil
}

func (d *Driver) resolve(key string) string {
	if d.root == "" || filepath.IsAbs(key) {
		return key
	}
	return filepath.Join(d.root, key)
}

func mapError(err error, msg string) *errs.Error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errs.Wrap(errs.ErrKindInputNotFound, msg, err)
	case errors.Is(err, fs.ErrPermission):
		return errs.Wrap(errs.ErrKindPermissionDenied, msg, err)
	default:
		return errs.Wrap(errs.ErrKindReadFailure, msg, err)
	}
}

// file wraps *os.File and exposes filestore.Object.
type file struct {
	*os.File
	info *filestore.ObjectInfo
}

func (f *file) Info() *filestore.ObjectInfo {
	return f.info
}
