package filestore

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/koustreak/json2sqlite/internal/errs"
)

// Location is a parsed conversion source: a local path or a bucket/key
// pair in an object store.
type Location struct {
	// Provider is ProviderLocal or ProviderMinIO.
	Provider Provider

	// Bucket is empty for local files.
	Bucket string

	// Key is the object key, or the file path for local sources.
	Key string
}

// ParseLocation accepts a plain path, a file:// URL, or an object URL of
// the form s3://bucket/key or minio://bucket/key.
func ParseLocation(src string) (Location, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return Location{}, errs.New(errs.ErrKindInvalidInput, "source is empty")
	}

	scheme, rest, ok := strings.Cut(src, "://")
	if !ok {
		return Location{Provider: ProviderLocal, Key: src}, nil
	}

	switch strings.ToLower(scheme) {
	case "file":
		u, err := url.Parse(src)
		if err != nil {
			return Location{}, errs.Wrap(errs.ErrKindInvalidInput, "invalid file URL "+src, err)
		}
		if u.Path == "" {
			return Location{}, errs.Newf(errs.ErrKindInvalidInput, "file URL %q has no path", src)
		}
		return Location{Provider: ProviderLocal, Key: filepath.FromSlash(u.Path)}, nil

	case "s3", "minio":
		bucket, key, _ := strings.Cut(rest, "/")
		key = strings.TrimLeft(key, "/")
		if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
			return Location{}, errs.Newf(errs.ErrKindInvalidInput,
				"object source %q must be %s://bucket/key", src, scheme)
		}
		return Location{Provider: ProviderMinIO, Bucket: bucket, Key: key}, nil

	default:
		return Location{}, errs.Newf(errs.ErrKindInvalidInput, "unsupported source scheme %q", scheme)
	}
}

// IsObject reports whether the location lives in an object store.
func (l Location) IsObject() bool {
	return l.Provider == ProviderMinIO
}

// Name returns the file name part of the location.
func (l Location) Name() string {
	if l.IsObject() {
		return path.Base(l.Key)
	}
	return filepath.Base(l.Key)
}

func (l Location) String() string {
	if l.IsObject() {
		return "s3://" + l.Bucket + "/" + l.Key
	}
	return l.Key
}
