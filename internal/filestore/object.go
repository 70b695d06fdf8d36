package filestore

import (
	"io"
	"time"
)

// ObjectInfo describes a single source object or file.
type ObjectInfo struct {
	// Key is the object path within the bucket, or the file path.
	Key string

	// Size is the byte size of the object. -1 if unknown.
	Size int64

	// ContentType is the MIME type, when the backend records one.
	ContentType string

	// ETag is the object's entity tag, as returned by the backend.
	ETag string

	// LastModified is when the object was last written.
	LastModified time.Time
}

// Object is a streaming handle to an object's content.
// The caller MUST call Close() after reading to avoid resource leaks.
type Object interface {
	io.ReadCloser

	// Info returns the metadata for this object.
	Info() *ObjectInfo
}
