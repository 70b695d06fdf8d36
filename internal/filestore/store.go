// Package filestore defines where conversion sources are read from.
//
// Local files and object-store objects both implement Store. Callers
// depend only on this package, never on a specific provider package.
//
// Usage:
//
//	loc, err := filestore.ParseLocation("s3://incoming/people.json")
//	if err != nil { ... }
//	obj, err := store.GetObject(ctx, loc.Bucket, loc.Key)
//	if err != nil { ... }
//	defer obj.Close()
package filestore

import "context"

// Store is the read-only interface all source providers implement.
type Store interface {
	// Ping verifies the storage backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any held resources.
	Close() error

	// GetObject opens a streaming handle to the object at key inside bucket.
	// The caller MUST call Object.Close() after reading.
	GetObject(ctx context.Context, bucket, key string) (Object, error)

	// StatObject returns metadata for the object at key inside bucket
	// without reading its content.
	StatObject(ctx context.Context, bucket, key string) (*ObjectInfo, error)
}
