package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage contains file/object storage abstractions for the upload
// pipeline. Keys are forward-slash relative paths under the storage root,
// e.g. "team/1712345678901-9f3ab2c1.webp". Implementations must be safe for
// concurrent use.

// ErrNotExist is returned by Get and Delete when the key has no object.
// Callers doing best-effort cleanup check for it with errors.Is.
var ErrNotExist = errors.New("storage: object does not exist")

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and
// the implementation will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the backend the media pipeline writes to and the retention
// manager deletes from.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Returns ErrNotExist if it was not there.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object is present under the key.
	Exists(ctx context.Context, key string) (bool, error)
}
