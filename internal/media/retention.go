package media

import (
	"context"
	"errors"
	"path"
	"strings"

	"sitecms/internal/storage"
)

// Retention removes files whose owning record stopped referencing them, on
// update (superseded value) and on delete (every referenced file). Deletion
// is best-effort and idempotent: a missing file is logged and ignored, and a
// cleanup failure never fails the request that triggered it.
type Retention struct {
	store storage.Storage
}

// NewRetention builds a Retention over the given storage backend.
func NewRetention(store storage.Storage) *Retention {
	return &Retention{store: store}
}

// Release deletes the files behind the given stored references. The kind
// supplies the storage directory, since legacy references come in three
// prefix conventions (bare filename, /uploads/<kind>/<file>,
// /api/uploads/<kind>/<file>) and only the filename is trusted.
func (r *Retention) Release(ctx context.Context, kind Kind, refs ...string) {
	for _, ref := range refs {
		key, ok := referenceKey(kind, ref)
		if !ok {
			continue
		}
		if err := r.store.Delete(ctx, key); err != nil {
			if errors.Is(err, storage.ErrNotExist) {
				logCleanup("stale_file_already_gone", key, nil)
				continue
			}
			logCleanup("stale_file_delete_failed", key, err)
		}
	}
}

// referenceKey resolves a stored image reference to a storage key, stripping
// any known public-facing prefix. Absolute URLs are never resolved: a record
// may legitimately point at a third-party host and those files are not ours
// to delete.
func referenceKey(kind Kind, ref string) (string, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(ref, "\\", "/"))
	if s == "" {
		return "", false
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return "", false
	}
	base := path.Base(s)
	if base == "" || base == "." || base == "/" || base == ".." {
		return "", false
	}
	return kind.Key(base), true
}
