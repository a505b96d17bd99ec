package media

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"

	// Register decoders for formats image.Decode does not know natively.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"sitecms/internal/storage"
)

// CanonicalExt is the single encoded format every raster upload is normalized
// into before a record may reference it.
const CanonicalExt = ".webp"

// convertible is the "needs conversion" set: every supported raster extension
// except the canonical target. SVG is vector and passes through untouched.
var convertible = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".tiff": true, ".tif": true, ".ico": true,
	".heic": true, ".heif": true, ".avif": true, ".apng": true,
}

// Normalizer re-encodes uploaded raster images into WebP at a fixed quality.
type Normalizer struct {
	store   storage.Storage
	quality float32
}

// NewNormalizer returns a Normalizer writing WebP at the given quality (1-100).
func NewNormalizer(store storage.Storage, quality int) *Normalizer {
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	return &Normalizer{store: store, quality: float32(quality)}
}

// NeedsConversion reports whether a stored key requires re-encoding.
// Already-canonical files and vector formats are skipped so they are never
// double-compressed or renamed.
func NeedsConversion(key string) bool {
	return convertible[strings.ToLower(path.Ext(key))]
}

// Normalize converts the file behind f.Key to canonical WebP, deletes the
// pre-conversion object, and rewrites f in place so callers building stored
// references always observe the canonical key. Files outside the conversion
// set are returned unchanged.
func (n *Normalizer) Normalize(ctx context.Context, f *File) error {
	if !NeedsConversion(f.Key) {
		return nil
	}

	rc, _, err := n.store.Get(ctx, f.Key)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrProcessingFailed, f.Key, err)
	}
	img, err := imaging.Decode(rc, imaging.AutoOrientation(true))
	rc.Close()
	if err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrProcessingFailed, f.Key, err)
	}

	opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, n.quality)
	if err != nil {
		return fmt.Errorf("%w: webp encoder options: %v", ErrProcessingFailed, err)
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, opts); err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrProcessingFailed, f.Key, err)
	}

	oldKey := f.Key
	newKey := strings.TrimSuffix(oldKey, path.Ext(oldKey)) + CanonicalExt
	encoded := int64(buf.Len())
	if _, err := n.store.Put(ctx, newKey, &buf, storage.PutObjectOptions{
		Size:        encoded,
		ContentType: "image/webp",
	}); err != nil {
		return fmt.Errorf("write converted %s: %w", newKey, err)
	}

	// Rewrite the in-flight record before the original is removed so a
	// failed delete can never leave a reference to a missing file.
	f.Key = newKey
	f.ContentType = "image/webp"
	f.Size = encoded

	if err := n.store.Delete(ctx, oldKey); err != nil {
		return fmt.Errorf("remove pre-conversion %s: %w", oldKey, err)
	}
	return nil
}
