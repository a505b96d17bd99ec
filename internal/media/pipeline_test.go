package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/kolesa-team/go-webp/decoder"
	"github.com/kolesa-team/go-webp/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecms/internal/storage"
)

type part struct {
	field   string
	name    string
	content []byte
}

// buildForm assembles a parsed multipart form the way fiber hands it to the
// pipeline.
func buildForm(t *testing.T, parts ...part) *multipart.Form {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, p := range parts {
		fw, err := w.CreateFormFile(p.field, p.name)
		require.NoError(t, err)
		_, err = fw.Write(p.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestPipeline(t *testing.T) (*Pipeline, string) {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewLocal(root, Dirs()...)
	require.NoError(t, err)
	return NewPipeline(store, ImagePolicy(), 80), root
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	var out []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			out = append(out, path)
		}
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestProcessNormalizesToWebP(t *testing.T) {
	p, root := newTestPipeline(t)

	form := buildForm(t, part{"image", "portrait.png", pngBytes(t)})
	res, err := p.Process(context.Background(), form, KindTeam, Single("image"))
	require.NoError(t, err)

	ref := res.Ref("image")
	assert.True(t, strings.HasPrefix(ref, "/uploads/team/"), ref)
	assert.True(t, strings.HasSuffix(ref, ".webp"), ref)

	files := listFiles(t, root)
	require.Len(t, files, 1)
	assert.Equal(t, ".webp", filepath.Ext(files[0]))

	// The stored artifact decodes as WebP.
	f, err := os.Open(files[0])
	require.NoError(t, err)
	defer f.Close()
	img, err := webp.Decode(f, &decoder.Options{})
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
}

func TestProcessCanonicalPassthrough(t *testing.T) {
	p, root := newTestPipeline(t)

	// Pre-encoded WebP must be stored byte-for-byte, not re-compressed.
	payload := []byte("RIFF....WEBPVP8 already-canonical-bytes")
	form := buildForm(t, part{"image", "already.webp", payload})
	res, err := p.Process(context.Background(), form, KindTeam, Single("image"))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(res.Ref("image"), ".webp"))

	files := listFiles(t, root)
	require.Len(t, files, 1)
	stored, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, payload, stored)
}

func TestProcessSVGPassthrough(t *testing.T) {
	p, root := newTestPipeline(t)

	payload := []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)
	form := buildForm(t, part{"image", "logo.svg", payload})
	res, err := p.Process(context.Background(), form, KindServices, Single("image"))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(res.Ref("image"), ".svg"))

	files := listFiles(t, root)
	require.Len(t, files, 1)
	stored, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, payload, stored)
}

func TestProcessAtomicRejectionOnOversize(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewLocal(root, Dirs()...)
	require.NoError(t, err)
	// Tight ceiling so a handful of bytes counts as oversized.
	tight := Policy{allowed: imageMIMETypes, maxSize: 512, class: "image"}
	p := NewPipeline(store, tight, 80)

	good := pngBytes(t)
	form := buildForm(t,
		part{"images", "a.webp", []byte("ok-a")},
		part{"images", "b.webp", []byte("ok-b")},
		part{"images", "c.webp", []byte("ok-c")},
		part{"images", "huge.png", good}, // > 512 bytes
	)
	require.Greater(t, int64(len(good)), int64(512))

	_, err = p.Process(context.Background(), form, KindGallery, UpTo("images", 10))
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Empty(t, listFiles(t, root), "no partial writes may survive a rejected request")
}

func TestProcessAtomicRejectionOnCorruptImage(t *testing.T) {
	p, root := newTestPipeline(t)

	form := buildForm(t,
		part{"images", "fine.webp", []byte("canonical-ok")},
		part{"images", "broken.png", []byte("not actually a png")},
	)
	_, err := p.Process(context.Background(), form, KindProjects, UpTo("images", 10))
	assert.ErrorIs(t, err, ErrProcessingFailed)
	assert.Empty(t, listFiles(t, root))
}

func TestProcessRejectsBadTypeBeforeAnyWrite(t *testing.T) {
	p, root := newTestPipeline(t)

	form := buildForm(t,
		part{"image", "good.png", pngBytes(t)},
		part{"cv", "malware.php", []byte("<?php")},
	)
	_, err := p.Process(context.Background(), form, KindTeam, Single("image"), Optional("cv"))
	assert.ErrorIs(t, err, ErrInvalidFileType)
	assert.Empty(t, listFiles(t, root))
}

func TestProcessRequiredFieldMissing(t *testing.T) {
	p, root := newTestPipeline(t)

	form := buildForm(t)
	_, err := p.Process(context.Background(), form, KindTeam, Single("image"))
	assert.ErrorIs(t, err, ErrInvalidFileType)
	assert.Empty(t, listFiles(t, root))
}

func TestProcessArityCeiling(t *testing.T) {
	p, root := newTestPipeline(t)

	form := buildForm(t,
		part{"dirty", "a.webp", []byte("a")},
		part{"dirty", "b.webp", []byte("b")},
		part{"dirty", "c.webp", []byte("c")},
	)
	_, err := p.Process(context.Background(), form, KindGallery, UpTo("dirty", 2))
	assert.ErrorIs(t, err, ErrTooManyFiles)
	assert.Empty(t, listFiles(t, root))
}

func TestProcessOptionalFieldAbsent(t *testing.T) {
	p, _ := newTestPipeline(t)

	form := buildForm(t, part{"clean", "after.webp", []byte("after")})
	res, err := p.Process(context.Background(), form, KindGallery, Single("clean"), UpTo("dirty", 20))
	require.NoError(t, err)

	assert.True(t, res.Has("clean"))
	assert.False(t, res.Has("dirty"))
	assert.Equal(t, "", res.Ref("dirty"))
	assert.Nil(t, res.Refs("dirty"))
}

func TestProcessMultiFileRefsKeepOrder(t *testing.T) {
	p, _ := newTestPipeline(t)

	form := buildForm(t,
		part{"dirty", "one.webp", []byte("1")},
		part{"dirty", "two.webp", []byte("2")},
	)
	res, err := p.Process(context.Background(), form, KindGallery, UpTo("dirty", 20))
	require.NoError(t, err)

	refs := res.Refs("dirty")
	require.Len(t, refs, 2)
	assert.NotEqual(t, refs[0], refs[1])
	for _, ref := range refs {
		assert.True(t, strings.HasPrefix(ref, "/uploads/gallery/"), ref)
	}
}

func TestGenerateFilenameUniquenessUnderConcurrency(t *testing.T) {
	const n = 100
	var mu sync.Mutex
	seen := make(map[string]struct{}, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := GenerateFilename("photo.png")
			mu.Lock()
			seen[name] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
}

func TestGenerateFilenameDropsClientName(t *testing.T) {
	name := GenerateFilename("../../../etc/passwd.png")
	assert.NotContains(t, name, "..")
	assert.NotContains(t, name, "/")
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.Regexp(t, `^\d+-[0-9a-f]{8}\.png$`, name)
}
