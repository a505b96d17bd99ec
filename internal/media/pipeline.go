package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sitecms/internal/storage"
)

// File is the in-flight record for one accepted upload. Key is the storage
// key of the current artifact; the normalizer rewrites it after conversion.
type File struct {
	Field        string
	Key          string
	OriginalName string
	ContentType  string
	Size         int64
}

// Ref is the stored image reference to persist on the owning content record.
func (f File) Ref() string { return "/uploads/" + f.Key }

// FieldSpec declares one expected multipart file field and its arity.
type FieldSpec struct {
	Name     string
	Max      int
	Required bool
}

// Single declares a required single-file field.
func Single(name string) FieldSpec { return FieldSpec{Name: name, Max: 1, Required: true} }

// Optional declares an optional single-file field.
func Optional(name string) FieldSpec { return FieldSpec{Name: name, Max: 1} }

// UpTo declares an optional field accepting at most max files.
func UpTo(name string, max int) FieldSpec { return FieldSpec{Name: name, Max: max} }

// Result holds the accepted, normalized files of one request, grouped by
// field name in part order.
type Result struct {
	files map[string][]File
}

// Has reports whether any file arrived for the field.
func (r *Result) Has(field string) bool { return r != nil && len(r.files[field]) > 0 }

// Ref returns the stored reference of the field's single file, or "".
func (r *Result) Ref(field string) string {
	if !r.Has(field) {
		return ""
	}
	return r.files[field][0].Ref()
}

// Refs returns the stored references of every file in the field.
func (r *Result) Refs(field string) []string {
	if !r.Has(field) {
		return nil
	}
	fs := r.files[field]
	refs := make([]string, len(fs))
	for i, f := range fs {
		refs[i] = f.Ref()
	}
	return refs
}

// all returns every accepted file across fields.
func (r *Result) all() []*File {
	var out []*File
	for name := range r.files {
		fs := r.files[name]
		for i := range fs {
			out = append(out, &fs[i])
		}
	}
	return out
}

// Pipeline runs the full ingestion sequence for one request:
// validate every part, write raw bytes, normalize to WebP. Any failure after
// the first write removes everything written for the request, so a rejected
// request never leaves partial artifacts behind.
type Pipeline struct {
	store  storage.Storage
	policy Policy
	norm   *Normalizer
}

// NewPipeline builds a Pipeline over the given storage backend with the image
// policy and the canonical WebP quality.
func NewPipeline(store storage.Storage, policy Policy, quality int) *Pipeline {
	return &Pipeline{store: store, policy: policy, norm: NewNormalizer(store, quality)}
}

// Process ingests the declared file fields of a multipart form into the
// kind's storage directory. Fields not declared in specs are ignored.
// The returned Result is never nil on success, even when no optional file
// arrived.
func (p *Pipeline) Process(ctx context.Context, form *multipart.Form, kind Kind, specs ...FieldSpec) (*Result, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown resource kind %q", kind)
	}

	// Validation pass: no bytes are written until every part is acceptable.
	type pending struct {
		spec FieldSpec
		fhs  []*multipart.FileHeader
	}
	var work []pending
	for _, spec := range specs {
		var fhs []*multipart.FileHeader
		if form != nil {
			fhs = form.File[spec.Name]
		}
		if len(fhs) == 0 {
			if spec.Required {
				return nil, fmt.Errorf("%w: field %q is required", ErrInvalidFileType, spec.Name)
			}
			continue
		}
		if len(fhs) > spec.Max {
			return nil, fmt.Errorf("%w: %q accepts at most %d", ErrTooManyFiles, spec.Name, spec.Max)
		}
		for _, fh := range fhs {
			if err := p.policy.Validate(fh); err != nil {
				return nil, fmt.Errorf("field %q: %w", spec.Name, err)
			}
		}
		work = append(work, pending{spec: spec, fhs: fhs})
	}

	res := &Result{files: make(map[string][]File)}

	// Write pass.
	for _, w := range work {
		for _, fh := range w.fhs {
			f, err := p.write(ctx, kind, w.spec.Name, fh)
			if err != nil {
				p.discard(ctx, res)
				return nil, err
			}
			res.files[w.spec.Name] = append(res.files[w.spec.Name], f)
		}
	}

	// Normalization pass; rewrites each File to its canonical artifact.
	for _, f := range res.all() {
		if err := p.norm.Normalize(ctx, f); err != nil {
			p.discard(ctx, res)
			return nil, err
		}
	}

	return res, nil
}

func (p *Pipeline) write(ctx context.Context, kind Kind, field string, fh *multipart.FileHeader) (File, error) {
	src, err := fh.Open()
	if err != nil {
		return File{}, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	key := kind.Key(GenerateFilename(fh.Filename))
	ct := p.policy.ContentType(fh)
	info, err := p.store.Put(ctx, key, src, storage.PutObjectOptions{
		Size:        fh.Size,
		ContentType: ct,
		Metadata:    map[string]string{"original-filename": filepath.Base(fh.Filename)},
	})
	if err != nil {
		return File{}, fmt.Errorf("save %s: %w", key, err)
	}
	return File{
		Field:        field,
		Key:          info.Key,
		OriginalName: fh.Filename,
		ContentType:  ct,
		Size:         info.Size,
	}, nil
}

// discard removes every file already written for a request that is being
// rejected. Failures are logged; the request error wins.
func (p *Pipeline) discard(ctx context.Context, res *Result) {
	for _, f := range res.all() {
		if err := p.store.Delete(ctx, f.Key); err != nil && !errors.Is(err, storage.ErrNotExist) {
			logCleanup("discard_failed", f.Key, err)
		}
	}
}

// GenerateFilename produces a storage filename of the form
// <millisecond-timestamp>-<random-suffix><ext>. Only the extension of the
// client-supplied name survives; the rest is attacker-controlled and dropped.
func GenerateFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), randomSuffix(8), ext)
}

func randomSuffix(n int) string {
	b := make([]byte, (n+1)/2)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; timestamp
		// nanos keep filenames distinct enough to continue.
		return fmt.Sprintf("%x", time.Now().UnixNano())[:n]
	}
	return hex.EncodeToString(b)[:n]
}

func logCleanup(event, key string, err error) {
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": "warn",
		"msg":   event,
		"key":   key,
	}
	if err != nil {
		entry["error"] = err.Error()
	}
	if b, mErr := json.Marshal(entry); mErr == nil {
		log.New(os.Stdout, "", 0).Println(string(b))
	}
}
