package media

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// Sentinel errors surfaced to HTTP handlers. Wrapped errors always chain to
// one of these so callers can map them to status codes with errors.Is.
var (
	ErrInvalidFileType  = errors.New("file type is not allowed")
	ErrFileTooLarge     = errors.New("file exceeds the size limit")
	ErrTooManyFiles     = errors.New("too many files for field")
	ErrProcessingFailed = errors.New("image processing failed")
)

// imageMIMETypes maps allowed extensions to their canonical content type.
// Browsers are inconsistent about multipart part headers, so the extension is
// the primary signal and the declared content type the fallback.
var imageMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".heic": "image/heic",
	".heif": "image/heif",
	".avif": "image/avif",
	".apng": "image/apng",
}

const (
	// MaxImageSize is the per-file ceiling for raster/vector image uploads.
	MaxImageSize int64 = 20 << 20
	// maxPDFSize is the per-file ceiling for the PDF upload class.
	maxPDFSize int64 = 30 << 20
)

// Policy validates multipart files before any bytes reach storage. The zero
// value is not usable; construct with ImagePolicy or pdfPolicy.
type Policy struct {
	allowed map[string]string // ext -> normalized content type
	maxSize int64
	class   string
}

// ImagePolicy accepts the raster/vector image allow-list at the image ceiling.
func ImagePolicy() Policy {
	return Policy{allowed: imageMIMETypes, maxSize: MaxImageSize, class: "image"}
}

// pdfPolicy accepts exactly one type at the larger document ceiling.
// No route mounts document uploads today; the admin console only sends
// images. Kept unexported until a brochure or case-study upload needs it.
func pdfPolicy() Policy {
	return Policy{
		allowed: map[string]string{".pdf": "application/pdf"},
		maxSize: maxPDFSize,
		class:   "pdf",
	}
}

// ContentType normalizes the content type for a filename from its extension,
// falling back to the client-declared type only when it matches the class.
func (p Policy) ContentType(fh *multipart.FileHeader) string {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ct, ok := p.allowed[ext]; ok {
		return ct
	}
	declared := fh.Header.Get("Content-Type")
	if p.class == "image" && strings.HasPrefix(declared, "image/") {
		return declared
	}
	return "application/octet-stream"
}

// Validate checks a single multipart file against the allow-list and size
// ceiling. It reads no file content.
func (p Policy) Validate(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := p.allowed[ext]; !ok {
		declared := fh.Header.Get("Content-Type")
		if !(p.class == "image" && strings.HasPrefix(declared, "image/")) {
			return fmt.Errorf("%w: %s", ErrInvalidFileType, ext)
		}
	}
	if fh.Size > p.maxSize {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, fh.Size, p.maxSize)
	}
	return nil
}
