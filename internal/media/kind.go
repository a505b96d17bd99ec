// Package media implements the upload pipeline shared by every content
// endpoint: multipart validation, storage placement, WebP normalization,
// stale-file retention, and client URL resolution.
package media

import "fmt"

// Kind identifies the resource category an upload belongs to. It determines
// the storage subdirectory and is fixed at route registration, never derived
// from the request payload.
type Kind string

const (
	KindTeam         Kind = "team"
	KindTestimonials Kind = "testimonials"
	KindServices     Kind = "services"
	KindProjects     Kind = "projects"
	KindGallery      Kind = "gallery"
	KindBlogs        Kind = "blogs"
)

// Kinds lists every resource kind, in storage-directory order.
func Kinds() []Kind {
	return []Kind{KindTeam, KindTestimonials, KindServices, KindProjects, KindGallery, KindBlogs}
}

// Dirs returns the storage subdirectories to create eagerly at startup.
func Dirs() []string {
	kinds := Kinds()
	dirs := make([]string, len(kinds))
	for i, k := range kinds {
		dirs[i] = string(k)
	}
	return dirs
}

// Dir is the storage subdirectory for this kind.
func (k Kind) Dir() string { return string(k) }

// Valid reports whether k is one of the registered kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindTeam, KindTestimonials, KindServices, KindProjects, KindGallery, KindBlogs:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }

// Key joins the kind directory with a filename into a storage key.
func (k Kind) Key(filename string) string {
	return fmt.Sprintf("%s/%s", k.Dir(), filename)
}
