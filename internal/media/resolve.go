package media

import (
	"regexp"
	"strings"
)

// Environment selects the resolver's output shape: relative paths behind the
// development proxy, absolute URLs against the production asset host.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Resolver maps a persisted stored image reference, in any of the historical
// shapes still present in the data, to exactly one fetchable URL. It is a
// pure transform: no I/O, no state, safe to call on every render.
//
// Three writer conventions exist in the wild and are all accepted forever:
// bare filename, /uploads/<kind>/<file>, and /api/uploads/<kind>/<file>.
type Resolver struct {
	env       Environment
	apiBase   string // e.g. https://api.example.com/api
	assetBase string // apiBase with a trailing /api stripped
}

// NewResolver builds a Resolver for the environment and public API base URL.
func NewResolver(env Environment, apiBase string) Resolver {
	base := strings.TrimSuffix(apiBase, "/")
	asset := strings.TrimSuffix(base, "/api")
	return Resolver{env: env, apiBase: base, assetBase: asset}
}

// doubledSlashes matches repeated slashes that are not the scheme separator.
var doubledSlashes = regexp.MustCompile(`([^:]/)/+`)

// Resolve turns a stored reference into a fetchable URL. Accepts strings,
// string slices (first element wins), and maps from inconsistent historical
// writers. Empty or unusable input resolves to "" — the caller renders a
// placeholder, never an error.
func (r Resolver) Resolve(v any) string {
	url := strings.TrimSpace(unwrap(v))
	if url == "" {
		return ""
	}

	// Windows-authored data uses backslash separators.
	url = strings.ReplaceAll(url, "\\", "/")

	// A historical double-prefixing bug produced /api/api/ segments.
	url = strings.Replace(url, "api/api/", "api/", 1)

	// Already-absolute URLs pass through, minus accidental doubled slashes.
	// They may point at third-party hosts and are never rewritten.
	if strings.HasPrefix(url, "http") {
		return doubledSlashes.ReplaceAllString(url, "$1")
	}

	if r.env == EnvDevelopment {
		// The dev server proxies /api, /uploads, and /api/uploads on the
		// same origin, so output stays relative. The /api/uploads proxy
		// itself rewrites to /uploads, so that prefix is redundant here.
		switch {
		case strings.HasPrefix(url, "/api/uploads"):
			return strings.TrimPrefix(url, "/api")
		case strings.HasPrefix(url, "/"):
			return url
		default:
			return "/uploads/" + url
		}
	}

	// Production: prepend the configured host.
	switch {
	case strings.HasPrefix(url, "/api"):
		return r.apiBase + url
	case strings.HasPrefix(url, "/"):
		return r.assetBase + url
	default:
		return r.assetBase + "/uploads/" + url
	}
}

// unwrap extracts a usable string from the container shapes historical
// writers produced: lists take their first element, maps the first present
// key in preference order.
func unwrap(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		if len(t) == 0 {
			return ""
		}
		return t[0]
	case []any:
		if len(t) == 0 {
			return ""
		}
		return unwrap(t[0])
	case map[string]string:
		for _, k := range preferredKeys {
			if s, ok := t[k]; ok && s != "" {
				return s
			}
		}
		return ""
	case map[string]any:
		for _, k := range preferredKeys {
			if raw, ok := t[k]; ok {
				if s := unwrap(raw); s != "" {
					return s
				}
			}
		}
		return ""
	default:
		return ""
	}
}

var preferredKeys = []string{"url", "path", "src", "filename", "image"}
