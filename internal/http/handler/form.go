package handler

import (
	"encoding/json"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sitecms/internal/media"
)

// multipartForm returns the request's multipart form, or nil when the request
// carries a different content type. Handlers treat a nil form as "no files".
func multipartForm(c *fiber.Ctx) *multipart.Form {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	return form
}

// formJSON decodes a JSON-encoded form field into dst. The admin console
// sends nested structures (socialLinks, jobs, details) as JSON strings inside
// the multipart body. An absent or empty field is a no-op.
func formJSON(c *fiber.Ctx, field string, dst any) error {
	raw := strings.TrimSpace(c.FormValue(field))
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed "+field)
	}
	return nil
}

// formBool reads a boolean form field, tolerating the formats browsers and
// the admin console produce.
func formBool(c *fiber.Ctx, field string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.FormValue(field)))
	return err == nil && v
}

// resolveRefs maps stored references to fetchable URLs for the response.
func resolveRefs(r media.Resolver, refs []string) []string {
	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = r.Resolve(ref)
	}
	return out
}
