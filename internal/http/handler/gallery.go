package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/media"
	"sitecms/internal/model"
	"sitecms/internal/service"
)

// galleryResponse decorates a gallery entry with resolved URLs for both
// buckets.
type galleryResponse struct {
	model.GalleryEntry
	CleanURL  string   `json:"clean_url"`
	DirtyURLs []string `json:"dirty_urls"`
}

func newGalleryResponse(m model.GalleryEntry, r media.Resolver) galleryResponse {
	return galleryResponse{
		GalleryEntry: m,
		CleanURL:     r.Resolve(m.Clean),
		DirtyURLs:    resolveRefs(r, m.Dirty),
	}
}

// ListGallery handles GET /api/gallery/get.
func ListGallery(svc service.GalleryService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		out := make([]galleryResponse, len(items))
		for i, m := range items {
			out[i] = newGalleryResponse(m, r)
		}
		return c.JSON(out)
	}
}

// CreateGalleryEntry handles POST /api/gallery/add.
func CreateGalleryEntry(svc service.GalleryService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stored, err := svc.Create(c.UserContext(), multipartForm(c))
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(newGalleryResponse(*stored, r))
	}
}

// UpdateGalleryEntry handles PUT /api/gallery/update/:id.
func UpdateGalleryEntry(svc service.GalleryService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stored, err := svc.Update(c.UserContext(), c.Params("id"), multipartForm(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(newGalleryResponse(*stored, r))
	}
}

// DeleteGalleryEntry handles DELETE /api/gallery/delete/:id.
func DeleteGalleryEntry(svc service.GalleryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
