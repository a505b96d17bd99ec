package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"sitecms/internal/media"
	"sitecms/internal/model"
	"sitecms/internal/service"
)

// projectResponse decorates a project with resolved URLs for the cover image
// and every gallery image.
type projectResponse struct {
	model.Project
	ImageURL    string   `json:"image_url"`
	GalleryURLs []string `json:"gallery_urls"`
}

func newProjectResponse(m model.Project, r media.Resolver) projectResponse {
	return projectResponse{
		Project:     m,
		ImageURL:    r.Resolve(m.Image),
		GalleryURLs: resolveRefs(r, m.Details.Gallery),
	}
}

func projectInput(c *fiber.Ctx) (service.ProjectInput, error) {
	in := service.ProjectInput{
		Title:       c.FormValue("title"),
		Category:    c.FormValue("category"),
		Description: c.FormValue("description"),
		Featured:    formBool(c, "featured"),
	}
	if err := formJSON(c, "details", &in.Details); err != nil {
		return in, err
	}
	return in, nil
}

// ListProjects handles GET /api/project/get.
func ListProjects(svc service.ProjectService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		out := make([]projectResponse, len(items))
		for i, m := range items {
			out[i] = newProjectResponse(m, r)
		}
		return c.JSON(out)
	}
}

// ListFirstProjects handles GET /api/project/four/get, the landing-page strip.
func ListFirstProjects(svc service.ProjectService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, _ := strconv.Atoi(c.Query("n", "4"))
		items, err := svc.ListFirstN(c.UserContext(), n)
		if err != nil {
			return fail(c, err)
		}
		out := make([]projectResponse, len(items))
		for i, m := range items {
			out[i] = newProjectResponse(m, r)
		}
		return c.JSON(out)
	}
}

// GetProject handles GET /api/project/get/:id.
func GetProject(svc service.ProjectService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(newProjectResponse(*m, r))
	}
}

// CreateProject handles POST /api/project/add.
func CreateProject(svc service.ProjectService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := projectInput(c)
		if err != nil {
			return err
		}
		stored, err := svc.Create(c.UserContext(), in, multipartForm(c))
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(newProjectResponse(*stored, r))
	}
}

// UpdateProject handles PUT /api/project/update/:id.
func UpdateProject(svc service.ProjectService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := projectInput(c)
		if err != nil {
			return err
		}
		stored, err := svc.Update(c.UserContext(), c.Params("id"), in, multipartForm(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(newProjectResponse(*stored, r))
	}
}

// ToggleProjectFeatured handles PUT /api/project/toggle-featured/:id.
func ToggleProjectFeatured(svc service.ProjectService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stored, err := svc.ToggleFeatured(c.UserContext(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(newProjectResponse(*stored, r))
	}
}

// DeleteProject handles DELETE /api/project/delete/:id.
func DeleteProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
