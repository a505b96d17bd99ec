package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"sitecms/internal/media"
	"sitecms/internal/model"
	"sitecms/internal/service"
)

type blogResponse struct {
	model.BlogPost
	ImageURL string `json:"image_url"`
}

func newBlogResponse(m model.BlogPost, r media.Resolver) blogResponse {
	return blogResponse{BlogPost: m, ImageURL: r.Resolve(m.Image)}
}

func blogInput(c *fiber.Ctx) service.BlogInput {
	in := service.BlogInput{
		Title:    c.FormValue("title"),
		Category: c.FormValue("category"),
		Snippet:  c.FormValue("snippet"),
		Link:     c.FormValue("link"),
	}
	if raw := c.FormValue("date"); raw != "" {
		if d, err := time.Parse(time.RFC3339, raw); err == nil {
			in.Date = d
		} else if d, err := time.Parse("2006-01-02", raw); err == nil {
			in.Date = d
		}
	}
	return in
}

// ListBlogs handles GET /api/blogs/get.
func ListBlogs(svc service.BlogService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		out := make([]blogResponse, len(items))
		for i, m := range items {
			out[i] = newBlogResponse(m, r)
		}
		return c.JSON(out)
	}
}

// CreateBlog handles POST /api/blogs/add.
func CreateBlog(svc service.BlogService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stored, err := svc.Create(c.UserContext(), blogInput(c), multipartForm(c))
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(newBlogResponse(*stored, r))
	}
}

// UpdateBlog handles PUT /api/blogs/update/:id.
func UpdateBlog(svc service.BlogService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stored, err := svc.Update(c.UserContext(), c.Params("id"), blogInput(c), multipartForm(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(newBlogResponse(*stored, r))
	}
}

// DeleteBlog handles DELETE /api/blogs/delete/:id.
func DeleteBlog(svc service.BlogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
