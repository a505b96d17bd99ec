package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/media"
	"sitecms/internal/model"
	"sitecms/internal/service"
)

type testimonialResponse struct {
	model.Testimonial
	ImageURL string `json:"image_url"`
}

func newTestimonialResponse(m model.Testimonial, r media.Resolver) testimonialResponse {
	return testimonialResponse{Testimonial: m, ImageURL: r.Resolve(m.Image)}
}

func testimonialInput(c *fiber.Ctx) service.TestimonialInput {
	return service.TestimonialInput{
		Name:    c.FormValue("name"),
		Role:    c.FormValue("role"),
		Message: c.FormValue("message"),
	}
}

// ListTestimonials handles GET /api/testimonial/get.
func ListTestimonials(svc service.TestimonialService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		out := make([]testimonialResponse, len(items))
		for i, m := range items {
			out[i] = newTestimonialResponse(m, r)
		}
		return c.JSON(out)
	}
}

// CreateTestimonial handles POST /api/testimonial/add.
func CreateTestimonial(svc service.TestimonialService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stored, err := svc.Create(c.UserContext(), testimonialInput(c), multipartForm(c))
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(newTestimonialResponse(*stored, r))
	}
}

// UpdateTestimonial handles PUT /api/testimonial/update/:id.
func UpdateTestimonial(svc service.TestimonialService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stored, err := svc.Update(c.UserContext(), c.Params("id"), testimonialInput(c), multipartForm(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(newTestimonialResponse(*stored, r))
	}
}

// DeleteTestimonial handles DELETE /api/testimonial/delete/:id.
func DeleteTestimonial(svc service.TestimonialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
