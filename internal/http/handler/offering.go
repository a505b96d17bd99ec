package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/media"
	"sitecms/internal/model"
	"sitecms/internal/service"
)

type offeringResponse struct {
	model.Service
	ImageURL string `json:"image_url"`
}

func newOfferingResponse(m model.Service, r media.Resolver) offeringResponse {
	return offeringResponse{Service: m, ImageURL: r.Resolve(m.Image)}
}

func offeringInput(c *fiber.Ctx) (service.OfferingInput, error) {
	in := service.OfferingInput{
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		ImagePosition: c.FormValue("imagePosition"),
		Highlight:     c.FormValue("highlight"),
		Featured:      formBool(c, "featured"),
	}
	if err := formJSON(c, "jobs", &in.Jobs); err != nil {
		return in, err
	}
	return in, nil
}

// ListOfferings handles GET /api/service/get.
func ListOfferings(svc service.OfferingService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		out := make([]offeringResponse, len(items))
		for i, m := range items {
			out[i] = newOfferingResponse(m, r)
		}
		return c.JSON(out)
	}
}

// GetOffering handles GET /api/service/get/:id.
func GetOffering(svc service.OfferingService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(newOfferingResponse(*m, r))
	}
}

// CreateOffering handles POST /api/service/add.
func CreateOffering(svc service.OfferingService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := offeringInput(c)
		if err != nil {
			return err
		}
		stored, err := svc.Create(c.UserContext(), in, multipartForm(c))
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(newOfferingResponse(*stored, r))
	}
}

// UpdateOffering handles PUT /api/service/update/:id.
func UpdateOffering(svc service.OfferingService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := offeringInput(c)
		if err != nil {
			return err
		}
		stored, err := svc.Update(c.UserContext(), c.Params("id"), in, multipartForm(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(newOfferingResponse(*stored, r))
	}
}

// DeleteOffering handles DELETE /api/service/:id.
func DeleteOffering(svc service.OfferingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
