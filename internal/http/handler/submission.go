package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/model"
	"sitecms/internal/service"
)

// CreateContact handles POST /api/contact/add (public).
func CreateContact(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.ContactMessage
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed body")
		}
		stored, err := svc.CreateContact(c.UserContext(), &in)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(stored)
	}
}

// ListContacts handles GET /api/contact/get (admin).
func ListContacts(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListContacts(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	}
}

// CreateQuote handles POST /api/quote/submit (public).
func CreateQuote(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.QuoteRequest
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed body")
		}
		stored, err := svc.CreateQuote(c.UserContext(), &in)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(stored)
	}
}

// ListQuotes handles GET /api/quotes (admin).
func ListQuotes(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListQuotes(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	}
}
