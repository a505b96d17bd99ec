package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/service"
)

// DashboardCounts handles GET /api/dashboard/count, the totals the admin
// dashboard renders.
func DashboardCounts(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		counts, err := svc.Counts(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"counts": counts})
	}
}
