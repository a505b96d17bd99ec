package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/media"
	"sitecms/internal/model"
	"sitecms/internal/service"
)

// teamResponse decorates a team member with the resolved portrait URL.
type teamResponse struct {
	model.TeamMember
	ImageURL string `json:"image_url"`
}

func newTeamResponse(m model.TeamMember, r media.Resolver) teamResponse {
	return teamResponse{TeamMember: m, ImageURL: r.Resolve(m.Image)}
}

func teamInput(c *fiber.Ctx) (service.TeamInput, error) {
	in := service.TeamInput{
		Name: c.FormValue("name"),
		Role: c.FormValue("role"),
	}
	if err := formJSON(c, "socialLinks", &in.SocialLinks); err != nil {
		return in, err
	}
	return in, nil
}

// ListTeam handles GET /api/team/get.
func ListTeam(svc service.TeamService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		members, err := svc.List(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		out := make([]teamResponse, len(members))
		for i, m := range members {
			out[i] = newTeamResponse(m, r)
		}
		return c.JSON(out)
	}
}

// CreateTeamMember handles POST /api/team/add.
func CreateTeamMember(svc service.TeamService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := teamInput(c)
		if err != nil {
			return err
		}
		stored, err := svc.Create(c.UserContext(), in, multipartForm(c))
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(newTeamResponse(*stored, r))
	}
}

// UpdateTeamMember handles PUT /api/team/update/:id.
func UpdateTeamMember(svc service.TeamService, r media.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := teamInput(c)
		if err != nil {
			return err
		}
		stored, err := svc.Update(c.UserContext(), c.Params("id"), in, multipartForm(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(newTeamResponse(*stored, r))
	}
}

// DeleteTeamMember handles DELETE /api/team/delete/:id.
func DeleteTeamMember(svc service.TeamService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
