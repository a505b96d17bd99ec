package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"sitecms/internal/auth"
	"sitecms/internal/http/middleware"
	"sitecms/internal/media"
	"sitecms/internal/model"
	"sitecms/internal/service"
)

// Services bundles everything the routes need.
type Services struct {
	DB          *sql.DB
	Tokens      *auth.TokenManager
	Resolver    media.Resolver
	Auth        service.AuthService
	Team        service.TeamService
	Testimonial service.TestimonialService
	Offering    service.OfferingService
	Project     service.ProjectService
	Gallery     service.GalleryService
	Blog        service.BlogService
	Submission  service.SubmissionService
	Dashboard   service.DashboardService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Reads are
// public; every mutating verb requires an authenticated admin.
func RegisterRoutes(app *fiber.App, s Services) {
	app.Get("/openapi.yaml", OpenAPISpec())
	app.Get("/docs", SwaggerDocs())
	app.Get("/health", HealthCheck(s.DB))
	app.Get("/healthz", Liveness())

	admin := []fiber.Handler{
		middleware.RequireAuth(s.Tokens),
		middleware.RequireRole(model.RoleAdmin),
	}
	guard := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, admin...), h)
	}

	api := app.Group("/api")

	authed := middleware.RequireAuth(s.Tokens)

	api.Post("/user/register", Register(s.Auth))
	api.Post("/user/login", Login(s.Auth))
	api.Post("/user/logout", Logout())
	api.Post("/user/forgot-password", ForgotPassword(s.Auth))
	api.Post("/user/reset-password/:token", ResetPassword(s.Auth))
	api.Get("/user/profile", authed, Profile(s.Auth))
	api.Put("/user/profile", authed, UpdateProfile(s.Auth))
	api.Put("/user/change-password", authed, ChangePassword(s.Auth))

	api.Get("/dashboard/count", DashboardCounts(s.Dashboard))

	r := s.Resolver

	api.Get("/team/get", ListTeam(s.Team, r))
	api.Post("/team/add", guard(CreateTeamMember(s.Team, r))...)
	api.Put("/team/update/:id", guard(UpdateTeamMember(s.Team, r))...)
	api.Delete("/team/delete/:id", guard(DeleteTeamMember(s.Team))...)

	api.Get("/testimonial/get", ListTestimonials(s.Testimonial, r))
	api.Post("/testimonial/add", guard(CreateTestimonial(s.Testimonial, r))...)
	api.Put("/testimonial/update/:id", guard(UpdateTestimonial(s.Testimonial, r))...)
	api.Delete("/testimonial/delete/:id", guard(DeleteTestimonial(s.Testimonial))...)

	api.Get("/service/get", ListOfferings(s.Offering, r))
	api.Get("/service/get/:id", guard(GetOffering(s.Offering, r))...)
	api.Post("/service/add", guard(CreateOffering(s.Offering, r))...)
	api.Put("/service/update/:id", guard(UpdateOffering(s.Offering, r))...)
	api.Delete("/service/:id", guard(DeleteOffering(s.Offering))...)

	api.Get("/project/get", ListProjects(s.Project, r))
	api.Get("/project/four/get", ListFirstProjects(s.Project, r))
	api.Get("/project/get/:id", guard(GetProject(s.Project, r))...)
	api.Post("/project/add", guard(CreateProject(s.Project, r))...)
	api.Put("/project/update/:id", guard(UpdateProject(s.Project, r))...)
	api.Put("/project/toggle-featured/:id", guard(ToggleProjectFeatured(s.Project, r))...)
	api.Delete("/project/delete/:id", guard(DeleteProject(s.Project))...)

	api.Get("/gallery/get", ListGallery(s.Gallery, r))
	api.Post("/gallery/add", guard(CreateGalleryEntry(s.Gallery, r))...)
	api.Put("/gallery/update/:id", guard(UpdateGalleryEntry(s.Gallery, r))...)
	api.Delete("/gallery/delete/:id", guard(DeleteGalleryEntry(s.Gallery))...)

	api.Get("/blogs/get", ListBlogs(s.Blog, r))
	api.Post("/blogs/add", guard(CreateBlog(s.Blog, r))...)
	api.Put("/blogs/update/:id", guard(UpdateBlog(s.Blog, r))...)
	api.Delete("/blogs/delete/:id", guard(DeleteBlog(s.Blog))...)

	api.Post("/contact/add", CreateContact(s.Submission))
	api.Get("/contact/get", guard(ListContacts(s.Submission))...)
	api.Post("/quote/submit", CreateQuote(s.Submission))
	api.Get("/quotes", guard(ListQuotes(s.Submission))...)
}
