package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quitpath/internal/models"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)

	app.Get("/", handler.ShowHome)
	app.Get("/login", handler.ShowLoginPage)
	app.Post("/login", handler.Login)
	app.Get("/logout", handler.Logout)
	app.Post("/logout", handler.Logout)
	app.Get("/unauthorized", handler.ShowUnauthorized)

	coach := app.Group("/coach", handler.AuthRequired, handler.RoleRequired(models.RoleCoach))
	coach.Get("/member-progress", handler.ShowCoachMembers)
	coach.Get("/members/progress", handler.ShowCoachMembers)
	coach.Get("/member/:memberId/progress", handler.ShowCoachMemberProgress)

	progress := app.Group("/my-progress", handler.AuthRequired, handler.MembersOnly)
	progress.Get("", handler.ShowMyProgress)
	progress.Get("/history", handler.ShowProgressHistory)
	progress.Post("/smoking-status", handler.UpdateSmokingStatus)
	progress.Post("/daily-log", handler.SubmitDailyLog)
	progress.Post("/quit-plan", handler.CreateQuitPlan)
	progress.Post("/quit-plan/update", handler.UpdateQuitPlan)
	progress.Post("/suggested-plan", handler.CreateSuggestedPlan)
	progress.Post("/join-plan", handler.JoinDefaultPlan)
	progress.Post("/milestones", handler.AddMilestone)
	progress.Post("/coach-plan/:planId/accept", handler.AcceptCoachPlan)
	progress.Post("/coach-plan/:planId/reject", handler.RejectCoachPlan)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)

	session := api.Group("/session", handler.AuthRequired)
	session.Get("", handler.CurrentSession)
	session.Get("/sidebar", handler.CurrentSidebar)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
