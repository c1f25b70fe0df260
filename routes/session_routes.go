package routes

import (
	"github.com/solacecare/counseling_backend/handlers"
	"github.com/solacecare/counseling_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func SessionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	session := api.Group("/sessions", middleware.Protected())
	session.Post("", handlers.CreateSession)
	session.Get("", handlers.GetSessions)
	session.Post("/verify-payment", handlers.VerifyPayment)
	session.Post("/assign-therapist", middleware.AdminRequired(), handlers.AssignTherapist)
	session.Post("/update-status", middleware.TherapistRequired(), handlers.UpdateSessionStatus)
	session.Get("/:id", handlers.GetSessionByID)
	session.Put("/:id", handlers.UpdateSession)
	session.Delete("/:id", middleware.AdminRequired(), handlers.DeleteSession)
}
