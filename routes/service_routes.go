package routes

import (
	"github.com/solacecare/counseling_backend/handlers"
	"github.com/solacecare/counseling_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func ServiceRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/services", handlers.GetAllServices)
	api.Get("/services/:id", handlers.GetServiceByID)

	admin := api.Group("/services", middleware.Protected(), middleware.AdminRequired())
	admin.Post("", handlers.CreateService)
	admin.Put("/:id", handlers.UpdateService)
	admin.Delete("/:id", handlers.DeleteService)
}
