package routes

import (
	"github.com/solacecare/counseling_backend/handlers"
	"github.com/solacecare/counseling_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func CouponRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Public discount preview; no usage is committed here.
	api.Post("/coupons/validate", handlers.ValidateCoupon)

	coupon := api.Group("/coupons", middleware.Protected(), middleware.AdminRequired())
	coupon.Post("", handlers.CreateCoupon)
	coupon.Get("", handlers.GetAllCoupons)
	coupon.Get("/:id", handlers.GetCouponByID)
	coupon.Put("/:id", handlers.UpdateCoupon)
	coupon.Delete("/:id", handlers.DeleteCoupon)
}
