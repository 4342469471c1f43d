package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poiuyt183/efunny-learn-sub001/app/controllers"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Public catalogue
	app.Get("/pricing", controllers.HandlePricing)
	app.Get("/tutors", controllers.HandleTutorList)
	app.Get("/tutors/:id", controllers.HandleTutorDetail)

	// Auth
	app.Get("/auth/activate", controllers.HandleAuthActivate)
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Gateway callbacks (no CSRF, signature-verified in the payment service)
	app.Post("/webhooks/edupay", controllers.HandlePaymentWebhook)
	app.Get("/payments/return", controllers.HandlePaymentReturn)
}
