package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/poiuyt183/efunny-learn-sub001/app/controllers"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")
	v1.Get("/pricing", controllers.HandlePricing)
	v1.Get("/tutors", controllers.HandleTutorList)
	v1.Get("/tutors/:id", controllers.HandleTutorDetail)
	v1.Get("/bookings", middleware.RequireAuth, controllers.HandleBookingList)
	v1.Get("/children", middleware.RequireParent, controllers.HandleChildList)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
