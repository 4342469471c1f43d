package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/poiuyt183/efunny-learn-sub001/app/controllers"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/env"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Post("/register", controllers.HandleAuthRegister)
	group.Post("/login", controllers.HandleAuthLogin)

	// Parent: children
	group.Get("/children", middleware.RequireParent, controllers.HandleChildList)
	group.Post("/children", middleware.RequireParent, controllers.HandleChildCreate)
	group.Post("/children/:id", middleware.RequireParent, controllers.HandleChildUpdate)
	group.Post("/children/:id/delete", middleware.RequireParent, controllers.HandleChildDelete)

	// Bookings
	group.Get("/bookings", middleware.RequireAuth, controllers.HandleBookingList)
	group.Post("/bookings", middleware.RequireParent, controllers.HandleBookingCreate)
	group.Post("/bookings/:batchId/cancel", middleware.RequireParent, controllers.HandleBookingCancel)

	// Checkout
	group.Post("/checkout/subscription", middleware.RequireParent, controllers.HandleSubscriptionCheckout)
	group.Post("/checkout/bookings/:batchId", middleware.RequireParent, controllers.HandleBookingCheckout)

	// Tutor self-service
	group.Post("/tutor/profile", middleware.RequireTutor, controllers.HandleTutorProfileUpdate)
}
