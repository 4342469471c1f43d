package router

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/poiuyt183/efunny-learn-sub001/app/controllers"
	"github.com/poiuyt183/efunny-learn-sub001/app/repository"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/database"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/middleware"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/payment"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init repositories
	repository.SetGlobalFactory(repository.NewFactory(database.GetDB()))

	// The gateway contract is required to run at all; an incomplete config
	// must not degrade into accepting unsigned notifications.
	cfg, err := payment.NewConfigFromEnv()
	if err != nil {
		log.Fatalf("payment gateway configuration invalid: %v", err)
	}
	controllers.InitializePaymentController(payment.NewServiceFromDB(cfg, database.GetDB()))

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	h.registerPublicRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
