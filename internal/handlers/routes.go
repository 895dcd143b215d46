package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/services"
	"storefront/internal/session"

	"github.com/gofiber/fiber/v2"
)

// Dependencies are the services behind the HTTP API.
type Dependencies struct {
	Tokens   *middleware.SessionTokens
	Sessions session.Store
	Products *services.ProductService
	Reviews  *services.ReviewService
	Auth     *services.AuthService
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Orders   *services.OrderService
	// AdminToken enables the admin routes when set.
	AdminToken string
}

// RegisterRoutes mounts the API under /api/v1.
//
// Fiber runs group middleware for every path under the group prefix, so the
// routes that must not require a session are registered first.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	apiV1 := app.Group("/api/v1")

	NewSessionHandler(deps.Tokens, deps.Sessions).RegisterRoutes(apiV1)

	if deps.AdminToken != "" {
		adminRoutes := apiV1.Group("/admin", middleware.AdminRequired(deps.AdminToken))
		NewAdminHandler(deps.Products, deps.Orders).RegisterRoutes(adminRoutes)
	}

	shop := apiV1.Group("", middleware.SessionRequired(deps.Tokens, deps.Sessions))
	NewProductHandler(deps.Products, deps.Reviews).RegisterRoutes(shop)
	NewAuthHandler(deps.Auth).RegisterRoutes(shop)
	NewCartHandler(deps.Cart).RegisterRoutes(shop)
	NewCheckoutHandler(deps.Checkout).RegisterRoutes(shop)
	NewOrderHandler(deps.Orders).RegisterRoutes(shop)
}
