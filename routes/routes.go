package routes

import (
	"github.com/gofiber/fiber/v2"

	"ecotrack-backend/controllers"
	"ecotrack-backend/idempotency"
	"ecotrack-backend/middlewares"
)

// Register wires all HTTP routes. The idempotency guard runs before public
// sensitive handlers and, on protected routes, after auth so records carry
// the acting user id. Ordering matters: each middleware may short-circuit.
func Register(app *fiber.App, store idempotency.Store) {
	guard := middlewares.Idempotency(store, middlewares.IdempotencyConfig{})

	api := app.Group("/api")

	// Public auth endpoints (registration is a sensitive route)
	api.Post("/auth/register", guard, controllers.Register)
	api.Post("/auth/login", controllers.Login)
	api.Post("/auth/logout", controllers.Logout)

	// Protected endpoints (JWT auth, then idempotency guard)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())
	protected.Use(guard)

	// Profile & points
	protected.Get("/profile", controllers.GetProfile)
	protected.Patch("/profile", controllers.UpdateProfile)
	protected.Get("/points", controllers.GetPoints)

	// Activities
	protected.Post("/activities", controllers.CreateActivity)
	protected.Get("/activities", controllers.GetActivities)
	protected.Get("/activities/:id", controllers.GetActivity)
	protected.Patch("/activities/:id", controllers.UpdateActivity)

	// Uploads
	protected.Post("/uploads", controllers.CreateUpload)
	protected.Get("/uploads/:id", controllers.GetUpload)

	// Products
	protected.Get("/products", controllers.GetProducts)
	protected.Get("/products/:id", controllers.GetProduct)

	// Exchanges
	protected.Post("/exchanges", controllers.CreateExchange)
	protected.Get("/exchanges", controllers.GetExchanges)

	// Messages
	protected.Post("/messages", controllers.CreateMessage)
	protected.Get("/messages", controllers.GetMessages)
	protected.Patch("/messages/:id/read", controllers.MarkMessageRead)

	// Admin
	admin := protected.Group("/admin", middlewares.IsAdmin())
	admin.Patch("/activities/:id/review", controllers.ReviewActivity)
	admin.Get("/users", controllers.GetUsers)
	admin.Post("/products", controllers.CreateProduct)
	admin.Put("/products/:id", controllers.UpdateProduct)
	admin.Delete("/products/:id", controllers.DeleteProduct)
}
