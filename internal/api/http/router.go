package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/http/handlers"
	"github.com/spec-kit/catalog-service/internal/auth"
)

// RouterDeps groups everything route registration needs.
type RouterDeps struct {
	Auth     *handlers.AuthHandler
	Users    *handlers.UsersHandler
	Products *handlers.ProductsHandler
	Cities   *handlers.CitiesHandler
	Health   *handlers.HealthHandler
	AuthMW   *auth.AuthMiddleware
}

// RegisterRoutes wires the HTTP surface. Catalog reads are public; mutations
// require a valid token, with ownership checks living in the service layer and
// role gates at the route level.
func RegisterRoutes(app *fiber.App, deps RouterDeps) {
	app.Get("/health/live", deps.Health.Live)
	app.Get("/health/ready", deps.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", deps.Auth.Login)
	authGroup.Get("/me", deps.Auth.Me)

	users := app.Group("/users")
	users.Post("/", deps.Users.Register)
	users.Get("/", deps.AuthMW.Handle, auth.RequireAdmin(), deps.Users.List)
	users.Get("/:id", deps.AuthMW.Handle, auth.RequireAuthenticated(), deps.Users.Get)
	users.Put("/:id", deps.AuthMW.Handle, auth.RequireAuthenticated(), deps.Users.Update)
	users.Delete("/:id", deps.AuthMW.Handle, auth.RequireAuthenticated(), deps.Users.Delete)

	products := app.Group("/products")
	products.Get("/", deps.Products.List)
	products.Get("/:id", deps.Products.Get)
	products.Post("/", deps.AuthMW.Handle, auth.RequireAuthenticated(), deps.Products.Create)
	products.Put("/:id", deps.AuthMW.Handle, auth.RequireAuthenticated(), deps.Products.Update)
	products.Delete("/:id", deps.AuthMW.Handle, auth.RequireAuthenticated(), deps.Products.Delete)

	cities := app.Group("/cities")
	cities.Get("/", deps.Cities.List)
	cities.Get("/:id", deps.Cities.Get)
	cities.Post("/", deps.AuthMW.Handle, auth.RequireAdmin(), deps.Cities.Create)
	cities.Put("/:id", deps.AuthMW.Handle, auth.RequireAdmin(), deps.Cities.Update)
	cities.Delete("/:id", deps.AuthMW.Handle, auth.RequireAdmin(), deps.Cities.Delete)
}
