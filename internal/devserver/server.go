package devserver

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"
)

// New assembles the development API app over an opened database. The
// surface mirrors the remote storefront API the client is written
// against, so the client can run and be tested fully offline.
func New(db *sqlx.DB) *fiber.App {
	products := NewProductRepo(db)
	recipes := NewRecipeRepo(db)
	users := NewUserRepo(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"message": err.Error()})
		},
	})
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{Max: 300, Expiration: time.Minute}))

	h := &handlers{Products: products, Recipes: recipes, Users: users}

	app.Post("/auth/login", h.Login)
	app.Get("/products", h.ListProducts)
	app.Get("/products/search", h.SearchProducts)
	app.Post("/products/add", h.AddProduct)
	app.Put("/products/:id", h.UpdateProduct)
	app.Delete("/products/:id", h.DeleteProduct)
	app.Get("/recipes/search", h.SearchRecipes)
	app.Get("/recipes/:id", h.GetRecipe)

	return app
}
