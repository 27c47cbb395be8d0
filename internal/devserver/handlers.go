package devserver

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vitrin/internal/domain"
)

type handlers struct {
	Products *ProductRepo
	Recipes  *RecipeRepo
	Users    *UserRepo
}

func pageParams(c *fiber.Ctx) (limit, skip int) {
	limit = c.QueryInt("limit", 30)
	skip = c.QueryInt("skip", 0)
	if limit <= 0 {
		limit = 30
	}
	if skip < 0 {
		skip = 0
	}
	return limit, skip
}

func notFound(c *fiber.Ctx, resource string, id string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": fmt.Sprintf("%s with id '%s' not found", resource, id),
	})
}

func (h *handlers) Login(c *fiber.Ctx) error {
	var creds domain.Credentials
	if err := c.BodyParser(&creds); err != nil || creds.Username == "" || creds.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Username and password required"})
	}
	u, err := h.Users.ByUsername(creds.Username)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(creds.Password)) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid credentials"})
	}
	return c.JSON(domain.Session{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Image:     u.Image,
		Token:     uuid.NewString(),
	})
}

func (h *handlers) ListProducts(c *fiber.Ctx) error {
	limit, skip := pageParams(c)
	products, total, err := h.Products.List(limit, skip)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": products, "total": total, "skip": skip, "limit": limit})
}

func (h *handlers) SearchProducts(c *fiber.Ctx) error {
	limit, skip := pageParams(c)
	products, total, err := h.Products.Search(c.Query("q"), limit, skip)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": products, "total": total, "skip": skip, "limit": limit})
}

func (h *handlers) AddProduct(c *fiber.Ctx) error {
	var in struct {
		Title string  `json:"title"`
		Price float64 `json:"price"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if in.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Price must not be negative"})
	}
	p, err := h.Products.Add(in.Title, in.Price)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *handlers) UpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "Product", c.Params("id"))
	}
	var in struct {
		Title string  `json:"title"`
		Price float64 `json:"price"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	p, ok, err := h.Products.Update(id, in.Title, in.Price)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(c, "Product", c.Params("id"))
	}
	return c.JSON(p)
}

func (h *handlers) DeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "Product", c.Params("id"))
	}
	p, ok, err := h.Products.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(c, "Product", c.Params("id"))
	}
	return c.JSON(struct {
		domain.Product
		IsDeleted bool   `json:"isDeleted"`
		DeletedOn string `json:"deletedOn"`
	}{p, true, time.Now().UTC().Format(time.RFC3339)})
}

func (h *handlers) SearchRecipes(c *fiber.Ctx) error {
	limit, skip := pageParams(c)
	recipes, total, err := h.Recipes.Search(c.Query("q"), c.Query("sortBy"), c.Query("order"), limit, skip)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"recipes": recipes, "total": total, "skip": skip, "limit": limit})
}

func (h *handlers) GetRecipe(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "Recipe", c.Params("id"))
	}
	r, ok, err := h.Recipes.Get(id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(c, "Recipe", c.Params("id"))
	}
	return c.JSON(r)
}
