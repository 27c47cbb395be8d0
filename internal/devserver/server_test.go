package devserver_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"vitrin/internal/devserver"
	"vitrin/internal/domain"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := devserver.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return devserver.New(db)
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
}

type productPage struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

type recipePage struct {
	Recipes []domain.Recipe `json:"recipes"`
	Total   int             `json:"total"`
}

func TestProductsPaginationWindow(t *testing.T) {
	app := newApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/products?limit=2&skip=2", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var page productPage
	decode(t, resp, &page)
	if page.Total != 6 {
		t.Fatalf("seeded total = %d, want 6", page.Total)
	}
	if len(page.Products) != 2 || page.Products[0].ID != 3 || page.Products[1].ID != 4 {
		t.Fatalf("window wrong: %+v", page.Products)
	}
	if page.Skip != 2 || page.Limit != 2 {
		t.Fatalf("echo params wrong: skip=%d limit=%d", page.Skip, page.Limit)
	}
}

func TestProductsSearchFiltersByTitle(t *testing.T) {
	app := newApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/products/search?q=lipstick&limit=10&skip=0", nil))
	if err != nil {
		t.Fatal(err)
	}
	var page productPage
	decode(t, resp, &page)
	if page.Total != 1 || len(page.Products) != 1 {
		t.Fatalf("search result: %+v", page)
	}
	if page.Products[0].Title != "Red Lipstick" {
		t.Fatalf("got %q", page.Products[0].Title)
	}
	if len(page.Products[0].Reviews) == 0 {
		t.Fatal("reviews should be embedded in search results")
	}
}

func TestLoginAcceptAndReject(t *testing.T) {
	app := newApp(t)

	ok := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"username":"emilys","password":"emilyspass"}`))
	ok.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(ok)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var sess domain.Session
	decode(t, resp, &sess)
	if sess.Username != "emilys" || sess.Token == "" {
		t.Fatalf("session: %+v", sess)
	}

	bad := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"username":"emilys","password":"wrong"}`))
	bad.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(bad)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("bad creds should be 400, got %d", resp.StatusCode)
	}
	var em struct {
		Message string `json:"message"`
	}
	decode(t, resp, &em)
	if em.Message != "Invalid credentials" {
		t.Fatalf("message %q", em.Message)
	}
}

func TestAddUpdateDeleteProduct(t *testing.T) {
	app := newApp(t)

	add := httptest.NewRequest("POST", "/products/add", strings.NewReader(`{"title":"Cassette Player","price":39.9}`))
	add.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(add)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("add status %d", resp.StatusCode)
	}
	var created domain.Product
	decode(t, resp, &created)
	if created.ID == 0 || created.Title != "Cassette Player" {
		t.Fatalf("created: %+v", created)
	}

	upd := httptest.NewRequest("PUT", "/products/1", strings.NewReader(`{"title":"Renamed","price":1.5}`))
	upd.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(upd)
	if err != nil {
		t.Fatal(err)
	}
	var updated domain.Product
	decode(t, resp, &updated)
	if updated.ID != 1 || updated.Title != "Renamed" || updated.Price != 1.5 {
		t.Fatalf("updated: %+v", updated)
	}

	resp, err = app.Test(httptest.NewRequest("DELETE", "/products/2", nil))
	if err != nil {
		t.Fatal(err)
	}
	var deleted struct {
		domain.Product
		IsDeleted bool   `json:"isDeleted"`
		DeletedOn string `json:"deletedOn"`
	}
	decode(t, resp, &deleted)
	if !deleted.IsDeleted || deleted.ID != 2 || deleted.DeletedOn == "" {
		t.Fatalf("deleted: %+v", deleted)
	}

	// Deleted record no longer listed.
	resp, err = app.Test(httptest.NewRequest("GET", "/products?limit=30", nil))
	if err != nil {
		t.Fatal(err)
	}
	var page productPage
	decode(t, resp, &page)
	for _, p := range page.Products {
		if p.ID == 2 {
			t.Fatal("ghost entry after delete")
		}
	}
}

func TestMutateMissingProductIs404(t *testing.T) {
	app := newApp(t)

	upd := httptest.NewRequest("PUT", "/products/999", strings.NewReader(`{"title":"x","price":1}`))
	upd.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(upd)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("update missing: %d", resp.StatusCode)
	}
	var em struct {
		Message string `json:"message"`
	}
	decode(t, resp, &em)
	if em.Message != "Product with id '999' not found" {
		t.Fatalf("message %q", em.Message)
	}

	resp, err = app.Test(httptest.NewRequest("DELETE", "/products/999", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("delete missing: %d", resp.StatusCode)
	}
}

func TestRecipesSearchAndSort(t *testing.T) {
	app := newApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/recipes/search?q=pasta&limit=5&skip=0", nil))
	if err != nil {
		t.Fatal(err)
	}
	var page recipePage
	decode(t, resp, &page)
	if page.Total != 2 {
		t.Fatalf("pasta recipes = %d, want 2", page.Total)
	}

	// Sorted by calories descending across the whole set.
	resp, err = app.Test(httptest.NewRequest("GET", "/recipes/search?q=&limit=10&skip=0&sortBy=caloriesPerServing&order=desc", nil))
	if err != nil {
		t.Fatal(err)
	}
	decode(t, resp, &page)
	if len(page.Recipes) != 5 {
		t.Fatalf("want all 5 recipes, got %d", len(page.Recipes))
	}
	if page.Recipes[0].Name != "Chicken Alfredo Pasta" {
		t.Fatalf("highest-calorie first, got %q", page.Recipes[0].Name)
	}

	// A half-configured sort falls back to id order.
	resp, err = app.Test(httptest.NewRequest("GET", "/recipes/search?q=&limit=10&skip=0&sortBy=caloriesPerServing", nil))
	if err != nil {
		t.Fatal(err)
	}
	decode(t, resp, &page)
	if page.Recipes[0].ID != 1 {
		t.Fatalf("expected id order, got %+v", page.Recipes[0])
	}
}

func TestRecipeDetailAndNotFound(t *testing.T) {
	app := newApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/recipes/1", nil))
	if err != nil {
		t.Fatal(err)
	}
	var d domain.RecipeDetails
	decode(t, resp, &d)
	if d.Name != "Classic Margherita Pizza" || d.Cuisine != "Italian" || len(d.Ingredients) != 5 {
		t.Fatalf("detail: %+v", d)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/recipes/999", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("missing recipe: %d", resp.StatusCode)
	}
	var em struct {
		Message string `json:"message"`
	}
	decode(t, resp, &em)
	if em.Message != "Recipe with id '999' not found" {
		t.Fatalf("message %q", em.Message)
	}
}
