package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"vitrin/internal/api"
	"vitrin/internal/config"
	"vitrin/internal/domain"
	"vitrin/internal/prefs"
	"vitrin/internal/query"
	"vitrin/internal/state"
	"vitrin/internal/validate"
)

type app struct {
	store    *state.Store
	prefs    *prefs.Store
	lang     string
	products query.ProductFilters
	recipes  query.RecipeFilters
	out      io.Writer
}

func main() {
	cfg := config.Load()

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(f)
		}
	}

	pstore, err := prefs.Open(cfg.PrefsDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer pstore.Close()
	lang, err := pstore.Language()
	if err != nil {
		log.Fatal(err)
	}

	a := &app{
		store:    state.New(api.New(cfg.APIBaseURL)),
		prefs:    pstore,
		lang:     lang,
		products: query.NewProductFilters(cfg.ProductsPerPage),
		recipes:  query.NewRecipeFilters(cfg.RecipesPerPage),
		out:      os.Stdout,
	}

	// One observer prints a toast per the configured status table, the
	// notifier never blocks or rewrites the action stream.
	notifier := state.NewNotifier(map[int]state.NotifyFunc{
		400: func(act state.Action) { a.toast(fmt.Sprintf("HTTP %d on %s", act.HTTPStatus, act.Type)) },
	})
	a.store.Subscribe(notifier.Observe)

	fmt.Fprintln(a.out, `vitrin - type "help" for commands`)
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(a.out, "> ")
		if !sc.Scan() {
			return
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		a.eval(context.Background(), strings.Fields(line))
	}
}

func (a *app) toast(s string) { fmt.Fprintf(a.out, "[toast] %s\n", s) }

func (a *app) eval(ctx context.Context, args []string) {
	switch args[0] {
	case "help":
		a.help()
	case "login":
		a.cmdLogin(ctx, args[1:])
	case "products":
		a.cmdProducts(ctx, args[1:])
	case "recipes":
		a.cmdRecipes(ctx, args[1:])
	case "recipe":
		a.cmdRecipeDetail(ctx, args[1:])
	case "cart":
		a.cmdCart(args[1:])
	case "lang":
		a.cmdLang(args[1:])
	default:
		fmt.Fprintf(a.out, "unknown command %q\n", args[0])
	}
}

func (a *app) help() {
	fmt.Fprint(a.out, `commands:
  login <username> <password>
  products                     show current page
  products search <term>       set search term (resets page)
  products page <n> | pagesize <n>
  products add <price> <title...>
  products update <id> <price> <title...>
  products delete <id>
  recipes                      show current page
  recipes search <term> | sort <key> | order asc|desc
  recipes page <n> | pagesize <n>
  recipe <id>                  show details
  cart | cart add <productId> | cart remove <id> | cart delete <id>
  lang | lang en|tr
  quit
`)
}

func (a *app) cmdLogin(ctx context.Context, args []string) {
	if len(args) != 2 || !validate.Credentials(args[0], args[1]) {
		fmt.Fprintln(a.out, "usage: login <username> <password>")
		return
	}
	err := a.store.LoginUser(ctx, domain.Credentials{Username: args[0], Password: args[1]})
	if err != nil {
		a.toast(a.msg("login.fail"))
		fmt.Fprintf(a.out, "Error: %s\n", a.store.Login().Error)
		return
	}
	a.toast(a.msg("login.ok"))
	fmt.Fprintf(a.out, "welcome, %s\n", a.store.Login().Session.FirstName)
}

func (a *app) cmdProducts(ctx context.Context, args []string) {
	switch {
	case len(args) == 0:
		// fall through to fetch
	case args[0] == "search":
		term := strings.Join(args[1:], " ")
		if term != "" {
			if q, ok := validate.Q(term); ok {
				term = q
			} else {
				fmt.Fprintln(a.out, "enter a valid keyword (letters/numbers only)")
				return
			}
		}
		a.products.SetSearchTerm(term)
	case args[0] == "page" && len(args) == 2:
		if n, ok := validate.ID(args[1]); ok {
			a.products.SetPage(n)
		}
	case args[0] == "pagesize" && len(args) == 2:
		if n, ok := validate.ID(args[1]); ok {
			a.products.SetPageSize(n)
		}
	case args[0] == "add":
		a.cmdProductAdd(ctx, args[1:])
		return
	case args[0] == "update":
		a.cmdProductUpdate(ctx, args[1:])
		return
	case args[0] == "delete":
		a.cmdProductDelete(ctx, args[1:])
		return
	default:
		fmt.Fprintln(a.out, "see: help")
		return
	}

	fmt.Fprintln(a.out, a.msg("loading"))
	_ = a.store.FetchProducts(ctx, a.products.Request())
	a.renderProducts()
}

func (a *app) cmdProductAdd(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "usage: products add <price> <title...>")
		return
	}
	price, okP := validate.Price(args[0])
	title, okT := validate.Title(strings.Join(args[1:], " "))
	if !okP || !okT {
		// Client-side validation blocks the request entirely.
		fmt.Fprintln(a.out, "title must be non-empty and price numeric and >= 0")
		return
	}
	if err := a.store.AddProduct(ctx, title, price); err != nil {
		a.toast(a.msg("product.addErr"))
		return
	}
	a.toast(a.msg("product.added"))
}

func (a *app) cmdProductUpdate(ctx context.Context, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(a.out, "usage: products update <id> <price> <title...>")
		return
	}
	id, okID := validate.ID(args[0])
	price, okP := validate.Price(args[1])
	title, okT := validate.Title(strings.Join(args[2:], " "))
	if !okID || !okP || !okT {
		fmt.Fprintln(a.out, "id must be a positive integer, title non-empty, price numeric")
		return
	}
	if err := a.store.UpdateProduct(ctx, id, title, price); err != nil {
		a.toast(a.msg("product.updErr"))
		return
	}
	a.toast(a.msg("product.upd"))
}

func (a *app) cmdProductDelete(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "usage: products delete <id>")
		return
	}
	id, ok := validate.ID(args[0])
	if !ok {
		fmt.Fprintln(a.out, "id must be a positive integer")
		return
	}
	if err := a.store.DeleteProduct(ctx, id); err != nil {
		a.toast(a.msg("product.delErr"))
		return
	}
	a.toast(a.msg("product.del"))
}

func (a *app) cmdRecipes(ctx context.Context, args []string) {
	switch {
	case len(args) == 0:
	case args[0] == "search":
		a.recipes.SetSearchTerm(strings.Join(args[1:], " "))
	case args[0] == "sort" && len(args) == 2:
		a.recipes.ToggleSort(args[1])
	case args[0] == "order" && len(args) == 2:
		if args[1] == query.SortAsc || args[1] == query.SortDesc {
			a.recipes.SetSortOrder(args[1])
		}
	case args[0] == "page" && len(args) == 2:
		if n, ok := validate.ID(args[1]); ok {
			a.recipes.SetPage(n)
		}
	case args[0] == "pagesize" && len(args) == 2:
		if n, ok := validate.ID(args[1]); ok {
			a.recipes.SetPageSize(n)
		}
	default:
		fmt.Fprintln(a.out, "see: help")
		return
	}

	fmt.Fprintln(a.out, a.msg("loading"))
	_ = a.store.FetchRecipes(ctx, a.recipes.Request())
	a.renderRecipes()
}

func (a *app) cmdRecipeDetail(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "usage: recipe <id>")
		return
	}
	id, ok := validate.ID(args[0])
	if !ok {
		fmt.Fprintln(a.out, "id must be a positive integer")
		return
	}
	fmt.Fprintln(a.out, a.msg("loading"))
	_ = a.store.FetchRecipeDetail(ctx, id)
	a.renderRecipeDetail()
}

func (a *app) cmdCart(args []string) {
	switch {
	case len(args) == 0:
		a.renderCart()
	case args[0] == "add" && len(args) == 2:
		id, ok := validate.ID(args[1])
		if !ok {
			fmt.Fprintln(a.out, "id must be a positive integer")
			return
		}
		for _, p := range a.store.Products().Products {
			if p.ID == id {
				a.store.AddToCart(p)
				a.toast(a.msg("cart.added"))
				return
			}
		}
		fmt.Fprintln(a.out, "product is not on the current page; fetch it first")
	case args[0] == "remove" && len(args) == 2:
		if id, ok := validate.ID(args[1]); ok {
			a.store.RemoveFromCart(id)
			a.renderCart()
		}
	case args[0] == "delete" && len(args) == 2:
		if id, ok := validate.ID(args[1]); ok {
			a.store.DeleteFromCart(id)
			a.renderCart()
		}
	default:
		fmt.Fprintln(a.out, "see: help")
	}
}

func (a *app) cmdLang(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(a.out, "language: %s\n", a.lang)
		return
	}
	if err := a.prefs.SetLanguage(args[0]); err != nil {
		fmt.Fprintf(a.out, "unknown language %q (known: %s)\n", args[0], strings.Join(prefs.Languages, ", "))
		return
	}
	a.lang = args[0]
	fmt.Fprintf(a.out, "language: %s\n", a.lang)
}

func (a *app) renderProducts() {
	st := a.store.Products()
	if st.Status == state.StatusFailed {
		fmt.Fprintf(a.out, "Error: %s\n", st.Error)
		// Stale rows stay visible below the error, deliberately.
	}
	if len(st.Products) == 0 {
		fmt.Fprintln(a.out, a.msg("empty"))
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRICE\tREVIEWS")
	for _, p := range st.Products {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%d\n", p.ID, p.Title, p.Price, len(p.Reviews))
	}
	w.Flush()
	fmt.Fprintf(a.out, "page %d (size %d), %d total\n", a.products.Page, a.products.PageSize, st.Total)
}

func (a *app) renderRecipes() {
	st := a.store.Recipes()
	if st.Status == state.StatusFailed {
		fmt.Fprintf(a.out, "Error: %s\n", st.Error)
	}
	if len(st.Recipes) == 0 {
		fmt.Fprintln(a.out, a.msg("empty"))
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tINGREDIENTS")
	for _, r := range st.Recipes {
		fmt.Fprintf(w, "%d\t%s\t%d\n", r.ID, r.Name, len(r.Ingredients))
	}
	w.Flush()
	fmt.Fprintf(a.out, "page %d (size %d), %d total", a.recipes.Page, a.recipes.PageSize, st.Total)
	if a.recipes.SortBy != "" && a.recipes.SortOrder != "" {
		fmt.Fprintf(a.out, ", sorted by %s %s", a.recipes.SortBy, a.recipes.SortOrder)
	}
	fmt.Fprintln(a.out)
}

func (a *app) renderRecipeDetail() {
	st := a.store.RecipeDetail()
	if st.Status == state.StatusFailed {
		fmt.Fprintf(a.out, "Error: %s\n", st.Error)
		return
	}
	r := st.Recipe
	if r == nil {
		fmt.Fprintln(a.out, a.msg("empty"))
		return
	}
	fmt.Fprintf(a.out, "%s (%s, %s)\n", r.Name, r.Cuisine, r.Difficulty)
	fmt.Fprintf(a.out, "prep %dm, cook %dm, serves %d, %d kcal/serving\n",
		r.PrepTimeMinutes, r.CookTimeMinutes, r.Servings, r.CaloriesPerServing)
	fmt.Fprintln(a.out, "ingredients:")
	for _, in := range r.Ingredients {
		fmt.Fprintf(a.out, "  - %s\n", in)
	}
	fmt.Fprintln(a.out, "instructions:")
	for i, step := range r.Instructions {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, step)
	}
	if len(r.Tags) > 0 {
		fmt.Fprintf(a.out, "tags: %s\n", strings.Join(r.Tags, ", "))
	}
}

func (a *app) renderCart() {
	cart := a.store.Cart()
	if len(cart.Items) == 0 {
		fmt.Fprintln(a.out, a.msg("empty"))
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRICE\tQTY\tSUBTOTAL")
	for _, it := range cart.Items {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%d\t%.2f\n", it.ID, it.Title, it.Price, it.Quantity, it.Price*float64(it.Quantity))
	}
	w.Flush()
	fmt.Fprintf(a.out, "total: %.2f\n", cart.TotalPrice())
}
