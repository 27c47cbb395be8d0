package domain

// Review is embedded in a Product and never mutated by the client.
type Review struct {
	Rating       int    `json:"rating" db:"rating"` // 1..5
	Comment      string `json:"comment" db:"comment"`
	ReviewerName string `json:"reviewerName" db:"reviewer_name"`
	Date         string `json:"date" db:"date"` // ISO-8601
}

type Product struct {
	ID      int      `json:"id" db:"id"`
	Title   string   `json:"title" db:"title"`
	Price   float64  `json:"price" db:"price"` // >= 0
	Images  []string `json:"images"`
	Reviews []Review `json:"reviews,omitempty"`
}

// Recipe is the listing shape; the detail endpoint returns RecipeDetails.
type Recipe struct {
	ID           int      `json:"id" db:"id"`
	Name         string   `json:"name" db:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

type RecipeDetails struct {
	Recipe
	PrepTimeMinutes    int      `json:"prepTimeMinutes" db:"prep_time_minutes"`
	CookTimeMinutes    int      `json:"cookTimeMinutes" db:"cook_time_minutes"`
	Servings           int      `json:"servings" db:"servings"`
	Difficulty         string   `json:"difficulty" db:"difficulty"`
	Cuisine            string   `json:"cuisine" db:"cuisine"`
	CaloriesPerServing int      `json:"caloriesPerServing" db:"calories_per_serving"`
	Tags               []string `json:"tags"`
	UserID             int      `json:"userId" db:"user_id"`
	Image              string   `json:"image" db:"image"`
}

// CartItem lives only in local state, never on the server.
// Invariant: Quantity >= 1; removing the last unit removes the entry.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}
