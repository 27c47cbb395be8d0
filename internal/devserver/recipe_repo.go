package devserver

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"

	"vitrin/internal/domain"
)

type RecipeRepo struct{ db *sqlx.DB }

func NewRecipeRepo(db *sqlx.DB) *RecipeRepo { return &RecipeRepo{db: db} }

type recipeRow struct {
	ID               int    `db:"id"`
	Name             string `db:"name"`
	IngredientsJSON  string `db:"ingredients_json"`
	InstructionsJSON string `db:"instructions_json"`
	PrepTimeMinutes  int    `db:"prep_time_minutes"`
	CookTimeMinutes  int    `db:"cook_time_minutes"`
	Servings         int    `db:"servings"`
	Difficulty       string `db:"difficulty"`
	Cuisine          string `db:"cuisine"`
	Calories         int    `db:"calories_per_serving"`
	TagsJSON         string `db:"tags_json"`
	UserID           int    `db:"user_id"`
	Image            string `db:"image"`
}

func (row recipeRow) details() (domain.RecipeDetails, error) {
	d := domain.RecipeDetails{
		Recipe: domain.Recipe{
			ID:           row.ID,
			Name:         row.Name,
			Ingredients:  []string{},
			Instructions: []string{},
		},
		PrepTimeMinutes:    row.PrepTimeMinutes,
		CookTimeMinutes:    row.CookTimeMinutes,
		Servings:           row.Servings,
		Difficulty:         row.Difficulty,
		Cuisine:            row.Cuisine,
		CaloriesPerServing: row.Calories,
		Tags:               []string{},
		UserID:             row.UserID,
		Image:              row.Image,
	}
	if err := json.Unmarshal([]byte(row.IngredientsJSON), &d.Ingredients); err != nil {
		return d, err
	}
	if err := json.Unmarshal([]byte(row.InstructionsJSON), &d.Instructions); err != nil {
		return d, err
	}
	if err := json.Unmarshal([]byte(row.TagsJSON), &d.Tags); err != nil {
		return d, err
	}
	return d, nil
}

// sortColumns whitelists sortBy keys; anything else falls back to id order.
var sortColumns = map[string]string{
	"name":               "name",
	"prepTimeMinutes":    "prep_time_minutes",
	"cookTimeMinutes":    "cook_time_minutes",
	"servings":           "servings",
	"difficulty":         "difficulty",
	"cuisine":            "cuisine",
	"caloriesPerServing": "calories_per_serving",
	"id":                 "id",
}

// Search filters by name substring (empty q matches all) and applies
// sorting only when both key and direction are usable.
func (r *RecipeRepo) Search(q, sortBy, order string, limit, offset int) ([]domain.Recipe, int, error) {
	orderClause := `id`
	if col, ok := sortColumns[sortBy]; ok && (order == "asc" || order == "desc") {
		orderClause = col + " " + order
	}
	like := "%" + q + "%"
	var rows []recipeRow
	err := r.db.Select(&rows, `
  SELECT id, name, ingredients_json, instructions_json, prep_time_minutes,
         cook_time_minutes, servings, difficulty, cuisine, calories_per_serving,
         tags_json, user_id, image
  FROM recipes WHERE LOWER(name) LIKE LOWER(?)
  ORDER BY `+orderClause+` LIMIT ? OFFSET ?`, like, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM recipes WHERE LOWER(name) LIKE LOWER(?)`, like); err != nil {
		return nil, 0, err
	}
	out := make([]domain.Recipe, 0, len(rows))
	for _, row := range rows {
		d, err := row.details()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d.Recipe)
	}
	return out, total, nil
}

func (r *RecipeRepo) Get(id int) (domain.RecipeDetails, bool, error) {
	var row recipeRow
	err := r.db.Get(&row, `
  SELECT id, name, ingredients_json, instructions_json, prep_time_minutes,
         cook_time_minutes, servings, difficulty, cuisine, calories_per_serving,
         tags_json, user_id, image
  FROM recipes WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.RecipeDetails{}, false, nil
		}
		return domain.RecipeDetails{}, false, err
	}
	d, err := row.details()
	if err != nil {
		return domain.RecipeDetails{}, false, err
	}
	return d, true, nil
}
