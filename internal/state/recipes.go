package state

import (
	"context"

	"vitrin/internal/api"
	"vitrin/internal/domain"
	applog "vitrin/internal/log"
)

type RecipesState struct {
	Recipes []domain.Recipe
	Total   int
	Status  Status
	Error   string
}

func (s *RecipesState) reduce(a Action) {
	switch a.Type {
	case RecipesFetchPending:
		s.Status = StatusLoading
		s.Error = ""
	case RecipesFetchFulfilled:
		p := a.Payload.(RecipesFetched)
		s.Status = StatusSucceeded
		s.Recipes = p.Recipes
		s.Total = p.Total
	case RecipesFetchRejected:
		s.Status = StatusFailed
		s.Error = errMessage(a.Err)
	}
}

func (s *Store) FetchRecipes(ctx context.Context, q api.ListQuery) error {
	s.mu.Lock()
	s.recipesSeq++
	token := s.recipesSeq
	s.mu.Unlock()

	s.Dispatch(Action{Type: RecipesFetchPending})
	page, status, err := s.client.FetchRecipes(ctx, q)

	s.mu.Lock()
	stale := token != s.recipesSeq
	s.mu.Unlock()
	if stale {
		applog.Info(nil, "state.recipes.stale_drop", map[string]any{"status": status})
		return nil
	}

	if err != nil {
		s.Dispatch(Action{Type: RecipesFetchRejected, HTTPStatus: status, Err: err})
		return err
	}
	s.Dispatch(Action{
		Type:       RecipesFetchFulfilled,
		Payload:    RecipesFetched{Recipes: page.Recipes, Total: page.Total},
		HTTPStatus: status,
	})
	return nil
}
