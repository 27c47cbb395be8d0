package state

import (
	"context"

	"vitrin/internal/domain"
	applog "vitrin/internal/log"
)

// RecipeDetailState holds the single record shown by the detail view.
type RecipeDetailState struct {
	Recipe *domain.RecipeDetails
	Status Status
	Error  string
}

func (s *RecipeDetailState) reduce(a Action) {
	switch a.Type {
	case RecipeDetailFetchPending:
		s.Status = StatusLoading
		s.Error = ""
	case RecipeDetailFetchFulfilled:
		r := a.Payload.(domain.RecipeDetails)
		s.Status = StatusSucceeded
		s.Recipe = &r
	case RecipeDetailFetchRejected:
		s.Status = StatusFailed
		s.Error = errMessage(a.Err)
	}
}

func (s *Store) FetchRecipeDetail(ctx context.Context, id int) error {
	s.mu.Lock()
	s.recipeDetailSeq++
	token := s.recipeDetailSeq
	s.mu.Unlock()

	s.Dispatch(Action{Type: RecipeDetailFetchPending})
	r, status, err := s.client.GetRecipe(ctx, id)

	s.mu.Lock()
	stale := token != s.recipeDetailSeq
	s.mu.Unlock()
	if stale {
		applog.Info(nil, "state.recipeDetail.stale_drop", map[string]any{"status": status})
		return nil
	}

	if err != nil {
		s.Dispatch(Action{Type: RecipeDetailFetchRejected, HTTPStatus: status, Err: err})
		return err
	}
	s.Dispatch(Action{Type: RecipeDetailFetchFulfilled, Payload: r, HTTPStatus: status})
	return nil
}
