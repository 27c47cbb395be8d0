package state

import (
	"sync"

	"vitrin/internal/api"
)

// Observer sees every action after all reducers have run. Observers must
// not mutate state; they exist for side effects (notifications, logging).
type Observer func(Action)

// Store owns the whole application state. Dispatch is the only write path
// and is serialized by a mutex, so each slice has exactly one logical
// writer and no mutation ever interleaves mid-update.
type Store struct {
	mu sync.Mutex

	products     ProductsState
	recipes      RecipesState
	recipeDetail RecipeDetailState
	login        LoginState
	cart         CartState

	// Monotonic request tokens, one per fetching slice. A response whose
	// token is no longer the latest is dropped instead of clobbering
	// newer data.
	productsSeq     uint64
	recipesSeq      uint64
	recipeDetailSeq uint64

	client    *api.Client
	observers []Observer
}

func New(client *api.Client) *Store {
	return &Store{
		products:     ProductsState{Status: StatusIdle},
		recipes:      RecipesState{Status: StatusIdle},
		recipeDetail: RecipeDetailState{Status: StatusIdle},
		login:        LoginState{Status: StatusIdle},
		client:       client,
	}
}

// Subscribe registers an observer for all future dispatches.
func (s *Store) Subscribe(o Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Dispatch runs the action through every slice reducer, then fans it out
// to observers. Reducers ignore action types they do not own.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.products.reduce(a)
	s.recipes.reduce(a)
	s.recipeDetail.reduce(a)
	s.login.reduce(a)
	s.cart.reduce(a)
	obs := make([]Observer, len(s.observers))
	copy(obs, s.observers)
	s.mu.Unlock()

	for _, o := range obs {
		o(a)
	}
}

func (s *Store) Products() ProductsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products
}

func (s *Store) Recipes() RecipesState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipes
}

func (s *Store) RecipeDetail() RecipeDetailState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipeDetail
}

func (s *Store) Login() LoginState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.login
}

func (s *Store) Cart() CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.clone()
}
