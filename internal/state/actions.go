package state

import "vitrin/internal/domain"

// Status is the async-operation lifecycle every remote slice carries.
// idle -> loading -> succeeded|failed -> loading -> ...
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Action type constants. One pending/fulfilled/rejected triple per thunk,
// plus the synchronous cart intents.
const (
	ProductsFetchPending   = "products/fetch/pending"
	ProductsFetchFulfilled = "products/fetch/fulfilled"
	ProductsFetchRejected  = "products/fetch/rejected"

	ProductAddFulfilled = "products/add/fulfilled"
	ProductAddRejected  = "products/add/rejected"

	ProductUpdateFulfilled = "products/update/fulfilled"
	ProductUpdateRejected  = "products/update/rejected"

	ProductDeleteFulfilled = "products/delete/fulfilled"
	ProductDeleteRejected  = "products/delete/rejected"

	RecipesFetchPending   = "recipes/fetch/pending"
	RecipesFetchFulfilled = "recipes/fetch/fulfilled"
	RecipesFetchRejected  = "recipes/fetch/rejected"

	RecipeDetailFetchPending   = "recipeDetail/fetch/pending"
	RecipeDetailFetchFulfilled = "recipeDetail/fetch/fulfilled"
	RecipeDetailFetchRejected  = "recipeDetail/fetch/rejected"

	LoginPending   = "login/pending"
	LoginFulfilled = "login/fulfilled"
	LoginRejected  = "login/rejected"

	CartAdd    = "cart/add"
	CartRemove = "cart/remove"
	CartDelete = "cart/delete"
)

// Action is one dispatched intent. HTTPStatus is the embedded response
// status observed by the notifier (0 when the action carried none).
type Action struct {
	Type       string
	Payload    any
	HTTPStatus int
	Err        error
}

// Fulfilled payloads.
type ProductsFetched struct {
	Products []domain.Product
	Total    int
}

type RecipesFetched struct {
	Recipes []domain.Recipe
	Total   int
}

type ProductDeleted struct {
	ID int
}
