package query

import "vitrin/internal/api"

// Filter controllers hold the user-editable query parameters for one list
// view and derive the request sent to the fetch thunks. Changing the shape
// of the result set (search term, sort, page size) always resets the page
// to 1, because the old offset no longer points at anything meaningful.

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

type ProductFilters struct {
	SearchTerm string
	Page       int
	PageSize   int
}

func NewProductFilters(pageSize int) ProductFilters {
	if pageSize <= 0 {
		pageSize = 10
	}
	return ProductFilters{Page: 1, PageSize: pageSize}
}

func (f *ProductFilters) SetSearchTerm(term string) {
	f.SearchTerm = term
	f.Page = 1
}

func (f *ProductFilters) SetPageSize(n int) {
	if n <= 0 {
		n = 10
	}
	f.PageSize = n
	f.Page = 1
}

func (f *ProductFilters) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	f.Page = n
}

// Request derives the wire query; skip is never stored.
func (f ProductFilters) Request() api.ListQuery {
	return api.ListQuery{
		Q:     f.SearchTerm,
		Limit: f.PageSize,
		Skip:  (f.Page - 1) * f.PageSize,
	}
}

type RecipeFilters struct {
	SearchTerm string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string // SortAsc, SortDesc or ""
}

func NewRecipeFilters(pageSize int) RecipeFilters {
	if pageSize <= 0 {
		pageSize = 5
	}
	return RecipeFilters{Page: 1, PageSize: pageSize}
}

func (f *RecipeFilters) SetSearchTerm(term string) {
	f.SearchTerm = term
	f.Page = 1
}

func (f *RecipeFilters) SetPageSize(n int) {
	if n <= 0 {
		n = 5
	}
	f.PageSize = n
	f.Page = 1
}

func (f *RecipeFilters) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	f.Page = n
}

func (f *RecipeFilters) SetSortOrder(order string) {
	f.SortOrder = order
	f.Page = 1
}

// ToggleSort sorts ascending on a new column and flips the direction when
// the same column is chosen again.
func (f *RecipeFilters) ToggleSort(key string) {
	if f.SortBy == key {
		if f.SortOrder == SortAsc {
			f.SortOrder = SortDesc
		} else {
			f.SortOrder = SortAsc
		}
	} else {
		f.SortBy = key
		f.SortOrder = SortAsc
	}
	f.Page = 1
}

// Request derives the wire query. Sorting is carried only when both the
// key and the direction are set.
func (f RecipeFilters) Request() api.ListQuery {
	q := api.ListQuery{
		Q:     f.SearchTerm,
		Limit: f.PageSize,
		Skip:  (f.Page - 1) * f.PageSize,
	}
	if f.SortBy != "" && f.SortOrder != "" {
		q.SortBy = f.SortBy
		q.Order = f.SortOrder
	}
	return q
}
