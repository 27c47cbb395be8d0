package state

import (
	"context"
	"errors"

	"vitrin/internal/api"
	"vitrin/internal/domain"
	applog "vitrin/internal/log"
)

// ProductsState owns the product collection shown by the product list.
type ProductsState struct {
	Products []domain.Product
	Total    int
	Status   Status
	Error    string
}

func (s *ProductsState) reduce(a Action) {
	switch a.Type {
	case ProductsFetchPending:
		s.Status = StatusLoading
		s.Error = ""
	case ProductsFetchFulfilled:
		p := a.Payload.(ProductsFetched)
		s.Status = StatusSucceeded
		// Full replace; the view never mixes stale and fresh rows.
		s.Products = p.Products
		s.Total = p.Total
	case ProductsFetchRejected:
		// Previous collection stays visible on failure.
		s.Status = StatusFailed
		s.Error = errMessage(a.Err)
	case ProductAddFulfilled:
		s.Status = StatusSucceeded
		s.Products = append(s.Products, a.Payload.(domain.Product))
	case ProductUpdateFulfilled:
		s.Status = StatusSucceeded
		p := a.Payload.(domain.Product)
		for i := range s.Products {
			if s.Products[i].ID == p.ID {
				s.Products[i] = p
				break
			}
		}
		// Unknown id: no-op, the record is simply not on this page.
	case ProductDeleteFulfilled:
		s.Status = StatusSucceeded
		id := a.Payload.(ProductDeleted).ID
		kept := s.Products[:0:0]
		for _, p := range s.Products {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		s.Products = kept
	case ProductAddRejected, ProductUpdateRejected, ProductDeleteRejected:
		s.Status = StatusFailed
		s.Error = errMessage(a.Err)
	}
}

// errMessage prefers the server-provided message and falls back to a
// generic literal when there is none.
func errMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	var ae *api.Error
	if errors.As(err, &ae) && ae.Kind == api.KindServer && ae.Message != "" {
		return ae.Message
	}
	return err.Error()
}

// FetchProducts loads one page of the (possibly searched) product list.
// A response that was overtaken by a newer fetch is dropped.
func (s *Store) FetchProducts(ctx context.Context, q api.ListQuery) error {
	s.mu.Lock()
	s.productsSeq++
	token := s.productsSeq
	s.mu.Unlock()

	s.Dispatch(Action{Type: ProductsFetchPending})
	page, status, err := s.client.FetchProducts(ctx, q)

	s.mu.Lock()
	stale := token != s.productsSeq
	s.mu.Unlock()
	if stale {
		applog.Info(nil, "state.products.stale_drop", map[string]any{"status": status})
		return nil
	}

	if err != nil {
		s.Dispatch(Action{Type: ProductsFetchRejected, HTTPStatus: status, Err: err})
		return err
	}
	s.Dispatch(Action{
		Type:       ProductsFetchFulfilled,
		Payload:    ProductsFetched{Products: page.Products, Total: page.Total},
		HTTPStatus: status,
	})
	return nil
}

// AddProduct appends the server-confirmed record; the list is not refetched.
func (s *Store) AddProduct(ctx context.Context, title string, price float64) error {
	p, status, err := s.client.AddProduct(ctx, title, price)
	if err != nil {
		s.Dispatch(Action{Type: ProductAddRejected, HTTPStatus: status, Err: err})
		return err
	}
	s.Dispatch(Action{Type: ProductAddFulfilled, Payload: p, HTTPStatus: status})
	return nil
}

func (s *Store) UpdateProduct(ctx context.Context, id int, title string, price float64) error {
	p, status, err := s.client.UpdateProduct(ctx, id, title, price)
	if err != nil {
		s.Dispatch(Action{Type: ProductUpdateRejected, HTTPStatus: status, Err: err})
		return err
	}
	s.Dispatch(Action{Type: ProductUpdateFulfilled, Payload: p, HTTPStatus: status})
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int) error {
	status, err := s.client.DeleteProduct(ctx, id)
	if err != nil {
		s.Dispatch(Action{Type: ProductDeleteRejected, HTTPStatus: status, Err: err})
		return err
	}
	s.Dispatch(Action{Type: ProductDeleteFulfilled, Payload: ProductDeleted{ID: id}, HTTPStatus: status})
	return nil
}
