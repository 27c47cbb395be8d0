package state

import "vitrin/internal/domain"

// CartState is local-only: no network calls, nothing persisted.
type CartState struct {
	Items []domain.CartItem
}

func (s *CartState) reduce(a Action) {
	switch a.Type {
	case CartAdd:
		p := a.Payload.(domain.Product)
		for i := range s.Items {
			if s.Items[i].ID == p.ID {
				s.Items[i].Quantity++
				return
			}
		}
		s.Items = append(s.Items, domain.CartItem{Product: p, Quantity: 1})
	case CartRemove:
		id := a.Payload.(int)
		for i := range s.Items {
			if s.Items[i].ID == id {
				if s.Items[i].Quantity > 1 {
					s.Items[i].Quantity--
				} else {
					s.Items = append(s.Items[:i], s.Items[i+1:]...)
				}
				return
			}
		}
	case CartDelete:
		id := a.Payload.(int)
		for i := range s.Items {
			if s.Items[i].ID == id {
				s.Items = append(s.Items[:i], s.Items[i+1:]...)
				return
			}
		}
	}
}

func (s CartState) clone() CartState {
	items := make([]domain.CartItem, len(s.Items))
	copy(items, s.Items)
	return CartState{Items: items}
}

// TotalPrice is computed on demand, never stored.
func (s CartState) TotalPrice() float64 {
	var total float64
	for _, it := range s.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// AddToCart inserts with quantity 1 or increments an existing entry.
func (s *Store) AddToCart(p domain.Product) {
	s.Dispatch(Action{Type: CartAdd, Payload: p})
}

// RemoveFromCart decrements, removing the entry at quantity 1.
func (s *Store) RemoveFromCart(id int) {
	s.Dispatch(Action{Type: CartRemove, Payload: id})
}

// DeleteFromCart removes the entry regardless of quantity.
func (s *Store) DeleteFromCart(id int) {
	s.Dispatch(Action{Type: CartDelete, Payload: id})
}
