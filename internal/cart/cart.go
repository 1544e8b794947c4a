// Package cart is the local shopping cart: an ordered list of line items
// mirrored to local storage after every mutation. It shares the
// state-synchronization pattern of the session store but owns no network
// access; checkout pushes its contents through the API client.
package cart

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Anbokor/megastation/internal/domain"
	"github.com/Anbokor/megastation/internal/localstore"
)

// Notifier receives user-facing feedback for cart mutations.
type Notifier func(message string)

// Item is one cart line. At most one item exists per product; quantity
// never drops below 1 while the item exists.
type Item struct {
	ProductID int          `json:"product_id"`
	Name      string       `json:"name"`
	Price     domain.Money `json:"price"`
	Quantity  int          `json:"quantity"`
}

// Store holds the cart state. Mutations run to completion and persist the
// whole collection before returning; last writer wins.
type Store struct {
	storage *localstore.Store
	logger  *slog.Logger
	notify  Notifier

	items []Item
}

// NewStore creates the cart store and loads persisted items. The persisted
// payload is untrusted: parse failures or invalid entries degrade to an
// empty or cleaned cart, never an error.
func NewStore(storage *localstore.Store, logger *slog.Logger) *Store {
	s := &Store{
		storage: storage,
		logger:  logger,
		notify:  func(string) {},
	}
	s.load()
	return s
}

// SetNotifier installs the user-feedback callback.
func (s *Store) SetNotifier(fn Notifier) {
	if fn != nil {
		s.notify = fn
	}
}

// Items returns the cart lines in insertion order. The returned slice is a
// copy; callers cannot corrupt store state through it.
func (s *Store) Items() []Item {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// Add puts a product in the cart, or bumps its quantity when it is already
// there.
func (s *Store) Add(product domain.Product) error {
	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity++
			if err := s.save(); err != nil {
				return err
			}
			s.notify(fmt.Sprintf("%s: quantity increased to %d", product.Name, s.items[i].Quantity))
			return nil
		}
	}

	s.items = append(s.items, Item{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  1,
	})
	if err := s.save(); err != nil {
		return err
	}
	s.notify(fmt.Sprintf("%s added to cart", product.Name))
	return nil
}

// IncreaseQuantity bumps the quantity of an existing line. Unknown ids are
// ignored.
func (s *Store) IncreaseQuantity(productID int) error {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity++
			return s.save()
		}
	}
	return nil
}

// DecreaseQuantity lowers the quantity of an existing line; at quantity 1
// the line is removed instead, it never reaches 0 while present.
func (s *Store) DecreaseQuantity(productID int) error {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			if s.items[i].Quantity > 1 {
				s.items[i].Quantity--
				return s.save()
			}
			return s.Remove(productID)
		}
	}
	return nil
}

// Remove deletes a line from the cart.
func (s *Store) Remove(productID int) error {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			name := s.items[i].Name
			s.items = append(s.items[:i], s.items[i+1:]...)
			if err := s.save(); err != nil {
				return err
			}
			s.notify(fmt.Sprintf("%s removed from cart", name))
			return nil
		}
	}
	return nil
}

// Clear empties the cart.
func (s *Store) Clear() error {
	s.items = nil
	if err := s.storage.Delete(localstore.KeyCart); err != nil {
		return err
	}
	return nil
}

// TotalItems is the sum of all quantities.
func (s *Store) TotalItems() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of price × quantity over all lines.
func (s *Store) TotalPrice() domain.Money {
	var total domain.Money
	for _, item := range s.items {
		total += item.Price * domain.Money(item.Quantity)
	}
	return total
}

// save persists the full collection.
func (s *Store) save() error {
	payload, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := s.storage.Set(localstore.KeyCart, payload); err != nil {
		return fmt.Errorf("persisting cart: %w", err)
	}
	return nil
}

// load hydrates the cart from local storage, dropping invalid entries.
func (s *Store) load() {
	raw, ok := s.storage.Get(localstore.KeyCart)
	if !ok {
		return
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Debug("discarding unparseable persisted cart", "error", err)
		_ = s.storage.Delete(localstore.KeyCart)
		return
	}

	seen := make(map[int]bool, len(items))
	cleaned := items[:0]
	for _, item := range items {
		if item.ProductID <= 0 || item.Quantity < 1 || seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true
		cleaned = append(cleaned, item)
	}

	s.items = cleaned
	if len(cleaned) != len(items) {
		s.logger.Debug("dropped invalid cart entries", "kept", len(cleaned), "loaded", len(items))
		if err := s.save(); err != nil {
			s.logger.Warn("could not rewrite cleaned cart", "error", err)
		}
	}
}
