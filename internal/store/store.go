// Package store holds the canonical storefront data: users, categories,
// products and orders.
//
// The whole dataset lives in memory and is written back to the substrate as a
// single JSON object after every mutation. Accessors hand out deep copies, so
// callers never alias store state. Lookups that miss inside a mutator are
// silent no-ops; the only error a mutator returns is a substrate failure.
//
// The store assumes it is the only writer of its key. Two processes sharing a
// key follow last-writer-wins.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"

	"storefront/internal/model"
	"storefront/internal/substrate"
)

// DefaultKey is the substrate key the dataset is stored under.
const DefaultKey = "lumina_shop_db_v7"

// AllCategories selects every category in ListActiveProducts.
const AllCategories = "All"

// Store is the domain store. Construct it with Open.
type Store struct {
	mu    sync.RWMutex
	sub   substrate.Substrate
	key   string
	state model.State
}

// Open loads the dataset stored under key, seeding it when the key is absent
// or holds something unparsable, and writes the result back immediately.
func Open(ctx context.Context, sub substrate.Substrate, key string) (*Store, error) {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{sub: sub, key: key}

	raw, err := sub.Get(ctx, key)
	switch {
	case errors.Is(err, substrate.ErrNotFound):
		s.state = InitialState()
	case err != nil:
		return nil, fmt.Errorf("load %s: %w", key, err)
	default:
		var loaded model.State
		if err := json.Unmarshal(raw, &loaded); err != nil {
			slog.Warn("Stored dataset is unreadable, reseeding", "key", key, "err", err)
			s.state = InitialState()
		} else {
			s.state = normalize(loaded)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Key returns the substrate key the store writes to.
func (s *Store) Key() string { return s.key }

func normalize(st model.State) model.State {
	if st.Users == nil {
		st.Users = []model.User{}
	}
	if st.Categories == nil {
		st.Categories = []string{}
	}
	if st.Products == nil {
		st.Products = []model.Product{}
	}
	if st.Orders == nil {
		st.Orders = []model.Order{}
	}
	return st
}

// persist writes the full state. Callers hold the write lock.
func (s *Store) persist(ctx context.Context) error {
	payload, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := s.sub.Set(ctx, s.key, payload); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// mutate applies fn and persists. Mutators build new slices rather than
// editing in place, so a failed write can restore the previous state.
func (s *Store) mutate(ctx context.Context, fn func(st *model.State) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.state
	if !fn(&s.state) {
		return nil
	}
	if err := s.persist(ctx); err != nil {
		s.state = prev
		return err
	}
	return nil
}

// Export returns a deep copy of the whole dataset.
func (s *Store) Export() model.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Reset discards the dataset and reseeds it.
func (s *Store) Reset(ctx context.Context) error {
	return s.mutate(ctx, func(st *model.State) bool {
		*st = InitialState()
		return true
	})
}

// --- Users ---

// ListUsers returns every user.
func (s *Store) ListUsers() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, 0, len(s.state.Users))
	for _, u := range s.state.Users {
		out = append(out, u.Clone())
	}
	return out
}

// FindUser returns the user with the given id.
func (s *Store) FindUser(id string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.state.Users {
		if u.ID == id {
			return u.Clone(), true
		}
	}
	return model.User{}, false
}

// FindUserByCredentials returns the first user whose email and password match exactly.
func (s *Store) FindUserByCredentials(email, password string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.state.Users {
		if u.Email == email && u.Password == password {
			return u.Clone(), true
		}
	}
	return model.User{}, false
}

// AddUser appends a user. Addresses and payment methods always start empty.
func (s *Store) AddUser(ctx context.Context, user model.User) error {
	user.Addresses = []model.Address{}
	user.PaymentMethods = []model.PaymentMethod{}
	return s.mutate(ctx, func(st *model.State) bool {
		st.Users = append(st.Users, user)
		return true
	})
}

// UpdateUser merges patch onto the user with the given id.
func (s *Store) UpdateUser(ctx context.Context, id string, patch model.UserPatch) error {
	return s.mutate(ctx, func(st *model.State) bool {
		users := make([]model.User, 0, len(st.Users))
		for _, u := range st.Users {
			if u.ID == id {
				u = patch.Apply(u.Clone())
			}
			users = append(users, u)
		}
		st.Users = users
		return true
	})
}

// UpdateUserPassword replaces the stored password of a user.
func (s *Store) UpdateUserPassword(ctx context.Context, id, password string) error {
	return s.UpdateUser(ctx, id, model.UserPatch{Password: &password})
}

// --- Products ---

// ListProducts returns every product, hidden ones included.
func (s *Store) ListProducts() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.state.Products, func(model.Product) bool { return true })
}

// ListActiveProducts returns the visible products of a category.
// An empty category or AllCategories selects every category.
func (s *Store) ListActiveProducts(category string) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.state.Products, func(p model.Product) bool {
		if !p.IsActive {
			return false
		}
		return category == "" || category == AllCategories || p.Category == category
	})
}

func cloneProducts(products []model.Product, keep func(model.Product) bool) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// FindProduct returns the product with the given id.
func (s *Store) FindProduct(id string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.state.Products {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return model.Product{}, false
}

// AddProduct appends a product.
func (s *Store) AddProduct(ctx context.Context, product model.Product) error {
	product = product.Clone()
	return s.mutate(ctx, func(st *model.State) bool {
		st.Products = append(st.Products, product)
		return true
	})
}

// UpdateProduct merges patch onto the product with the given id.
func (s *Store) UpdateProduct(ctx context.Context, id string, patch model.ProductPatch) error {
	return s.mutate(ctx, func(st *model.State) bool {
		st.Products = mapProducts(st.Products, func(p model.Product) model.Product {
			if p.ID == id {
				return patch.Apply(p.Clone())
			}
			return p
		})
		return true
	})
}

// DeleteProduct removes a product. Orders keep their own copies of product data.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *model.State) bool {
		products := make([]model.Product, 0, len(st.Products))
		for _, p := range st.Products {
			if p.ID != id {
				products = append(products, p)
			}
		}
		st.Products = products
		return true
	})
}

func mapProducts(products []model.Product, fn func(model.Product) model.Product) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		out = append(out, fn(p))
	}
	return out
}

// --- Categories ---

// ListCategories returns the category names in insertion order.
func (s *Store) ListCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.state.Categories...)
}

// AddCategory appends a category unless the exact name is already present.
func (s *Store) AddCategory(ctx context.Context, name string) error {
	return s.mutate(ctx, func(st *model.State) bool {
		for _, c := range st.Categories {
			if c == name {
				return false
			}
		}
		st.Categories = append(st.Categories, name)
		return true
	})
}

// RenameCategory renames a category and moves its products along. Renaming
// onto a name already in the list merges the two entries.
func (s *Store) RenameCategory(ctx context.Context, oldName, newName string) error {
	return s.mutate(ctx, func(st *model.State) bool {
		merge := oldName != newName && slices.Contains(st.Categories, newName)
		categories := make([]string, 0, len(st.Categories))
		for _, c := range st.Categories {
			if c == oldName {
				if merge {
					continue
				}
				c = newName
			}
			categories = append(categories, c)
		}
		st.Categories = categories
		st.Products = mapProducts(st.Products, func(p model.Product) model.Product {
			if p.Category == oldName {
				p = p.Clone()
				p.Category = newName
			}
			return p
		})
		return true
	})
}

// DeleteCategory removes a category; its products move to UncategorizedCategory.
func (s *Store) DeleteCategory(ctx context.Context, name string) error {
	return s.mutate(ctx, func(st *model.State) bool {
		categories := make([]string, 0, len(st.Categories))
		for _, c := range st.Categories {
			if c != name {
				categories = append(categories, c)
			}
		}
		st.Categories = categories
		st.Products = mapProducts(st.Products, func(p model.Product) model.Product {
			if p.Category == name {
				p = p.Clone()
				p.Category = model.UncategorizedCategory
			}
			return p
		})
		return true
	})
}

// --- Orders ---

// ListOrders returns every order in insertion order.
func (s *Store) ListOrders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrders(s.state.Orders, func(model.Order) bool { return true })
}

// ListOrdersNewestFirst returns every order sorted by creation time, newest first.
func (s *Store) ListOrdersNewestFirst() []model.Order {
	orders := s.ListOrders()
	sortNewestFirst(orders)
	return orders
}

// ListOrdersByUser returns a user's orders, newest first.
func (s *Store) ListOrdersByUser(userID string) []model.Order {
	s.mu.RLock()
	orders := cloneOrders(s.state.Orders, func(o model.Order) bool { return o.UserID == userID })
	s.mu.RUnlock()
	sortNewestFirst(orders)
	return orders
}

func cloneOrders(orders []model.Order, keep func(model.Order) bool) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if keep(o) {
			out = append(out, o.Clone())
		}
	}
	return out
}

// sortNewestFirst orders by the ISO-8601 creation stamp, which sorts lexically.
func sortNewestFirst(orders []model.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt > orders[j].CreatedAt
	})
}

// FindOrder returns the order with the given id.
func (s *Store) FindOrder(id string) (model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.state.Orders {
		if o.ID == id {
			return o.Clone(), true
		}
	}
	return model.Order{}, false
}

// AddOrder appends an order. Referenced ids are not checked.
func (s *Store) AddOrder(ctx context.Context, order model.Order) error {
	order = order.Clone()
	return s.mutate(ctx, func(st *model.State) bool {
		st.Orders = append(st.Orders, order)
		return true
	})
}

// UpdateOrderStatus overwrites the status of one order. Any status string is accepted.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	return s.mutate(ctx, func(st *model.State) bool {
		orders := make([]model.Order, 0, len(st.Orders))
		for _, o := range st.Orders {
			if o.ID == id {
				o = o.Clone()
				o.Status = status
			}
			orders = append(orders, o)
		}
		st.Orders = orders
		return true
	})
}
