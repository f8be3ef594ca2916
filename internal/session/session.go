// Package session tracks the signed-in user and the shopping cart of one
// client session. Both are persisted under their own substrate keys, apart
// from the domain store's dataset.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/model"
	"storefront/internal/substrate"
)

// Users is the part of the domain store a session reads and writes.
type Users interface {
	FindUser(id string) (model.User, bool)
	FindUserByCredentials(email, password string) (model.User, bool)
	AddUser(ctx context.Context, user model.User) error
}

// Session is the state of one client. It is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	id      string
	sub     substrate.Substrate
	users   Users
	userKey string
	cartKey string
	user    *model.User
	// userRaw is the persisted form of user.
	userRaw []byte
	cart    []model.CartLine
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// CurrentUser returns a copy of the signed-in user.
func (s *Session) CurrentUser() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return model.User{}, false
	}
	return s.user.Clone(), true
}

// Login signs in the first user whose email and password match exactly.
func (s *Session) Login(ctx context.Context, email, password string) (bool, error) {
	user, ok := s.users.FindUserByCredentials(email, password)
	if !ok {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.setUser(ctx, &user); err != nil {
		return false, err
	}
	return true, nil
}

// Logout forgets the signed-in user. The cart is kept.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setUser(ctx, nil)
}

// Register creates a user with role user and signs it in. Emails are not
// checked for uniqueness.
func (s *Session) Register(ctx context.Context, name, email, password string) (model.User, error) {
	user := model.User{
		ID:             uuid.NewString(),
		Name:           name,
		Email:          email,
		Role:           model.RoleUser,
		Password:       password,
		Addresses:      []model.Address{},
		PaymentMethods: []model.PaymentMethod{},
	}
	if err := s.users.AddUser(ctx, user); err != nil {
		return model.User{}, fmt.Errorf("register: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.setUser(ctx, &user); err != nil {
		return model.User{}, err
	}
	return user.Clone(), nil
}

// RefreshUser replaces the cached user with its current record in the store.
// A user that no longer exists leaves the session anonymous.
func (s *Session) RefreshUser(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	fresh, ok := s.users.FindUser(s.user.ID)
	if !ok {
		return s.setUser(ctx, nil)
	}
	return s.setUser(ctx, &fresh)
}

// setUser stores or clears the signed-in user. An unchanged user is not
// written again. Callers hold mu.
func (s *Session) setUser(ctx context.Context, user *model.User) error {
	if user == nil {
		if err := s.sub.Delete(ctx, s.userKey); err != nil {
			return fmt.Errorf("clear session user: %w", err)
		}
		s.user = nil
		s.userRaw = nil
		return nil
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if s.user != nil && bytes.Equal(payload, s.userRaw) {
		return nil
	}
	if err := s.sub.Set(ctx, s.userKey, payload); err != nil {
		return fmt.Errorf("persist session user: %w", err)
	}
	u := user.Clone()
	s.user = &u
	s.userRaw = payload
	return nil
}

// Cart returns a copy of the cart lines.
func (s *Session) Cart() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCart(s.cart)
}

// Total is the sum of price times quantity over the cart. It is computed on
// every call and never stored.
func (s *Session) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Total(s.cart)
}

// Total sums price times quantity over lines.
func Total(lines []model.CartLine) float64 {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum.InexactFloat64()
}

// AddToCart adds one unit of product, merging into an existing line for the same id.
func (s *Session) AddToCart(ctx context.Context, product model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneCart(s.cart)
	for i := range next {
		if next[i].ID == product.ID {
			next[i].Quantity++
			return s.setCart(ctx, next)
		}
	}
	next = append(next, model.CartLine{Product: product.Clone(), Quantity: 1})
	return s.setCart(ctx, next)
}

// RemoveFromCart drops the line for productID.
func (s *Session) RemoveFromCart(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]model.CartLine, 0, len(s.cart))
	for _, l := range s.cart {
		if l.ID != productID {
			next = append(next, l.Clone())
		}
	}
	return s.setCart(ctx, next)
}

// UpdateQuantity sets the quantity of a line, never below one.
func (s *Session) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneCart(s.cart)
	for i := range next {
		if next[i].ID == productID {
			next[i].Quantity = quantity
		}
	}
	return s.setCart(ctx, next)
}

// ClearCart empties the cart.
func (s *Session) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCart(ctx, []model.CartLine{})
}

// TakeCart empties the cart and returns the lines it held.
func (s *Session) TakeCart(ctx context.Context) ([]model.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := cloneCart(s.cart)
	if len(lines) == 0 {
		return lines, nil
	}
	if err := s.setCart(ctx, []model.CartLine{}); err != nil {
		return nil, err
	}
	return lines, nil
}

// RestoreCart puts lines taken by TakeCart back, merging quantities into
// lines added since.
func (s *Session) RestoreCart(ctx context.Context, lines []model.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneCart(lines)
	for _, l := range s.cart {
		merged := false
		for i := range next {
			if next[i].ID == l.ID {
				next[i].Quantity += l.Quantity
				merged = true
				break
			}
		}
		if !merged {
			next = append(next, l.Clone())
		}
	}
	return s.setCart(ctx, next)
}

// setCart persists and installs lines. Callers hold mu.
func (s *Session) setCart(ctx context.Context, lines []model.CartLine) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.sub.Set(ctx, s.cartKey, payload); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	s.cart = lines
	return nil
}

// restore loads the persisted user and cart. A persisted user is re-read from
// the store and written back; unknown ids and unreadable entries leave the
// session anonymous and drop the entry.
func (s *Session) restore(ctx context.Context) error {
	raw, err := s.sub.Get(ctx, s.userKey)
	switch {
	case errors.Is(err, substrate.ErrNotFound):
	case err != nil:
		return fmt.Errorf("load session user: %w", err)
	default:
		var cached model.User
		if err := json.Unmarshal(raw, &cached); err != nil {
			slog.Warn("Discarding unreadable session user", "session", s.id, "err", err)
			if err := s.setUser(ctx, nil); err != nil {
				return err
			}
		} else if fresh, ok := s.users.FindUser(cached.ID); ok {
			if err := s.setUser(ctx, &fresh); err != nil {
				return err
			}
		} else {
			slog.Info("Session user no longer exists", "session", s.id, "user", cached.ID)
			if err := s.setUser(ctx, nil); err != nil {
				return err
			}
		}
	}

	raw, err = s.sub.Get(ctx, s.cartKey)
	switch {
	case errors.Is(err, substrate.ErrNotFound):
	case err != nil:
		return fmt.Errorf("load cart: %w", err)
	default:
		var lines []model.CartLine
		if err := json.Unmarshal(raw, &lines); err != nil {
			slog.Warn("Discarding unreadable cart", "session", s.id, "err", err)
		} else {
			s.cart = lines
		}
	}
	if s.cart == nil {
		s.cart = []model.CartLine{}
	}
	return nil
}

func cloneCart(lines []model.CartLine) []model.CartLine {
	out := make([]model.CartLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Clone())
	}
	return out
}
