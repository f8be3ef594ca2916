package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
	"storefront/internal/substrate"
)

// flakySubstrate fails writes while failSet is true.
type flakySubstrate struct {
	*substrate.Memory
	failSet bool
}

func (f *flakySubstrate) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.Memory.Set(ctx, key, value)
}

func openStore(t *testing.T) (*Store, *substrate.Memory) {
	t.Helper()
	mem := substrate.NewMemory()
	s, err := Open(context.Background(), mem, DefaultKey)
	require.NoError(t, err)
	return s, mem
}

func storedState(t *testing.T, mem *substrate.Memory) model.State {
	t.Helper()
	raw, err := mem.Get(context.Background(), DefaultKey)
	require.NoError(t, err)
	var st model.State
	require.NoError(t, json.Unmarshal(raw, &st))
	return st
}

func TestOpen_SeedsMissingKeyAndPersists(t *testing.T) {
	s, mem := openStore(t)

	assert.Equal(t, DefaultCategories, s.ListCategories())
	assert.Empty(t, s.ListOrders())
	users := s.ListUsers()
	require.Len(t, users, 2)
	assert.Equal(t, "admin@lumina.com", users[0].Email)
	assert.Equal(t, model.RoleAdmin, users[0].Role)

	st := storedState(t, mem)
	assert.Len(t, st.Products, len(s.ListProducts()))
	assert.NotNil(t, st.Orders)
}

func TestOpen_CorruptBlobIsReseeded(t *testing.T) {
	mem := substrate.NewMemory()
	require.NoError(t, mem.Set(context.Background(), DefaultKey, []byte("{not json")))

	s, err := Open(context.Background(), mem, DefaultKey)
	require.NoError(t, err)

	assert.Equal(t, DefaultCategories, s.ListCategories())
	st := storedState(t, mem)
	assert.Equal(t, DefaultCategories, st.Categories)
}

func TestOpen_LoadsExistingState(t *testing.T) {
	mem := substrate.NewMemory()
	require.NoError(t, mem.Set(context.Background(), DefaultKey, []byte(`{"users":[],"categories":["Lamps"],"products":[]}`)))

	s, err := Open(context.Background(), mem, DefaultKey)
	require.NoError(t, err)

	assert.Equal(t, []string{"Lamps"}, s.ListCategories())
	assert.NotNil(t, s.ListOrders())
	assert.Empty(t, s.ListUsers())
}

func TestOpen_FailsWhenSeedCannotBePersisted(t *testing.T) {
	flaky := &flakySubstrate{Memory: substrate.NewMemory(), failSet: true}
	_, err := Open(context.Background(), flaky, DefaultKey)
	assert.Error(t, err)
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	s, mem := openStore(t)

	require.NoError(t, s.AddCategory(ctx, "Lamps"))
	require.NoError(t, s.AddOrder(ctx, model.Order{ID: "ORD-1", UserID: "2", Status: model.OrderStatusPending}))

	reopened, err := Open(ctx, mem, DefaultKey)
	require.NoError(t, err)
	assert.Contains(t, reopened.ListCategories(), "Lamps")
	order, ok := reopened.FindOrder("ORD-1")
	require.True(t, ok)
	assert.Equal(t, model.OrderStatusPending, order.Status)
}

func TestAddCategory_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)

	require.NoError(t, s.AddCategory(ctx, "Lamps"))
	require.NoError(t, s.AddCategory(ctx, "Lamps"))
	require.NoError(t, s.AddCategory(ctx, "lamps"))

	count := 0
	for _, c := range s.ListCategories() {
		if c == "Lamps" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Contains(t, s.ListCategories(), "lamps")
}

func TestRenameCategory_MovesProducts(t *testing.T) {
	ctx := context.Background()
	s, mem := openStore(t)

	require.NoError(t, s.RenameCategory(ctx, "Bags", "Luggage"))

	cats := s.ListCategories()
	assert.NotContains(t, cats, "Bags")
	assert.Equal(t, "Luggage", cats[3])
	for _, p := range s.ListProducts() {
		assert.NotEqual(t, "Bags", p.Category)
	}
	assert.NotEmpty(t, s.ListActiveProducts("Luggage"))
	assert.Contains(t, storedState(t, mem).Categories, "Luggage")
}

func TestRenameCategory_OntoExistingNameMerges(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)
	books := s.ListActiveProducts("Books")
	require.NotEmpty(t, books)

	require.NoError(t, s.RenameCategory(ctx, "Books", "Bags"))

	count := 0
	for _, c := range s.ListCategories() {
		if c == "Bags" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.NotContains(t, s.ListCategories(), "Books")
	moved, ok := s.FindProduct(books[0].ID)
	require.True(t, ok)
	assert.Equal(t, "Bags", moved.Category)
}

func TestDeleteCategory_ReassignsProducts(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)
	bags := s.ListActiveProducts("Bags")
	require.NotEmpty(t, bags)

	require.NoError(t, s.DeleteCategory(ctx, "Bags"))

	assert.NotContains(t, s.ListCategories(), "Bags")
	assert.NotContains(t, s.ListCategories(), model.UncategorizedCategory)
	moved, ok := s.FindProduct(bags[0].ID)
	require.True(t, ok)
	assert.Equal(t, model.UncategorizedCategory, moved.Category)
}

func TestAddUser_StartsWithEmptyLists(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)

	require.NoError(t, s.AddUser(ctx, model.User{
		ID:        "u-9",
		Name:      "Ann",
		Email:     "ann@example.com",
		Role:      model.RoleUser,
		Password:  "pw",
		Addresses: []model.Address{{ID: "x"}},
	}))

	u, ok := s.FindUser("u-9")
	require.True(t, ok)
	assert.Empty(t, u.Addresses)
	assert.NotNil(t, u.Addresses)
	assert.Empty(t, u.PaymentMethods)

	found, ok := s.FindUserByCredentials("ann@example.com", "pw")
	require.True(t, ok)
	assert.Equal(t, "u-9", found.ID)
	_, ok = s.FindUserByCredentials("ann@example.com", "PW")
	assert.False(t, ok)
}

func TestUpdateUser_MergesPatch(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)
	name := "Johnny"

	require.NoError(t, s.UpdateUser(ctx, "2", model.UserPatch{Name: &name}))
	require.NoError(t, s.UpdateUserPassword(ctx, "2", "secret"))
	require.NoError(t, s.UpdateUser(ctx, "missing", model.UserPatch{Name: &name}))

	u, _ := s.FindUser("2")
	assert.Equal(t, "Johnny", u.Name)
	assert.Equal(t, "john@example.com", u.Email)
	assert.Equal(t, "secret", u.Password)
	assert.Len(t, u.Addresses, 1)
}

func TestProducts_CRUD(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)
	before := len(s.ListProducts())

	require.NoError(t, s.AddProduct(ctx, model.Product{ID: "p-x", Name: "Lamp", Price: 10, Category: "Lamps", IsActive: false}))
	assert.Len(t, s.ListProducts(), before+1)
	assert.Empty(t, s.ListActiveProducts("Lamps"))

	active := true
	require.NoError(t, s.UpdateProduct(ctx, "p-x", model.ProductPatch{IsActive: &active}))
	assert.Len(t, s.ListActiveProducts("Lamps"), 1)

	require.NoError(t, s.DeleteProduct(ctx, "p-x"))
	_, ok := s.FindProduct("p-x")
	assert.False(t, ok)
	assert.Len(t, s.ListProducts(), before)
}

func TestListActiveProducts_AllSelectsEverything(t *testing.T) {
	s, _ := openStore(t)
	assert.Equal(t, s.ListActiveProducts(""), s.ListActiveProducts(AllCategories))
	assert.Len(t, s.ListActiveProducts(AllCategories), len(s.ListProducts()))
}

func TestUpdateOrderStatus_TouchesOnlyTarget(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)
	require.NoError(t, s.AddOrder(ctx, model.Order{ID: "ORD-1", Status: model.OrderStatusPending, CreatedAt: "2026-01-01T10:00:00.000Z"}))
	require.NoError(t, s.AddOrder(ctx, model.Order{ID: "ORD-2", Status: model.OrderStatusPending, CreatedAt: "2026-01-02T10:00:00.000Z"}))

	require.NoError(t, s.UpdateOrderStatus(ctx, "ORD-2", model.OrderStatusShipped))

	o1, _ := s.FindOrder("ORD-1")
	o2, _ := s.FindOrder("ORD-2")
	assert.Equal(t, model.OrderStatusPending, o1.Status)
	assert.Equal(t, model.OrderStatusShipped, o2.Status)

	newest := s.ListOrdersNewestFirst()
	assert.Equal(t, "ORD-2", newest[0].ID)
	assert.Equal(t, "ORD-1", s.ListOrders()[0].ID)
}

func TestListOrdersByUser(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)
	require.NoError(t, s.AddOrder(ctx, model.Order{ID: "a", UserID: "2", CreatedAt: "2026-01-01T00:00:00.000Z"}))
	require.NoError(t, s.AddOrder(ctx, model.Order{ID: "b", UserID: "1", CreatedAt: "2026-01-02T00:00:00.000Z"}))
	require.NoError(t, s.AddOrder(ctx, model.Order{ID: "c", UserID: "2", CreatedAt: "2026-01-03T00:00:00.000Z"}))

	orders := s.ListOrdersByUser("2")
	require.Len(t, orders, 2)
	assert.Equal(t, "c", orders[0].ID)
	assert.Equal(t, "a", orders[1].ID)
}

func TestAccessors_ReturnCopies(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)
	require.NoError(t, s.AddOrder(ctx, model.Order{ID: "ORD-1", Items: []model.OrderItem{{ProductID: "p1", Quantity: 2}}}))

	users := s.ListUsers()
	users[0].Name = "mutated"
	users[0].Addresses[0].City = "Nowhere"
	products := s.ListProducts()
	products[0].Images[0] = "mutated"
	cats := s.ListCategories()
	cats[0] = "mutated"
	orders := s.ListOrders()
	orders[0].Items[0].Quantity = 99

	assert.NotEqual(t, "mutated", s.ListUsers()[0].Name)
	assert.NotEqual(t, "Nowhere", s.ListUsers()[0].Addresses[0].City)
	assert.NotEqual(t, "mutated", s.ListProducts()[0].Images[0])
	assert.NotEqual(t, "mutated", s.ListCategories()[0])
	assert.Equal(t, 2, s.ListOrders()[0].Items[0].Quantity)
}

func TestMutators_RollBackWhenPersistFails(t *testing.T) {
	ctx := context.Background()
	flaky := &flakySubstrate{Memory: substrate.NewMemory()}
	s, err := Open(ctx, flaky, DefaultKey)
	require.NoError(t, err)

	flaky.failSet = true
	assert.Error(t, s.AddCategory(ctx, "Lamps"))
	assert.Error(t, s.DeleteCategory(ctx, "Bags"))
	assert.Error(t, s.Reset(ctx))

	assert.NotContains(t, s.ListCategories(), "Lamps")
	assert.Contains(t, s.ListCategories(), "Bags")
}

func TestReset_RestoresSeed(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)
	require.NoError(t, s.DeleteCategory(ctx, "Books"))
	require.NoError(t, s.AddOrder(ctx, model.Order{ID: "ORD-1"}))

	require.NoError(t, s.Reset(ctx))

	assert.Equal(t, DefaultCategories, s.ListCategories())
	assert.Empty(t, s.ListOrders())
	assert.Equal(t, len(InitialState().Products), len(s.Export().Products))
}
