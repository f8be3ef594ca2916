package service

import (
	"context"
	goerrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

func newUserService(t *testing.T) (UserService, *fixture) {
	t.Helper()
	f := newFixture(t)
	return NewUserService(repository.NewUserRepository(f.store), NewCardValidator()), f
}

func defaults(addresses []model.Address) int {
	n := 0
	for _, a := range addresses {
		if a.IsDefault {
			n++
		}
	}
	return n
}

func TestUserService_AddAddress_SingleDefault(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(t)

	u, err := svc.AddAddress(ctx, "2", AddressInput{Street: "1 Side St", City: "Salem", IsDefault: true})
	require.NoError(t, err)

	require.Len(t, u.Addresses, 2)
	assert.Equal(t, 1, defaults(u.Addresses))
	assert.False(t, u.Addresses[0].IsDefault)
	added := u.Addresses[1]
	assert.True(t, added.IsDefault)
	assert.Equal(t, "Home", added.Label)
	assert.Contains(t, added.ID, "addr-")

	u, err = svc.AddAddress(ctx, "2", AddressInput{Label: "Work", Street: "9 Main"})
	require.NoError(t, err)
	assert.Equal(t, 1, defaults(u.Addresses))
	assert.True(t, u.Addresses[1].IsDefault)
}

func TestUserService_RemoveAddress(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(t)

	u, err := svc.RemoveAddress(ctx, "2", "a2")
	require.NoError(t, err)
	assert.Empty(t, u.Addresses)

	_, err = svc.RemoveAddress(ctx, "2", "a2")
	assert.ErrorIs(t, err, errors.ErrAddressNotFound)
}

func TestUserService_AddPaymentMethod(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		in        PaymentMethodInput
		wantBrand string
		wantLast4 string
		wantErr   error
	}{
		{name: "form defaults", in: PaymentMethodInput{}, wantBrand: "Visa", wantLast4: "0000"},
		{name: "explicit last4", in: PaymentMethodInput{Brand: "Amex", Last4: "1005", Expiry: "12/40"}, wantBrand: "Amex", wantLast4: "1005"},
		{name: "full number is reduced", in: PaymentMethodInput{CardNumber: "5555 5555 5555 4444"}, wantBrand: "Mastercard", wantLast4: "4444"},
		{name: "bad number", in: PaymentMethodInput{CardNumber: "1234 5678 9012 3456"}, wantErr: errors.ErrInvalidCard},
		{name: "bad last4", in: PaymentMethodInput{Last4: "12"}, wantErr: errors.ErrInvalidCard},
		{name: "expired", in: PaymentMethodInput{Last4: "1111", Expiry: "01/20"}, wantErr: errors.ErrInvalidCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newUserService(t)

			u, err := svc.AddPaymentMethod(ctx, "2", tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, u.PaymentMethods, 2)
			pm := u.PaymentMethods[1]
			assert.Equal(t, tt.wantBrand, pm.Brand)
			assert.Equal(t, tt.wantLast4, pm.Last4)
			assert.Equal(t, model.PaymentMethodTypeCard, pm.Type)
		})
	}
}

func TestUserService_AddPaymentMethod_DefaultMovesFlag(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(t)

	u, err := svc.AddPaymentMethod(ctx, "2", PaymentMethodInput{Last4: "1234", IsDefault: true})
	require.NoError(t, err)

	assert.False(t, u.PaymentMethods[0].IsDefault)
	assert.True(t, u.PaymentMethods[1].IsDefault)
	def, _ := u.DefaultPaymentMethod()
	assert.Equal(t, "1234", def.Last4)

	u, err = svc.RemovePaymentMethod(ctx, "2", def.ID)
	require.NoError(t, err)
	assert.Len(t, u.PaymentMethods, 1)
	_, err = svc.RemovePaymentMethod(ctx, "2", "pm-missing")
	assert.ErrorIs(t, err, errors.ErrPaymentMethodNotFound)
}

func TestUserService_UpdateProfileAndPassword(t *testing.T) {
	ctx := context.Background()
	svc, f := newUserService(t)

	u, err := svc.UpdateProfile(ctx, "2", "Johnny")
	require.NoError(t, err)
	assert.Equal(t, "Johnny", u.Name)

	assert.ErrorIs(t, svc.ChangePassword(ctx, "2", "wrong", "next"), errors.ErrInvalidPassword)
	require.NoError(t, svc.ChangePassword(ctx, "2", "password123", "next"))
	_, ok := f.store.FindUserByCredentials("john@example.com", "next")
	assert.True(t, ok)

	_, err = svc.UpdateProfile(ctx, "missing", "x")
	assert.ErrorIs(t, err, errors.ErrUserNotFound)
}

func TestUserService_PropagatesStoreFailures(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("FindByID", ctx, "2").Return(&model.User{ID: "2", Name: "John"}, nil)
	repo.On("Update", ctx, "2", mock.AnythingOfType("model.UserPatch")).Return(goerrors.New("disk full"))

	_, err := NewUserService(repo, NewCardValidator()).UpdateProfile(ctx, "2", "Johnny")

	assert.EqualError(t, err, "disk full")
	repo.AssertExpectations(t)
}
