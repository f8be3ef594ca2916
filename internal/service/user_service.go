package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// Form defaults for new addresses and payment methods.
const (
	defaultAddressLabel = "Home"
	defaultCardBrand    = "Visa"
	defaultCardLast4    = "0000"
	defaultCardExpiry   = "01/99"
)

// AddressInput carries a new shipping address.
type AddressInput struct {
	Label     string
	Street    string
	City      string
	State     string
	Zip       string
	IsDefault bool
}

// PaymentMethodInput carries a new card. CardNumber, when set, takes
// precedence over Last4 and is discarded after validation.
type PaymentMethodInput struct {
	Brand      string
	Last4      string
	CardNumber string
	Expiry     string
	IsDefault  bool
}

// UserService exposes account and profile operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id, name string) (*model.User, error)
	ChangePassword(ctx context.Context, id, current, next string) error
	AddAddress(ctx context.Context, id string, in AddressInput) (*model.User, error)
	RemoveAddress(ctx context.Context, id, addressID string) (*model.User, error)
	AddPaymentMethod(ctx context.Context, id string, in PaymentMethodInput) (*model.User, error)
	RemovePaymentMethod(ctx context.Context, id, paymentMethodID string) (*model.User, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *CardValidator
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository, validator *CardValidator) UserService {
	return &userService{repo: repo, validator: validator}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id, name string) (*model.User, error) {
	return s.update(ctx, id, func(*model.User) (model.UserPatch, error) {
		return model.UserPatch{Name: &name}, nil
	})
}

// ChangePassword replaces the password after checking the current one.
func (s *userService) ChangePassword(ctx context.Context, id, current, next string) error {
	_, err := s.update(ctx, id, func(u *model.User) (model.UserPatch, error) {
		if u.Password != current {
			return model.UserPatch{}, errors.ErrInvalidPassword
		}
		return model.UserPatch{Password: &next}, nil
	})
	return err
}

// AddAddress appends an address. A new default clears the flag on the others.
func (s *userService) AddAddress(ctx context.Context, id string, in AddressInput) (*model.User, error) {
	return s.update(ctx, id, func(u *model.User) (model.UserPatch, error) {
		addr := model.Address{
			ID:        "addr-" + uuid.NewString(),
			Label:     orDefault(in.Label, defaultAddressLabel),
			Street:    in.Street,
			City:      in.City,
			State:     in.State,
			Zip:       in.Zip,
			IsDefault: in.IsDefault,
		}
		addresses := make([]model.Address, 0, len(u.Addresses)+1)
		for _, a := range u.Addresses {
			if addr.IsDefault {
				a.IsDefault = false
			}
			addresses = append(addresses, a)
		}
		addresses = append(addresses, addr)
		return model.UserPatch{Addresses: &addresses}, nil
	})
}

func (s *userService) RemoveAddress(ctx context.Context, id, addressID string) (*model.User, error) {
	return s.update(ctx, id, func(u *model.User) (model.UserPatch, error) {
		if _, ok := u.FindAddress(addressID); !ok {
			return model.UserPatch{}, errors.ErrAddressNotFound
		}
		addresses := make([]model.Address, 0, len(u.Addresses))
		for _, a := range u.Addresses {
			if a.ID != addressID {
				addresses = append(addresses, a)
			}
		}
		return model.UserPatch{Addresses: &addresses}, nil
	})
}

// AddPaymentMethod validates and appends a card. A new default clears the flag on the others.
func (s *userService) AddPaymentMethod(ctx context.Context, id string, in PaymentMethodInput) (*model.User, error) {
	pm, err := s.buildPaymentMethod(in)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(u *model.User) (model.UserPatch, error) {
		methods := make([]model.PaymentMethod, 0, len(u.PaymentMethods)+1)
		for _, m := range u.PaymentMethods {
			if pm.IsDefault {
				m.IsDefault = false
			}
			methods = append(methods, m)
		}
		methods = append(methods, pm)
		return model.UserPatch{PaymentMethods: &methods}, nil
	})
}

func (s *userService) RemovePaymentMethod(ctx context.Context, id, paymentMethodID string) (*model.User, error) {
	return s.update(ctx, id, func(u *model.User) (model.UserPatch, error) {
		if _, ok := u.FindPaymentMethod(paymentMethodID); !ok {
			return model.UserPatch{}, errors.ErrPaymentMethodNotFound
		}
		methods := make([]model.PaymentMethod, 0, len(u.PaymentMethods))
		for _, m := range u.PaymentMethods {
			if m.ID != paymentMethodID {
				methods = append(methods, m)
			}
		}
		return model.UserPatch{PaymentMethods: &methods}, nil
	})
}

func (s *userService) buildPaymentMethod(in PaymentMethodInput) (model.PaymentMethod, error) {
	pm := model.PaymentMethod{
		ID:        "pm-" + uuid.NewString(),
		Type:      model.PaymentMethodTypeCard,
		Brand:     strings.TrimSpace(in.Brand),
		Last4:     orDefault(in.Last4, defaultCardLast4),
		Expiry:    orDefault(in.Expiry, defaultCardExpiry),
		IsDefault: in.IsDefault,
	}

	if in.CardNumber != "" {
		last4, err := s.validator.Last4FromNumber(in.CardNumber)
		if err != nil {
			return model.PaymentMethod{}, err
		}
		pm.Last4 = last4
		if pm.Brand == "" {
			pm.Brand = s.validator.DetectBrand(in.CardNumber)
		}
	} else if err := s.validator.ValidateLast4(pm.Last4); err != nil {
		return model.PaymentMethod{}, err
	}
	if in.Expiry != "" {
		if err := s.validator.ValidateExpiry(pm.Expiry); err != nil {
			return model.PaymentMethod{}, err
		}
	}
	pm.Brand = orDefault(pm.Brand, defaultCardBrand)
	return pm, nil
}

// update loads a user, derives a patch from it and returns the stored result.
func (s *userService) update(ctx context.Context, id string, patchFn func(*model.User) (model.UserPatch, error)) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch, err := patchFn(user)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
