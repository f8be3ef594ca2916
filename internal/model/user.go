package model

// Role is the access level of a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents a shopper or administrator.
// Password is kept in plain text; the store compares it verbatim.
type User struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           Role            `json:"role"`
	Password       string          `json:"password"`
	Addresses      []Address       `json:"addresses"`
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
}

// IsAdmin reports whether the user may use admin operations.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Clone returns a deep copy of the user.
func (u User) Clone() User {
	out := u
	out.Addresses = append([]Address{}, u.Addresses...)
	out.PaymentMethods = append([]PaymentMethod{}, u.PaymentMethods...)
	return out
}

// DefaultAddress returns the default address, else the first one.
func (u User) DefaultAddress() (Address, bool) {
	for _, a := range u.Addresses {
		if a.IsDefault {
			return a, true
		}
	}
	if len(u.Addresses) > 0 {
		return u.Addresses[0], true
	}
	return Address{}, false
}

// DefaultPaymentMethod returns the default payment method, else the first one.
func (u User) DefaultPaymentMethod() (PaymentMethod, bool) {
	for _, pm := range u.PaymentMethods {
		if pm.IsDefault {
			return pm, true
		}
	}
	if len(u.PaymentMethods) > 0 {
		return u.PaymentMethods[0], true
	}
	return PaymentMethod{}, false
}

// FindAddress looks up one of the user's addresses by id.
func (u User) FindAddress(id string) (Address, bool) {
	for _, a := range u.Addresses {
		if a.ID == id {
			return a, true
		}
	}
	return Address{}, false
}

// FindPaymentMethod looks up one of the user's payment methods by id.
func (u User) FindPaymentMethod(id string) (PaymentMethod, bool) {
	for _, pm := range u.PaymentMethods {
		if pm.ID == id {
			return pm, true
		}
	}
	return PaymentMethod{}, false
}

// UserPatch carries the fields of a shallow user update. Nil fields are left untouched.
type UserPatch struct {
	Name           *string          `json:"name,omitempty"`
	Email          *string          `json:"email,omitempty"`
	Role           *Role            `json:"role,omitempty"`
	Password       *string          `json:"password,omitempty"`
	Addresses      *[]Address       `json:"addresses,omitempty"`
	PaymentMethods *[]PaymentMethod `json:"paymentMethods,omitempty"`
}

// Apply merges the patch onto u.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Addresses != nil {
		u.Addresses = append([]Address{}, (*p.Addresses)...)
	}
	if p.PaymentMethods != nil {
		u.PaymentMethods = append([]PaymentMethod{}, (*p.PaymentMethods)...)
	}
	return u
}

// Address is a shipping address owned by a user.
type Address struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	IsDefault bool   `json:"isDefault"`
}
