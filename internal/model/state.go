package model

// State is the whole persisted dataset. It is written as one JSON object.
type State struct {
	Users      []User    `json:"users"`
	Categories []string  `json:"categories"`
	Products   []Product `json:"products"`
	Orders     []Order   `json:"orders"`
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{
		Users:      make([]User, 0, len(s.Users)),
		Categories: append([]string{}, s.Categories...),
		Products:   make([]Product, 0, len(s.Products)),
		Orders:     make([]Order, 0, len(s.Orders)),
	}
	for _, u := range s.Users {
		out.Users = append(out.Users, u.Clone())
	}
	for _, p := range s.Products {
		out.Products = append(out.Products, p.Clone())
	}
	for _, o := range s.Orders {
		out.Orders = append(out.Orders, o.Clone())
	}
	return out
}
