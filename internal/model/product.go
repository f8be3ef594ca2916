package model

// UncategorizedCategory is assigned to products whose category was deleted.
// It is a display convention and is not added to the category list.
const UncategorizedCategory = "Uncategorized"

// Product represents a catalog item.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	IsActive    bool     `json:"isActive"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Material    string   `json:"material"`
	Color       string   `json:"color"`
	Finish      string   `json:"finish"`
}

// Clone returns a deep copy of the product.
func (p Product) Clone() Product {
	out := p
	out.Images = append([]string{}, p.Images...)
	return out
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// ProductPatch carries the fields of a shallow product update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string   `json:"name,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Stock       *int      `json:"stock,omitempty"`
	IsActive    *bool     `json:"isActive,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Material    *string   `json:"material,omitempty"`
	Color       *string   `json:"color,omitempty"`
	Finish      *string   `json:"finish,omitempty"`
}

// Apply merges the patch onto p.
func (patch ProductPatch) Apply(p Product) Product {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Images != nil {
		p.Images = append([]string{}, (*patch.Images)...)
	}
	if patch.Material != nil {
		p.Material = *patch.Material
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}
	if patch.Finish != nil {
		p.Finish = *patch.Finish
	}
	return p
}

// PatchFromProduct builds a patch that overwrites every field of a product except its id.
func PatchFromProduct(p Product) ProductPatch {
	images := append([]string{}, p.Images...)
	return ProductPatch{
		Name:        &p.Name,
		Price:       &p.Price,
		Description: &p.Description,
		Category:    &p.Category,
		Stock:       &p.Stock,
		IsActive:    &p.IsActive,
		Image:       &p.Image,
		Images:      &images,
		Material:    &p.Material,
		Color:       &p.Color,
		Finish:      &p.Finish,
	}
}
