package store

import (
	"fmt"
	"strings"

	"storefront/internal/model"
)

// DefaultCategories is the category list of a freshly seeded store.
var DefaultCategories = []string{"Accessories", "Books", "Electronics", "Bags", "Clothes"}

type curatedItem struct {
	name         string
	material     string
	color        string
	finish       string
	keyword      string
	primaryImage string
	price        float64
}

var curatedCatalog = map[string][]curatedItem{
	"Accessories": {
		{
			name:         "Floral Diamond Studs",
			material:     "18K Yellow Gold & Diamonds",
			color:        "Gold/White",
			finish:       "Glossy",
			keyword:      "floral,earrings,gold",
			primaryImage: "https://images.unsplash.com/photo-1635767798638-3e25273a8236?auto=format&fit=crop&q=80&w=800&h=800",
			price:        850.00,
		},
		{name: "Chronograph Classic", material: "Brushed Steel", color: "Midnight Blue", finish: "Metallic", keyword: "watch,luxury", price: 1200.00},
	},
	"Books": {
		{name: "Modernist Architecture", material: "Hardcover Linen", color: "Stone Grey", finish: "Textured", keyword: "architecture,book", price: 85.00},
	},
	"Electronics": {
		{name: "Slate Pro Tablet", material: "Recycled Aluminum", color: "Obsidian", finish: "Matte", keyword: "tablet,tech", price: 999.00},
	},
	"Bags": {
		{name: "Heritage Weekender", material: "Full-Grain Leather", color: "Tobacco", finish: "Textured", keyword: "duffle,leather", price: 550.00},
	},
	"Clothes": {
		{name: "Pure Cashmere Sweater", material: "100% Mongolian Cashmere", color: "Oatmeal", finish: "Soft", keyword: "sweater,fashion", price: 295.00},
	},
}

// GenerateProducts builds the seed catalog for the given categories.
// The result depends only on the category list, so reseeding is reproducible.
func GenerateProducts(categories []string) []model.Product {
	products := make([]model.Product, 0)
	for _, cat := range categories {
		for i, item := range curatedCatalog[cat] {
			image := item.primaryImage
			if image == "" {
				keyword := strings.Split(item.keyword, ",")[0]
				image = fmt.Sprintf("https://loremflickr.com/800/800/%s,%s?lock=%d", strings.ToLower(cat), keyword, len(cat)+i+100)
			}
			products = append(products, model.Product{
				ID:          fmt.Sprintf("p-%s-%d", strings.ToLower(cat), i),
				Name:        item.name,
				Price:       item.price,
				Description: fmt.Sprintf("A masterclass in design, the %s is crafted from %s.", item.name, item.material),
				Category:    cat,
				Stock:       12,
				IsActive:    true,
				Image:       image,
				Images:      []string{image},
				Material:    item.material,
				Color:       item.color,
				Finish:      item.finish,
			})
		}
	}
	return products
}

// InitialState returns the dataset a new store is seeded with.
func InitialState() model.State {
	return model.State{
		Users: []model.User{
			{
				ID: "1", Name: "Admin User", Email: "admin@lumina.com", Role: model.RoleAdmin, Password: "password123",
				Addresses: []model.Address{
					{ID: "a1", Label: "Main Office", Street: "123 Tech Ave", City: "San Francisco", State: "CA", Zip: "94103", IsDefault: true},
				},
				PaymentMethods: []model.PaymentMethod{
					{ID: "pm1", Type: model.PaymentMethodTypeCard, Last4: "4242", Expiry: "12/26", Brand: "Visa", IsDefault: true},
				},
			},
			{
				ID: "2", Name: "John Doe", Email: "john@example.com", Role: model.RoleUser, Password: "password123",
				Addresses: []model.Address{
					{ID: "a2", Label: "Home", Street: "456 Oak St", City: "Portland", State: "OR", Zip: "97201", IsDefault: true},
				},
				PaymentMethods: []model.PaymentMethod{
					{ID: "pm2", Type: model.PaymentMethodTypeCard, Last4: "5555", Expiry: "05/25", Brand: "Mastercard", IsDefault: true},
				},
			},
		},
		Categories: append([]string{}, DefaultCategories...),
		Products:   GenerateProducts(DefaultCategories),
		Orders:     []model.Order{},
	}
}
