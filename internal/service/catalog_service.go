package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/errors"
	"storefront/internal/insight"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// Insight is the generative helper used by the admin views.
type Insight interface {
	GenerateDescription(ctx context.Context, name, category string) string
	GenerateImage(ctx context.Context, prompt string) (string, bool)
	AnalyzePerformance(ctx context.Context, summary string) string
}

// CatalogService handles storefront browsing and catalog administration.
type CatalogService interface {
	ListStorefront(ctx context.Context, category string) ([]model.Product, error)
	// GetStorefrontProduct returns a visible product; hidden ones are not found.
	GetStorefrontProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, in model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, in model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]string, error)
	AddCategory(ctx context.Context, name string) ([]string, error)
	RenameCategory(ctx context.Context, oldName, newName string) ([]string, error)
	DeleteCategory(ctx context.Context, name string) ([]string, error)

	GenerateDescription(ctx context.Context, name, category string) string
	GenerateImage(ctx context.Context, attrs insight.ProductAttributes) (string, bool)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	insight      Insight
	now          func() time.Time
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, insight Insight) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		insight:      insight,
		now:          time.Now,
	}
}

func (s *catalogService) ListStorefront(ctx context.Context, category string) ([]model.Product, error) {
	return s.productRepo.ListActive(ctx, category)
}

func (s *catalogService) GetStorefrontProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, errors.ErrProductNotFound
	}
	return p, nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.List(ctx)
}

// CreateProduct stores a new product under a fresh id.
func (s *catalogService) CreateProduct(ctx context.Context, in model.Product) (*model.Product, error) {
	product := s.prepare(in)
	product.ID = "p-new-" + uuid.NewString()
	if err := s.productRepo.Create(ctx, &product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

// UpdateProduct overwrites every field of an existing product except its id.
func (s *catalogService) UpdateProduct(ctx context.Context, id string, in model.Product) (*model.Product, error) {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	product := s.prepare(in)
	if err := s.productRepo.Update(ctx, id, model.PatchFromProduct(product)); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return s.productRepo.FindByID(ctx, id)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// prepare applies the save rules: a missing image gets a placeholder and
// the gallery always mirrors the primary image.
func (s *catalogService) prepare(in model.Product) model.Product {
	p := in.Clone()
	p.Image = strings.TrimSpace(p.Image)
	if p.Image == "" {
		p.Image = placeholderImage(p.Category, s.now())
	}
	p.Images = []string{p.Image}
	return p
}

func placeholderImage(category string, now time.Time) string {
	keyword := strings.ToLower(strings.TrimSpace(category))
	if keyword == "" {
		keyword = "product"
	}
	return fmt.Sprintf("https://loremflickr.com/600/800/%s?lock=%d", keyword, now.UnixMilli())
}

func (s *catalogService) ListCategories(ctx context.Context) ([]string, error) {
	return s.categoryRepo.List(ctx)
}

// AddCategory adds a trimmed, non-blank name. Existing names are left alone.
func (s *catalogService) AddCategory(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ErrInvalidCategory
	}
	if err := s.categoryRepo.Create(ctx, name); err != nil {
		return nil, err
	}
	return s.categoryRepo.List(ctx)
}

// RenameCategory renames a known category onto an unused name. Renaming to the same name is a no-op.
func (s *catalogService) RenameCategory(ctx context.Context, oldName, newName string) ([]string, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, errors.ErrInvalidCategory
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(categories, oldName) {
		return nil, errors.ErrCategoryNotFound
	}
	if newName == oldName {
		return categories, nil
	}
	if slices.Contains(categories, newName) {
		return nil, errors.ErrCategoryExists
	}
	if err := s.categoryRepo.Rename(ctx, oldName, newName); err != nil {
		return nil, err
	}
	return s.categoryRepo.List(ctx)
}

// DeleteCategory removes a known category; its products become Uncategorized.
func (s *catalogService) DeleteCategory(ctx context.Context, name string) ([]string, error) {
	if err := s.requireCategory(ctx, name); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Delete(ctx, name); err != nil {
		return nil, err
	}
	return s.categoryRepo.List(ctx)
}

func (s *catalogService) requireCategory(ctx context.Context, name string) error {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if c == name {
			return nil
		}
	}
	return errors.ErrCategoryNotFound
}

func (s *catalogService) GenerateDescription(ctx context.Context, name, category string) string {
	return s.insight.GenerateDescription(ctx, name, category)
}

func (s *catalogService) GenerateImage(ctx context.Context, attrs insight.ProductAttributes) (string, bool) {
	return s.insight.GenerateImage(ctx, insight.ProductImagePrompt(attrs))
}
