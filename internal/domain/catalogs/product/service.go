package product

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/core/id"
	"dastarkhan/internal/core/tx"
	"dastarkhan/internal/domain"
	"dastarkhan/internal/domain/derive"
	"dastarkhan/internal/domain/images"
	"dastarkhan/internal/domain/validation"
	"dastarkhan/pkg/logger"
)

const entityName = "product"

// CreateInput is the payload of CreateProduct.
type CreateInput struct {
	CategoryID      id.ID
	Name            string
	Description     string
	OriginalPrice   decimal.Decimal
	DiscountPercent *decimal.Decimal

	// DiscountedPrice is never stored from the caller. It is accepted only
	// to reject it when DiscountPercent is missing.
	DiscountedPrice *decimal.Decimal

	Quantity    *int
	Image       string
	Upload      *images.Upload
	Ingredients []string
	IsActive    *bool
}

// UpdateInput is the payload of UpdateProduct. Nil fields keep their value;
// a non-nil Ingredients replaces the whole ingredient set.
type UpdateInput struct {
	CategoryID      *id.ID
	Name            *string
	Description     *string
	OriginalPrice   *decimal.Decimal
	DiscountPercent *decimal.Decimal
	ClearDiscount   bool
	DiscountedPrice *decimal.Decimal
	Quantity        *int
	Image           *string
	Upload          *images.Upload
	Ingredients     []string
	IsActive        *bool
}

// Service provides business logic for Product catalog.
type Service struct {
	repo        Repository
	ingredients IngredientRepository
	categories  CategoryReader
	tx          tx.Manager
	images      images.Store
}

// NewService creates a new Product service.
func NewService(
	repo Repository,
	ingredients IngredientRepository,
	categories CategoryReader,
	txm tx.Manager,
	store images.Store,
) *Service {
	return &Service{
		repo:        repo,
		ingredients: ingredients,
		categories:  categories,
		tx:          txm,
		images:      store,
	}
}

// Create validates the payload, derives slug, discounted price and image
// path, then stores the product with its ingredient set.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Product, error) {
	if err := in.Upload.Validate(); err != nil {
		return nil, domain.NormalizeValidationErr(err)
	}
	if err := validation.DiscountConsistency(in.DiscountedPrice, in.DiscountPercent); err != nil {
		return nil, err
	}

	p := NewProduct(in.CategoryID, in.Name)
	p.Description = in.Description
	p.OriginalPrice = in.OriginalPrice
	p.DiscountPercent = in.DiscountPercent
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	names := NormalizeIngredients(in.Ingredients)
	p.Ingredients = pendingIngredients(names)

	if err := p.Validate(ctx); err != nil {
		return nil, domain.NormalizeValidationErr(err)
	}
	if _, err := s.categories.GetByID(ctx, p.CategoryID); err != nil {
		return nil, domain.NormalizeGetErr(err, "category", p.CategoryID.String())
	}
	if err := validation.UniqueName(ctx, entityName, p.Name, s.repo, nil); err != nil {
		return nil, err
	}

	s.derive(p)
	if in.Image != "" {
		p.Image = in.Image
	}
	if in.Upload != nil {
		p.Image = derive.UploadPath(entityName, p.Slug, derive.Ext(in.Upload.Filename))
	}

	err := domain.Mutation(ctx, s.tx, s.images, func(ctx context.Context, cleanup *images.Cleanup) error {
		if err := cleanup.Put(ctx, p.Image, in.Upload); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create %s: %w", entityName, err)
		}
		return s.replaceIngredients(ctx, p, names)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "product created", "id", p.ID, "slug", p.Slug)
	return p, nil
}

// Update applies in to the product found by slug. Slug and discounted price
// are recomputed on every save.
func (s *Service) Update(ctx context.Context, slug string, in UpdateInput) (*Product, error) {
	if err := in.Upload.Validate(); err != nil {
		return nil, domain.NormalizeValidationErr(err)
	}

	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, domain.NormalizeGetErr(err, entityName, slug)
	}
	previousImage := p.Image
	previousName := p.Name

	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.OriginalPrice != nil {
		p.OriginalPrice = *in.OriginalPrice
	}
	switch {
	case in.ClearDiscount:
		p.DiscountPercent = nil
	case in.DiscountPercent != nil:
		p.DiscountPercent = in.DiscountPercent
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	var names []string
	if in.Ingredients != nil {
		names = NormalizeIngredients(in.Ingredients)
		p.Ingredients = pendingIngredients(names)
	}

	if err := validation.DiscountConsistency(in.DiscountedPrice, p.DiscountPercent); err != nil {
		return nil, err
	}
	if err := p.Validate(ctx); err != nil {
		return nil, domain.NormalizeValidationErr(err)
	}
	if in.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, p.CategoryID); err != nil {
			return nil, domain.NormalizeGetErr(err, "category", p.CategoryID.String())
		}
	}
	if p.Name != previousName {
		if err := validation.UniqueName(ctx, entityName, p.Name, s.repo, &p.ID); err != nil {
			return nil, err
		}
	}

	s.derive(p)
	if in.Image != nil {
		p.Image = *in.Image
		if p.Image == "" {
			p.Image = images.NoFood
		}
	}
	if in.Upload != nil {
		p.Image = images.Distinct(derive.UploadPath(entityName, p.Slug, derive.Ext(in.Upload.Filename)), previousImage)
	}
	p.Touch()

	err = domain.Mutation(ctx, s.tx, s.images, func(ctx context.Context, cleanup *images.Cleanup) error {
		if err := cleanup.Put(ctx, p.Image, in.Upload); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, p); err != nil {
			return fmt.Errorf("update %s: %w", entityName, err)
		}
		if in.Ingredients != nil {
			if err := s.replaceIngredients(ctx, p, names); err != nil {
				return err
			}
		}
		cleanup.Replace(previousImage, p.Image)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if in.Ingredients == nil {
		if err := s.attachIngredients(ctx, []*Product{p}); err != nil {
			return nil, err
		}
	}

	logger.Info(ctx, "product updated", "id", p.ID, "slug", p.Slug)
	return p, nil
}

// Get returns the product with the given slug and its ingredients.
func (s *Service) Get(ctx context.Context, slug string) (*Product, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, domain.NormalizeGetErr(err, entityName, slug)
	}
	if err := s.attachIngredients(ctx, []*Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns products for the admin dashboard.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]*Product, error) {
	items, err := s.repo.List(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	return items, s.attachIngredients(ctx, items)
}

// ListActive returns the menu. With a category slug only that category's
// products are returned, and an empty result is NotFound.
func (s *Service) ListActive(ctx context.Context, categorySlug string) ([]*Product, error) {
	filter := domain.DefaultListFilter()
	filter.ActiveOnly = true
	filter.Limit = 0

	var categoryID *id.ID
	if categorySlug != "" {
		c, err := s.categories.GetBySlug(ctx, categorySlug)
		if err != nil && !apperror.IsNotFound(err) {
			return nil, err
		}
		if c == nil {
			return nil, apperror.NewNotFound(entityName, categorySlug).
				WithDetail("reason", "no products found for the specified category")
		}
		categoryID = &c.ID
	}

	items, err := s.repo.List(ctx, filter, categoryID)
	if err != nil {
		return nil, err
	}
	if categoryID != nil && len(items) == 0 {
		return nil, apperror.NewNotFound(entityName, categorySlug).
			WithDetail("reason", "no products found for the specified category")
	}
	return items, s.attachIngredients(ctx, items)
}

// Delete removes the product and, after commit, its image.
func (s *Service) Delete(ctx context.Context, slug string) error {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return domain.NormalizeGetErr(err, entityName, slug)
	}

	err = domain.Mutation(ctx, s.tx, s.images, func(ctx context.Context, cleanup *images.Cleanup) error {
		if err := s.repo.Delete(ctx, p.ID); err != nil {
			return err
		}
		cleanup.Remove(p.Image)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "product deleted", "id", p.ID, "slug", p.Slug)
	return nil
}

// derive recomputes every caller-independent field.
func (s *Service) derive(p *Product) {
	p.Slug = derive.Slugify(p.Name)
	p.DiscountedPrice = derive.DiscountedPrice(p.OriginalPrice, p.DiscountPercent)
}

// replaceIngredients get-or-creates names and resets the association to exactly that set.
func (s *Service) replaceIngredients(ctx context.Context, p *Product, names []string) error {
	resolved := []Ingredient{}
	if len(names) > 0 {
		var err error
		resolved, err = s.ingredients.Upsert(ctx, names)
		if err != nil {
			return fmt.Errorf("upsert ingredients: %w", err)
		}
	}
	ids := make([]id.ID, 0, len(resolved))
	for _, ing := range resolved {
		ids = append(ids, ing.ID)
	}
	if err := s.ingredients.Replace(ctx, p.ID, ids); err != nil {
		return fmt.Errorf("replace ingredients: %w", err)
	}
	p.Ingredients = resolved
	return nil
}

func (s *Service) attachIngredients(ctx context.Context, items []*Product) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]id.ID, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	sets, err := s.ingredients.ForProducts(ctx, ids)
	if err != nil {
		return err
	}
	for _, p := range items {
		p.Ingredients = sets[p.ID]
		if p.Ingredients == nil {
			p.Ingredients = []Ingredient{}
		}
	}
	return nil
}

// pendingIngredients wraps names for validation before they are resolved.
func pendingIngredients(names []string) []Ingredient {
	out := make([]Ingredient, 0, len(names))
	for _, n := range names {
		out = append(out, Ingredient{Name: n})
	}
	return out
}
