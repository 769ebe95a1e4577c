package category

import (
	"context"
	"fmt"

	"dastarkhan/internal/core/tx"
	"dastarkhan/internal/domain"
	"dastarkhan/internal/domain/derive"
	"dastarkhan/internal/domain/images"
	"dastarkhan/internal/domain/validation"
	"dastarkhan/pkg/logger"
)

const entityName = "category"

// CreateInput is the payload of CreateCategory. The image is either an
// already stored reference or an upload.
type CreateInput struct {
	Name     string
	Image    string
	Upload   *images.Upload
	IsActive *bool
}

// UpdateInput is the payload of UpdateCategory. Nil fields keep their value.
type UpdateInput struct {
	Name     *string
	Image    *string
	Upload   *images.Upload
	IsActive *bool
}

// Service provides business logic for Category catalog.
type Service struct {
	repo   Repository
	tx     tx.Manager
	images images.Store
}

// NewService creates a new Category service.
func NewService(repo Repository, txm tx.Manager, store images.Store) *Service {
	return &Service{repo: repo, tx: txm, images: store}
}

// Create validates, derives name/slug/image and stores a new category.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Category, error) {
	if err := in.Upload.Validate(); err != nil {
		return nil, domain.NormalizeValidationErr(err)
	}
	if err := validation.CategoryName(ctx, in.Name, s.repo, nil); err != nil {
		return nil, err
	}

	c := NewCategory(derive.Capitalize(in.Name))
	c.Slug = derive.Slugify(in.Name)
	c.Image = in.Image
	if in.Upload != nil {
		c.Image = derive.UploadPath(entityName, c.Slug, derive.Ext(in.Upload.Filename))
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := c.Validate(ctx); err != nil {
		return nil, domain.NormalizeValidationErr(err)
	}

	err := domain.Mutation(ctx, s.tx, s.images, func(ctx context.Context, cleanup *images.Cleanup) error {
		if err := cleanup.Put(ctx, c.Image, in.Upload); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, c); err != nil {
			return fmt.Errorf("create %s: %w", entityName, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "category created", "id", c.ID, "slug", c.Slug)
	return c, nil
}

// Update applies in to the category found by slug. The slug is recomputed
// on every save; the previous image is removed after commit when replaced.
func (s *Service) Update(ctx context.Context, slug string, in UpdateInput) (*Category, error) {
	if err := in.Upload.Validate(); err != nil {
		return nil, domain.NormalizeValidationErr(err)
	}

	c, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, domain.NormalizeGetErr(err, entityName, slug)
	}
	previousImage := c.Image

	if in.Name != nil && derive.Capitalize(*in.Name) != c.Name {
		if err := validation.CategoryName(ctx, *in.Name, s.repo, &c.ID); err != nil {
			return nil, err
		}
		c.Name = derive.Capitalize(*in.Name)
	}
	c.Slug = derive.Slugify(c.Name)
	if in.Image != nil {
		c.Image = *in.Image
	}
	if in.Upload != nil {
		c.Image = images.Distinct(derive.UploadPath(entityName, c.Slug, derive.Ext(in.Upload.Filename)), previousImage)
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := c.Validate(ctx); err != nil {
		return nil, domain.NormalizeValidationErr(err)
	}
	c.Touch()

	err = domain.Mutation(ctx, s.tx, s.images, func(ctx context.Context, cleanup *images.Cleanup) error {
		if err := cleanup.Put(ctx, c.Image, in.Upload); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, c); err != nil {
			return fmt.Errorf("update %s: %w", entityName, err)
		}
		cleanup.Replace(previousImage, c.Image)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "category updated", "id", c.ID, "slug", c.Slug)
	return c, nil
}

// Get returns the category with the given slug.
func (s *Service) Get(ctx context.Context, slug string) (*Category, error) {
	c, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, domain.NormalizeGetErr(err, entityName, slug)
	}
	return c, nil
}

// List returns every category for the admin dashboard.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]*Category, error) {
	return s.repo.List(ctx, filter)
}

// ListActive returns the categories visible to customers.
func (s *Service) ListActive(ctx context.Context) ([]*Category, error) {
	filter := domain.DefaultListFilter()
	filter.ActiveOnly = true
	filter.Limit = 0
	return s.repo.List(ctx, filter)
}

// Delete removes the category and, after commit, its image.
func (s *Service) Delete(ctx context.Context, slug string) error {
	c, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return domain.NormalizeGetErr(err, entityName, slug)
	}

	err = domain.Mutation(ctx, s.tx, s.images, func(ctx context.Context, cleanup *images.Cleanup) error {
		if err := s.repo.Delete(ctx, c.ID); err != nil {
			return err
		}
		cleanup.Remove(c.Image)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "category deleted", "id", c.ID, "slug", c.Slug)
	return nil
}
