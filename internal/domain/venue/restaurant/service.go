package restaurant

import (
	"context"
	"fmt"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/core/tx"
	"dastarkhan/internal/domain"
	"dastarkhan/internal/domain/derive"
	"dastarkhan/internal/domain/images"
	"dastarkhan/internal/domain/validation"
	"dastarkhan/pkg/logger"
)

const (
	entityName = "restaurant"

	// singletonLock serializes concurrent CreateRestaurant calls.
	singletonLock = "restaurants.singleton"
)

// Input is the payload of CreateRestaurant and UpdateRestaurant. On update
// nil fields keep their value; an empty optional string clears it.
type Input struct {
	Name          *string
	AboutUs       *string
	PhoneNumber1  *string
	PhoneNumber2  *string
	TelegramLink  *string
	InstagramLink *string
	FacebookLink  *string
	DomainName    *string
}

// Service provides business logic for the restaurant profile.
type Service struct {
	repo    Repository
	gallery Gallery
	qr      QRRenderer
	tx      tx.Manager
	locker  tx.Locker
	images  images.Store
}

// NewService creates a new Restaurant service.
func NewService(
	repo Repository,
	gallery Gallery,
	qr QRRenderer,
	txm tx.Manager,
	locker tx.Locker,
	store images.Store,
) *Service {
	return &Service{
		repo:    repo,
		gallery: gallery,
		qr:      qr,
		tx:      txm,
		locker:  locker,
		images:  store,
	}
}

// Create stores the restaurant and its QR code. A second restaurant is refused.
func (s *Service) Create(ctx context.Context, in Input) (*Restaurant, error) {
	r := NewRestaurant()
	apply(r, in)
	if err := r.Validate(ctx); err != nil {
		return nil, domain.NormalizeValidationErr(err)
	}
	r.Slug = derive.Slugify(r.Name)

	qr, err := s.renderQR(r, "")
	if err != nil {
		return nil, err
	}

	err = domain.Mutation(ctx, s.tx, s.images, func(ctx context.Context, cleanup *images.Cleanup) error {
		if s.locker != nil {
			if err := s.locker.Lock(ctx, singletonLock); err != nil {
				return fmt.Errorf("lock restaurant singleton: %w", err)
			}
		}
		exists, err := s.repo.Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewConflict("restaurant already exists, only one restaurant can be created")
		}
		if err := validation.UniqueName(ctx, entityName, r.Name, s.repo, nil); err != nil {
			return err
		}
		if err := cleanup.Put(ctx, r.QRCode, qr); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, r); err != nil {
			return fmt.Errorf("create %s: %w", entityName, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "restaurant created", "id", r.ID, "slug", r.Slug, "qr", r.QRCode)
	return r, nil
}

// Update applies in to the restaurant found by slug. The slug is recomputed
// on every save; the QR code only when the domain name changed.
func (s *Service) Update(ctx context.Context, slug string, in Input) (*Restaurant, error) {
	r, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, domain.NormalizeGetErr(err, entityName, slug)
	}
	previousName, previousDomain, previousQR := r.Name, r.DomainName, r.QRCode

	apply(r, in)
	if err := r.Validate(ctx); err != nil {
		return nil, domain.NormalizeValidationErr(err)
	}
	if r.Name != previousName {
		if err := validation.UniqueName(ctx, entityName, r.Name, s.repo, &r.ID); err != nil {
			return nil, err
		}
	}
	r.Slug = derive.Slugify(r.Name)

	var qr *images.Upload
	if r.DomainName != previousDomain || r.QRCode == "" {
		if qr, err = s.renderQR(r, previousQR); err != nil {
			return nil, err
		}
	}
	r.Touch()

	err = domain.Mutation(ctx, s.tx, s.images, func(ctx context.Context, cleanup *images.Cleanup) error {
		if err := cleanup.Put(ctx, r.QRCode, qr); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, r); err != nil {
			return fmt.Errorf("update %s: %w", entityName, err)
		}
		cleanup.Replace(previousQR, r.QRCode)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "restaurant updated", "id", r.ID, "slug", r.Slug, "qr_regenerated", qr != nil)
	return r, nil
}

// Get returns the restaurant together with its gallery.
func (s *Service) Get(ctx context.Context) (*Restaurant, error) {
	r, err := s.repo.First(ctx)
	if err != nil {
		return nil, domain.NormalizeGetErr(err, entityName, "singleton")
	}
	if r.Media, err = s.gallery.ListByRestaurant(ctx, r.ID); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes the restaurant. After commit its QR code and every gallery
// image are removed as well.
func (s *Service) Delete(ctx context.Context, slug string) error {
	r, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return domain.NormalizeGetErr(err, entityName, slug)
	}

	err = domain.Mutation(ctx, s.tx, s.images, func(ctx context.Context, cleanup *images.Cleanup) error {
		gallery, err := s.gallery.ListByRestaurant(ctx, r.ID)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, r.ID); err != nil {
			return err
		}
		cleanup.Remove(r.QRCode)
		for _, m := range gallery {
			cleanup.Remove(m.Image)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "restaurant deleted", "id", r.ID, "slug", r.Slug)
	return nil
}

// renderQR encodes the domain name and points r.QRCode at a new file that
// never coincides with previous.
func (s *Service) renderQR(r *Restaurant, previous string) (*images.Upload, error) {
	png, err := s.qr.Render(r.DomainName)
	if err != nil {
		return nil, apperror.NewInternal(err).WithDetail("stage", "qr_code")
	}
	r.QRCode = images.Distinct(derive.QRCodePath(r.DomainName), previous)
	return &images.Upload{Filename: r.QRCode, Data: png}, nil
}

func apply(r *Restaurant, in Input) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setOptional := func(dst **string, v *string) {
		if v == nil {
			return
		}
		if *v == "" {
			*dst = nil
			return
		}
		val := *v
		*dst = &val
	}

	set(&r.Name, in.Name)
	set(&r.AboutUs, in.AboutUs)
	set(&r.PhoneNumber1, in.PhoneNumber1)
	setOptional(&r.PhoneNumber2, in.PhoneNumber2)
	setOptional(&r.TelegramLink, in.TelegramLink)
	setOptional(&r.InstagramLink, in.InstagramLink)
	setOptional(&r.FacebookLink, in.FacebookLink)
	set(&r.DomainName, in.DomainName)
}
