package dto

import (
	"github.com/shopspring/decimal"

	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain/catalogs/category"
	"dastarkhan/internal/domain/catalogs/product"
)

// --- Category ---

// CreateCategoryRequest for POST /admin/categories.
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	Image    string `json:"image"`
	IsActive *bool  `json:"isActive"`
	ImagePayload
}

// ToInput converts the request to a domain input.
func (r CreateCategoryRequest) ToInput() (category.CreateInput, error) {
	upload, err := r.Upload()
	if err != nil {
		return category.CreateInput{}, err
	}
	return category.CreateInput{Name: r.Name, Image: r.Image, Upload: upload, IsActive: r.IsActive}, nil
}

// UpdateCategoryRequest for PUT /admin/categories/:slug.
type UpdateCategoryRequest struct {
	Name     *string `json:"name"`
	Image    *string `json:"image"`
	IsActive *bool   `json:"isActive"`
	ImagePayload
}

// ToInput converts the request to a domain input.
func (r UpdateCategoryRequest) ToInput() (category.UpdateInput, error) {
	upload, err := r.Upload()
	if err != nil {
		return category.UpdateInput{}, err
	}
	return category.UpdateInput{Name: r.Name, Image: r.Image, Upload: upload, IsActive: r.IsActive}, nil
}

// CategoryResponse is the API view of a category.
type CategoryResponse struct {
	BaseResponse
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Image    string `json:"image"`
	ImageURL string `json:"imageUrl"`
	IsActive bool   `json:"isActive"`
}

// FromCategory creates CategoryResponse.
func FromCategory(c *category.Category, url URLFunc) CategoryResponse {
	return CategoryResponse{
		BaseResponse: fromBase(c.BaseEntity, c.Timestamps),
		Name:         c.Name,
		Slug:         c.Slug,
		Image:        c.Image,
		ImageURL:     url.resolve(c.Image),
		IsActive:     c.IsActive,
	}
}

// --- Product ---

// CreateProductRequest for POST /admin/products.
type CreateProductRequest struct {
	CategoryID      string           `json:"categoryId" binding:"required"`
	Name            string           `json:"name" binding:"required"`
	Description     string           `json:"description"`
	OriginalPrice   decimal.Decimal  `json:"originalPrice"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	DiscountedPrice *decimal.Decimal `json:"discountedPrice"`
	Quantity        *int             `json:"quantity"`
	Image           string           `json:"image"`
	Ingredients     []string         `json:"ingredients"`
	IsActive        *bool            `json:"isActive"`
	ImagePayload
}

// ToInput converts the request to a domain input.
func (r CreateProductRequest) ToInput() (product.CreateInput, error) {
	categoryID, err := ParseID("categoryId", r.CategoryID)
	if err != nil {
		return product.CreateInput{}, err
	}
	upload, err := r.Upload()
	if err != nil {
		return product.CreateInput{}, err
	}
	return product.CreateInput{
		CategoryID:      categoryID,
		Name:            r.Name,
		Description:     r.Description,
		OriginalPrice:   r.OriginalPrice,
		DiscountPercent: r.DiscountPercent,
		DiscountedPrice: r.DiscountedPrice,
		Quantity:        r.Quantity,
		Image:           r.Image,
		Upload:          upload,
		Ingredients:     r.Ingredients,
		IsActive:        r.IsActive,
	}, nil
}

// UpdateProductRequest for PUT /admin/products/:slug. A present ingredients
// array replaces the whole set.
type UpdateProductRequest struct {
	CategoryID      *string          `json:"categoryId"`
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	OriginalPrice   *decimal.Decimal `json:"originalPrice"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	ClearDiscount   bool             `json:"clearDiscount"`
	DiscountedPrice *decimal.Decimal `json:"discountedPrice"`
	Quantity        *int             `json:"quantity"`
	Image           *string          `json:"image"`
	Ingredients     []string         `json:"ingredients"`
	IsActive        *bool            `json:"isActive"`
	ImagePayload
}

// ToInput converts the request to a domain input.
func (r UpdateProductRequest) ToInput() (product.UpdateInput, error) {
	var categoryID *id.ID
	if r.CategoryID != nil {
		parsed, err := ParseID("categoryId", *r.CategoryID)
		if err != nil {
			return product.UpdateInput{}, err
		}
		categoryID = &parsed
	}
	upload, err := r.Upload()
	if err != nil {
		return product.UpdateInput{}, err
	}
	return product.UpdateInput{
		CategoryID:      categoryID,
		Name:            r.Name,
		Description:     r.Description,
		OriginalPrice:   r.OriginalPrice,
		DiscountPercent: r.DiscountPercent,
		ClearDiscount:   r.ClearDiscount,
		DiscountedPrice: r.DiscountedPrice,
		Quantity:        r.Quantity,
		Image:           r.Image,
		Upload:          upload,
		Ingredients:     r.Ingredients,
		IsActive:        r.IsActive,
	}, nil
}

// ProductResponse is the API view of a product.
type ProductResponse struct {
	BaseResponse
	CategoryID      string           `json:"categoryId"`
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	Description     string           `json:"description"`
	OriginalPrice   decimal.Decimal  `json:"originalPrice"`
	DiscountPercent *decimal.Decimal `json:"discountPercent,omitempty"`
	DiscountedPrice *decimal.Decimal `json:"discountedPrice,omitempty"`
	Quantity        int              `json:"quantity"`
	Image           string           `json:"image"`
	ImageURL        string           `json:"imageUrl"`
	Ingredients     []string         `json:"ingredients"`
	IsActive        bool             `json:"isActive"`
}

// FromProduct creates ProductResponse.
func FromProduct(p *product.Product, url URLFunc) ProductResponse {
	names := make([]string, 0, len(p.Ingredients))
	for _, ing := range p.Ingredients {
		names = append(names, ing.Name)
	}
	return ProductResponse{
		BaseResponse:    fromBase(p.BaseEntity, p.Timestamps),
		CategoryID:      p.CategoryID.String(),
		Name:            p.Name,
		Slug:            p.Slug,
		Description:     p.Description,
		OriginalPrice:   p.OriginalPrice,
		DiscountPercent: p.DiscountPercent,
		DiscountedPrice: p.DiscountedPrice,
		Quantity:        p.Quantity,
		Image:           p.Image,
		ImageURL:        url.resolve(p.Image),
		Ingredients:     names,
		IsActive:        p.IsActive,
	}
}
