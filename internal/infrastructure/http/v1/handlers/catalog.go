package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"dastarkhan/internal/domain"
	"dastarkhan/internal/domain/catalogs/category"
	"dastarkhan/internal/domain/catalogs/product"
	"dastarkhan/internal/infrastructure/http/v1/dto"
)

// CategoryService is the category behaviour the handler needs.
type CategoryService interface {
	Create(ctx context.Context, in category.CreateInput) (*category.Category, error)
	Update(ctx context.Context, slug string, in category.UpdateInput) (*category.Category, error)
	Get(ctx context.Context, slug string) (*category.Category, error)
	List(ctx context.Context, filter domain.ListFilter) ([]*category.Category, error)
	ListActive(ctx context.Context) ([]*category.Category, error)
	Delete(ctx context.Context, slug string) error
}

// ProductService is the product behaviour the handler needs.
type ProductService interface {
	Create(ctx context.Context, in product.CreateInput) (*product.Product, error)
	Update(ctx context.Context, slug string, in product.UpdateInput) (*product.Product, error)
	Get(ctx context.Context, slug string) (*product.Product, error)
	List(ctx context.Context, filter domain.ListFilter) ([]*product.Product, error)
	ListActive(ctx context.Context, categorySlug string) ([]*product.Product, error)
	Delete(ctx context.Context, slug string) error
}

// CatalogHandler serves the menu to customers and the catalog to admins.
type CatalogHandler struct {
	*BaseHandler
	categories CategoryService
	products   ProductService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(base *BaseHandler, categories CategoryService, products ProductService) *CatalogHandler {
	return &CatalogHandler{BaseHandler: base, categories: categories, products: products}
}

func (h *CatalogHandler) category(c *category.Category) dto.CategoryResponse {
	return dto.FromCategory(c, h.URL())
}

func (h *CatalogHandler) product(p *product.Product) dto.ProductResponse {
	return dto.FromProduct(p, h.URL())
}

// --- Customer endpoints ---

// ActiveCategories handles GET /catalog/categories
func (h *CatalogHandler) ActiveCategories(c *gin.Context) {
	items, err := h.categories.ListActive(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items, h.category))
}

// Menu handles GET /catalog/menu?category=<slug>
func (h *CatalogHandler) Menu(c *gin.Context) {
	items, err := h.products.ListActive(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items, h.product))
}

// --- Admin: categories ---

// ListCategories handles GET /admin/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	items, err := h.categories.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items, h.category))
}

// CreateCategory handles POST /admin/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.categories.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, h.category(created))
}

// GetCategory handles GET /admin/categories/:slug
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	item, err := h.categories.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, h.category(item))
}

// UpdateCategory handles PUT /admin/categories/:slug
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	updated, err := h.categories.Update(c.Request.Context(), c.Param("slug"), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, h.category(updated))
}

// DeleteCategory handles DELETE /admin/categories/:slug
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// --- Admin: products ---

// ListProducts handles GET /admin/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	items, err := h.products.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items, h.product))
}

// CreateProduct handles POST /admin/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.products.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, h.product(created))
}

// GetProduct handles GET /admin/products/:slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	item, err := h.products.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, h.product(item))
}

// UpdateProduct handles PUT /admin/products/:slug
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	updated, err := h.products.Update(c.Request.Context(), c.Param("slug"), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, h.product(updated))
}

// DeleteProduct handles DELETE /admin/products/:slug
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers the public menu and the admin catalog routes.
func (h *CatalogHandler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/categories", h.ActiveCategories)
	public.GET("/menu", h.Menu)

	categories := admin.Group("/categories")
	categories.GET("", h.ListCategories)
	categories.POST("", h.CreateCategory)
	categories.GET("/:slug", h.GetCategory)
	categories.PUT("/:slug", h.UpdateCategory)
	categories.DELETE("/:slug", h.DeleteCategory)

	products := admin.Group("/products")
	products.GET("", h.ListProducts)
	products.POST("", h.CreateProduct)
	products.GET("/:slug", h.GetProduct)
	products.PUT("/:slug", h.UpdateProduct)
	products.DELETE("/:slug", h.DeleteProduct)
}
