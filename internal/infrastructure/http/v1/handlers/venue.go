package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain/venue/address"
	"dastarkhan/internal/domain/venue/media"
	"dastarkhan/internal/domain/venue/restaurant"
	"dastarkhan/internal/infrastructure/http/v1/dto"
)

// RestaurantService is the restaurant behaviour the handler needs.
type RestaurantService interface {
	Create(ctx context.Context, in restaurant.Input) (*restaurant.Restaurant, error)
	Update(ctx context.Context, slug string, in restaurant.Input) (*restaurant.Restaurant, error)
	Get(ctx context.Context) (*restaurant.Restaurant, error)
	Delete(ctx context.Context, slug string) error
}

// AddressService is the address behaviour the handler needs.
type AddressService interface {
	Create(ctx context.Context, in address.Input) (*address.Address, error)
	Update(ctx context.Context, addressID id.ID, in address.Input) (*address.Address, error)
	Get(ctx context.Context, addressID id.ID) (*address.Address, error)
	List(ctx context.Context) ([]*address.Address, error)
	ListDefault(ctx context.Context) ([]*address.Address, error)
	Delete(ctx context.Context, addressID id.ID) error
}

// MediaService is the gallery behaviour the handler needs.
type MediaService interface {
	Create(ctx context.Context, in media.CreateInput) (*media.Media, error)
	Update(ctx context.Context, mediaID id.ID, in media.UpdateInput) (*media.Media, error)
	Delete(ctx context.Context, mediaID id.ID) error
}

// VenueHandler serves the restaurant profile, its addresses and gallery.
type VenueHandler struct {
	*BaseHandler
	restaurants RestaurantService
	addresses   AddressService
	media       MediaService
}

// NewVenueHandler creates a new venue handler.
func NewVenueHandler(base *BaseHandler, restaurants RestaurantService, addresses AddressService, gallery MediaService) *VenueHandler {
	return &VenueHandler{
		BaseHandler: base,
		restaurants: restaurants,
		addresses:   addresses,
		media:       gallery,
	}
}

// --- Restaurant ---

// GetRestaurant handles GET /restaurant and GET /admin/restaurant
func (h *VenueHandler) GetRestaurant(c *gin.Context) {
	r, err := h.restaurants.Get(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromRestaurant(r, h.URL()))
}

// CreateRestaurant handles POST /admin/restaurant
func (h *VenueHandler) CreateRestaurant(c *gin.Context) {
	var req dto.RestaurantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	r, err := h.restaurants.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromRestaurant(r, h.URL()))
}

// UpdateRestaurant handles PUT /admin/restaurant/:slug
func (h *VenueHandler) UpdateRestaurant(c *gin.Context) {
	var req dto.RestaurantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	r, err := h.restaurants.Update(c.Request.Context(), c.Param("slug"), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromRestaurant(r, h.URL()))
}

// DeleteRestaurant handles DELETE /admin/restaurant/:slug
func (h *VenueHandler) DeleteRestaurant(c *gin.Context) {
	if err := h.restaurants.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// --- Addresses ---

// DefaultAddresses handles GET /restaurant/addresses
func (h *VenueHandler) DefaultAddresses(c *gin.Context) {
	items, err := h.addresses.ListDefault(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items, dto.FromAddress))
}

// ListAddresses handles GET /admin/addresses
func (h *VenueHandler) ListAddresses(c *gin.Context) {
	items, err := h.addresses.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items, dto.FromAddress))
}

// CreateAddress handles POST /admin/addresses
func (h *VenueHandler) CreateAddress(c *gin.Context) {
	var req dto.AddressRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a, err := h.addresses.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromAddress(a))
}

// GetAddress handles GET /admin/addresses/:id
func (h *VenueHandler) GetAddress(c *gin.Context) {
	addressID, ok := h.PathID(c)
	if !ok {
		return
	}

	a, err := h.addresses.Get(c.Request.Context(), addressID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromAddress(a))
}

// UpdateAddress handles PUT /admin/addresses/:id
func (h *VenueHandler) UpdateAddress(c *gin.Context) {
	addressID, ok := h.PathID(c)
	if !ok {
		return
	}
	var req dto.AddressRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a, err := h.addresses.Update(c.Request.Context(), addressID, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromAddress(a))
}

// DeleteAddress handles DELETE /admin/addresses/:id
func (h *VenueHandler) DeleteAddress(c *gin.Context) {
	addressID, ok := h.PathID(c)
	if !ok {
		return
	}

	if err := h.addresses.Delete(c.Request.Context(), addressID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// --- Media ---

// CreateMedia handles POST /admin/restaurant/media
func (h *VenueHandler) CreateMedia(c *gin.Context) {
	var req dto.CreateMediaRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	m, err := h.media.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromMedia(m, h.URL()))
}

// UpdateMedia handles PUT /admin/restaurant/media/:id
func (h *VenueHandler) UpdateMedia(c *gin.Context) {
	mediaID, ok := h.PathID(c)
	if !ok {
		return
	}
	var req dto.UpdateMediaRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	m, err := h.media.Update(c.Request.Context(), mediaID, in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromMedia(m, h.URL()))
}

// DeleteMedia handles DELETE /admin/restaurant/media/:id
func (h *VenueHandler) DeleteMedia(c *gin.Context) {
	mediaID, ok := h.PathID(c)
	if !ok {
		return
	}

	if err := h.media.Delete(c.Request.Context(), mediaID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers public restaurant routes and admin venue routes.
func (h *VenueHandler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("", h.GetRestaurant)
	public.GET("/addresses", h.DefaultAddresses)

	addresses := admin.Group("/addresses")
	addresses.GET("", h.ListAddresses)
	addresses.POST("", h.CreateAddress)
	addresses.GET("/:id", h.GetAddress)
	addresses.PUT("/:id", h.UpdateAddress)
	addresses.DELETE("/:id", h.DeleteAddress)

	r := admin.Group("/restaurant")
	r.GET("", h.GetRestaurant)
	r.POST("", h.CreateRestaurant)
	r.PUT("/:slug", h.UpdateRestaurant)
	r.DELETE("/:slug", h.DeleteRestaurant)
	r.POST("/media", h.CreateMedia)
	r.PUT("/media/:id", h.UpdateMedia)
	r.DELETE("/media/:id", h.DeleteMedia)
}
