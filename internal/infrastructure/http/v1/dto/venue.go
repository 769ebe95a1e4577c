package dto

import (
	"dastarkhan/internal/domain/venue/address"
	"dastarkhan/internal/domain/venue/media"
	"dastarkhan/internal/domain/venue/restaurant"
)

// --- Address ---

// AddressRequest for creating and updating addresses.
type AddressRequest struct {
	TownCity     *string `json:"townCity"`
	AddressLine  *string `json:"addressLine"`
	AddressLine2 *string `json:"addressLine2"`
	IsDefault    *bool   `json:"isDefault"`
}

// ToInput converts the request to a domain input.
func (r AddressRequest) ToInput() address.Input {
	return address.Input{
		TownCity:     r.TownCity,
		AddressLine:  r.AddressLine,
		AddressLine2: r.AddressLine2,
		IsDefault:    r.IsDefault,
	}
}

// AddressResponse is the API view of an address.
type AddressResponse struct {
	BaseResponse
	TownCity     string  `json:"townCity"`
	AddressLine  string  `json:"addressLine"`
	AddressLine2 *string `json:"addressLine2,omitempty"`
	IsDefault    bool    `json:"isDefault"`
}

// FromAddress creates AddressResponse.
func FromAddress(a *address.Address) AddressResponse {
	return AddressResponse{
		BaseResponse: fromBase(a.BaseEntity, a.Timestamps),
		TownCity:     a.TownCity,
		AddressLine:  a.AddressLine,
		AddressLine2: a.AddressLine2,
		IsDefault:    a.IsDefault,
	}
}

// --- Restaurant ---

// RestaurantRequest for creating and updating the restaurant profile.
// An empty string clears an optional field.
type RestaurantRequest struct {
	Name          *string `json:"name"`
	AboutUs       *string `json:"aboutUs"`
	PhoneNumber1  *string `json:"phoneNumber1"`
	PhoneNumber2  *string `json:"phoneNumber2"`
	TelegramLink  *string `json:"telegramLink"`
	InstagramLink *string `json:"instagramLink"`
	FacebookLink  *string `json:"facebookLink"`
	DomainName    *string `json:"domainName"`
}

// ToInput converts the request to a domain input.
func (r RestaurantRequest) ToInput() restaurant.Input {
	return restaurant.Input{
		Name:          r.Name,
		AboutUs:       r.AboutUs,
		PhoneNumber1:  r.PhoneNumber1,
		PhoneNumber2:  r.PhoneNumber2,
		TelegramLink:  r.TelegramLink,
		InstagramLink: r.InstagramLink,
		FacebookLink:  r.FacebookLink,
		DomainName:    r.DomainName,
	}
}

// RestaurantResponse is the API view of the restaurant with its gallery.
type RestaurantResponse struct {
	BaseResponse
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	AboutUs       string          `json:"aboutUs"`
	PhoneNumber1  string          `json:"phoneNumber1"`
	PhoneNumber2  *string         `json:"phoneNumber2,omitempty"`
	TelegramLink  *string         `json:"telegramLink,omitempty"`
	InstagramLink *string         `json:"instagramLink,omitempty"`
	FacebookLink  *string         `json:"facebookLink,omitempty"`
	DomainName    string          `json:"domainName"`
	QRCode        string          `json:"qrCode"`
	QRCodeURL     string          `json:"qrCodeUrl"`
	Media         []MediaResponse `json:"media"`
}

// FromRestaurant creates RestaurantResponse.
func FromRestaurant(r *restaurant.Restaurant, url URLFunc) RestaurantResponse {
	gallery := make([]MediaResponse, 0, len(r.Media))
	for _, m := range r.Media {
		gallery = append(gallery, FromMedia(m, url))
	}
	return RestaurantResponse{
		BaseResponse:  fromBase(r.BaseEntity, r.Timestamps),
		Name:          r.Name,
		Slug:          r.Slug,
		AboutUs:       r.AboutUs,
		PhoneNumber1:  r.PhoneNumber1,
		PhoneNumber2:  r.PhoneNumber2,
		TelegramLink:  r.TelegramLink,
		InstagramLink: r.InstagramLink,
		FacebookLink:  r.FacebookLink,
		DomainName:    r.DomainName,
		QRCode:        r.QRCode,
		QRCodeURL:     url.resolve(r.QRCode),
		Media:         gallery,
	}
}

// --- Media ---

// CreateMediaRequest for POST /admin/restaurant/media.
type CreateMediaRequest struct {
	Restaurant string `json:"restaurant" binding:"required"`
	Image      string `json:"image"`
	AltText    string `json:"altText" binding:"required"`
	IsFeature  bool   `json:"isFeature"`
	ImagePayload
}

// ToInput converts the request to a domain input.
func (r CreateMediaRequest) ToInput() (media.CreateInput, error) {
	upload, err := r.Upload()
	if err != nil {
		return media.CreateInput{}, err
	}
	return media.CreateInput{
		RestaurantSlug: r.Restaurant,
		Image:          r.Image,
		Upload:         upload,
		AltText:        r.AltText,
		IsFeature:      r.IsFeature,
	}, nil
}

// UpdateMediaRequest for PUT /admin/restaurant/media/:id.
type UpdateMediaRequest struct {
	Restaurant *string `json:"restaurant"`
	Image      *string `json:"image"`
	AltText    *string `json:"altText"`
	IsFeature  *bool   `json:"isFeature"`
	ImagePayload
}

// ToInput converts the request to a domain input.
func (r UpdateMediaRequest) ToInput() (media.UpdateInput, error) {
	upload, err := r.Upload()
	if err != nil {
		return media.UpdateInput{}, err
	}
	return media.UpdateInput{
		RestaurantSlug: r.Restaurant,
		Image:          r.Image,
		Upload:         upload,
		AltText:        r.AltText,
		IsFeature:      r.IsFeature,
	}, nil
}

// MediaResponse is the API view of a gallery image.
type MediaResponse struct {
	BaseResponse
	RestaurantID string `json:"restaurantId"`
	Image        string `json:"image"`
	ImageURL     string `json:"imageUrl"`
	AltText      string `json:"altText"`
	IsFeature    bool   `json:"isFeature"`
}

// FromMedia creates MediaResponse.
func FromMedia(m *media.Media, url URLFunc) MediaResponse {
	return MediaResponse{
		BaseResponse: fromBase(m.BaseEntity, m.Timestamps),
		RestaurantID: m.RestaurantID.String(),
		Image:        m.Image,
		ImageURL:     url.resolve(m.Image),
		AltText:      m.AltText,
		IsFeature:    m.IsFeature,
	}
}
