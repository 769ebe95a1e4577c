// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"encoding/base64"
	"strings"
	"time"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/core/entity"
	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain"
	"dastarkhan/internal/domain/images"
)

// URLFunc resolves a stored image reference into a public URL.
type URLFunc func(ref string) string

func (f URLFunc) resolve(ref string) string {
	if f == nil || ref == "" {
		return ref
	}
	return f(ref)
}

// --- Listing ---

// ListRequest contains admin list parameters.
type ListRequest struct {
	Search   string `form:"search"`
	OrderBy  string `form:"orderBy"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// ToFilter converts the request into a domain filter.
func (r ListRequest) ToFilter() domain.ListFilter {
	filter := domain.DefaultListFilter()
	filter.Search = strings.TrimSpace(r.Search)
	if r.OrderBy != "" {
		filter.OrderBy = r.OrderBy
	}
	if r.PageSize > 0 {
		filter.Limit = r.PageSize
	}
	if r.Page > 1 {
		filter.Offset = (r.Page - 1) * filter.Limit
	}
	return filter
}

// ListResponse wraps list results.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// NewListResponse maps items with fn.
func NewListResponse[S any, T any](items []S, fn func(S) T) ListResponse[T] {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return ListResponse[T]{Items: out, Count: len(out)}
}

// --- Base DTOs ---

// BaseResponse contains common response fields.
type BaseResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func fromBase(b entity.BaseEntity, t entity.Timestamps) BaseResponse {
	return BaseResponse{
		ID:        b.ID.String(),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// --- Images ---

// ImagePayload carries an inline base64 image in a JSON body.
type ImagePayload struct {
	ImageData string `json:"imageData"`
	ImageName string `json:"imageName"`
}

// Upload decodes the payload. It returns nil when no image was sent.
func (p ImagePayload) Upload() (*images.Upload, error) {
	if p.ImageData == "" {
		return nil, nil
	}
	if p.ImageName == "" {
		return nil, apperror.NewInvalidInput("imageName", "image name is required with image data")
	}

	data := p.ImageData
	if i := strings.Index(data, ";base64,"); i >= 0 && strings.HasPrefix(data, "data:") {
		data = data[i+len(";base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, apperror.NewInvalidInput("imageData", "image data is not valid base64")
	}
	return &images.Upload{Filename: p.ImageName, Data: raw}, nil
}

// --- Identifiers ---

// ParseID parses a path or body identifier.
func ParseID(field, value string) (id.ID, error) {
	parsed, err := id.Parse(value)
	if err != nil {
		return id.ID{}, apperror.NewInvalidInput(field, "invalid identifier").WithDetail("value", value)
	}
	return parsed, nil
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
