// Package dto defines request and response shapes for API v1.
package dto

// IDResponse returns the identifier of a created resource.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is a generic success envelope.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// PageQuery holds common pagination query parameters.
type PageQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// ListResponse is the envelope for list endpoints.
type ListResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}
