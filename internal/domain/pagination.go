package domain

import "fmt"

const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// PageRequest carries the caller's pagination choice.
type PageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// DefaultPage is the page used when the caller sends no pagination params.
func DefaultPage() PageRequest {
	return PageRequest{Page: 1, PageSize: DefaultPageSize}
}

// Validate rejects out-of-range page numbers and sizes.
func (p PageRequest) Validate() error {
	if p.Page < 1 {
		return fmt.Errorf("page must be >= 1, got %d", p.Page)
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		return fmt.Errorf("page_size must be in [1, %d], got %d", MaxPageSize, p.PageSize)
	}
	return nil
}

// Offset returns the number of rows to skip for this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Pagination describes the page actually served.
type Pagination struct {
	Page         int `json:"page"`
	PageSize     int `json:"page_size"`
	TotalRecords int `json:"total_records"`
	TotalPages   int `json:"total_pages"`
}

// NewPagination computes total_pages as ceil(totalRecords/pageSize).
func NewPagination(req PageRequest, totalRecords int) Pagination {
	totalPages := 0
	if req.PageSize > 0 {
		totalPages = (totalRecords + req.PageSize - 1) / req.PageSize
	}
	return Pagination{
		Page:         req.Page,
		PageSize:     req.PageSize,
		TotalRecords: totalRecords,
		TotalPages:   totalPages,
	}
}

// Page is a bounded, reproducible slice of results plus its pagination envelope.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// EmptyPage returns a page with no rows and the given reported total.
func EmptyPage[T any](req PageRequest, totalRecords int) Page[T] {
	return Page[T]{
		Data:       []T{},
		Pagination: NewPagination(req, totalRecords),
	}
}
