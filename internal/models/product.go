package models

import (
	"time"
)

// Product is a catalog entry. IDs are backend-assigned: the document store
// uses ObjectID hex strings, the flat-file store uses numeric strings.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	Price       float64   `json:"price"`
	Status      bool      `json:"status"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	Thumbnails  []string  `json:"thumbnails"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductInput carries the fields accepted on product creation.
type ProductInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Code        string   `json:"code" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gt=0"`
	Status      *bool    `json:"status"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required"`
	Thumbnails  []string `json:"thumbnails" validate:"omitempty,dive,required"`
}

// ProductUpdate is a partial update: nil fields are left untouched.
type ProductUpdate struct {
	Title       *string   `json:"title" validate:"omitempty,min=1"`
	Description *string   `json:"description" validate:"omitempty,min=1"`
	Code        *string   `json:"code" validate:"omitempty,min=1"`
	Price       *float64  `json:"price" validate:"omitempty,gt=0"`
	Status      *bool     `json:"status"`
	Stock       *int      `json:"stock" validate:"omitempty,gte=0"`
	Category    *string   `json:"category" validate:"omitempty,min=1"`
	Thumbnails  *[]string `json:"thumbnails"`
}

// SortOrder is the price sort direction for product listings.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ProductFilter narrows, orders and caps a product listing. Zero values are
// no-ops: both backends must produce the same observable result for the same
// filter.
type ProductFilter struct {
	Category string
	Status   *bool
	Sort     SortOrder
	Limit    int
}

// ProductPage is a listing plus the match count before the limit is applied.
type ProductPage struct {
	Total    int64     `json:"total"`
	Products []Product `json:"products"`
}
