package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")
var ErrInvalidProduct = errors.New("invalid product")

// ErrStoreTimeout is returned when the catalog store misses its query deadline
// and no cached listing is available to fall back on.
var ErrStoreTimeout = errors.New("catalog store timed out")

// Product is a single catalog entry. Image holds the uploaded image payload as
// a data URI ("data:image/...").
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
