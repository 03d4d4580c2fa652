package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID             int64           `json:"id" db:"product_id"`
	Name           string          `json:"name" db:"name"`
	Slug           string          `json:"slug" db:"slug"`
	Price          decimal.Decimal `json:"price" db:"price"`
	ImageSmallURL  string          `json:"-" db:"image_small_url"`
	ImageMediumURL string          `json:"-" db:"image_medium_url"`
	ImageLargeURL  string          `json:"-" db:"image_large_url"`
	SubcategoryID  int64           `json:"subcategoryId" db:"subcategory_id"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
	Images         Images          `json:"images" db:"-"`
}

// Images is the set of renditions exposed for every product.
type Images struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

// Item is the listing projection: a product joined with the names of
// its subcategory and category.
type Item struct {
	ID             int64           `json:"id" db:"product_id"`
	Name           string          `json:"name" db:"name"`
	Slug           string          `json:"slug" db:"slug"`
	Price          decimal.Decimal `json:"price" db:"price"`
	Category       string          `json:"category" db:"category"`
	Subcategory    string          `json:"subcategory" db:"subcategory"`
	ImageSmallURL  string          `json:"-" db:"image_small_url"`
	ImageMediumURL string          `json:"-" db:"image_medium_url"`
	ImageLargeURL  string          `json:"-" db:"image_large_url"`
	Images         Images          `json:"images" db:"-"`
}

type ProductNew struct {
	Name           string          `json:"name" validate:"required"`
	Slug           string          `json:"slug" validate:"required"`
	Price          decimal.Decimal `json:"price"`
	ImageSmallURL  string          `json:"imageSmall"`
	ImageMediumURL string          `json:"imageMedium"`
	ImageLargeURL  string          `json:"imageLarge"`
	SubcategoryID  int64           `json:"subcategoryId" validate:"required"`
}

type ProductUp struct {
	Name           *string          `json:"name"`
	Slug           *string          `json:"slug"`
	Price          *decimal.Decimal `json:"price"`
	ImageSmallURL  *string          `json:"imageSmall"`
	ImageMediumURL *string          `json:"imageMedium"`
	ImageLargeURL  *string          `json:"imageLarge"`
	SubcategoryID  *int64           `json:"subcategoryId"`
}
