package category

type Category struct {
	ID            int64         `json:"id" db:"category_id"`
	Name          string        `json:"name" db:"name"`
	Slug          string        `json:"slug" db:"slug"`
	ImageURL      string        `json:"image" db:"image_url"`
	Subcategories []SubCategory `json:"subcategories" db:"-"`
}

type SubCategory struct {
	ID         int64  `json:"id" db:"subcategory_id"`
	Name       string `json:"name" db:"name"`
	Slug       string `json:"slug" db:"slug"`
	ImageURL   string `json:"image" db:"image_url"`
	CategoryID int64  `json:"-" db:"category_id"`
}

type CategoryNew struct {
	Name     string `json:"name" validate:"required"`
	Slug     string `json:"slug" validate:"required"`
	ImageURL string `json:"image"`
}

type SubCategoryNew struct {
	Name       string `json:"name" validate:"required"`
	Slug       string `json:"slug" validate:"required"`
	ImageURL   string `json:"image"`
	CategoryID int64  `json:"categoryId" validate:"required"`
}
