package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrInvalid is returned when a write would persist a book that is
// missing a required field.
var ErrInvalid = errors.New("book is invalid")

// Book represents a book entity. Optional columns are pointers so that
// absent values render as JSON null.
type Book struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   *string   `json:"description"`
	Price         *float64  `json:"price"`
	PublishedYear *int      `json:"published_year"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateParams carries the fields accepted when creating a book.
// The id and both timestamps are assigned by the store.
type CreateParams struct {
	Title         string
	Author        string
	Description   *string
	Price         *float64
	PublishedYear *int
}

// UpdateParams carries a partial update. Nil fields are left untouched.
type UpdateParams struct {
	Title         *string
	Author        *string
	Description   *string
	Price         *float64
	PublishedYear *int
}
