package catalog

import (
	"time"

	"github.com/gofrs/uuid"
)

type Category struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

type Product struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Price        float64   `json:"price" db:"price"`
	Stock        int       `json:"stock" db:"stock"`
	CategoryID   uuid.UUID `json:"category_id" db:"category_id"`
	CategoryName string    `json:"category_name,omitempty" db:"-"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Filter narrows ListProducts. Zero values mean "no constraint".
type Filter struct {
	CategoryID uuid.UUID
	Search     string
}
