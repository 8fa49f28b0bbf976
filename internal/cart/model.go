package cart

import (
	"time"

	"github.com/gofrs/uuid"
)

// Item is one cart line: a product and quantity a customer intends to buy.
// Prices are not captured here; listings always show the current product
// price, so a line's total can drift between add and checkout.
type Item struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CustomerID  uuid.UUID `json:"customer_id" db:"customer_id"`
	ProductID   uuid.UUID `json:"product_id" db:"product_id"`
	ProductName string    `json:"product_name,omitempty" db:"-"`
	UnitPrice   float64   `json:"unit_price,omitempty" db:"-"`
	Quantity    int       `json:"quantity" db:"quantity"`
	AddedAt     time.Time `json:"added_at" db:"added_at"`
}

// LineTotal is the line's cost at the current product price.
func (i Item) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
