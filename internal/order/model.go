package order

import (
	"time"

	"github.com/gofrs/uuid"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is a member of the status enumeration. Transitions
// between valid statuses are not restricted.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Payment struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CustomerID uuid.UUID `json:"customer_id" db:"customer_id"`
	Method     string    `json:"method" db:"method"`
	Amount     float64   `json:"amount" db:"amount"`
	PaidAt     time.Time `json:"paid_at" db:"paid_at"`
}

type Shipment struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Address        string    `json:"address" db:"address"`
	TrackingNumber string    `json:"tracking_number" db:"tracking_number"`
	ShippedAt      time.Time `json:"shipped_at" db:"shipped_at"`
}

type Item struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"order_id" db:"order_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	// UnitPrice is the product price captured at order time; later price
	// changes do not affect it.
	UnitPrice float64 `json:"unit_price" db:"unit_price"`
}

type Order struct {
	ID             uuid.UUID `json:"id" db:"id"`
	CustomerID     uuid.UUID `json:"customer_id" db:"customer_id"`
	Status         Status    `json:"status" db:"status"`
	TotalAmount    float64   `json:"total_amount" db:"total_amount"`
	PaymentID      uuid.UUID `json:"payment_id" db:"payment_id"`
	ShipmentID     uuid.UUID `json:"shipment_id" db:"shipment_id"`
	TrackingNumber string    `json:"tracking_number,omitempty" db:"-"`
	Items          []Item    `json:"items" db:"-"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
