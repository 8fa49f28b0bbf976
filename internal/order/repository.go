package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrEmptyCart is returned when checkout finds no cart lines; nothing is
	// written in that case.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInsufficientStock is returned when any cart line asks for more units
	// than the product has; the whole checkout is rolled back.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// checkoutLine is a cart line priced at checkout time, read inside the
// transaction so the captured price and the stock decrement see one snapshot.
type checkoutLine struct {
	productID uuid.UUID
	quantity  int
	unitPrice float64
}

type Repository interface {
	PlaceOrder(ctx context.Context, customerID uuid.UUID, paymentMethod, shippingAddress string) (uuid.UUID, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error)
	GetOrdersByCustomerID(ctx context.Context, customerID uuid.UUID) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus Status) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

// PlaceOrder converts the customer's cart into a durable order: one payment,
// one shipment, the order row, one order item per cart line, a stock decrement
// per line, and the cart cleared — all inside a single transaction. Any
// failure rolls back every write.
func (r *postgresRepository) PlaceOrder(ctx context.Context, customerID uuid.UUID, paymentMethod, shippingAddress string) (orderID uuid.UUID, err error) {
	tx, beginErr := r.db.Begin(ctx)
	if beginErr != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to begin transaction: %w", beginErr)
	}
	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic_value", p).Stringer("customer_id", customerID).Msg("Panic recovered during PlaceOrder, rolling back")
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Stringer("customer_id", customerID).Msg("Failed to rollback transaction after panic")
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Stringer("customer_id", customerID).Msg("Failed to rollback transaction")
			}
		} else {
			if commitErr := tx.Commit(ctx); commitErr != nil {
				log.Error().Err(commitErr).Stringer("order_id", orderID).Msg("Failed to commit transaction")
				orderID = uuid.Nil
				err = fmt.Errorf("repository: failed to commit transaction: %w", commitErr)
			}
		}
	}()

	lines, err := r.readCartLines(ctx, tx, customerID)
	if err != nil {
		return uuid.Nil, err
	}
	if len(lines) == 0 {
		return uuid.Nil, ErrEmptyCart
	}

	total := 0.0
	for _, line := range lines {
		total += line.unitPrice * float64(line.quantity)
	}

	now := time.Now().UTC()

	paymentID, err := newID("payment")
	if err != nil {
		return uuid.Nil, err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO payments (id, customer_id, method, amount, paid_at)
		VALUES ($1, $2, $3, $4, $5)
	`, paymentID, customerID, paymentMethod, total, now)
	if err != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to insert payment: %w", err)
	}

	shipmentID, err := newID("shipment")
	if err != nil {
		return uuid.Nil, err
	}
	trackingNumber, err := newTrackingNumber()
	if err != nil {
		return uuid.Nil, fmt.Errorf("repository: %w", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO shipments (id, address, tracking_number, shipped_at)
		VALUES ($1, $2, $3, $4)
	`, shipmentID, shippingAddress, trackingNumber, now)
	if err != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to insert shipment: %w", err)
	}

	newOrderID, err := newID("order")
	if err != nil {
		return uuid.Nil, err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, customer_id, status, total_amount, payment_id, shipment_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, newOrderID, customerID, StatusProcessing.String(), total, paymentID, shipmentID, now, now)
	if err != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to insert order: %w", err)
	}

	for _, line := range lines {
		// The conditional update both checks and decrements under the row
		// lock, so two competing checkouts cannot both pass the stock check.
		cmdTag, execErr := tx.Exec(ctx, `
			UPDATE products
			SET stock = stock - $1, updated_at = $2
			WHERE id = $3 AND stock >= $1
		`, line.quantity, now, line.productID)
		if execErr != nil {
			err = fmt.Errorf("repository: failed to decrement stock for product %s: %w", line.productID, execErr)
			return uuid.Nil, err
		}
		if cmdTag.RowsAffected() == 0 {
			err = fmt.Errorf("repository: product %s: %w", line.productID, ErrInsufficientStock)
			return uuid.Nil, err
		}

		itemID, idErr := newID("order item")
		if idErr != nil {
			err = idErr
			return uuid.Nil, err
		}
		_, execErr = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)
		`, itemID, newOrderID, line.productID, line.quantity, line.unitPrice)
		if execErr != nil {
			err = fmt.Errorf("repository: failed to insert order item for order %s: %w", newOrderID, execErr)
			return uuid.Nil, err
		}
	}

	_, err = tx.Exec(ctx, `DELETE FROM cart_items WHERE customer_id = $1`, customerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to clear cart for customer %s: %w", customerID, err)
	}

	return newOrderID, nil
}

func (r *postgresRepository) readCartLines(ctx context.Context, tx pgx.Tx, customerID uuid.UUID) ([]checkoutLine, error) {
	rows, err := tx.Query(ctx, `
		SELECT ci.product_id, ci.quantity, p.price
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.customer_id = $1
		ORDER BY ci.added_at
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query cart lines for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	var lines []checkoutLine
	for rows.Next() {
		var line checkoutLine
		if err := rows.Scan(&line.productID, &line.quantity, &line.unitPrice); err != nil {
			return nil, fmt.Errorf("repository: failed to scan cart line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating cart lines: %w", err)
	}

	return lines, nil
}

func (r *postgresRepository) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	query := `
		SELECT o.id, o.customer_id, o.status, o.total_amount, o.payment_id, o.shipment_id, s.tracking_number, o.created_at, o.updated_at
		FROM orders o
		JOIN shipments s ON o.shipment_id = s.id
		WHERE o.id = $1
	`

	var o Order
	err := r.db.QueryRow(ctx, query, orderID).Scan(
		&o.ID, &o.CustomerID, &o.Status, &o.TotalAmount, &o.PaymentID, &o.ShipmentID, &o.TrackingNumber, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to select order by id %s: %w", orderID, err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items for order %s: %w", orderID, err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item for order %s: %w", orderID, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items for order %s: %w", orderID, err)
	}

	o.Items = items
	return &o, nil
}

func (r *postgresRepository) GetOrdersByCustomerID(ctx context.Context, customerID uuid.UUID) ([]Order, error) {
	ordersQuery := `
		SELECT o.id, o.customer_id, o.status, o.total_amount, o.payment_id, o.shipment_id, s.tracking_number, o.created_at, o.updated_at
		FROM orders o
		JOIN shipments s ON o.shipment_id = s.id
		WHERE o.customer_id = $1
		ORDER BY o.created_at DESC
	`

	orderRows, err := r.db.Query(ctx, ordersQuery, customerID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders for customer %s: %w", customerID, err)
	}
	defer orderRows.Close()

	ordersMap := make(map[uuid.UUID]*Order)
	var orderIDs []uuid.UUID

	for orderRows.Next() {
		var o Order
		err := orderRows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.TotalAmount, &o.PaymentID, &o.ShipmentID, &o.TrackingNumber, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order for customer %s: %w", customerID, err)
		}
		o.Items = make([]Item, 0)
		ordersMap[o.ID] = &o
		orderIDs = append(orderIDs, o.ID)
	}
	if err := orderRows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders for customer %s: %w", customerID, err)
	}

	if len(orderIDs) == 0 {
		return []Order{}, nil
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = ANY($1)
	`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items for customer %s: %w", customerID, err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item Item
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item for customer %s: %w", customerID, err)
		}
		if o, ok := ordersMap[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items for customer %s: %w", customerID, err)
	}

	orders := make([]Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		orders = append(orders, *ordersMap[id])
	}

	return orders, nil
}

func (r *postgresRepository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus Status) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, newStatus.String(), time.Now().UTC(), orderID)
	if err != nil {
		log.Error().Err(err).Stringer("order_id", orderID).Str("new_status", newStatus.String()).Msg("repository: failed to update order status")
		return fmt.Errorf("repository: failed to update order status for %s: %w", orderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func newID(kind string) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to generate %s ID: %w", kind, err)
	}
	return id, nil
}
