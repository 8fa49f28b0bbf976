package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrItemNotFound = errors.New("cart item not found")

type Repository interface {
	AddItem(ctx context.Context, customerID, productID uuid.UUID, quantity int) (uuid.UUID, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	ListItems(ctx context.Context, customerID uuid.UUID) ([]Item, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

// AddItem inserts a cart line, or merges into the existing one for the same
// (customer, product) pair by incrementing its quantity. Returns the line id.
func (r *postgresRepository) AddItem(ctx context.Context, customerID, productID uuid.UUID, quantity int) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to generate cart item ID: %w", err)
	}

	query := `
		INSERT INTO cart_items (id, customer_id, product_id, quantity, added_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (customer_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id
	`

	var itemID uuid.UUID
	err = r.db.QueryRow(ctx, query, id, customerID, productID, quantity, time.Now().UTC()).Scan(&itemID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to add cart item: %w", err)
	}

	return itemID, nil
}

func (r *postgresRepository) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("repository: failed to delete cart item %s: %w", itemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *postgresRepository) ListItems(ctx context.Context, customerID uuid.UUID) ([]Item, error) {
	query := `
		SELECT ci.id, ci.customer_id, ci.product_id, p.name, p.price, ci.quantity, ci.added_at
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.customer_id = $1
		ORDER BY ci.added_at
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query cart items for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		err := rows.Scan(&item.ID, &item.CustomerID, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity, &item.AddedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating cart items: %w", err)
	}

	return items, nil
}
