package wishlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var ErrItemNotFound = errors.New("wishlist item not found")

type Item struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CustomerID  uuid.UUID `json:"customer_id" db:"customer_id"`
	ProductID   uuid.UUID `json:"product_id" db:"product_id"`
	ProductName string    `json:"product_name,omitempty" db:"-"`
	Price       float64   `json:"price,omitempty" db:"-"`
	AddedAt     time.Time `json:"added_at" db:"added_at"`
}

type Repository interface {
	Add(ctx context.Context, customerID, productID uuid.UUID) error
	Remove(ctx context.Context, customerID, productID uuid.UUID) error
	List(ctx context.Context, customerID uuid.UUID) ([]Item, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

// Add is idempotent: re-adding a product a customer already wishlisted is a
// no-op.
func (r *postgresRepository) Add(ctx context.Context, customerID, productID uuid.UUID) error {
	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("repository: failed to generate wishlist item ID: %w", err)
	}

	query := `
		INSERT INTO wishlist_items (id, customer_id, product_id, added_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = r.db.Exec(ctx, query, id, customerID, productID, time.Now().UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil
		}
		return fmt.Errorf("repository: failed to insert wishlist item: %w", err)
	}

	return nil
}

func (r *postgresRepository) Remove(ctx context.Context, customerID, productID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM wishlist_items WHERE customer_id = $1 AND product_id = $2`,
		customerID, productID,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to delete wishlist item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context, customerID uuid.UUID) ([]Item, error) {
	query := `
		SELECT wi.id, wi.customer_id, wi.product_id, p.name, p.price, wi.added_at
		FROM wishlist_items wi
		JOIN products p ON wi.product_id = p.id
		WHERE wi.customer_id = $1
		ORDER BY wi.added_at DESC
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query wishlist for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.CustomerID, &item.ProductID, &item.ProductName, &item.Price, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan wishlist item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating wishlist items: %w", err)
	}

	return items, nil
}

type Service interface {
	Add(ctx context.Context, customerID, productID uuid.UUID) error
	Remove(ctx context.Context, customerID, productID uuid.UUID) error
	List(ctx context.Context, customerID uuid.UUID) ([]Item, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, customerID, productID uuid.UUID) error {
	if customerID == uuid.Nil || productID == uuid.Nil {
		return errors.New("service: customer id and product id are required")
	}

	if err := s.repo.Add(ctx, customerID, productID); err != nil {
		log.Error().Err(err).Stringer("customer_id", customerID).Stringer("product_id", productID).Msg("service: failed to add wishlist item")
		return fmt.Errorf("service: failed to add wishlist item: %w", err)
	}
	return nil
}

func (s *service) Remove(ctx context.Context, customerID, productID uuid.UUID) error {
	err := s.repo.Remove(ctx, customerID, productID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return ErrItemNotFound
		}
		log.Error().Err(err).Stringer("customer_id", customerID).Msg("service: failed to remove wishlist item")
		return fmt.Errorf("service: failed to remove wishlist item: %w", err)
	}
	return nil
}

func (s *service) List(ctx context.Context, customerID uuid.UUID) ([]Item, error) {
	items, err := s.repo.List(ctx, customerID)
	if err != nil {
		log.Error().Err(err).Stringer("customer_id", customerID).Msg("service: failed to list wishlist")
		return nil, fmt.Errorf("service: failed to list wishlist: %w", err)
	}
	return items, nil
}
