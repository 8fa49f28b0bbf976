package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound    = errors.New("customer not found")
	ErrEmailExists = errors.New("customer with this email already exists")
)

type Repository interface {
	Create(ctx context.Context, c *Customer) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	GetByEmail(ctx context.Context, email string) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
	List(ctx context.Context) ([]Customer, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, c *Customer) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to generate customer ID: %w", err)
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO customers (id, first_name, last_name, email, password_hash, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.Exec(ctx, query, id, c.FirstName, c.LastName, c.Email, c.PasswordHash, c.Address, c.Phone, now, now)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return uuid.Nil, ErrEmailExists
		}
		return uuid.Nil, fmt.Errorf("repository: failed to insert customer: %w", err)
	}

	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
	return id, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, address, phone, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	var c Customer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PasswordHash, &c.Address, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select customer by id %s: %w", id, err)
	}

	return &c, nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*Customer, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, address, phone, created_at, updated_at
		FROM customers
		WHERE email = $1
	`

	var c Customer
	err := r.db.QueryRow(ctx, query, email).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PasswordHash, &c.Address, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select customer by email: %w", err)
	}

	return &c, nil
}

func (r *postgresRepository) Update(ctx context.Context, c *Customer) error {
	query := `
		UPDATE customers
		SET first_name = $1, last_name = $2, address = $3, phone = $4, updated_at = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query, c.FirstName, c.LastName, c.Address, c.Phone, time.Now().UTC(), c.ID)
	if err != nil {
		return fmt.Errorf("repository: failed to update customer %s: %w", c.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *postgresRepository) List(ctx context.Context) ([]Customer, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, address, phone, created_at, updated_at
		FROM customers
		ORDER BY last_name, first_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := make([]Customer, 0)
	for rows.Next() {
		var c Customer
		err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PasswordHash, &c.Address, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating customers: %w", err)
	}

	return customers, nil
}
