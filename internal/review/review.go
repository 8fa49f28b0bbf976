package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type Review struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CustomerID uuid.UUID `json:"customer_id" db:"customer_id"`
	ProductID  uuid.UUID `json:"product_id" db:"product_id"`
	Rating     int       `json:"rating" db:"rating"`
	Comment    string    `json:"comment" db:"comment"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, rv *Review) (uuid.UUID, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]Review, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, rv *Review) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to generate review ID: %w", err)
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO reviews (id, customer_id, product_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.Exec(ctx, query, id, rv.CustomerID, rv.ProductID, rv.Rating, rv.Comment, now)
	if err != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to insert review: %w", err)
	}

	rv.ID = id
	rv.CreatedAt = now
	return id, nil
}

func (r *postgresRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]Review, error) {
	query := `
		SELECT id, customer_id, product_id, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query reviews for product %s: %w", productID, err)
	}
	defer rows.Close()

	reviews := make([]Review, 0)
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.CustomerID, &rv.ProductID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating reviews: %w", err)
	}

	return reviews, nil
}

type Service interface {
	AddReview(ctx context.Context, rv *Review) (*Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]Review, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AddReview(ctx context.Context, rv *Review) (*Review, error) {
	if rv.CustomerID == uuid.Nil {
		return nil, errors.New("service: customer id is required")
	}
	if rv.ProductID == uuid.Nil {
		return nil, errors.New("service: product id is required")
	}
	if rv.Rating < 1 || rv.Rating > 5 {
		return nil, fmt.Errorf("service: %w, got %d", ErrInvalidRating, rv.Rating)
	}

	if _, err := s.repo.Create(ctx, rv); err != nil {
		log.Error().Err(err).Stringer("product_id", rv.ProductID).Msg("service: failed to add review")
		return nil, fmt.Errorf("service: failed to add review: %w", err)
	}

	return rv, nil
}

func (s *service) ListByProduct(ctx context.Context, productID uuid.UUID) ([]Review, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		log.Error().Err(err).Stringer("product_id", productID).Msg("service: failed to list reviews")
		return nil, fmt.Errorf("service: failed to list reviews: %w", err)
	}
	return reviews, nil
}
