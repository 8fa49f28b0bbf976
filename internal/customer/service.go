package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Service interface {
	Register(ctx context.Context, c *Customer, password string) (*Customer, error)
	Authenticate(ctx context.Context, email, password string) (*Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
	List(ctx context.Context) ([]Customer, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, c *Customer, password string) (*Customer, error) {
	if c.Email == "" {
		return nil, errors.New("service: email is required")
	}
	if password == "" {
		return nil, errors.New("service: password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to hash password")
		return nil, fmt.Errorf("service: failed to hash password: %w", err)
	}
	c.PasswordHash = string(hash)

	if _, err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}
		log.Error().Err(err).Msg("service: failed to create customer")
		return nil, fmt.Errorf("service: failed to create customer: %w", err)
	}

	log.Info().Stringer("customer_id", c.ID).Msg("service: customer registered")
	return c, nil
}

// Authenticate verifies email/password against the stored hash. It is a pure
// data-layer check; session management is up to the caller.
func (s *service) Authenticate(ctx context.Context, email, password string) (*Customer, error) {
	c, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Error().Err(err).Msg("service: failed to fetch customer by email")
		return nil, fmt.Errorf("service: failed to fetch customer by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return c, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Stringer("customer_id", id).Msg("service: failed to fetch customer")
		return nil, fmt.Errorf("service: failed to fetch customer: %w", err)
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, c *Customer) error {
	if c.ID == uuid.Nil {
		return errors.New("service: customer id is required")
	}

	err := s.repo.Update(ctx, c)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Stringer("customer_id", c.ID).Msg("service: failed to update customer")
		return fmt.Errorf("service: failed to update customer: %w", err)
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list customers")
		return nil, fmt.Errorf("service: failed to list customers: %w", err)
	}
	return customers, nil
}
