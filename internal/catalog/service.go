package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

type Service interface {
	ListProducts(ctx context.Context, filter Filter) ([]Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*Product, error)
	CreateProduct(ctx context.Context, p *Product) (*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	SetStock(ctx context.Context, productID uuid.UUID, stock int) error
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, name string) (*Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context, filter Filter) ([]Product, error) {
	products, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list products")
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}
	return products, nil
}

func (s *service) GetProductByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		log.Error().Err(err).Stringer("product_id", id).Msg("service: failed to fetch product")
		return nil, fmt.Errorf("service: failed to fetch product: %w", err)
	}
	return product, nil
}

func (s *service) CreateProduct(ctx context.Context, p *Product) (*Product, error) {
	if p.Name == "" {
		return nil, errors.New("service: product name is required")
	}
	if p.Price < 0 {
		return nil, fmt.Errorf("service: product price cannot be negative, got %f", p.Price)
	}
	if p.Stock < 0 {
		return nil, fmt.Errorf("service: product stock cannot be negative, got %d", p.Stock)
	}
	if p.CategoryID == uuid.Nil {
		return nil, errors.New("service: product category is required")
	}

	if _, err := s.repo.CreateProduct(ctx, p); err != nil {
		log.Error().Err(err).Msg("service: failed to create product")
		return nil, fmt.Errorf("service: failed to create product: %w", err)
	}

	log.Info().Stringer("product_id", p.ID).Str("name", p.Name).Msg("service: product created")
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, p *Product) error {
	if p.ID == uuid.Nil {
		return errors.New("service: product id is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("service: product price cannot be negative, got %f", p.Price)
	}

	err := s.repo.UpdateProduct(ctx, p)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ErrProductNotFound
		}
		log.Error().Err(err).Stringer("product_id", p.ID).Msg("service: failed to update product")
		return fmt.Errorf("service: failed to update product: %w", err)
	}
	return nil
}

func (s *service) SetStock(ctx context.Context, productID uuid.UUID, stock int) error {
	if stock < 0 {
		return fmt.Errorf("service: stock cannot be negative, got %d", stock)
	}

	err := s.repo.SetStock(ctx, productID, stock)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ErrProductNotFound
		}
		log.Error().Err(err).Stringer("product_id", productID).Msg("service: failed to set stock")
		return fmt.Errorf("service: failed to set stock: %w", err)
	}

	log.Info().Stringer("product_id", productID).Int("stock", stock).Msg("service: stock updated")
	return nil
}

func (s *service) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list categories")
		return nil, fmt.Errorf("service: failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	if name == "" {
		return nil, errors.New("service: category name is required")
	}

	id, err := s.repo.CreateCategory(ctx, name)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create category")
		return nil, fmt.Errorf("service: failed to create category: %w", err)
	}

	return &Category{ID: id, Name: name}, nil
}
