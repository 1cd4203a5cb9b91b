package services

import (
	"context"
	"fmt"

	"gudang/internal/apperrors"
	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/validation"

	"go.uber.org/zap"
)

// ProductInput is the writable part of a product, used for create and update.
// The integer fields are pointers so that an explicit 0 passes "required".
type ProductInput struct {
	Name           string `json:"name" validate:"required,max=20"`
	Description    string `json:"description" validate:"required,max=255"`
	Quantity       *int64 `json:"quantity" validate:"required,gte=0"`
	UnitPriceCents *int64 `json:"unit_price_cents" validate:"required,gte=0"`
	AmountSold     *int64 `json:"amount_sold" validate:"required,gte=0"`
}

func (in ProductInput) applyTo(p *models.Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Quantity = *in.Quantity
	p.UnitPriceCents = *in.UnitPriceCents
	p.AmountSold = *in.AmountSold
}

// ProductService handles business logic related to products. Reads are open
// to everyone; every mutation goes through AuthorizeModify.
type ProductService struct {
	repo      repositories.ProductRepository
	validator *validation.Validator
	events    EventPublisher
	log       *zap.Logger
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events EventPublisher, log *zap.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		validator: validation.New(),
		events:    events,
		log:       log,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct creates a product owned by owner. The owner always comes from
// the authenticated request, never from the input.
func (s *ProductService) CreateProduct(ctx context.Context, owner *models.User, in ProductInput) (*models.Product, error) {
	if owner == nil {
		return nil, fmt.Errorf("creating a product: %w", apperrors.ErrUnauthenticated)
	}
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	ownerID := owner.ID
	product := &models.Product{UserID: &ownerID}
	in.applyTo(product)

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	publishEvent(s.events, s.log, EventProductCreated, product)
	return product, nil
}

// UpdateProduct replaces the writable fields of a product owned by user.
func (s *ProductService) UpdateProduct(ctx context.Context, user *models.User, id string, in ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeModify(user, product); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	in.applyTo(product)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	publishEvent(s.events, s.log, EventProductUpdated, product)
	return product, nil
}

// DeleteProduct deletes a product owned by user.
func (s *ProductService) DeleteProduct(ctx context.Context, user *models.User, id string) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := AuthorizeModify(user, product); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	publishEvent(s.events, s.log, EventProductDeleted, map[string]string{"id": id, "user_id": user.ID})
	return nil
}
