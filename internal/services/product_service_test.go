package services_test

import (
	"context"
	"fmt"
	"testing"

	"gudang/internal/apperrors"
	"gudang/internal/models"
	"gudang/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func int64Ptr(v int64) *int64 { return &v }

func validProductInput() services.ProductInput {
	return services.ProductInput{
		Name:           "Keyboard",
		Description:    "Mechanical keyboard",
		Quantity:       int64Ptr(25),
		UnitPriceCents: int64Ptr(7500),
		AmountSold:     int64Ptr(0),
	}
}

func ownedProduct(id, ownerID string) *models.Product {
	return &models.Product{ID: id, Name: "Mouse", Description: "Wireless", UserID: &ownerID}
}

func TestProductService_GetAllProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())

	expectedProducts := []models.Product{
		{ID: "1", Name: "Product A", Quantity: 100},
		{ID: "2", Name: "Product B", Quantity: 50},
	}
	mockRepo.On("GetAll", ctx).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())

	expectedProduct := &models.Product{ID: "1", Name: "Product A"}
	mockRepo.On("GetByID", ctx, "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(ctx, "1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	mockRepo.On("GetByID", ctx, "99").Return(nil, fmt.Errorf("product with ID 99: %w", apperrors.ErrNotFound)).Once()
	product, err = service.GetProductByID(ctx, "99")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductSetsOwner(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mockProductRepository)
	pub := &recordingPublisher{}
	service := services.NewProductService(mockRepo, pub, zap.NewNop())
	alice := &models.User{ID: "alice"}

	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.UserID != nil && *p.UserID == "alice" && p.Name == "Keyboard" && p.UnitPriceCents == 7500
	})).Return(nil).Once()

	product, err := service.CreateProduct(ctx, alice, validProductInput())
	require.NoError(t, err)
	require.NotNil(t, product.UserID)
	assert.Equal(t, "alice", *product.UserID)
	assert.Equal(t, []string{services.EventProductCreated}, pub.published())
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductRequiresUserAndValidInput(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())

	_, err := service.CreateProduct(ctx, nil, validProductInput())
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	in := validProductInput()
	in.Name = "a product name that is too long"
	in.Quantity = nil
	_, err = service.CreateProduct(ctx, &models.User{ID: "alice"}, in)
	verr, ok := apperrors.IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "quantity")

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mockProductRepository)
	pub := &recordingPublisher{}
	service := services.NewProductService(mockRepo, pub, zap.NewNop())
	alice := &models.User{ID: "alice"}
	bob := &models.User{ID: "bob"}

	// a non-owner is rejected before anything is written
	mockRepo.On("GetByID", ctx, "p1").Return(ownedProduct("p1", "alice"), nil).Once()
	_, err := service.UpdateProduct(ctx, bob, "p1", validProductInput())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	// the owner succeeds
	mockRepo.On("GetByID", ctx, "p1").Return(ownedProduct("p1", "alice"), nil).Once()
	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == "p1" && p.Name == "Keyboard" && *p.UserID == "alice"
	})).Return(nil).Once()
	product, err := service.UpdateProduct(ctx, alice, "p1", validProductInput())
	require.NoError(t, err)
	assert.Equal(t, int64(25), product.Quantity)

	// unknown id
	mockRepo.On("GetByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()
	_, err = service.UpdateProduct(ctx, alice, "missing", validProductInput())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.Equal(t, []string{services.EventProductUpdated}, pub.published())
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mockProductRepository)
	pub := &recordingPublisher{err: fmt.Errorf("broker down")}
	service := services.NewProductService(mockRepo, pub, zap.NewNop())

	mockRepo.On("GetByID", ctx, "p1").Return(ownedProduct("p1", "alice"), nil).Twice()
	assert.ErrorIs(t, service.DeleteProduct(ctx, &models.User{ID: "bob"}, "p1"), apperrors.ErrForbidden)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	// a failing broker never fails the delete itself
	mockRepo.On("Delete", ctx, "p1").Return(nil).Once()
	assert.NoError(t, service.DeleteProduct(ctx, &models.User{ID: "alice"}, "p1"))
	assert.Equal(t, []string{services.EventProductDeleted}, pub.published())
	mockRepo.AssertExpectations(t)
}

func TestProductService_OrphanProductCannotBeModified(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())

	mockRepo.On("GetByID", ctx, "p2").Return(&models.Product{ID: "p2", Name: "Legacy"}, nil).Once()
	assert.ErrorIs(t, service.DeleteProduct(ctx, &models.User{ID: "alice"}, "p2"), apperrors.ErrForbidden)
	mockRepo.AssertExpectations(t)
}
