package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/shopworks/storefront-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(ServiceParams{Repo: repo})
	require.NoError(t, err)
	return svc, repo
}

func TestServiceCreateDerivesImage(t *testing.T) {
	svc, _ := newTestService(t)

	dto, err := svc.Create(context.Background(), CreateProductDTO{
		Name:          "Garden Trowel",
		Price:         decimal.RequireFromString("9.99"),
		StockQuantity: 4,
		Category:      "tools",
	})
	require.NoError(t, err)
	assert.Equal(t, "garden_trowel.png", dto.ImageFile)
	assert.True(t, dto.Price.Equal(decimal.RequireFromString("9.99")))
}

func TestServiceCreateRejectsNegativePrice(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateProductDTO{
		Name:  "Bad Deal",
		Price: decimal.RequireFromString("-1.00"),
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceUpdatePartial(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	id := seedProduct(t, repo, "Watering Can", "tools", "12.00", 5)

	newPrice := decimal.RequireFromString("10.50")
	newStock := 8
	updated, err := svc.Update(ctx, id, UpdateProductDTO{
		Price:         &newPrice,
		StockQuantity: &newStock,
	})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, 8, updated.StockQuantity)
	assert.Equal(t, "Watering Can", updated.Name)
}

func TestServiceUpdateEmptyImageFallsBack(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	id := seedProduct(t, repo, "Pictured", "misc", "1.00", 1)

	empty := ""
	updated, err := svc.Update(ctx, id, UpdateProductDTO{ImageFile: &empty})
	require.NoError(t, err)
	assert.Equal(t, placeholderImage, updated.ImageFile)
}

func TestServiceUpdateMissingProduct(t *testing.T) {
	svc, _ := newTestService(t)

	name := "anything"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateProductDTO{Name: &name})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceGetMissingProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceDeleteMissingProduct(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeriveImageFile(t *testing.T) {
	assert.Equal(t, "garden_trowel.png", deriveImageFile("Garden Trowel"))
	assert.Equal(t, "deluxe_kit_2.png", deriveImageFile("Deluxe Kit #2"))
	assert.Equal(t, placeholderImage, deriveImageFile("!!!"))
}
