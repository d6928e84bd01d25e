package media

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopworks/storefront-backend/internal/catalog"
	"github.com/shopworks/storefront-backend/pkg/config"
	"github.com/shopworks/storefront-backend/pkg/db/models"
	pkgerrors "github.com/shopworks/storefront-backend/pkg/errors"
)

func newMediaService(t *testing.T) (Service, *catalog.Repository, string) {
	t.Helper()

	dsn := "file:media_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  stock_quantity INTEGER NOT NULL DEFAULT 0,
  category TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  image_file TEXT NOT NULL DEFAULT 'product_placeholder.png',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)

	products := catalog.NewRepository(db)
	dir := t.TempDir()
	svc, err := NewService(ServiceParams{
		Products: products,
		Config: config.MediaConfig{
			UploadDir:   dir,
			MaxUploadMB: 1,
			PublicPath:  "/static/images",
		},
	})
	require.NoError(t, err)
	return svc, products, dir
}

func seedMediaProduct(t *testing.T, products *catalog.Repository) uuid.UUID {
	t.Helper()
	product, err := products.Create(context.Background(), &models.Product{
		Name:      "Pictured",
		Price:     decimal.RequireFromString("1.00"),
		ImageFile: "product_placeholder.png",
	})
	require.NoError(t, err)
	return product.ID
}

func TestUploadStoresFileAndUpdatesProduct(t *testing.T) {
	svc, products, dir := newMediaService(t)
	ctx := context.Background()

	productID := seedMediaProduct(t, products)
	payload := []byte("fake-png-bytes")

	result, err := svc.UploadProductImage(ctx, productID, "photo.PNG", int64(len(payload)), bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, productID.String()+"_original.png", result.Filename)
	assert.Equal(t, "/static/images/"+result.Filename, result.ImageURL)

	stored, err := os.ReadFile(filepath.Join(dir, result.Filename))
	require.NoError(t, err)
	assert.Equal(t, payload, stored)

	product, err := products.FindByID(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, result.Filename, product.ImageFile)
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	svc, products, _ := newMediaService(t)

	productID := seedMediaProduct(t, products)
	payload := []byte("definitely not an svg")

	_, err := svc.UploadProductImage(context.Background(), productID, "logo.svg", int64(len(payload)), bytes.NewReader(payload))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc, products, _ := newMediaService(t)

	productID := seedMediaProduct(t, products)
	tooBig := int64(2 << 20) // 2MB against a 1MB cap

	_, err := svc.UploadProductImage(context.Background(), productID, "big.jpg", tooBig, bytes.NewReader(nil))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUploadUnknownProduct(t *testing.T) {
	svc, _, dir := newMediaService(t)

	payload := []byte("bytes")
	_, err := svc.UploadProductImage(context.Background(), uuid.New(), "photo.jpg", int64(len(payload)), bytes.NewReader(payload))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	// the orphaned file was cleaned up
	entries, err2 := os.ReadDir(dir)
	require.NoError(t, err2)
	assert.Empty(t, entries)
}
