package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopworks/storefront-backend/internal/catalog"
	"github.com/shopworks/storefront-backend/pkg/db/models"
	pkgerrors "github.com/shopworks/storefront-backend/pkg/errors"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:cart_" + uuid.NewString() + "?mode=memory&cache=shared"
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
);
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (user_id, product_id)
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newCartService(t *testing.T) (Service, *catalog.Repository, *gorm.DB) {
	t.Helper()
	db := setupCartTestDB(t)
	products := catalog.NewRepository(db)
	svc, err := NewService(ServiceParams{Repo: NewRepository(db), Products: products})
	require.NoError(t, err)
	return svc, products, db
}

func seedCartProduct(t *testing.T, products *catalog.Repository, name, price string, stock int) uuid.UUID {
	t.Helper()
	product, err := products.Create(context.Background(), &models.Product{
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		ImageFile:     "product_placeholder.png",
	})
	require.NoError(t, err)
	return product.ID
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	svc, products, _ := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	productID := seedCartProduct(t, products, "Widget", "10.00", 5)

	count, err := svc.AddItem(ctx, userID, productID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = svc.AddItem(ctx, userID, productID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	cart, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("20.00")))
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _, _ := newCartService(t)

	_, err := svc.AddItem(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateItemZeroQuantityRemovesLine(t *testing.T) {
	svc, products, _ := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	productID := seedCartProduct(t, products, "Widget", "10.00", 5)
	_, err := svc.AddItem(ctx, userID, productID)
	require.NoError(t, err)

	cart, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	itemID := cart.Items[0].ID

	require.NoError(t, svc.UpdateItem(ctx, userID, itemID, 0))

	cart, err = svc.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.Count)
}

func TestUpdateItemSetsAbsoluteQuantity(t *testing.T) {
	svc, products, _ := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	productID := seedCartProduct(t, products, "Widget", "10.00", 5)
	_, err := svc.AddItem(ctx, userID, productID)
	require.NoError(t, err)

	cart, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	require.NoError(t, svc.UpdateItem(ctx, userID, itemID, 4))

	cart, err = svc.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("40.00")))
}

func TestCrossUserAccessReadsAsMissing(t *testing.T) {
	svc, products, _ := newCartService(t)
	ctx := context.Background()
	owner := uuid.New()
	intruder := uuid.New()

	productID := seedCartProduct(t, products, "Widget", "10.00", 5)
	_, err := svc.AddItem(ctx, owner, productID)
	require.NoError(t, err)

	cart, err := svc.GetCart(ctx, owner)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	err = svc.UpdateItem(ctx, intruder, itemID, 3)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	err = svc.RemoveItem(ctx, intruder, itemID)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	// the owner's line is untouched
	cart, err = svc.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCountSumsQuantities(t *testing.T) {
	svc, products, _ := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	widget := seedCartProduct(t, products, "Widget", "10.00", 5)
	gadget := seedCartProduct(t, products, "Gadget", "25.00", 1)

	for i := 0; i < 3; i++ {
		_, err := svc.AddItem(ctx, userID, widget)
		require.NoError(t, err)
	}
	_, err := svc.AddItem(ctx, userID, gadget)
	require.NoError(t, err)

	count, err := svc.Count(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	// empty cart counts zero
	count, err = svc.Count(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
