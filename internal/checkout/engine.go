package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopworks/storefront-backend/internal/cart"
	"github.com/shopworks/storefront-backend/pkg/db"
	"github.com/shopworks/storefront-backend/pkg/db/models"
	"github.com/shopworks/storefront-backend/pkg/enums"
	pkgerrors "github.com/shopworks/storefront-backend/pkg/errors"
)

const defaultPaymentMethod = "Credit Card"

// CheckoutInput carries the shipping and contact details for order placement.
// Payment is a recorded label, not a charge.
type CheckoutInput struct {
	FirstName     string `json:"first_name" validate:"required,max=100"`
	LastName      string `json:"last_name" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,max=30"`
	Address       string `json:"address" validate:"required,max=250"`
	City          string `json:"city" validate:"required,max=100"`
	PostalCode    string `json:"postal_code" validate:"required,max=20"`
	Country       string `json:"country" validate:"required,max=100"`
	PaymentMethod string `json:"payment_method" validate:"max=50"`
}

// Engine turns a cart into an order inside a single database transaction.
// Stock checks happen at decrement time; any failure rolls the whole
// placement back, leaving cart, stock and orders untouched.
type Engine struct {
	db *db.Client
}

// EngineParams bundles the dependencies required to build a checkout engine.
type EngineParams struct {
	DB *db.Client
}

// NewEngine constructs a checkout engine with the provided dependencies.
func NewEngine(params EngineParams) (*Engine, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &Engine{db: params.DB}, nil
}

// Execute places an order for the user's current cart. The returned order has
// its item snapshots populated.
func (e *Engine) Execute(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*models.Order, error) {
	var placed *models.Order

	txErr := e.db.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := cart.NewRepository(tx)

		lines, err := cartRepo.ListWithProducts(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCart, "your cart is empty")
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))
		for i := range lines {
			line := &lines[i]
			if line.Product == nil {
				return pkgerrors.New(pkgerrors.CodeInternal, "cart line references a missing product")
			}

			if err := decrementStock(tx, line.Product, line.Quantity); err != nil {
				return err
			}

			productID := line.ProductID
			items = append(items, models.OrderItem{
				ProductID:    &productID,
				Quantity:     line.Quantity,
				PricePerItem: line.Product.Price,
				ProductName:  line.Product.Name,
				ProductImage: line.Product.ImageFile,
			})
			total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		paymentMethod := strings.TrimSpace(input.PaymentMethod)
		if paymentMethod == "" {
			paymentMethod = defaultPaymentMethod
		}

		order := &models.Order{
			OrderNumber:   NewOrderNumber(),
			UserID:        userID,
			TotalPrice:    total,
			Status:        enums.OrderStatusProcessing,
			PaymentMethod: paymentMethod,
			CustomerName:  strings.TrimSpace(input.FirstName) + " " + strings.TrimSpace(input.LastName),
			CustomerEmail: strings.ToLower(strings.TrimSpace(input.Email)),
			CustomerPhone: strings.TrimSpace(input.Phone),
			Address:       strings.TrimSpace(input.Address),
			City:          strings.TrimSpace(input.City),
			PostalCode:    strings.TrimSpace(input.PostalCode),
			Country:       strings.TrimSpace(input.Country),
		}
		if err := tx.WithContext(ctx).Create(order).Error; err != nil {
			if pkgerrors.IsUniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeConflict, "order number already taken, please retry")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert order")
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.WithContext(ctx).Create(&items).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert order items")
		}
		order.Items = items

		if err := cartRepo.DeleteAllForUser(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}

		placed = order
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return placed, nil
}

// decrementStock runs the authoritative stock check and decrement as one
// conditional UPDATE. Zero rows affected means the shelf was short.
func decrementStock(tx *gorm.DB, product *models.Product, quantity int) error {
	result := tx.
		Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", product.ID, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "decrement stock")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeInsufficientStock,
			fmt.Sprintf("not enough stock for %s", product.Name)).
			WithDetails(map[string]any{
				"product_id":   product.ID,
				"product_name": product.Name,
				"requested":    quantity,
			})
	}
	return nil
}
