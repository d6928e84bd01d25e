package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopworks/storefront-backend/pkg/db/models"
)

// ItemDTO is one line of a shopper's cart, with its product attached.
type ItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageFile string          `json:"image_file"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	AddedAt   time.Time       `json:"added_at"`
}

// CartDTO is the full cart view returned to the shopper.
type CartDTO struct {
	Items []ItemDTO       `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

func itemFromModel(item *models.CartItem) ItemDTO {
	dto := ItemDTO{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		AddedAt:   item.CreatedAt,
	}
	if item.Product != nil {
		dto.Name = item.Product.Name
		dto.Price = item.Product.Price
		dto.ImageFile = item.Product.ImageFile
		dto.Subtotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	}
	return dto
}

// UpdateItemRequest sets an absolute quantity for a cart line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}
