package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopworks/storefront-backend/pkg/db/models"
)

// ProductDTO is the wire representation of a catalog product.
type ProductDTO struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	ImageFile     string          `json:"image_file"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// FromModel converts a persisted product into its DTO.
func FromModel(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}
	return &ProductDTO{
		ID:            product.ID,
		Name:          product.Name,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		Category:      product.Category,
		Description:   product.Description,
		ImageFile:     product.ImageFile,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

// FromModels converts a slice of products.
func FromModels(products []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, *FromModel(&products[i]))
	}
	return dtos
}

// CreateProductDTO carries the fields accepted when an admin creates a product.
type CreateProductDTO struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Price         decimal.Decimal `json:"price" validate:"required"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	Category      string          `json:"category" validate:"max=100"`
	Description   string          `json:"description"`
	ImageFile     string          `json:"image_file"`
}

// UpdateProductDTO carries partial admin edits. Nil fields are left untouched.
type UpdateProductDTO struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity" validate:"omitempty,gte=0"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	Description   *string          `json:"description"`
	ImageFile     *string          `json:"image_file"`
}

// ListFilter narrows the public product listing.
type ListFilter struct {
	Category string
	Search   string
	Limit    int
}
