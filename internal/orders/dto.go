package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopworks/storefront-backend/pkg/db/models"
	"github.com/shopworks/storefront-backend/pkg/enums"
)

// ItemDTO is one snapshotted line of an order.
type ItemDTO struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    *uuid.UUID      `json:"product_id"`
	Quantity     int             `json:"quantity"`
	PricePerItem decimal.Decimal `json:"price_per_item"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
}

// OrderDTO is the wire representation of a placed order.
type OrderDTO struct {
	ID            uuid.UUID         `json:"id"`
	OrderNumber   string            `json:"order_number"`
	UserID        uuid.UUID         `json:"user_id"`
	TotalPrice    decimal.Decimal   `json:"total_price"`
	Status        enums.OrderStatus `json:"status"`
	PaymentMethod string            `json:"payment_method"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	CustomerPhone string            `json:"customer_phone"`
	Address       string            `json:"address"`
	City          string            `json:"city"`
	PostalCode    string            `json:"postal_code"`
	Country       string            `json:"country"`
	Items         []ItemDTO         `json:"items,omitempty"`
	OrderDate     time.Time         `json:"order_date"`
}

// Page is one cursor page of a shopper's order history.
type Page struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// FromModel converts a persisted order into its DTO.
func FromModel(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		UserID:        order.UserID,
		TotalPrice:    order.TotalPrice,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		Address:       order.Address,
		City:          order.City,
		PostalCode:    order.PostalCode,
		Country:       order.Country,
		OrderDate:     order.OrderDate,
	}
	for i := range order.Items {
		item := &order.Items[i]
		dto.Items = append(dto.Items, ItemDTO{
			ID:           item.ID,
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			PricePerItem: item.PricePerItem,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
		})
	}
	return dto
}

// FromModels converts a slice of orders without their items.
func FromModels(orders []models.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, *FromModel(&orders[i]))
	}
	return dtos
}

// UpdateOrderDTO carries the admin-mutable fields. Everything else on an order
// is a snapshot and stays frozen.
type UpdateOrderDTO struct {
	Status     *string `json:"status" validate:"omitempty"`
	Address    *string `json:"address" validate:"omitempty,min=1,max=250"`
	City       *string `json:"city" validate:"omitempty,min=1,max=100"`
	PostalCode *string `json:"postal_code" validate:"omitempty,min=1,max=20"`
	Country    *string `json:"country" validate:"omitempty,min=1,max=100"`
}
