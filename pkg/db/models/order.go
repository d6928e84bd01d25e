package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopworks/storefront-backend/pkg/enums"
)

// Order is the immutable result of a checkout. Customer and price fields are
// snapshots taken at placement time; only status and the shipping address may
// change afterwards, and only through the admin surface.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	OrderNumber   string            `gorm:"column:order_number;not null;uniqueIndex"`
	UserID        uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	TotalPrice    decimal.Decimal   `gorm:"column:total_price;type:numeric(10,2);not null"`
	Status        enums.OrderStatus `gorm:"column:status;not null;default:'Processing'"`
	PaymentMethod string            `gorm:"column:payment_method;not null;default:'Credit Card'"`
	CustomerName  string            `gorm:"column:customer_name;not null"`
	CustomerEmail string            `gorm:"column:customer_email;not null"`
	CustomerPhone string            `gorm:"column:customer_phone;not null"`
	Address       string            `gorm:"column:address;not null"`
	City          string            `gorm:"column:city;not null"`
	PostalCode    string            `gorm:"column:postal_code;not null"`
	Country       string            `gorm:"column:country;not null"`
	Items         []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	OrderDate     time.Time         `gorm:"column:order_date;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
