package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopworks/storefront-backend/internal/catalog"
	"github.com/shopworks/storefront-backend/pkg/db/models"
	pkgerrors "github.com/shopworks/storefront-backend/pkg/errors"
)

// Service defines the cart mutations available to an authenticated shopper.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID) (int, error)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	Count(ctx context.Context, userID uuid.UUID) (int, error)
}

// ServiceParams bundles the dependencies required to build a cart service.
type ServiceParams struct {
	Repo     *Repository
	Products *catalog.Repository
}

type service struct {
	repo     *Repository
	products *catalog.Repository
}

// NewService constructs a cart service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{repo: params.Repo, products: params.Products}, nil
}

func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	items, err := s.repo.ListWithProducts(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	cart := &CartDTO{
		Items: make([]ItemDTO, 0, len(items)),
		Total: decimal.Zero,
	}
	for i := range items {
		line := itemFromModel(&items[i])
		cart.Items = append(cart.Items, line)
		cart.Count += line.Quantity
		cart.Total = cart.Total.Add(line.Subtotal)
	}
	return cart, nil
}

// AddItem puts one unit of the product in the cart. A repeated add bumps the
// existing line's quantity. Returns the new badge count.
func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID) (int, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	line, err := s.repo.FindLine(ctx, userID, productID)
	switch {
	case err == nil:
		if _, err := s.repo.SetQuantity(ctx, userID, line.ID, line.Quantity+1); err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bump cart line")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &models.CartItem{UserID: userID, ProductID: productID, Quantity: 1}
		if err := s.repo.Create(ctx, item); err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart line")
		}
	default:
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find cart line")
	}

	count, err := s.repo.CountItems(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count cart")
	}
	return count, nil
}

// UpdateItem sets an absolute quantity on a cart line. Zero or less removes
// the line. A line belonging to someone else reads as missing.
func (s *service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, itemID)
	}
	affected, err := s.repo.SetQuantity(ctx, userID, itemID, quantity)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart line")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, userID, itemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart line")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}

func (s *service) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.repo.CountItems(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count cart")
	}
	return count, nil
}
