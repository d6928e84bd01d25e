package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopworks/storefront-backend/pkg/enums"
	pkgerrors "github.com/shopworks/storefront-backend/pkg/errors"
	"github.com/shopworks/storefront-backend/pkg/pagination"
)

// Service defines order history reads for shoppers and order management for
// admins. Cross-user reads surface as NOT_FOUND so order ids leak nothing.
type Service interface {
	ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*Page, error)
	GetForUser(ctx context.Context, orderID, userID uuid.UUID) (*OrderDTO, error)

	ListAll(ctx context.Context) ([]OrderDTO, error)
	Get(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error)
	Update(ctx context.Context, orderID uuid.UUID, dto UpdateOrderDTO) (*OrderDTO, error)
	Delete(ctx context.Context, orderID uuid.UUID) error
}

// ServiceParams bundles the dependencies required to build an orders service.
type ServiceParams struct {
	Repo *Repository
}

type service struct {
	repo *Repository
}

// NewService constructs an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*Page, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListForUser(ctx, userID, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	page := &Page{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.OrderDate,
			ID:        last.ID,
		})
	}
	page.Orders = FromModels(rows)
	return page, nil
}

func (s *service) GetForUser(ctx context.Context, orderID, userID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return FromModel(order), nil
}

func (s *service) ListAll(ctx context.Context) ([]OrderDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list all orders")
	}
	return FromModels(rows), nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return FromModel(order), nil
}

func (s *service) Update(ctx context.Context, orderID uuid.UUID, dto UpdateOrderDTO) (*OrderDTO, error) {
	updates := map[string]any{}
	if dto.Status != nil {
		status, err := enums.ParseOrderStatus(strings.TrimSpace(*dto.Status))
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		updates["status"] = status
	}
	if dto.Address != nil {
		updates["address"] = strings.TrimSpace(*dto.Address)
	}
	if dto.City != nil {
		updates["city"] = strings.TrimSpace(*dto.City)
	}
	if dto.PostalCode != nil {
		updates["postal_code"] = strings.TrimSpace(*dto.PostalCode)
	}
	if dto.Country != nil {
		updates["country"] = strings.TrimSpace(*dto.Country)
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no updatable fields provided")
	}

	affected, err := s.repo.Update(ctx, orderID, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return s.Get(ctx, orderID)
}

func (s *service) Delete(ctx context.Context, orderID uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, orderID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete order")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return nil
}
