package messages

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shopworks/storefront-backend/pkg/db/models"
	pkgerrors "github.com/shopworks/storefront-backend/pkg/errors"
)

// Service handles the public contact form and the admin inbox.
type Service interface {
	Create(ctx context.Context, dto CreateMessageDTO) (*MessageDTO, error)
	List(ctx context.Context) ([]MessageDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceParams bundles the dependencies required to build a messages service.
type ServiceParams struct {
	Repo *Repository
}

type service struct {
	repo *Repository
}

// NewService constructs a messages service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("messages repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Create(ctx context.Context, dto CreateMessageDTO) (*MessageDTO, error) {
	msg := &models.ContactMessage{
		FirstName: strings.TrimSpace(dto.FirstName),
		LastName:  strings.TrimSpace(dto.LastName),
		Email:     strings.ToLower(strings.TrimSpace(dto.Email)),
		Subject:   strings.TrimSpace(dto.Subject),
		Message:   strings.TrimSpace(dto.Message),
	}
	if msg.FirstName == "" || msg.LastName == "" || msg.Email == "" || msg.Message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first name, last name, email and message are required")
	}

	created, err := s.repo.Create(ctx, msg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store contact message")
	}
	return FromModel(created), nil
}

func (s *service) List(ctx context.Context) ([]MessageDTO, error) {
	msgs, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list contact messages")
	}
	return FromModels(msgs), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete contact message")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "message not found")
	}
	return nil
}
