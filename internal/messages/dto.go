package messages

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopworks/storefront-backend/pkg/db/models"
)

// CreateMessageDTO is the public contact form payload.
type CreateMessageDTO struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Subject   string `json:"subject" validate:"max=200"`
	Message   string `json:"message" validate:"required,max=5000"`
}

// MessageDTO is the wire representation of a stored contact message.
type MessageDTO struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModel converts a persisted contact message into its DTO.
func FromModel(msg *models.ContactMessage) *MessageDTO {
	if msg == nil {
		return nil
	}
	return &MessageDTO{
		ID:        msg.ID,
		FirstName: msg.FirstName,
		LastName:  msg.LastName,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
	}
}

// FromModels converts a slice of contact messages.
func FromModels(msgs []models.ContactMessage) []MessageDTO {
	dtos := make([]MessageDTO, 0, len(msgs))
	for i := range msgs {
		dtos = append(dtos, *FromModel(&msgs[i]))
	}
	return dtos
}
