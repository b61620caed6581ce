package dto

import (
	"time"

	"github.com/google/uuid"
)

// ReceiveMessageRequest stores an inbound email delivered by an external sync.
type ReceiveMessageRequest struct {
	FromEmail  string     `json:"from_email" validate:"required,max=320"`
	ToEmail    string     `json:"to_email" validate:"max=320"`
	Subject    string     `json:"subject" validate:"max=998"`
	Body       string     `json:"body" validate:"required,max=20000"`
	Snippet    string     `json:"snippet" validate:"max=500"`
	PersonaId  *uuid.UUID `json:"persona_id"`
	ReceivedAt *time.Time `json:"received_at"`
}

type InboxMessageResponse struct {
	Id       uuid.UUID `json:"id"`
	From     string    `json:"from"`
	Subject  string    `json:"subject"`
	Snippet  string    `json:"snippet"`
	Received string    `json:"received"`
	Body     string    `json:"body"`
}

type GenerateForMessageRequest struct {
	Mode          string `json:"mode" validate:"omitempty,oneof=ghost auto hybrid"`
	ToneShift     *int   `json:"tone_shift" validate:"omitempty,min=-10,max=10"`
	RiskTolerance *int   `json:"risk_tolerance" validate:"omitempty,min=0,max=100"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=20000"`
}

type EmailMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Direction string    `json:"direction"`
	FromEmail string    `json:"from_email"`
	ToEmail   string    `json:"to_email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type SendMessageResponse struct {
	Message *EmailMessageResponse `json:"message"`
	Success bool                  `json:"success"`
}
