package dto

import (
	"persona-replicator-be/pkg/twin"

	"github.com/google/uuid"
)

type GenerateReplyRequest struct {
	PersonaId     *uuid.UUID `json:"persona_id"`
	FromEmail     string     `json:"from_email" validate:"required,max=320"`
	Subject       string     `json:"subject" validate:"max=998"`
	Body          string     `json:"body" validate:"required,max=20000"`
	Mode          string     `json:"mode" validate:"omitempty,oneof=ghost auto hybrid"`
	ToneShift     *int       `json:"tone_shift" validate:"omitempty,min=-10,max=10"`
	RiskTolerance *int       `json:"risk_tolerance" validate:"omitempty,min=0,max=100"`

	// MessageId links the draft to a stored inbound email
	MessageId *uuid.UUID `json:"-"`
}

// GenerateReplyResponse omits ReplyId when the draft could not be stored,
// since such a reply cannot be chosen later.
type GenerateReplyResponse struct {
	ReplyId    *uuid.UUID      `json:"reply_id,omitempty"`
	Origin     twin.Origin     `json:"origin"`
	Provider   string          `json:"provider"`
	Candidates twin.Candidates `json:"candidates"`
}

type ChooseReplyRequest struct {
	Label string `json:"label" validate:"required,oneof=Conservative Normal Bold"`
}

type ChooseReplyResponse struct {
	ReplyId   uuid.UUID      `json:"reply_id"`
	Candidate twin.Candidate `json:"candidate"`
}
