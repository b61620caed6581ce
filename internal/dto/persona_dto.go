package dto

import (
	"time"

	"github.com/google/uuid"
)

type PersonaResponse struct {
	Id        uuid.UUID               `json:"id"`
	Name      string                  `json:"name"`
	Color     string                  `json:"color"`
	Metadata  PersonaMetadataResponse `json:"metadata"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt *time.Time              `json:"updated_at"`
}

type PersonaMetadataResponse struct {
	Tone              string     `json:"tone,omitempty"`
	RiskLevel         string     `json:"riskLevel,omitempty"`
	CommonPhrases     []string   `json:"commonPhrases"`
	WordCount         int        `json:"wordCount"`
	AvgSentenceLength int        `json:"avgSentenceLength"`
	SampleCount       int        `json:"sampleCount"`
	LastTrained       *time.Time `json:"lastTrained,omitempty"`
}

type CreatePersonaRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// UploadedSample is one file of a multipart ingest request, already read.
type UploadedSample struct {
	FileName string
	MimeType string
	Size     int64
	Content  string
}

type IngestedSample struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Size int64     `json:"size"`
}

type IngestResponse struct {
	Samples []*IngestedSample `json:"samples"`
}

type RetrainResponse struct {
	Persona *PersonaResponse `json:"persona"`
}
