package entity

import (
	"time"

	"github.com/google/uuid"
)

type Persona struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Name      string
	Color     string
	Metadata  PersonaMetadata
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// PersonaMetadata is the learned style profile stored alongside a persona.
// Fields are empty until the first retraining.
type PersonaMetadata struct {
	Tone              string     `json:"tone,omitempty"`
	RiskLevel         string     `json:"riskLevel,omitempty"`
	CommonPhrases     []string   `json:"commonPhrases,omitempty"`
	WordCount         int        `json:"wordCount,omitempty"`
	AvgSentenceLength int        `json:"avgSentenceLength,omitempty"`
	SampleCount       int        `json:"sampleCount,omitempty"`
	LastTrained       *time.Time `json:"lastTrained,omitempty"`
}

type PersonaSample struct {
	Id        uuid.UUID
	PersonaId uuid.UUID
	Source    string
	Content   string
	FileName  string
	FileSize  int64
	CreatedAt time.Time
}
