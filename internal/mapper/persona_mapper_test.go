package mapper

import (
	"testing"
	"time"

	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/model"
	"persona-replicator-be/pkg/persona"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestPersonaMapper_MetadataRoundTrip(t *testing.T) {
	m := NewPersonaMapper()
	trained := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	e := &entity.Persona{
		Id:     uuid.New(),
		UserId: uuid.New(),
		Name:   "Work",
		Color:  "#000000",
		Metadata: entity.PersonaMetadata{
			Tone:          "Polite, formal",
			RiskLevel:     "Low",
			CommonPhrases: []string{"Touch base"},
			SampleCount:   3,
			LastTrained:   &trained,
		},
	}

	back := m.ToEntity(m.ToModel(e))

	require.NotNil(t, back)
	assert.Equal(t, e.Metadata.Tone, back.Metadata.Tone)
	assert.Equal(t, e.Metadata.CommonPhrases, back.Metadata.CommonPhrases)
	assert.Equal(t, 3, back.Metadata.SampleCount)
	require.NotNil(t, back.Metadata.LastTrained)
	assert.True(t, trained.Equal(*back.Metadata.LastTrained))
}

func TestPersonaMapper_UntrainedMetadata(t *testing.T) {
	m := NewPersonaMapper()

	for _, raw := range []datatypes.JSON{nil, datatypes.JSON("{}"), datatypes.JSON("not json")} {
		e := m.ToEntity(&model.Persona{Id: uuid.New(), Name: "Fresh", Metadata: raw})
		assert.Equal(t, entity.PersonaMetadata{}, e.Metadata)

		tw := m.ToTwin(e)
		assert.Equal(t, "professional", tw.Metadata.ToneOrDefault())
		assert.Equal(t, "Medium", tw.Metadata.RiskLevelOrDefault())
	}

	assert.Equal(t, datatypes.JSON("{}"), m.ToModel(&entity.Persona{}).Metadata)
	assert.Nil(t, m.ToEntity(nil))
}

func TestPersonaMapper_FromProfile(t *testing.T) {
	now := time.Now().UTC()
	meta := NewPersonaMapper().FromProfile(persona.Profile{
		Tone:              "Direct, professional",
		RiskLevel:         "High",
		CommonPhrases:     []string{},
		WordCount:         12,
		AvgSentenceLength: 4,
		SampleCount:       2,
		LastTrained:       now,
	})

	assert.Equal(t, "High", meta.RiskLevel)
	assert.Equal(t, 12, meta.WordCount)
	require.NotNil(t, meta.LastTrained)
	assert.Equal(t, now, *meta.LastTrained)
}

func TestActionMapper_Details(t *testing.T) {
	m := NewActionMapper()

	mdl := m.ToModel(&entity.Action{UserId: uuid.New(), ActionType: "samples_uploaded", Details: map[string]interface{}{"count": 3}})
	assert.JSONEq(t, `{"count":3}`, string(mdl.Details))

	e := m.ToEntity(mdl)
	assert.Equal(t, float64(3), e.Details["count"])

	empty := m.ToModel(&entity.Action{ActionType: "persona_retrained"})
	assert.Equal(t, datatypes.JSON("{}"), empty.Details)
	assert.NotNil(t, m.ToEntity(empty).Details)
}
