package persona

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_NoSamples(t *testing.T) {
	_, err := Analyze(nil, time.Now())
	assert.ErrorIs(t, err, ErrNoSamples)
}

func TestAnalyze_Tone(t *testing.T) {
	tests := []struct {
		name    string
		samples []string
		want    string
	}{
		{"polite", []string{"Please find the file attached.", "Thank you for your patience."}, "Polite, formal"},
		{"please without thanks", []string{"Please send it."}, "Direct, professional"},
		{"exclamation", []string{"Great news!"}, "Enthusiastic, casual"},
		{"awesome", []string{"That is AWESOME work"}, "Enthusiastic, casual"},
		{"polite wins over enthusiastic", []string{"Please do! Thanks a lot!"}, "Polite, formal"},
		{"plain", []string{"Send the report by Friday."}, "Direct, professional"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Analyze(tt.samples, time.Now())
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Tone)
		})
	}
}

func TestAnalyze_RiskLevel(t *testing.T) {
	tests := []struct {
		sample string
		want   string
	}{
		{"This is urgent.", "High"},
		{"Need it ASAP", "High"},
		{"Reply when you can", "Low"},
		{"No rush on this one", "Low"},
		{"Urgent, but no rush", "High"},
		{"Regular update", "Medium"},
	}
	for _, tt := range tests {
		p, err := Analyze([]string{tt.sample}, time.Now())
		require.NoError(t, err)
		assert.Equal(t, tt.want, p.RiskLevel, tt.sample)
	}
}

func TestAnalyze_CommonPhrases(t *testing.T) {
	p, err := Analyze([]string{
		"quick question about the launch. Moving forward we should touch base weekly.",
		"let's sync up tomorrow and circle back later",
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, []string{"Let's sync up", "Moving forward", "Circle back", "Touch base", "Quick question"}, p.CommonPhrases)
	assert.Equal(t, p.CommonPhrases, p.Metadata().CommonPhrases)

	p, err = Analyze([]string{"nothing familiar"}, time.Now())
	require.NoError(t, err)
	assert.NotNil(t, p.CommonPhrases)
	assert.Empty(t, p.CommonPhrases)
}

func TestAnalyze_Counts(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))

	p, err := Analyze([]string{"One two three. Four five!", "Six seven eight nine?"}, now)
	require.NoError(t, err)

	assert.Equal(t, 9, p.WordCount)
	assert.Equal(t, 3, p.AvgSentenceLength)
	assert.Equal(t, 2, p.SampleCount)
	assert.Equal(t, now.UTC(), p.LastTrained)
}

func TestAnalyze_NoSentences(t *testing.T) {
	p, err := Analyze([]string{"...", "!!"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, p.AvgSentenceLength)
}

func TestProfileMetadata(t *testing.T) {
	p := Profile{Tone: "Polite, formal", RiskLevel: "Low", CommonPhrases: []string{"Touch base"}}
	m := p.Metadata()

	assert.Equal(t, "Polite, formal", m.ToneOrDefault())
	assert.Equal(t, "Low", m.RiskLevelOrDefault())
	assert.Equal(t, []string{"Touch base"}, m.CommonPhrases)
}
