package persona

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"time"

	"persona-replicator-be/pkg/twin"
)

// ErrNoSamples is returned when a persona is retrained without any samples.
var ErrNoSamples = errors.New("no samples available for training")

const maxCommonPhrases = 5

// Phrases looked for in the samples, in reporting order.
var phraseCatalogue = []string{
	"Let's sync up",
	"Moving forward",
	"Circle back",
	"Touch base",
	"Quick question",
}

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// Profile is the persisted result of a retraining run. Its JSON form is the
// persona metadata column.
type Profile struct {
	Tone              string    `json:"tone"`
	RiskLevel         string    `json:"riskLevel"`
	CommonPhrases     []string  `json:"commonPhrases"`
	WordCount         int       `json:"wordCount"`
	AvgSentenceLength int       `json:"avgSentenceLength"`
	SampleCount       int       `json:"sampleCount"`
	LastTrained       time.Time `json:"lastTrained"`
}

// Metadata returns the part of the profile the reply pipeline reads.
func (p Profile) Metadata() twin.Metadata {
	return twin.Metadata{
		Tone:          p.Tone,
		RiskLevel:     p.RiskLevel,
		CommonPhrases: p.CommonPhrases,
	}
}

// Analyze derives a style profile from raw writing samples using keyword
// heuristics.
func Analyze(samples []string, now time.Time) (Profile, error) {
	if len(samples) == 0 {
		return Profile{}, ErrNoSamples
	}

	text := strings.Join(samples, " ")
	lower := strings.ToLower(text)

	return Profile{
		Tone:              detectTone(lower),
		RiskLevel:         detectRiskLevel(lower),
		CommonPhrases:     extractCommonPhrases(lower),
		WordCount:         len(strings.Fields(text)),
		AvgSentenceLength: avgSentenceLength(text),
		SampleCount:       len(samples),
		LastTrained:       now.UTC(),
	}, nil
}

func detectTone(lower string) string {
	switch {
	case strings.Contains(lower, "please") && strings.Contains(lower, "thank"):
		return "Polite, formal"
	case strings.Contains(lower, "!") || strings.Contains(lower, "awesome"):
		return "Enthusiastic, casual"
	default:
		return "Direct, professional"
	}
}

func detectRiskLevel(lower string) string {
	switch {
	case strings.Contains(lower, "urgent") || strings.Contains(lower, "asap"):
		return "High"
	case strings.Contains(lower, "when you can") || strings.Contains(lower, "no rush"):
		return "Low"
	default:
		return "Medium"
	}
}

func extractCommonPhrases(lower string) []string {
	found := make([]string, 0, maxCommonPhrases)
	for _, phrase := range phraseCatalogue {
		if len(found) == maxCommonPhrases {
			break
		}
		if strings.Contains(lower, strings.ToLower(phrase)) {
			found = append(found, phrase)
		}
	}
	return found
}

func avgSentenceLength(text string) int {
	sentences, words := 0, 0
	for _, s := range sentenceBoundary.Split(text, -1) {
		if strings.TrimSpace(s) == "" {
			continue
		}
		sentences++
		words += len(strings.Fields(s))
	}
	if sentences == 0 {
		return 0
	}
	return int(math.Round(float64(words) / float64(sentences)))
}
