package twin

import (
	"unicode/utf8"

	"github.com/google/uuid"
)

// CandidateCount is the fixed number of reply candidates per generation.
const CandidateCount = 3

type Label string

const (
	LabelConservative Label = "Conservative"
	LabelNormal       Label = "Normal"
	LabelBold         Label = "Bold"
)

// Labels is the output order of every candidate set.
var Labels = [CandidateCount]Label{LabelConservative, LabelNormal, LabelBold}

// Origin records whether a candidate came from the model or from a template.
type Origin string

const (
	OriginGenerated Origin = "generated"
	OriginFallback  Origin = "fallback"
)

type Mode string

const (
	ModeGhost  Mode = "ghost"
	ModeAuto   Mode = "auto"
	ModeHybrid Mode = "hybrid"
)

const (
	DefaultTone          = "professional"
	DefaultRiskLevel     = "Medium"
	DefaultMode          = ModeHybrid
	DefaultToneShift     = 0
	DefaultRiskTolerance = 50
)

// Metadata is the part of a persona profile the pipeline reads.
type Metadata struct {
	Tone          string   `json:"tone,omitempty"`
	RiskLevel     string   `json:"riskLevel,omitempty"`
	CommonPhrases []string `json:"commonPhrases,omitempty"`
}

func (m Metadata) ToneOrDefault() string {
	if m.Tone == "" {
		return DefaultTone
	}
	return m.Tone
}

func (m Metadata) RiskLevelOrDefault() string {
	if m.RiskLevel == "" {
		return DefaultRiskLevel
	}
	return m.RiskLevel
}

type Persona struct {
	Id       uuid.UUID
	UserId   uuid.UUID
	Name     string
	Metadata Metadata
}

type InboundMessage struct {
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

type Options struct {
	Mode          Mode `json:"mode"`
	ToneShift     int  `json:"toneShift"`
	RiskTolerance int  `json:"riskTolerance"`
}

// DefaultOptions mirrors what the chat surface uses.
func DefaultOptions() Options {
	return Options{
		Mode:          DefaultMode,
		ToneShift:     DefaultToneShift,
		RiskTolerance: DefaultRiskTolerance,
	}
}

// Normalize fills an unknown mode with the default and clamps the numeric
// knobs into their documented ranges.
func (o Options) Normalize() Options {
	switch o.Mode {
	case ModeGhost, ModeAuto, ModeHybrid:
	default:
		o.Mode = DefaultMode
	}
	o.ToneShift = clamp(o.ToneShift, -10, 10)
	o.RiskTolerance = clamp(o.RiskTolerance, 0, 100)
	return o
}

type Candidate struct {
	Label               Label    `json:"label"`
	Text                string   `json:"text"`
	LengthChars         int      `json:"length_chars"`
	Confidence          int      `json:"confidence"`
	Rationale           string   `json:"rationale"`
	PersonaRulesApplied []string `json:"persona_rules_applied"`
	Origin              Origin   `json:"origin"`
}

func newCandidate(label Label, text string, confidence int, rationale string, rules []string, origin Origin) Candidate {
	if rules == nil {
		rules = []string{}
	}
	return Candidate{
		Label:               label,
		Text:                text,
		LengthChars:         utf8.RuneCountInString(text),
		Confidence:          confidence,
		Rationale:           rationale,
		PersonaRulesApplied: rules,
		Origin:              origin,
	}
}

// Candidates is always exactly three entries in Labels order.
type Candidates [CandidateCount]Candidate

// Find returns the candidate carrying label.
func (c Candidates) Find(label Label) (Candidate, bool) {
	for _, cand := range c {
		if cand.Label == label {
			return cand, true
		}
	}
	return Candidate{}, false
}

// Reply is the result of one GenerateTwinReply call.
type Reply struct {
	Candidates Candidates `json:"candidates"`
	Origin     Origin     `json:"origin"`
	Provider   string     `json:"provider,omitempty"`
	TokensUsed int        `json:"tokens_used"`

	// Cause is why the fallback set was returned; nil for generated replies.
	Cause error `json:"-"`
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
