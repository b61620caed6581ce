package twin

import (
	"regexp"
	"strings"
)

const (
	DefaultConfidence = 75
	DefaultRationale  = "Generated based on persona profile"

	PlaceholderText       = "Thank you for your email. I will review this and get back to you soon."
	PlaceholderConfidence = 50
	PlaceholderRationale  = "Fallback response"
)

var sectionMarker = regexp.MustCompile(`(?i)(?:CONSERVATIVE:|NORMAL:|BOLD:)`)

// GeneratedRules are the rule tags carried by every parsed candidate.
func GeneratedRules() []string {
	return []string{"tone_matching", "phrase_usage", "risk_assessment"}
}

// ParseCandidates turns a free-text model answer into three candidates.
//
// Labels are assigned by position: the first non-blank section becomes
// Conservative, the second Normal, the third Bold, whatever marker actually
// introduced it. Text before the first marker counts as a section. Sections
// beyond the third are dropped and missing ones are padded with a
// placeholder.
func ParseCandidates(raw string) Candidates {
	var out Candidates

	n := 0
	for _, section := range splitSections(raw) {
		if n >= CandidateCount {
			break
		}
		out[n] = parseSection(Labels[n], section)
		n++
	}
	for ; n < CandidateCount; n++ {
		out[n] = placeholderCandidate(Labels[n])
	}

	return out
}

// ParseCandidatesStrict assigns each section to the label named by its
// marker. Text before the first marker is ignored, a repeated marker keeps
// its first section, and labels without a non-blank section are padded in
// place.
func ParseCandidatesStrict(raw string) Candidates {
	var out Candidates
	var filled [CandidateCount]bool

	locs := sectionMarker.FindAllStringIndex(raw, -1)
	for i, loc := range locs {
		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		section := raw[loc[1]:end]
		if strings.TrimSpace(section) == "" {
			continue
		}

		idx := labelIndex(raw[loc[0]:loc[1]])
		if idx < 0 || filled[idx] {
			continue
		}
		out[idx] = parseSection(Labels[idx], section)
		filled[idx] = true
	}

	for i := range out {
		if !filled[i] {
			out[i] = placeholderCandidate(Labels[i])
		}
	}

	return out
}

func splitSections(raw string) []string {
	parts := sectionMarker.Split(raw, -1)
	sections := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			sections = append(sections, p)
		}
	}
	return sections
}

func labelIndex(marker string) int {
	name := strings.TrimSuffix(strings.ToLower(marker), ":")
	for i, label := range Labels {
		if strings.ToLower(string(label)) == name {
			return i
		}
	}
	return -1
}

func parseSection(label Label, section string) Candidate {
	confidence := DefaultConfidence
	rationale := DefaultRationale
	textLines := make([]string, 0)

	for _, line := range strings.Split(strings.TrimSpace(section), "\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "confidence:"):
			confidence = parseConfidence(line)
		case strings.HasPrefix(lower, "rationale:"):
			rationale = strings.TrimSpace(strings.SplitN(line, ":", 2)[1])
		case strings.TrimSpace(line) != "" &&
			!strings.Contains(lower, "confidence") &&
			!strings.Contains(lower, "rationale"):
			textLines = append(textLines, line)
		}
	}

	text := strings.TrimSpace(strings.Join(textLines, "\n"))

	return newCandidate(label, text, confidence, rationale, GeneratedRules(), OriginGenerated)
}

// parseConfidence reads the leading integer between the first and second
// colon. A missing, unparsable or zero value yields DefaultConfidence.
func parseConfidence(line string) int {
	fields := strings.Split(line, ":")
	v, ok := leadingInt(fields[1])
	if !ok || v == 0 {
		return DefaultConfidence
	}
	return clamp(v, 0, 100)
}

// leadingInt parses an optionally signed run of digits after leading
// whitespace and ignores whatever follows it ("82%" -> 82).
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n\v\f")

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	v, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if v < 1_000_000 {
			v = v*10 + int(s[digits]-'0')
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

func placeholderCandidate(label Label) Candidate {
	return newCandidate(label, PlaceholderText, PlaceholderConfidence, PlaceholderRationale, nil, OriginFallback)
}
