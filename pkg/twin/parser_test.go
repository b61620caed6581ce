package twin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertLabels(t *testing.T, got Candidates) {
	t.Helper()
	for i, c := range got {
		assert.Equal(t, Labels[i], c.Label, "slot %d", i)
	}
}

func assertPlaceholder(t *testing.T, c Candidate) {
	t.Helper()
	assert.Equal(t, PlaceholderText, c.Text)
	assert.Equal(t, PlaceholderConfidence, c.Confidence)
	assert.Equal(t, PlaceholderRationale, c.Rationale)
	assert.Empty(t, c.PersonaRulesApplied)
	assert.Equal(t, OriginFallback, c.Origin)
	assert.Equal(t, len([]rune(PlaceholderText)), c.LengthChars)
}

func TestParseCandidates_FullResponse(t *testing.T) {
	raw := "CONSERVATIVE:\nThanks, will review.\nConfidence: 80\nRationale: polite\n" +
		"NORMAL:\nGot it, thanks!\nConfidence: 85\nRationale: brief\n" +
		"BOLD:\nNoted.\nConfidence: 90\nRationale: terse"

	got := ParseCandidates(raw)

	assertLabels(t, got)
	assert.Equal(t, "Thanks, will review.", got[0].Text)
	assert.Equal(t, "Got it, thanks!", got[1].Text)
	assert.Equal(t, "Noted.", got[2].Text)
	assert.Equal(t, 80, got[0].Confidence)
	assert.Equal(t, 85, got[1].Confidence)
	assert.Equal(t, 90, got[2].Confidence)
	assert.Equal(t, "polite", got[0].Rationale)
	assert.Equal(t, "brief", got[1].Rationale)
	assert.Equal(t, "terse", got[2].Rationale)

	for _, c := range got {
		assert.Equal(t, GeneratedRules(), c.PersonaRulesApplied)
		assert.Equal(t, OriginGenerated, c.Origin)
		assert.Equal(t, len([]rune(c.Text)), c.LengthChars)
	}
}

func TestParseCandidates_Padding(t *testing.T) {
	t.Run("one section", func(t *testing.T) {
		got := ParseCandidates("CONSERVATIVE:\nHappy to help.\nConfidence: 77\nRationale: warm")

		assertLabels(t, got)
		assert.Equal(t, "Happy to help.", got[0].Text)
		assert.Equal(t, 77, got[0].Confidence)
		assertPlaceholder(t, got[1])
		assertPlaceholder(t, got[2])
	})

	t.Run("two sections", func(t *testing.T) {
		got := ParseCandidates("CONSERVATIVE:\nA\nNORMAL:\nB")

		assertLabels(t, got)
		assert.Equal(t, "A", got[0].Text)
		assert.Equal(t, "B", got[1].Text)
		assertPlaceholder(t, got[2])
	})

	t.Run("no sections", func(t *testing.T) {
		for _, raw := range []string{"", "   \n\t", "CONSERVATIVE:\nNORMAL:\n  BOLD:"} {
			got := ParseCandidates(raw)
			assertLabels(t, got)
			for _, c := range got {
				assertPlaceholder(t, c)
			}
		}
	})
}

func TestParseCandidates_PositionalAssignment(t *testing.T) {
	t.Run("single normal section lands in the first slot", func(t *testing.T) {
		got := ParseCandidates("NORMAL:\nSounds good.\nConfidence: 70\nRationale: ok")

		assertLabels(t, got)
		assert.Equal(t, "Sounds good.", got[0].Text)
		assert.Equal(t, 70, got[0].Confidence)
		assert.Equal(t, "ok", got[0].Rationale)
		assertPlaceholder(t, got[1])
		assertPlaceholder(t, got[2])
	})

	t.Run("out of order markers keep positional labels", func(t *testing.T) {
		got := ParseCandidates("BOLD:\nfirst\nNORMAL:\nsecond\nCONSERVATIVE:\nthird")

		assert.Equal(t, LabelConservative, got[0].Label)
		assert.Equal(t, "first", got[0].Text)
		assert.Equal(t, "second", got[1].Text)
		assert.Equal(t, "third", got[2].Text)
	})

	t.Run("preamble counts as a section", func(t *testing.T) {
		got := ParseCandidates("Here are your drafts.\nCONSERVATIVE:\nOne\nNORMAL:\nTwo\nBOLD:\nThree")

		assert.Equal(t, "Here are your drafts.", got[0].Text)
		assert.Equal(t, "One", got[1].Text)
		assert.Equal(t, "Two", got[2].Text)
	})

	t.Run("sections beyond the third are dropped", func(t *testing.T) {
		got := ParseCandidates("CONSERVATIVE:\n1\nNORMAL:\n2\nBOLD:\n3\nBOLD:\n4")

		assert.Equal(t, "1", got[0].Text)
		assert.Equal(t, "2", got[1].Text)
		assert.Equal(t, "3", got[2].Text)
	})

	t.Run("markers are case insensitive", func(t *testing.T) {
		got := ParseCandidates("conservative:\na\nNormal:\nb\nbold:\nc")

		assert.Equal(t, "a", got[0].Text)
		assert.Equal(t, "b", got[1].Text)
		assert.Equal(t, "c", got[2].Text)
	})
}

func TestParseCandidates_Confidence(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"Confidence: 82", 82},
		{"confidence:82", 82},
		{"CONFIDENCE: 82%", 82},
		{"Confidence: 80/100", 80},
		{"Confidence: 82.7", 82},
		{"Confidence: abc", DefaultConfidence},
		{"Confidence:", DefaultConfidence},
		{"Confidence: 0", DefaultConfidence},
		{"Confidence: 150", 100},
		{"Confidence: -5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := ParseCandidates("CONSERVATIVE:\nHello\n" + tt.line)
			assert.Equal(t, tt.want, got[0].Confidence)
			assert.Equal(t, "Hello", got[0].Text)
		})
	}
}

func TestParseCandidates_Rationale(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"trimmed", "Rationale:   Keeps it short and warm   ", "Keeps it short and warm"},
		{"keeps later colons", "Rationale: Tone: friendly", "Tone: friendly"},
		{"absent", "Just text", DefaultRationale},
		{"case insensitive", "RATIONALE: loud", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCandidates("NORMAL:\nHi\n" + tt.body)
			assert.Equal(t, tt.want, got[0].Rationale)
		})
	}
}

func TestParseCandidates_BodyText(t *testing.T) {
	raw := "CONSERVATIVE:\n" +
		"Hi Sam,\n" +
		"\n" +
		"  Thanks for the update.\n" +
		"I have full confidence in the plan.\n" +
		"My rationale is simple.\n" +
		"Best,\n" +
		"Confidence: 88\n" +
		"Rationale: warm and short\n"

	got := ParseCandidates(raw)

	assert.Equal(t, "Hi Sam,\n  Thanks for the update.\nBest,", got[0].Text)
	assert.Equal(t, 88, got[0].Confidence)
	assert.Equal(t, "warm and short", got[0].Rationale)
}

func TestParseCandidates_LengthCountsRunes(t *testing.T) {
	got := ParseCandidates("CONSERVATIVE:\nMerci beaucoup, à bientôt")
	assert.Equal(t, 25, got[0].LengthChars)
}

func TestParseCandidatesStrict(t *testing.T) {
	t.Run("assigns by marker", func(t *testing.T) {
		got := ParseCandidatesStrict("NORMAL:\nSounds good.\nConfidence: 70\nRationale: ok")

		assertLabels(t, got)
		assertPlaceholder(t, got[0])
		assert.Equal(t, "Sounds good.", got[1].Text)
		assert.Equal(t, 70, got[1].Confidence)
		assert.Equal(t, "ok", got[1].Rationale)
		assert.Equal(t, OriginGenerated, got[1].Origin)
		assertPlaceholder(t, got[2])
	})

	t.Run("reorders out of order sections", func(t *testing.T) {
		got := ParseCandidatesStrict("BOLD:\nb\nNORMAL:\nn\nCONSERVATIVE:\nc")

		assertLabels(t, got)
		assert.Equal(t, "c", got[0].Text)
		assert.Equal(t, "n", got[1].Text)
		assert.Equal(t, "b", got[2].Text)
	})

	t.Run("ignores preamble and duplicates", func(t *testing.T) {
		got := ParseCandidatesStrict("Intro text\nBOLD:\nfirst bold\nBOLD:\nsecond bold\nNORMAL:\n\n")

		assertPlaceholder(t, got[0])
		assertPlaceholder(t, got[1])
		assert.Equal(t, "first bold", got[2].Text)
	})

	t.Run("full response matches positional parse", func(t *testing.T) {
		raw := "CONSERVATIVE:\nA\nConfidence: 61\nNORMAL:\nB\nConfidence: 62\nBOLD:\nC\nConfidence: 63"
		assert.Equal(t, ParseCandidates(raw), ParseCandidatesStrict(raw))
	})
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOk bool
	}{
		{" 42", 42, true},
		{"\t7 apples", 7, true},
		{"+3", 3, true},
		{"-12", -12, true},
		{"x1", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}
	for _, tt := range tests {
		got, ok := leadingInt(tt.in)
		require.Equal(t, tt.wantOk, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseCandidates_CRLF(t *testing.T) {
	raw := strings.ReplaceAll("CONSERVATIVE:\nThanks.\nConfidence: 81\nRationale: crlf\n", "\n", "\r\n")
	got := ParseCandidates(raw)

	assert.Equal(t, "Thanks.", got[0].Text)
	assert.Equal(t, 81, got[0].Confidence)
	assert.Equal(t, "crlf", got[0].Rationale)
}
