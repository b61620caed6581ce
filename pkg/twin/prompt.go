package twin

import (
	"fmt"
	"strings"
)

// MaxSampleContextChars bounds how much sample text reaches the user prompt.
const MaxSampleContextChars = 1000

// PromptBuilder renders the system prompt for one generation. It is a pure
// function of its inputs.
type PromptBuilder struct {
	metadata Metadata
	options  Options
}

func NewPromptBuilder(metadata Metadata, options Options) *PromptBuilder {
	return &PromptBuilder{
		metadata: metadata,
		options:  options,
	}
}

// BuildSystemPrompt is shorthand for NewPromptBuilder(m, o).Build().
func BuildSystemPrompt(metadata Metadata, options Options) string {
	return NewPromptBuilder(metadata, options).Build()
}

func (b *PromptBuilder) Build() string {
	var prompt strings.Builder

	prompt.WriteString("You are a persona replicator engine. Your task is to generate email replies that match the user's writing style.\n\n")

	b.writeProfile(&prompt)
	b.writeMode(&prompt)
	b.writeKnobs(&prompt)
	b.writeTask(&prompt)
	b.writeFormat(&prompt)

	return prompt.String()
}

func (b *PromptBuilder) writeProfile(prompt *strings.Builder) {
	prompt.WriteString("Persona Profile:\n")
	fmt.Fprintf(prompt, "- Tone: %s\n", b.metadata.ToneOrDefault())
	fmt.Fprintf(prompt, "- Risk Level: %s\n", b.metadata.RiskLevelOrDefault())
	fmt.Fprintf(prompt, "- Common Phrases: %s\n\n", strings.Join(b.metadata.CommonPhrases, ", "))
}

func (b *PromptBuilder) writeMode(prompt *strings.Builder) {
	fmt.Fprintf(prompt, "Mode: %s\n", b.options.Mode)
	prompt.WriteString("- ghost: Fully automated, minimal human touch\n")
	prompt.WriteString("- auto: Automated with safety checks\n")
	prompt.WriteString("- hybrid: Human-in-the-loop, suggestions only\n\n")
}

func (b *PromptBuilder) writeKnobs(prompt *strings.Builder) {
	fmt.Fprintf(prompt, "Tone Shift: %d (-10 to +10, where negative is more formal, positive is more casual)\n", b.options.ToneShift)
	fmt.Fprintf(prompt, "Risk Tolerance: %d%% (higher = bolder, more direct)\n\n", b.options.RiskTolerance)
}

func (b *PromptBuilder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("Generate 3 candidate replies:\n")
	prompt.WriteString("1. Conservative: Safest, most polite version\n")
	prompt.WriteString("2. Normal: Balanced, default persona behavior\n")
	prompt.WriteString("3. Bold: Strongest tone allowed by risk tolerance\n\n")
	prompt.WriteString("For each candidate, provide:\n")
	prompt.WriteString("- The reply text\n")
	prompt.WriteString("- Confidence score (0-100)\n")
	prompt.WriteString("- Brief rationale (1 sentence)\n\n")
}

func (b *PromptBuilder) writeFormat(prompt *strings.Builder) {
	prompt.WriteString("Format your response as:\n")
	for i, label := range Labels {
		if i > 0 {
			prompt.WriteString("\n")
		}
		fmt.Fprintf(prompt, "%s:\n", strings.ToUpper(string(label)))
		prompt.WriteString("[reply text]\n")
		prompt.WriteString("Confidence: [score]\n")
		prompt.WriteString("Rationale: [reason]\n")
	}
}

// BuildUserPrompt renders the inbound message plus the sample context.
// samples are expected newest first.
func BuildUserPrompt(msg InboundMessage, samples []string) string {
	var prompt strings.Builder

	prompt.WriteString("Inbound email:\n")
	fmt.Fprintf(&prompt, "From: %s\n", msg.FromEmail)
	fmt.Fprintf(&prompt, "Subject: %s\n", msg.Subject)
	fmt.Fprintf(&prompt, "Body: %s\n\n", msg.Body)

	prompt.WriteString("Context samples from your writing style:\n")
	prompt.WriteString(SampleContext(samples))
	prompt.WriteString("\n\n")

	prompt.WriteString("Generate 3 candidate replies (Conservative, Normal, Bold) that match your persona.\n")

	return prompt.String()
}

// SampleContext joins samples with a blank line and hard-truncates the
// result at MaxSampleContextChars runes.
func SampleContext(samples []string) string {
	joined := strings.Join(samples, "\n\n")
	return truncateRunes(joined, MaxSampleContextChars)
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
