package twin

import "fmt"

// FallbackCandidates is the deterministic, network-free reply set used
// whenever generation cannot complete. Only the subject is read.
func FallbackCandidates(msg InboundMessage) Candidates {
	return Candidates{
		newCandidate(
			LabelConservative,
			fmt.Sprintf("Thank you for reaching out regarding \"%s\". I appreciate you taking the time to contact me. I will review your message carefully and respond as soon as possible.", msg.Subject),
			60,
			"Safe, polite fallback response",
			[]string{"politeness"},
			OriginFallback,
		),
		newCandidate(
			LabelNormal,
			fmt.Sprintf("Thanks for your email about \"%s\". I'll take a look and get back to you soon.", msg.Subject),
			65,
			"Balanced fallback response",
			[]string{"brevity"},
			OriginFallback,
		),
		newCandidate(
			LabelBold,
			fmt.Sprintf("Got your message about \"%s\". I'll review and respond shortly.", msg.Subject),
			70,
			"Direct fallback response",
			[]string{"directness"},
			OriginFallback,
		),
	}
}
